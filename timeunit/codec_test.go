package timeunit_test

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/accounting-time/timeunit"
)

// =============================================================================
// SORTABLE FORM
// =============================================================================

func TestParseSortable_CalendarDay(t *testing.T) {
	day, err := timeunit.ParseSortable[timeunit.CalendarDay]("cd-2001-01-10")
	require.NoError(t, err)
	assert.Equal(t, cd(t, 2001, time.January, 10), day)
	assert.Equal(t, 2001, day.Year())
	assert.Equal(t, time.January, day.Month())
	assert.Equal(t, 10, day.Day())
}

func TestFormatSortable(t *testing.T) {
	tests := []struct {
		unit timeunit.UnitOfTime
		want string
	}{
		{cy(t, 2017), "cy-2017"},
		{cy(t, 1), "cy-0001"},
		{fm(t, 2017, 5), "fm-2017-05"},
		{gq(t, 2017, timeunit.Q3), "gq-2017-3"},
		{cd(t, 2001, time.January, 10), "cd-2001-01-10"},
		{cq(t, 2016, timeunit.Q2), "cq-2016-2"},
		{gm(t, 2001, 12), "gm-2001-12"},
		{fy(t, 9999), "fy-9999"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := timeunit.FormatSortable(tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatSortable_UnboundedHasNoToken(t *testing.T) {
	_, err := timeunit.FormatSortable(timeunit.CalendarUnbounded{})
	assert.ErrorIs(t, err, timeunit.ErrUnsupported)
}

func TestSortable_RoundTripsEveryVariant(t *testing.T) {
	for _, u := range boundedSamples(t) {
		token, err := timeunit.FormatSortable(u)
		require.NoError(t, err)
		t.Run(token, func(t *testing.T) {
			back, err := timeunit.ParseSortable[timeunit.UnitOfTime](token)
			require.NoError(t, err)
			assert.Equal(t, u, back)
		})
	}
}

func TestSortable_LexicalOrderIsChronological(t *testing.T) {
	months := []timeunit.CalendarMonth{
		cm(t, 2010, time.October), cm(t, 2009, time.December),
		cm(t, 2010, time.January), cm(t, 999, time.May),
	}
	var tokens []string
	for _, m := range months {
		tokens = append(tokens, m.SortableString())
	}
	slices.Sort(tokens)

	slices.SortFunc(months, timeunit.CalendarMonth.Compare)
	for i, m := range months {
		assert.Equal(t, m.SortableString(), tokens[i])
	}
}

func TestParseSortable_Rejections(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", timeunit.ErrBlankInput},
		{"   ", timeunit.ErrBlankInput},
		{"xy-2017", timeunit.ErrUnrecognizedFormat},
		{"fd-2017-01-01", timeunit.ErrUnrecognizedFormat},
		{"gd-2017-01-01", timeunit.ErrUnrecognizedFormat},
		{"c-2017", timeunit.ErrUnrecognizedFormat},
		{"cyy-2017", timeunit.ErrUnrecognizedFormat},
		{"cy-2017-01", timeunit.ErrWrongTokenCount},
		{"cq-2017", timeunit.ErrWrongTokenCount},
		{"cd-2017-01", timeunit.ErrWrongTokenCount},
		{"fm-2017-01-01", timeunit.ErrWrongTokenCount},
		{"cy-17", timeunit.ErrMalformedField},
		{"cy-0000", timeunit.ErrMalformedField},
		{"cy-20a7", timeunit.ErrMalformedField},
		{"cm-2017-5", timeunit.ErrMalformedField},
		{"cm-2017-13", timeunit.ErrMalformedField},
		{"cm-2017-00", timeunit.ErrMalformedField},
		{"cq-2017-5", timeunit.ErrMalformedField},
		{"cq-2017-01", timeunit.ErrMalformedField},
		{"cq-2017-Q1", timeunit.ErrMalformedField},
		{"cd-2015-02-29", timeunit.ErrMalformedField},
		{"cd-2017-04-31", timeunit.ErrMalformedField},
		{"cd-2017-4-01", timeunit.ErrMalformedField},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := timeunit.ParseSortable[timeunit.UnitOfTime](tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var parseErr *timeunit.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.input, parseErr.Input)
			assert.True(t, timeunit.IsParseError(err))
			assert.True(t, timeunit.IsClientError(err))
		})
	}
}

func TestParseSortable_IncompatibleRequestedType(t *testing.T) {
	// GIVEN: A valid fiscal token
	// WHEN: The caller asks for a calendar-only type
	// THEN: Decoding succeeds but assignment fails

	_, err := timeunit.ParseSortable[timeunit.CalendarUnitOfTime]("fq-2017-3")
	require.Error(t, err)
	assert.ErrorIs(t, err, timeunit.ErrIncompatibleType)
	assert.Contains(t, err.Error(), "timeunit.CalendarUnitOfTime")

	_, err = timeunit.ParseSortable[timeunit.CalendarDay]("cm-2017-05")
	assert.ErrorIs(t, err, timeunit.ErrIncompatibleType)

	fiscal, err := timeunit.ParseSortable[timeunit.FiscalUnitOfTime]("fq-2017-3")
	require.NoError(t, err)
	assert.Equal(t, fq(t, 2017, timeunit.Q3), fiscal)

	generic, err := timeunit.ParseSortable[timeunit.GenericMonth]("gm-2017-11")
	require.NoError(t, err)
	assert.Equal(t, timeunit.MonthNumber(11), generic.Month())
}

// =============================================================================
// PLAIN FORM
// =============================================================================

func TestString_PlainForm(t *testing.T) {
	tests := []struct {
		unit timeunit.UnitOfTime
		want string
	}{
		{cy(t, 2017), "c-2017"},
		{fm(t, 2017, 5), "f-2017-05"},
		{cq(t, 2017, timeunit.Q3), "c-2017-Q3"},
		{gq(t, 2017, timeunit.Q1), "g-2017-Q1"},
		{cd(t, 2017, time.May, 10), "c-2017-05-10"},
		{timeunit.GenericUnbounded{}, "g-unbounded"},
		{timeunit.CalendarUnbounded{}, "c-unbounded"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.unit.String())

			back, err := timeunit.ParseUnitString[timeunit.UnitOfTime](tt.want)
			require.NoError(t, err)
			assert.Equal(t, tt.unit, back)
		})
	}
}

func TestPlain_RoundTripsEveryVariant(t *testing.T) {
	for _, u := range boundedSamples(t) {
		back, err := timeunit.ParseUnitString[timeunit.UnitOfTime](u.String())
		require.NoError(t, err)
		assert.Equal(t, u, back)
	}
}

func TestParseUnitString_Rejections(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", timeunit.ErrBlankInput},
		{"x-2017", timeunit.ErrUnrecognizedFormat},
		{"cq-2017-3", timeunit.ErrUnrecognizedFormat},
		{"f-2017-05-10", timeunit.ErrUnrecognizedFormat},
		{"c-2017-01-01-01", timeunit.ErrWrongTokenCount},
		{"c-2017-3", timeunit.ErrMalformedField},
		{"c-2017-Q5", timeunit.ErrMalformedField},
		{"c-2017-Q", timeunit.ErrMalformedField},
		{"c-2015-02-29", timeunit.ErrMalformedField},
		{"c-Unbounded", timeunit.ErrMalformedField},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := timeunit.ParseUnitString[timeunit.UnitOfTime](tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseUnitString_IncompatibleRequestedType(t *testing.T) {
	_, err := timeunit.ParseUnitString[timeunit.CalendarQuarter]("c-unbounded")
	assert.ErrorIs(t, err, timeunit.ErrIncompatibleType)

	u, err := timeunit.ParseUnitString[timeunit.CalendarUnitOfTime]("c-unbounded")
	require.NoError(t, err)
	assert.Equal(t, timeunit.CalendarUnbounded{}, u)
}
