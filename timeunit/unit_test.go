package timeunit_test

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/accounting-time/timeunit"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func cd(t *testing.T, y int, m time.Month, d int) timeunit.CalendarDay {
	t.Helper()
	u, err := timeunit.NewCalendarDay(y, m, d)
	require.NoError(t, err)
	return u
}

func cm(t *testing.T, y int, m time.Month) timeunit.CalendarMonth {
	t.Helper()
	u, err := timeunit.NewCalendarMonth(y, m)
	require.NoError(t, err)
	return u
}

func cq(t *testing.T, y int, q timeunit.QuarterNumber) timeunit.CalendarQuarter {
	t.Helper()
	u, err := timeunit.NewCalendarQuarter(y, q)
	require.NoError(t, err)
	return u
}

func cy(t *testing.T, y int) timeunit.CalendarYear {
	t.Helper()
	u, err := timeunit.NewCalendarYear(y)
	require.NoError(t, err)
	return u
}

func fm(t *testing.T, y int, m timeunit.MonthNumber) timeunit.FiscalMonth {
	t.Helper()
	u, err := timeunit.NewFiscalMonth(y, m)
	require.NoError(t, err)
	return u
}

func fq(t *testing.T, y int, q timeunit.QuarterNumber) timeunit.FiscalQuarter {
	t.Helper()
	u, err := timeunit.NewFiscalQuarter(y, q)
	require.NoError(t, err)
	return u
}

func fy(t *testing.T, y int) timeunit.FiscalYear {
	t.Helper()
	u, err := timeunit.NewFiscalYear(y)
	require.NoError(t, err)
	return u
}

func gm(t *testing.T, y int, m timeunit.MonthNumber) timeunit.GenericMonth {
	t.Helper()
	u, err := timeunit.NewGenericMonth(y, m)
	require.NoError(t, err)
	return u
}

func gq(t *testing.T, y int, q timeunit.QuarterNumber) timeunit.GenericQuarter {
	t.Helper()
	u, err := timeunit.NewGenericQuarter(y, q)
	require.NoError(t, err)
	return u
}

func gy(t *testing.T, y int) timeunit.GenericYear {
	t.Helper()
	u, err := timeunit.NewGenericYear(y)
	require.NoError(t, err)
	return u
}

// boundedSamples has one instance of every bounded variant.
func boundedSamples(t *testing.T) []timeunit.UnitOfTime {
	return []timeunit.UnitOfTime{
		cd(t, 2016, time.February, 27),
		cm(t, 2016, time.November),
		cq(t, 2016, timeunit.Q2),
		cy(t, 2016),
		fm(t, 2017, 5),
		fq(t, 2017, timeunit.Q4),
		fy(t, 2017),
		gm(t, 2001, 12),
		gq(t, 2001, timeunit.Q1),
		gy(t, 2001),
	}
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewCalendarDay_RejectsFebruary29InCommonYear(t *testing.T) {
	// GIVEN: 2015 is not a leap year
	// WHEN: Constructing February 29
	// THEN: The day field is reported malformed

	_, err := timeunit.NewCalendarDay(2015, time.February, 29)
	require.Error(t, err)
	assert.ErrorIs(t, err, timeunit.ErrMalformedField)

	var fieldErr *timeunit.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "day", fieldErr.Field)
	assert.Equal(t, 29, fieldErr.Value)

	leap, err := timeunit.NewCalendarDay(2016, time.February, 29)
	require.NoError(t, err)
	assert.Equal(t, 29, leap.Day())
}

func TestConstructors_RejectOutOfRangeFields(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"year zero", func() error { _, err := timeunit.NewCalendarYear(0); return err }()},
		{"year 10000", func() error { _, err := timeunit.NewFiscalYear(10000); return err }()},
		{"month 13", func() error { _, err := timeunit.NewCalendarMonth(2017, 13); return err }()},
		{"month 0", func() error { _, err := timeunit.NewGenericMonth(2017, 0); return err }()},
		{"quarter 0", func() error { _, err := timeunit.NewFiscalQuarter(2017, timeunit.QuarterInvalid); return err }()},
		{"quarter 5", func() error { _, err := timeunit.NewGenericQuarter(2017, 5); return err }()},
		{"day 32", func() error { _, err := timeunit.NewCalendarDay(2017, time.January, 32); return err }()},
		{"april 31", func() error { _, err := timeunit.NewCalendarDay(2017, time.April, 31); return err }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, timeunit.ErrMalformedField)
		})
	}
}

func TestUnits_ReportKindAndGranularity(t *testing.T) {
	tests := []struct {
		unit        timeunit.UnitOfTime
		kind        timeunit.Kind
		granularity timeunit.Granularity
	}{
		{cd(t, 2017, time.May, 10), timeunit.KindCalendar, timeunit.GranularityDay},
		{cm(t, 2017, time.May), timeunit.KindCalendar, timeunit.GranularityMonth},
		{cq(t, 2017, timeunit.Q2), timeunit.KindCalendar, timeunit.GranularityQuarter},
		{cy(t, 2017), timeunit.KindCalendar, timeunit.GranularityYear},
		{timeunit.CalendarUnbounded{}, timeunit.KindCalendar, timeunit.GranularityUnbounded},
		{fm(t, 2017, 5), timeunit.KindFiscal, timeunit.GranularityMonth},
		{fq(t, 2017, timeunit.Q2), timeunit.KindFiscal, timeunit.GranularityQuarter},
		{fy(t, 2017), timeunit.KindFiscal, timeunit.GranularityYear},
		{timeunit.FiscalUnbounded{}, timeunit.KindFiscal, timeunit.GranularityUnbounded},
		{gm(t, 2017, 5), timeunit.KindGeneric, timeunit.GranularityMonth},
		{gq(t, 2017, timeunit.Q2), timeunit.KindGeneric, timeunit.GranularityQuarter},
		{gy(t, 2017), timeunit.KindGeneric, timeunit.GranularityYear},
		{timeunit.GenericUnbounded{}, timeunit.KindGeneric, timeunit.GranularityUnbounded},
	}
	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.unit.Kind())
			assert.Equal(t, tt.granularity, tt.unit.Granularity())
			assert.Equal(t, tt.granularity != timeunit.GranularityUnbounded, timeunit.IsBounded(tt.unit))
		})
	}
}

func TestGranularity_Ordering(t *testing.T) {
	finer, err := timeunit.GranularityDay.IsMoreGranularThan(timeunit.GranularityMonth)
	require.NoError(t, err)
	assert.True(t, finer)

	coarser, err := timeunit.GranularityYear.IsLessGranularThan(timeunit.GranularityQuarter)
	require.NoError(t, err)
	assert.True(t, coarser)

	same, err := timeunit.GranularityQuarter.IsMoreGranularThan(timeunit.GranularityQuarter)
	require.NoError(t, err)
	assert.False(t, same)

	_, err = timeunit.GranularityInvalid.IsMoreGranularThan(timeunit.GranularityDay)
	assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)
}

func TestParseGranularityAndKind(t *testing.T) {
	g, err := timeunit.ParseGranularity("Quarter")
	require.NoError(t, err)
	assert.Equal(t, timeunit.GranularityQuarter, g)

	k, err := timeunit.ParseKind(" fiscal ")
	require.NoError(t, err)
	assert.Equal(t, timeunit.KindFiscal, k)

	_, err = timeunit.ParseGranularity("week")
	assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)
	_, err = timeunit.ParseKind("invalid")
	assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)
}

// =============================================================================
// COMPARISON
// =============================================================================

func TestCompare_SameVariant(t *testing.T) {
	c, err := timeunit.Compare(cq(t, 2016, timeunit.Q2), cq(t, 2016, timeunit.Q3))
	require.NoError(t, err)
	assert.Equal(t, -1, c)

	c, err = timeunit.Compare(cy(t, 2017), cy(t, 2017))
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	c, err = timeunit.Compare(timeunit.FiscalUnbounded{}, timeunit.FiscalUnbounded{})
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	assert.True(t, cd(t, 2016, time.March, 1).After(cd(t, 2016, time.February, 29)))
	assert.True(t, fm(t, 2016, 1).Before(fm(t, 2016, 2)))
	assert.True(t, gy(t, 2016).Equal(gy(t, 2016)))
}

func TestCompare_DifferentVariantsMismatch(t *testing.T) {
	// GIVEN: A calendar quarter and a fiscal quarter of the same year/number
	// WHEN: Comparing them
	// THEN: The comparison is rejected rather than coerced

	_, err := timeunit.Compare(cq(t, 2016, timeunit.Q2), fq(t, 2016, timeunit.Q2))
	require.Error(t, err)
	assert.ErrorIs(t, err, timeunit.ErrTypeMismatch)

	var mismatch *timeunit.MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "calendar-quarter", mismatch.Left)
	assert.Equal(t, "fiscal-quarter", mismatch.Right)

	_, err = timeunit.Compare(cm(t, 2016, time.April), cq(t, 2016, timeunit.Q2))
	assert.ErrorIs(t, err, timeunit.ErrTypeMismatch)

	_, err = timeunit.Compare(nil, cy(t, 2016))
	assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)
}

// =============================================================================
// ARITHMETIC
// =============================================================================

func TestPlus_QuarterRollsOverYear(t *testing.T) {
	q := cq(t, 2016, timeunit.Q2)

	next, err := q.Plus(1)
	require.NoError(t, err)
	assert.Equal(t, cq(t, 2016, timeunit.Q3), next)

	prev, err := q.Plus(-1)
	require.NoError(t, err)
	assert.Equal(t, cq(t, 2015, timeunit.Q4), prev)
}

func TestPlus_RollsOverAtEveryGranularity(t *testing.T) {
	month, err := cm(t, 2016, time.December).Plus(1)
	require.NoError(t, err)
	assert.Equal(t, cm(t, 2017, time.January), month)

	day, err := cd(t, 2016, time.February, 28).Plus(1)
	require.NoError(t, err)
	assert.Equal(t, cd(t, 2016, time.February, 29), day)

	day, err = cd(t, 2016, time.February, 28).Plus(2)
	require.NoError(t, err)
	assert.Equal(t, cd(t, 2016, time.March, 1), day)

	day, err = cd(t, 2017, time.January, 1).Plus(-1)
	require.NoError(t, err)
	assert.Equal(t, cd(t, 2016, time.December, 31), day)

	fiscal, err := fm(t, 2017, 1).Plus(-13)
	require.NoError(t, err)
	assert.Equal(t, fm(t, 2015, 12), fiscal)

	year, err := gy(t, 2001).Plus(16)
	require.NoError(t, err)
	assert.Equal(t, gy(t, 2017), year)
}

func TestPlus_UnboundedIsUnsupported(t *testing.T) {
	_, err := timeunit.Plus(timeunit.CalendarUnbounded{}, 1)
	assert.ErrorIs(t, err, timeunit.ErrUnsupported)

	_, err = timeunit.Plus[timeunit.UnitOfTime](timeunit.GenericUnbounded{}, 0)
	assert.ErrorIs(t, err, timeunit.ErrUnsupported)
}

func TestPlus_OutsideRepresentableYears(t *testing.T) {
	_, err := cy(t, 9999).Plus(1)
	assert.ErrorIs(t, err, timeunit.ErrOutOfRange)

	_, err = cd(t, 1, time.January, 1).Plus(-1)
	assert.ErrorIs(t, err, timeunit.ErrOutOfRange)

	_, err = fq(t, 1, timeunit.Q1).Plus(-1)
	assert.ErrorIs(t, err, timeunit.ErrOutOfRange)
}

func TestPlus_IdentityAndComposition(t *testing.T) {
	// Plus(u, 0) == u and Plus(Plus(u, n), m) == Plus(u, n+m)
	for _, u := range boundedSamples(t) {
		t.Run(u.String(), func(t *testing.T) {
			same, err := timeunit.Plus(u, 0)
			require.NoError(t, err)
			assert.Equal(t, u, same)

			for n := -7; n <= 7; n += 3 {
				for m := -5; m <= 5; m += 2 {
					step, err := timeunit.Plus(u, n)
					require.NoError(t, err)
					twice, err := timeunit.Plus(step, m)
					require.NoError(t, err)
					once, err := timeunit.Plus(u, n+m)
					require.NoError(t, err)
					assert.Equal(t, once, twice, "n=%d m=%d", n, m)
				}
			}
		})
	}
}

func TestPlusAt_CoarserGranularity(t *testing.T) {
	tests := []struct {
		name string
		unit timeunit.UnitOfTime
		n    int
		at   timeunit.Granularity
		want timeunit.UnitOfTime
	}{
		{"two years to a month", cm(t, 2016, time.March), 2, timeunit.GranularityYear, cm(t, 2018, time.March)},
		{"one quarter to a month", cm(t, 2016, time.November), 1, timeunit.GranularityQuarter, cm(t, 2017, time.February)},
		{"one year to a quarter", cq(t, 2016, timeunit.Q4), 1, timeunit.GranularityYear, cq(t, 2017, timeunit.Q4)},
		{"minus one year to a fiscal month", fm(t, 2017, 5), -1, timeunit.GranularityYear, fm(t, 2016, 5)},
		{"one month to January 31 clamps", cd(t, 2016, time.January, 31), 1, timeunit.GranularityMonth, cd(t, 2016, time.February, 29)},
		{"one year to February 29 clamps", cd(t, 2016, time.February, 29), 1, timeunit.GranularityYear, cd(t, 2017, time.February, 28)},
		{"one quarter to a day", cd(t, 2017, time.May, 10), 1, timeunit.GranularityQuarter, cd(t, 2017, time.August, 10)},
		{"own granularity", gq(t, 2017, timeunit.Q4), 1, timeunit.GranularityQuarter, gq(t, 2018, timeunit.Q1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timeunit.PlusAt(tt.unit, tt.n, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPlusAt_OwnGranularityMatchesPlus(t *testing.T) {
	for _, u := range boundedSamples(t) {
		for _, n := range []int{-3, 0, 5} {
			viaPlus, err := timeunit.Plus(u, n)
			require.NoError(t, err)
			viaPlusAt, err := timeunit.PlusAt(u, n, u.Granularity())
			require.NoError(t, err)
			assert.Equal(t, viaPlus, viaPlusAt, "%s by %d", u, n)
		}
	}
}

func TestPlusAt_Rejections(t *testing.T) {
	// GIVEN: Granularities that cannot be added to the unit
	// THEN: Finer granularities are unsupported, meaningless ones invalid

	_, err := timeunit.PlusAt(cq(t, 2017, timeunit.Q2), 1, timeunit.GranularityDay)
	assert.ErrorIs(t, err, timeunit.ErrUnsupported)

	_, err = timeunit.PlusAt(cy(t, 2017), 1, timeunit.GranularityMonth)
	assert.ErrorIs(t, err, timeunit.ErrUnsupported)

	_, err = timeunit.PlusAt(cm(t, 2017, time.May), 1, timeunit.GranularityInvalid)
	assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)

	_, err = timeunit.PlusAt(cm(t, 2017, time.May), 1, timeunit.GranularityUnbounded)
	assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)

	_, err = timeunit.PlusAt(timeunit.FiscalUnbounded{}, 1, timeunit.GranularityYear)
	assert.ErrorIs(t, err, timeunit.ErrUnsupported)
}

func TestPlusAt_YearMethods(t *testing.T) {
	// GIVEN: Years, whose only permitted granularity is their own
	c, err := cy(t, 2017).PlusAt(3, timeunit.GranularityYear)
	require.NoError(t, err)
	assert.Equal(t, cy(t, 2020), c)

	f, err := fy(t, 2018).PlusAt(-1, timeunit.GranularityYear)
	require.NoError(t, err)
	assert.Equal(t, fy(t, 2017), f)

	g, err := gy(t, 2001).PlusAt(0, timeunit.GranularityYear)
	require.NoError(t, err)
	assert.Equal(t, gy(t, 2001), g)

	// THEN: Anything finer is unsupported
	_, err = gy(t, 2001).PlusAt(1, timeunit.GranularityQuarter)
	assert.ErrorIs(t, err, timeunit.ErrUnsupported)
	_, err = cy(t, 9999).PlusAt(1, timeunit.GranularityYear)
	assert.ErrorIs(t, err, timeunit.ErrOutOfRange)
}

func TestPlusAt_HugeShiftIsOutOfRange(t *testing.T) {
	// GIVEN: Shifts large enough to overflow when scaled to months
	const huge = 1537228672809129302

	units := []timeunit.UnitOfTime{
		cm(t, 2017, time.January),
		cq(t, 2017, timeunit.Q1),
		cd(t, 2017, time.January, 31),
	}
	for _, u := range units {
		for _, n := range []int{huge, -huge, math.MaxInt, math.MinInt} {
			// THEN: The result is rejected rather than wrapped into range
			_, err := timeunit.PlusAt(u, n, timeunit.GranularityYear)
			assert.ErrorIs(t, err, timeunit.ErrOutOfRange, "%s by %d years", u, n)
		}
	}

	_, err := timeunit.PlusAt(cd(t, 2017, time.January, 31), huge, timeunit.GranularityQuarter)
	assert.ErrorIs(t, err, timeunit.ErrOutOfRange)

	// A shift spanning the whole range from year 1 still lands
	got, err := timeunit.PlusAt(cm(t, 1, time.January), 9998, timeunit.GranularityYear)
	require.NoError(t, err)
	assert.Equal(t, cm(t, 9999, time.January), got)
}

// =============================================================================
// QUARTER CONVERSION
// =============================================================================

func TestToFiscalQuarter_FiscalYearStartingInOctober(t *testing.T) {
	// GIVEN: A fiscal year whose Q1 is calendar Q4
	// THEN: The fiscal year is named after the calendar year it ends in

	got, err := timeunit.ToFiscalQuarter(cq(t, 2017, timeunit.Q4), timeunit.Q4)
	require.NoError(t, err)
	assert.Equal(t, fq(t, 2018, timeunit.Q1), got)

	got, err = timeunit.ToFiscalQuarter(cq(t, 2018, timeunit.Q3), timeunit.Q4)
	require.NoError(t, err)
	assert.Equal(t, fq(t, 2018, timeunit.Q4), got)

	back, err := timeunit.ToCalendarQuarter(fq(t, 2018, timeunit.Q1), timeunit.Q4)
	require.NoError(t, err)
	assert.Equal(t, cq(t, 2017, timeunit.Q4), back)
}

func TestToFiscalQuarter_CalendarAlignedYear(t *testing.T) {
	got, err := timeunit.ToFiscalQuarter(cq(t, 2017, timeunit.Q3), timeunit.Q1)
	require.NoError(t, err)
	assert.Equal(t, fq(t, 2017, timeunit.Q3), got)
}

func TestQuarterConversion_RoundTrips(t *testing.T) {
	for _, first := range []timeunit.QuarterNumber{timeunit.Q1, timeunit.Q2, timeunit.Q3, timeunit.Q4} {
		for _, q := range []timeunit.QuarterNumber{timeunit.Q1, timeunit.Q2, timeunit.Q3, timeunit.Q4} {
			t.Run(fmt.Sprintf("first=%s/%s", first, q), func(t *testing.T) {
				calendar := cq(t, 2017, q)
				fiscal, err := timeunit.ToFiscalQuarter(calendar, first)
				require.NoError(t, err)
				back, err := timeunit.ToCalendarQuarter(fiscal, first)
				require.NoError(t, err)
				assert.Equal(t, calendar, back)
			})
		}
	}
}

func TestQuarterConversion_InvalidFirstQuarter(t *testing.T) {
	_, err := timeunit.ToFiscalQuarter(cq(t, 2017, timeunit.Q1), timeunit.QuarterInvalid)
	assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)

	_, err = timeunit.ToCalendarQuarter(fq(t, 2017, timeunit.Q1), 5)
	assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)
}

// =============================================================================
// CALENDAR DAY PROJECTION
// =============================================================================

func TestFirstAndLastCalendarDay(t *testing.T) {
	tests := []struct {
		unit        timeunit.CalendarUnitOfTime
		first, last timeunit.CalendarDay
		days        int
	}{
		{cd(t, 2017, time.May, 10), cd(t, 2017, time.May, 10), cd(t, 2017, time.May, 10), 1},
		{cm(t, 2016, time.February), cd(t, 2016, time.February, 1), cd(t, 2016, time.February, 29), 29},
		{cq(t, 2017, timeunit.Q1), cd(t, 2017, time.January, 1), cd(t, 2017, time.March, 31), 90},
		{cq(t, 2017, timeunit.Q2), cd(t, 2017, time.April, 1), cd(t, 2017, time.June, 30), 91},
		{cy(t, 2016), cd(t, 2016, time.January, 1), cd(t, 2016, time.December, 31), 366},
	}
	for _, tt := range tests {
		t.Run(tt.unit.String(), func(t *testing.T) {
			first, err := timeunit.FirstCalendarDay(tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.first, first)

			last, err := timeunit.LastCalendarDay(tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.last, last)

			days, err := timeunit.DaysIn(tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.days, days)
		})
	}
}

func TestCalendarDayProjection_UnboundedFails(t *testing.T) {
	_, err := timeunit.FirstCalendarDay(timeunit.CalendarUnbounded{})
	assert.ErrorIs(t, err, timeunit.ErrUnsupported)

	_, err = timeunit.LastCalendarDay(timeunit.CalendarUnbounded{})
	assert.ErrorIs(t, err, timeunit.ErrUnsupported)
}

// =============================================================================
// UNITS TO DATE
// =============================================================================

func TestUnitsToDate(t *testing.T) {
	months, err := timeunit.UnitsToDate(cm(t, 2016, time.April))
	require.NoError(t, err)
	assert.Equal(t, []timeunit.CalendarMonth{
		cm(t, 2016, time.January), cm(t, 2016, time.February),
		cm(t, 2016, time.March), cm(t, 2016, time.April),
	}, months)

	quarters, err := timeunit.UnitsToDate(fq(t, 2017, timeunit.Q3))
	require.NoError(t, err)
	assert.Equal(t, []timeunit.FiscalQuarter{
		fq(t, 2017, timeunit.Q1), fq(t, 2017, timeunit.Q2), fq(t, 2017, timeunit.Q3),
	}, quarters)

	days, err := timeunit.UnitsToDate(cd(t, 2016, time.March, 1))
	require.NoError(t, err)
	assert.Len(t, days, 31+29+1)
	assert.Equal(t, cd(t, 2016, time.January, 1), days[0])

	years, err := timeunit.UnitsToDate(gy(t, 2017))
	require.NoError(t, err)
	assert.Equal(t, []timeunit.GenericYear{gy(t, 2017)}, years)
}

func TestUnitsToDate_UnboundedFails(t *testing.T) {
	_, err := timeunit.UnitsToDate(timeunit.GenericUnbounded{})
	assert.True(t, errors.Is(err, timeunit.ErrUnsupported))
}
