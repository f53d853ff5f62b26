/*
codec.go - Textual forms of a unit of time

PURPOSE:
  Two symmetric encodings. Encoding always succeeds for a valid unit;
  decoding validates the grammar and then builds the concrete variant.

SORTABLE FORM:
  <kind><granularity>-<YYYY>[-<field>...]
    cy-2017          year
    fm-2017-05       month (01-12)
    gq-2017-3        quarter (1-4, not padded)
    cd-2001-01-10    day (Calendar only)
  Fixed-width fields make tokens of one variant sort chronologically as
  plain strings. Unbounded units have no sortable form.

PLAIN FORM (String):
  <kind>-<YYYY>[-<field>...] with quarters written as Q<digit>
    c-2017           year
    f-2017-05        month
    c-2017-Q3        quarter
    c-2017-05-10     day
    g-unbounded      unbounded
  This is the token used inside the plain reporting period form.

DECODING ORDER:
  1. blank input            -> ErrBlankInput
  2. unknown prefix         -> ErrUnrecognizedFormat
  3. field count            -> ErrWrongTokenCount
  4. field width/range      -> ErrMalformedField
  5. not assignable to T    -> ErrIncompatibleType
*/
package timeunit

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const unboundedToken = "unbounded"

// =============================================================================
// ENCODING
// =============================================================================

// FormatSortable renders the sortable token of a bounded unit.
func FormatSortable(u UnitOfTime) (string, error) {
	if u == nil {
		return "", fmt.Errorf("%w: nil unit of time", ErrInvalidArgument)
	}
	if !IsBounded(u) {
		return "", fmt.Errorf("%w: %s has no sortable form", ErrUnsupported, variantName(u))
	}
	return formatSortable(u), nil
}

func formatSortable(u UnitOfTime) string {
	prefix := string([]byte{u.Kind().letter(), u.Granularity().letter()})
	return prefix + "-" + formatFields(u, false)
}

func formatPlain(u UnitOfTime) string {
	if !IsBounded(u) {
		return string(u.Kind().letter()) + "-" + unboundedToken
	}
	return string(u.Kind().letter()) + "-" + formatFields(u, true)
}

// formatFields renders the date fields after the prefix. Plain quarters
// carry a Q marker; sortable ones are a bare digit.
func formatFields(u UnitOfTime, quarterMarker bool) string {
	switch v := u.(type) {
	case CalendarDay:
		return fmt.Sprintf("%04d-%02d-%02d", v.year, int(v.month), v.day)
	case CalendarMonth:
		return fmt.Sprintf("%04d-%02d", v.year, v.month)
	case FiscalMonth:
		return fmt.Sprintf("%04d-%02d", v.year, v.month)
	case GenericMonth:
		return fmt.Sprintf("%04d-%02d", v.year, v.month)
	case CalendarQuarter:
		return formatQuarter(v.quarterFields, quarterMarker)
	case FiscalQuarter:
		return formatQuarter(v.quarterFields, quarterMarker)
	case GenericQuarter:
		return formatQuarter(v.quarterFields, quarterMarker)
	case CalendarYear:
		return fmt.Sprintf("%04d", v.year)
	case FiscalYear:
		return fmt.Sprintf("%04d", v.year)
	case GenericYear:
		return fmt.Sprintf("%04d", v.year)
	default:
		return unboundedToken
	}
}

func formatQuarter(f quarterFields, marker bool) string {
	if marker {
		return fmt.Sprintf("%04d-Q%d", f.year, f.quarter)
	}
	return fmt.Sprintf("%04d-%d", f.year, f.quarter)
}

// =============================================================================
// DECODING
// =============================================================================

// ParseSortable decodes a sortable token into T. T may be a concrete variant
// such as CalendarDay or a grouping such as CalendarUnitOfTime.
func ParseSortable[T UnitOfTime](s string) (T, error) {
	var zero T
	u, err := parseSortable(s)
	if err != nil {
		return zero, err
	}
	return assignTo[T](s, u)
}

// ParseUnitString decodes a plain token (the String form) into T.
func ParseUnitString[T UnitOfTime](s string) (T, error) {
	var zero T
	u, err := parsePlain(s)
	if err != nil {
		return zero, err
	}
	return assignTo[T](s, u)
}

func assignTo[T UnitOfTime](input string, u UnitOfTime) (T, error) {
	t, ok := u.(T)
	if !ok {
		var zero T
		return zero, parseErr(input, ErrIncompatibleType, "decoded %s cannot be assigned to %s", variantName(u), typeName[T]())
	}
	return t, nil
}

// typeName names T without reflection; T may be an interface type.
func typeName[T any]() string {
	return strings.TrimPrefix(fmt.Sprintf("%T", (*T)(nil)), "*")
}

func parseSortable(s string) (UnitOfTime, error) {
	if strings.TrimSpace(s) == "" {
		return nil, &ParseError{Input: s, Err: ErrBlankInput}
	}
	tokens := strings.Split(s, "-")
	prefix := tokens[0]
	if len(prefix) != 2 {
		return nil, parseErr(s, ErrUnrecognizedFormat, "expected a two letter kind and granularity prefix")
	}
	kind, granularity := kindFromLetter(prefix[0]), granularityFromLetter(prefix[1])
	if kind == KindInvalid || granularity == GranularityInvalid ||
		(granularity == GranularityDay && kind != KindCalendar) {
		return nil, parseErr(s, ErrUnrecognizedFormat, "unknown prefix %q", prefix)
	}
	return buildUnit(s, kind, granularity, tokens[1:], false)
}

func parsePlain(s string) (UnitOfTime, error) {
	if strings.TrimSpace(s) == "" {
		return nil, &ParseError{Input: s, Err: ErrBlankInput}
	}
	tokens := strings.Split(s, "-")
	if len(tokens[0]) != 1 || kindFromLetter(tokens[0][0]) == KindInvalid {
		return nil, parseErr(s, ErrUnrecognizedFormat, "expected a kind letter c, f or g")
	}
	kind := kindFromLetter(tokens[0][0])
	fields := tokens[1:]

	var granularity Granularity
	switch {
	case len(fields) == 1 && fields[0] == unboundedToken:
		return unboundedOf(kind), nil
	case len(fields) == 1:
		granularity = GranularityYear
	case len(fields) == 2 && strings.HasPrefix(fields[1], "Q"):
		granularity = GranularityQuarter
	case len(fields) == 2:
		granularity = GranularityMonth
	case len(fields) == 3:
		if kind != KindCalendar {
			return nil, parseErr(s, ErrUnrecognizedFormat, "only calendar units have days")
		}
		granularity = GranularityDay
	default:
		return nil, parseErr(s, ErrWrongTokenCount, "got %d tokens", len(tokens))
	}
	return buildUnit(s, kind, granularity, fields, true)
}

// buildUnit validates the date fields for the detected variant and
// constructs it.
func buildUnit(input string, kind Kind, granularity Granularity, fields []string, quarterMarker bool) (UnitOfTime, error) {
	want := map[Granularity]int{
		GranularityYear:    1,
		GranularityQuarter: 2,
		GranularityMonth:   2,
		GranularityDay:     3,
	}[granularity]
	if len(fields) != want {
		return nil, parseErr(input, ErrWrongTokenCount, "%s-%s expects %d tokens, got %d",
			kind, granularity, want+1, len(fields)+1)
	}

	year, err := fixedDigits(input, "year", fields[0], 4, MinYear, MaxYear)
	if err != nil {
		return nil, err
	}

	switch granularity {
	case GranularityYear:
		return yearOf(kind, yearFields{year: year}), nil

	case GranularityQuarter:
		field := fields[1]
		if quarterMarker {
			if !strings.HasPrefix(field, "Q") {
				return nil, parseErr(input, ErrMalformedField, "quarter %q must be Q1-Q4", field)
			}
			field = field[1:]
		}
		q, err := fixedDigits(input, "quarter", field, 1, 1, 4)
		if err != nil {
			return nil, err
		}
		return quarterOf(kind, quarterFields{year: year, quarter: QuarterNumber(q)}), nil

	case GranularityMonth:
		m, err := fixedDigits(input, "month", fields[1], 2, 1, 12)
		if err != nil {
			return nil, err
		}
		return monthOf(kind, monthFields{year: year, month: m}), nil

	default:
		m, err := fixedDigits(input, "month", fields[1], 2, 1, 12)
		if err != nil {
			return nil, err
		}
		d, err := fixedDigits(input, "day", fields[2], 2, 1, 31)
		if err != nil {
			return nil, err
		}
		day, err := NewCalendarDay(year, time.Month(m), d)
		if err != nil {
			return nil, &ParseError{Input: input, Reason: err.Error(), Err: ErrMalformedField}
		}
		return day, nil
	}
}

// fixedDigits parses a field of exactly width ASCII digits within [lo, hi].
func fixedDigits(input, name, field string, width, lo, hi int) (int, error) {
	if len(field) != width {
		return 0, parseErr(input, ErrMalformedField, "%s %q must be exactly %d digits", name, field, width)
	}
	for i := 0; i < len(field); i++ {
		if field[i] < '0' || field[i] > '9' {
			return 0, parseErr(input, ErrMalformedField, "%s %q must be digits", name, field)
		}
	}
	n, _ := strconv.Atoi(field)
	if n < lo || n > hi {
		return 0, parseErr(input, ErrMalformedField, "%s %d must be between %d and %d", name, n, lo, hi)
	}
	return n, nil
}

// =============================================================================
// VARIANT DISPATCH
// =============================================================================

func yearOf(kind Kind, f yearFields) UnitOfTime {
	switch kind {
	case KindFiscal:
		return FiscalYear{f}
	case KindGeneric:
		return GenericYear{f}
	default:
		return CalendarYear{f}
	}
}

func quarterOf(kind Kind, f quarterFields) UnitOfTime {
	switch kind {
	case KindFiscal:
		return FiscalQuarter{f}
	case KindGeneric:
		return GenericQuarter{f}
	default:
		return CalendarQuarter{f}
	}
}

func monthOf(kind Kind, f monthFields) UnitOfTime {
	switch kind {
	case KindFiscal:
		return FiscalMonth{f}
	case KindGeneric:
		return GenericMonth{f}
	default:
		return CalendarMonth{f}
	}
}

func unboundedOf(kind Kind) UnitOfTime {
	switch kind {
	case KindFiscal:
		return FiscalUnbounded{}
	case KindGeneric:
		return GenericUnbounded{}
	default:
		return CalendarUnbounded{}
	}
}
