/*
Package timeunit models the units of time used in financial reporting.

PURPOSE:
  A unit of time is a single day, month, quarter or year interpreted under
  one of three calendars: Calendar (Gregorian), Fiscal and Generic. Each kind
  also has an Unbounded unit that marks an open end of a reporting period.
  On top of the units sit reporting periods (an ordered start/end pair) and
  the algebra over them: containment, overlap, enumeration, permutations.

KEY CONCEPTS IN THIS FILE (unit.go):
  - UnitOfTime: the sealed interface every variant implements
  - CalendarUnitOfTime / FiscalUnitOfTime / GenericUnitOfTime: kind groupings
  - QuarterNumber, MonthNumber: field types shared by the variants

VARIANTS:
  Calendar: CalendarDay, CalendarMonth, CalendarQuarter, CalendarYear, CalendarUnbounded
  Fiscal:   FiscalMonth, FiscalQuarter, FiscalYear, FiscalUnbounded
  Generic:  GenericMonth, GenericQuarter, GenericYear, GenericUnbounded

  Exactly one concrete type exists per (Kind, Granularity) pair, so two units
  are the same variant iff their Kind and Granularity agree.

DESIGN PRINCIPLES:
  1. Immutability: fields are unexported, values are compared with ==
  2. Closed family: interfaces carry unexported marker methods
  3. No coercion: comparing or combining different variants is an error
  4. Purity: nothing here blocks, logs or keeps state

USAGE:
  q, _ := timeunit.NewCalendarQuarter(2016, timeunit.Q2)
  next, _ := q.Plus(1)                       // 2016-Q3
  s := q.SortableString()                    // "cq-2016-2"
  d, _ := timeunit.ParseSortable[timeunit.CalendarDay]("cd-2001-01-10")

SEE ALSO:
  - arithmetic.go: Plus, PlusAt, quarter conversion, calendar day projection
  - codec.go: Sortable and plain string forms
  - period.go: Reporting periods
  - algebra.go: Containment, overlap, enumeration, permutations
*/
package timeunit

import (
	"fmt"
	"time"
)

const (
	MinYear = 1
	MaxYear = 9999
)

// =============================================================================
// UNIT OF TIME - Sealed interface over all variants
// =============================================================================

// UnitOfTime is implemented by every variant in this package and nothing else.
type UnitOfTime interface {
	Kind() Kind
	Granularity() Granularity

	// String renders the plain token, e.g. "c-2017-Q3" or "f-unbounded".
	String() string

	isUnitOfTime()
}

// CalendarUnitOfTime groups the Calendar variants, CalendarUnbounded included.
type CalendarUnitOfTime interface {
	UnitOfTime
	isCalendar()
}

// FiscalUnitOfTime groups the Fiscal variants, FiscalUnbounded included.
type FiscalUnitOfTime interface {
	UnitOfTime
	isFiscal()
}

// GenericUnitOfTime groups the Generic variants, GenericUnbounded included.
type GenericUnitOfTime interface {
	UnitOfTime
	isGeneric()
}

// stepper is implemented by every bounded variant. Ordinals are dense per
// variant: consecutive units have consecutive ordinals.
type stepper interface {
	UnitOfTime
	ordinal() int
	atOrdinal(n int) (UnitOfTime, error)
}

// IsBounded reports whether u is a non-nil, non-Unbounded unit.
func IsBounded(u UnitOfTime) bool {
	return u != nil && u.Granularity() != GranularityUnbounded
}

// sameVariant reports whether a and b are the same concrete type.
func sameVariant(a, b UnitOfTime) bool {
	return a.Kind() == b.Kind() && a.Granularity() == b.Granularity()
}

func variantName(u UnitOfTime) string {
	if u == nil {
		return "<nil>"
	}
	return u.Kind().String() + "-" + u.Granularity().String()
}

// =============================================================================
// FIELD TYPES
// =============================================================================

// QuarterNumber is a quarter within a year.
type QuarterNumber int

const (
	QuarterInvalid QuarterNumber = iota
	Q1
	Q2
	Q3
	Q4
)

func (q QuarterNumber) String() string {
	if q < Q1 || q > Q4 {
		return fmt.Sprintf("Q?(%d)", int(q))
	}
	return fmt.Sprintf("Q%d", int(q))
}

// MonthNumber is a month position (1-12) within a Fiscal or Generic year.
// Calendar months use time.Month instead.
type MonthNumber int

// =============================================================================
// SHARED FIELDS - Embedded by the concrete variants
// =============================================================================

type yearFields struct {
	year int
}

func (f yearFields) Year() int    { return f.year }
func (f yearFields) ordinal() int { return f.year }

func yearAt(n int) (yearFields, error) {
	if err := yearInRange(n); err != nil {
		return yearFields{}, err
	}
	return yearFields{year: n}, nil
}

type quarterFields struct {
	year    int
	quarter QuarterNumber
}

func (f quarterFields) Year() int              { return f.year }
func (f quarterFields) Quarter() QuarterNumber { return f.quarter }
func (f quarterFields) ordinal() int           { return f.year*4 + int(f.quarter) - 1 }

func quarterAt(n int) (quarterFields, error) {
	year, rem := floorDivMod(n, 4)
	if err := yearInRange(year); err != nil {
		return quarterFields{}, err
	}
	return quarterFields{year: year, quarter: QuarterNumber(rem + 1)}, nil
}

type monthFields struct {
	year  int
	month int
}

func (f monthFields) Year() int    { return f.year }
func (f monthFields) ordinal() int { return f.year*12 + f.month - 1 }

func monthAt(n int) (monthFields, error) {
	year, rem := floorDivMod(n, 12)
	if err := yearInRange(year); err != nil {
		return monthFields{}, err
	}
	return monthFields{year: year, month: rem + 1}, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

func checkYear(year int) error {
	if year < MinYear || year > MaxYear {
		return &FieldError{Field: "year", Value: year, Limit: "between 1 and 9999"}
	}
	return nil
}

func checkMonth(month int) error {
	if month < 1 || month > 12 {
		return &FieldError{Field: "month", Value: month, Limit: "between 1 and 12"}
	}
	return nil
}

func checkQuarter(q QuarterNumber) error {
	if q < Q1 || q > Q4 {
		return &FieldError{Field: "quarter", Value: int(q), Limit: "between 1 and 4"}
	}
	return nil
}

func checkDay(year int, month time.Month, day int) error {
	last := daysIn(year, month)
	if day < 1 || day > last {
		return &FieldError{Field: "day", Value: day, Limit: fmt.Sprintf("between 1 and %d for %04d-%02d", last, year, int(month))}
	}
	return nil
}

// yearInRange guards arithmetic results, which are range errors rather than
// malformed input.
func yearInRange(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d outside %d-%d", ErrOutOfRange, year, MinYear, MaxYear)
	}
	return nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDivMod(n, d int) (int, int) {
	q, r := n/d, n%d
	if r < 0 {
		q--
		r += d
	}
	return q, r
}
