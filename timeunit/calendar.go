package timeunit

import (
	"cmp"
	"fmt"
	"time"
)

// =============================================================================
// CALENDAR VARIANTS - Gregorian days, months, quarters and years
// =============================================================================

const secondsPerDay = 24 * 60 * 60

var (
	minDayOrdinal = CalendarDay{year: MinYear, month: time.January, day: 1}.ordinal()
	maxDayOrdinal = CalendarDay{year: MaxYear, month: time.December, day: 31}.ordinal()
)

// CalendarDay is a single Gregorian day. It is the only Day variant.
type CalendarDay struct {
	year  int
	month time.Month
	day   int
}

// NewCalendarDay validates the day against its year and month, so
// February 29 only exists in leap years.
func NewCalendarDay(year int, month time.Month, day int) (CalendarDay, error) {
	if err := checkYear(year); err != nil {
		return CalendarDay{}, err
	}
	if err := checkMonth(int(month)); err != nil {
		return CalendarDay{}, err
	}
	if err := checkDay(year, month, day); err != nil {
		return CalendarDay{}, err
	}
	return CalendarDay{year: year, month: month, day: day}, nil
}

// CalendarDayOf returns the day containing t, read in t's location.
func CalendarDayOf(t time.Time) (CalendarDay, error) {
	return NewCalendarDay(t.Year(), t.Month(), t.Day())
}

func (d CalendarDay) Year() int              { return d.year }
func (d CalendarDay) Month() time.Month      { return d.month }
func (d CalendarDay) Day() int               { return d.day }
func (CalendarDay) Kind() Kind               { return KindCalendar }
func (CalendarDay) Granularity() Granularity { return GranularityDay }
func (d CalendarDay) String() string         { return formatPlain(d) }
func (CalendarDay) isUnitOfTime()            {}
func (CalendarDay) isCalendar()              {}

// Time returns midnight UTC at the start of the day.
func (d CalendarDay) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d CalendarDay) ordinal() int {
	return int(d.Time().Unix() / secondsPerDay)
}

func (CalendarDay) atOrdinal(n int) (UnitOfTime, error) {
	if n < minDayOrdinal || n > maxDayOrdinal {
		return nil, fmt.Errorf("%w: day ordinal %d outside %04d-%02d-%02d..%04d-%02d-%02d",
			ErrOutOfRange, n, MinYear, 1, 1, MaxYear, 12, 31)
	}
	t := time.Unix(int64(n)*secondsPerDay, 0).UTC()
	return CalendarDay{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

func (d CalendarDay) Plus(n int) (CalendarDay, error) { return Plus(d, n) }
func (d CalendarDay) PlusAt(n int, g Granularity) (CalendarDay, error) {
	return PlusAt(d, n, g)
}
func (d CalendarDay) Compare(o CalendarDay) int { return cmp.Compare(d.ordinal(), o.ordinal()) }
func (d CalendarDay) Before(o CalendarDay) bool { return d.Compare(o) < 0 }
func (d CalendarDay) Equal(o CalendarDay) bool  { return d == o }
func (d CalendarDay) After(o CalendarDay) bool  { return d.Compare(o) > 0 }
func (d CalendarDay) SortableString() string    { return formatSortable(d) }

// CalendarMonth is a Gregorian month.
type CalendarMonth struct {
	monthFields
}

func NewCalendarMonth(year int, month time.Month) (CalendarMonth, error) {
	if err := checkYear(year); err != nil {
		return CalendarMonth{}, err
	}
	if err := checkMonth(int(month)); err != nil {
		return CalendarMonth{}, err
	}
	return CalendarMonth{monthFields{year: year, month: int(month)}}, nil
}

func (m CalendarMonth) Month() time.Month      { return time.Month(m.month) }
func (CalendarMonth) Kind() Kind               { return KindCalendar }
func (CalendarMonth) Granularity() Granularity { return GranularityMonth }
func (m CalendarMonth) String() string         { return formatPlain(m) }
func (CalendarMonth) isUnitOfTime()            {}
func (CalendarMonth) isCalendar()              {}

func (CalendarMonth) atOrdinal(n int) (UnitOfTime, error) {
	f, err := monthAt(n)
	if err != nil {
		return nil, err
	}
	return CalendarMonth{f}, nil
}

func (m CalendarMonth) Plus(n int) (CalendarMonth, error) { return Plus(m, n) }
func (m CalendarMonth) PlusAt(n int, g Granularity) (CalendarMonth, error) {
	return PlusAt(m, n, g)
}
func (m CalendarMonth) Compare(o CalendarMonth) int { return cmp.Compare(m.ordinal(), o.ordinal()) }
func (m CalendarMonth) Before(o CalendarMonth) bool { return m.Compare(o) < 0 }
func (m CalendarMonth) Equal(o CalendarMonth) bool  { return m == o }
func (m CalendarMonth) After(o CalendarMonth) bool  { return m.Compare(o) > 0 }
func (m CalendarMonth) SortableString() string      { return formatSortable(m) }

// CalendarQuarter is a Gregorian quarter: Q1 is January through March.
type CalendarQuarter struct {
	quarterFields
}

func NewCalendarQuarter(year int, quarter QuarterNumber) (CalendarQuarter, error) {
	if err := checkYear(year); err != nil {
		return CalendarQuarter{}, err
	}
	if err := checkQuarter(quarter); err != nil {
		return CalendarQuarter{}, err
	}
	return CalendarQuarter{quarterFields{year: year, quarter: quarter}}, nil
}

func (CalendarQuarter) Kind() Kind               { return KindCalendar }
func (CalendarQuarter) Granularity() Granularity { return GranularityQuarter }
func (q CalendarQuarter) String() string         { return formatPlain(q) }
func (CalendarQuarter) isUnitOfTime()            {}
func (CalendarQuarter) isCalendar()              {}

func (CalendarQuarter) atOrdinal(n int) (UnitOfTime, error) {
	f, err := quarterAt(n)
	if err != nil {
		return nil, err
	}
	return CalendarQuarter{f}, nil
}

func (q CalendarQuarter) Plus(n int) (CalendarQuarter, error) { return Plus(q, n) }
func (q CalendarQuarter) PlusAt(n int, g Granularity) (CalendarQuarter, error) {
	return PlusAt(q, n, g)
}
func (q CalendarQuarter) Compare(o CalendarQuarter) int { return cmp.Compare(q.ordinal(), o.ordinal()) }
func (q CalendarQuarter) Before(o CalendarQuarter) bool { return q.Compare(o) < 0 }
func (q CalendarQuarter) Equal(o CalendarQuarter) bool  { return q == o }
func (q CalendarQuarter) After(o CalendarQuarter) bool  { return q.Compare(o) > 0 }
func (q CalendarQuarter) SortableString() string        { return formatSortable(q) }

// CalendarYear is a Gregorian year.
type CalendarYear struct {
	yearFields
}

func NewCalendarYear(year int) (CalendarYear, error) {
	if err := checkYear(year); err != nil {
		return CalendarYear{}, err
	}
	return CalendarYear{yearFields{year: year}}, nil
}

func (CalendarYear) Kind() Kind               { return KindCalendar }
func (CalendarYear) Granularity() Granularity { return GranularityYear }
func (y CalendarYear) String() string         { return formatPlain(y) }
func (CalendarYear) isUnitOfTime()            {}
func (CalendarYear) isCalendar()              {}

func (CalendarYear) atOrdinal(n int) (UnitOfTime, error) {
	f, err := yearAt(n)
	if err != nil {
		return nil, err
	}
	return CalendarYear{f}, nil
}

func (y CalendarYear) Plus(n int) (CalendarYear, error) { return Plus(y, n) }
func (y CalendarYear) PlusAt(n int, g Granularity) (CalendarYear, error) {
	return PlusAt(y, n, g)
}
func (y CalendarYear) Compare(o CalendarYear) int { return cmp.Compare(y.ordinal(), o.ordinal()) }
func (y CalendarYear) Before(o CalendarYear) bool { return y.Compare(o) < 0 }
func (y CalendarYear) Equal(o CalendarYear) bool  { return y == o }
func (y CalendarYear) After(o CalendarYear) bool  { return y.Compare(o) > 0 }
func (y CalendarYear) SortableString() string     { return formatSortable(y) }

// CalendarUnbounded is the open end of a Calendar reporting period.
type CalendarUnbounded struct{}

func (CalendarUnbounded) Kind() Kind               { return KindCalendar }
func (CalendarUnbounded) Granularity() Granularity { return GranularityUnbounded }
func (u CalendarUnbounded) String() string         { return formatPlain(u) }
func (CalendarUnbounded) isUnitOfTime()            {}
func (CalendarUnbounded) isCalendar()              {}
