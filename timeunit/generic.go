package timeunit

import "cmp"

// =============================================================================
// GENERIC VARIANTS - periods with no calendar attached
// =============================================================================

// GenericMonth is a month position within a Generic year.
type GenericMonth struct {
	monthFields
}

func NewGenericMonth(year int, month MonthNumber) (GenericMonth, error) {
	if err := checkYear(year); err != nil {
		return GenericMonth{}, err
	}
	if err := checkMonth(int(month)); err != nil {
		return GenericMonth{}, err
	}
	return GenericMonth{monthFields{year: year, month: int(month)}}, nil
}

func (m GenericMonth) Month() MonthNumber     { return MonthNumber(m.month) }
func (GenericMonth) Kind() Kind               { return KindGeneric }
func (GenericMonth) Granularity() Granularity { return GranularityMonth }
func (m GenericMonth) String() string         { return formatPlain(m) }
func (GenericMonth) isUnitOfTime()            {}
func (GenericMonth) isGeneric()               {}

func (GenericMonth) atOrdinal(n int) (UnitOfTime, error) {
	f, err := monthAt(n)
	if err != nil {
		return nil, err
	}
	return GenericMonth{f}, nil
}

func (m GenericMonth) Plus(n int) (GenericMonth, error) { return Plus(m, n) }
func (m GenericMonth) PlusAt(n int, g Granularity) (GenericMonth, error) {
	return PlusAt(m, n, g)
}
func (m GenericMonth) Compare(o GenericMonth) int { return cmp.Compare(m.ordinal(), o.ordinal()) }
func (m GenericMonth) Before(o GenericMonth) bool { return m.Compare(o) < 0 }
func (m GenericMonth) Equal(o GenericMonth) bool  { return m == o }
func (m GenericMonth) After(o GenericMonth) bool  { return m.Compare(o) > 0 }
func (m GenericMonth) SortableString() string     { return formatSortable(m) }

// GenericQuarter is a quarter of a Generic year.
type GenericQuarter struct {
	quarterFields
}

func NewGenericQuarter(year int, quarter QuarterNumber) (GenericQuarter, error) {
	if err := checkYear(year); err != nil {
		return GenericQuarter{}, err
	}
	if err := checkQuarter(quarter); err != nil {
		return GenericQuarter{}, err
	}
	return GenericQuarter{quarterFields{year: year, quarter: quarter}}, nil
}

func (GenericQuarter) Kind() Kind               { return KindGeneric }
func (GenericQuarter) Granularity() Granularity { return GranularityQuarter }
func (q GenericQuarter) String() string         { return formatPlain(q) }
func (GenericQuarter) isUnitOfTime()            {}
func (GenericQuarter) isGeneric()               {}

func (GenericQuarter) atOrdinal(n int) (UnitOfTime, error) {
	f, err := quarterAt(n)
	if err != nil {
		return nil, err
	}
	return GenericQuarter{f}, nil
}

func (q GenericQuarter) Plus(n int) (GenericQuarter, error) { return Plus(q, n) }
func (q GenericQuarter) PlusAt(n int, g Granularity) (GenericQuarter, error) {
	return PlusAt(q, n, g)
}
func (q GenericQuarter) Compare(o GenericQuarter) int { return cmp.Compare(q.ordinal(), o.ordinal()) }
func (q GenericQuarter) Before(o GenericQuarter) bool { return q.Compare(o) < 0 }
func (q GenericQuarter) Equal(o GenericQuarter) bool  { return q == o }
func (q GenericQuarter) After(o GenericQuarter) bool  { return q.Compare(o) > 0 }
func (q GenericQuarter) SortableString() string       { return formatSortable(q) }

// GenericYear is a Generic year.
type GenericYear struct {
	yearFields
}

func NewGenericYear(year int) (GenericYear, error) {
	if err := checkYear(year); err != nil {
		return GenericYear{}, err
	}
	return GenericYear{yearFields{year: year}}, nil
}

func (GenericYear) Kind() Kind               { return KindGeneric }
func (GenericYear) Granularity() Granularity { return GranularityYear }
func (y GenericYear) String() string         { return formatPlain(y) }
func (GenericYear) isUnitOfTime()            {}
func (GenericYear) isGeneric()               {}

func (GenericYear) atOrdinal(n int) (UnitOfTime, error) {
	f, err := yearAt(n)
	if err != nil {
		return nil, err
	}
	return GenericYear{f}, nil
}

func (y GenericYear) Plus(n int) (GenericYear, error) { return Plus(y, n) }
func (y GenericYear) PlusAt(n int, g Granularity) (GenericYear, error) {
	return PlusAt(y, n, g)
}
func (y GenericYear) Compare(o GenericYear) int { return cmp.Compare(y.ordinal(), o.ordinal()) }
func (y GenericYear) Before(o GenericYear) bool { return y.Compare(o) < 0 }
func (y GenericYear) Equal(o GenericYear) bool  { return y == o }
func (y GenericYear) After(o GenericYear) bool  { return y.Compare(o) > 0 }
func (y GenericYear) SortableString() string    { return formatSortable(y) }

// GenericUnbounded is the open end of a Generic reporting period.
type GenericUnbounded struct{}

func (GenericUnbounded) Kind() Kind               { return KindGeneric }
func (GenericUnbounded) Granularity() Granularity { return GranularityUnbounded }
func (u GenericUnbounded) String() string         { return formatPlain(u) }
func (GenericUnbounded) isUnitOfTime()            {}
func (GenericUnbounded) isGeneric()               {}
