package timeunit

import "cmp"

// =============================================================================
// FISCAL VARIANTS - Fiscal-year months, quarters and years
// =============================================================================

// FiscalMonth is a month position within a Fiscal year.
type FiscalMonth struct {
	monthFields
}

func NewFiscalMonth(year int, month MonthNumber) (FiscalMonth, error) {
	if err := checkYear(year); err != nil {
		return FiscalMonth{}, err
	}
	if err := checkMonth(int(month)); err != nil {
		return FiscalMonth{}, err
	}
	return FiscalMonth{monthFields{year: year, month: int(month)}}, nil
}

func (m FiscalMonth) Month() MonthNumber     { return MonthNumber(m.month) }
func (FiscalMonth) Kind() Kind               { return KindFiscal }
func (FiscalMonth) Granularity() Granularity { return GranularityMonth }
func (m FiscalMonth) String() string         { return formatPlain(m) }
func (FiscalMonth) isUnitOfTime()            {}
func (FiscalMonth) isFiscal()                {}

func (FiscalMonth) atOrdinal(n int) (UnitOfTime, error) {
	f, err := monthAt(n)
	if err != nil {
		return nil, err
	}
	return FiscalMonth{f}, nil
}

func (m FiscalMonth) Plus(n int) (FiscalMonth, error) { return Plus(m, n) }
func (m FiscalMonth) PlusAt(n int, g Granularity) (FiscalMonth, error) {
	return PlusAt(m, n, g)
}
func (m FiscalMonth) Compare(o FiscalMonth) int { return cmp.Compare(m.ordinal(), o.ordinal()) }
func (m FiscalMonth) Before(o FiscalMonth) bool { return m.Compare(o) < 0 }
func (m FiscalMonth) Equal(o FiscalMonth) bool  { return m == o }
func (m FiscalMonth) After(o FiscalMonth) bool  { return m.Compare(o) > 0 }
func (m FiscalMonth) SortableString() string    { return formatSortable(m) }

// FiscalQuarter is a quarter of a Fiscal year.
// Its Q1 begins in whichever calendar quarter the organization configures; see
// ToFiscalQuarter.
type FiscalQuarter struct {
	quarterFields
}

func NewFiscalQuarter(year int, quarter QuarterNumber) (FiscalQuarter, error) {
	if err := checkYear(year); err != nil {
		return FiscalQuarter{}, err
	}
	if err := checkQuarter(quarter); err != nil {
		return FiscalQuarter{}, err
	}
	return FiscalQuarter{quarterFields{year: year, quarter: quarter}}, nil
}

func (FiscalQuarter) Kind() Kind               { return KindFiscal }
func (FiscalQuarter) Granularity() Granularity { return GranularityQuarter }
func (q FiscalQuarter) String() string         { return formatPlain(q) }
func (FiscalQuarter) isUnitOfTime()            {}
func (FiscalQuarter) isFiscal()                {}

func (FiscalQuarter) atOrdinal(n int) (UnitOfTime, error) {
	f, err := quarterAt(n)
	if err != nil {
		return nil, err
	}
	return FiscalQuarter{f}, nil
}

func (q FiscalQuarter) Plus(n int) (FiscalQuarter, error) { return Plus(q, n) }
func (q FiscalQuarter) PlusAt(n int, g Granularity) (FiscalQuarter, error) {
	return PlusAt(q, n, g)
}
func (q FiscalQuarter) Compare(o FiscalQuarter) int { return cmp.Compare(q.ordinal(), o.ordinal()) }
func (q FiscalQuarter) Before(o FiscalQuarter) bool { return q.Compare(o) < 0 }
func (q FiscalQuarter) Equal(o FiscalQuarter) bool  { return q == o }
func (q FiscalQuarter) After(o FiscalQuarter) bool  { return q.Compare(o) > 0 }
func (q FiscalQuarter) SortableString() string      { return formatSortable(q) }

// FiscalYear is a Fiscal year.
type FiscalYear struct {
	yearFields
}

func NewFiscalYear(year int) (FiscalYear, error) {
	if err := checkYear(year); err != nil {
		return FiscalYear{}, err
	}
	return FiscalYear{yearFields{year: year}}, nil
}

func (FiscalYear) Kind() Kind               { return KindFiscal }
func (FiscalYear) Granularity() Granularity { return GranularityYear }
func (y FiscalYear) String() string         { return formatPlain(y) }
func (FiscalYear) isUnitOfTime()            {}
func (FiscalYear) isFiscal()                {}

func (FiscalYear) atOrdinal(n int) (UnitOfTime, error) {
	f, err := yearAt(n)
	if err != nil {
		return nil, err
	}
	return FiscalYear{f}, nil
}

func (y FiscalYear) Plus(n int) (FiscalYear, error) { return Plus(y, n) }
func (y FiscalYear) PlusAt(n int, g Granularity) (FiscalYear, error) {
	return PlusAt(y, n, g)
}
func (y FiscalYear) Compare(o FiscalYear) int { return cmp.Compare(y.ordinal(), o.ordinal()) }
func (y FiscalYear) Before(o FiscalYear) bool { return y.Compare(o) < 0 }
func (y FiscalYear) Equal(o FiscalYear) bool  { return y == o }
func (y FiscalYear) After(o FiscalYear) bool  { return y.Compare(o) > 0 }
func (y FiscalYear) SortableString() string   { return formatSortable(y) }

// FiscalUnbounded is the open end of a Fiscal reporting period.
type FiscalUnbounded struct{}

func (FiscalUnbounded) Kind() Kind               { return KindFiscal }
func (FiscalUnbounded) Granularity() Granularity { return GranularityUnbounded }
func (u FiscalUnbounded) String() string         { return formatPlain(u) }
func (FiscalUnbounded) isUnitOfTime()            {}
func (FiscalUnbounded) isFiscal()                {}
