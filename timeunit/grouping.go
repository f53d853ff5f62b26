package timeunit

import (
	"fmt"
	"strings"
)

// =============================================================================
// GROUPING - Requested type chosen at runtime
// =============================================================================

// Grouping names a set of variants a caller is willing to accept when the
// requested type is only known at runtime, such as a query parameter. It is
// the runtime counterpart of the type parameter given to ParseSortable.
type Grouping int

const (
	GroupingAny Grouping = iota
	GroupingBounded
	GroupingCalendar
	GroupingFiscal
	GroupingGeneric
	GroupingCalendarDay
	GroupingCalendarMonth
	GroupingCalendarQuarter
	GroupingCalendarYear
	GroupingCalendarUnbounded
	GroupingFiscalMonth
	GroupingFiscalQuarter
	GroupingFiscalYear
	GroupingFiscalUnbounded
	GroupingGenericMonth
	GroupingGenericQuarter
	GroupingGenericYear
	GroupingGenericUnbounded
)

type groupingRule struct {
	name        string
	kind        Kind        // KindInvalid matches every kind
	granularity Granularity // GranularityInvalid matches every granularity
	bounded     bool
}

var groupingRules = map[Grouping]groupingRule{
	GroupingAny:      {name: "any"},
	GroupingBounded:  {name: "bounded", bounded: true},
	GroupingCalendar: {name: "calendar", kind: KindCalendar},
	GroupingFiscal:   {name: "fiscal", kind: KindFiscal},
	GroupingGeneric:  {name: "generic", kind: KindGeneric},

	GroupingCalendarDay:       {name: "calendar-day", kind: KindCalendar, granularity: GranularityDay},
	GroupingCalendarMonth:     {name: "calendar-month", kind: KindCalendar, granularity: GranularityMonth},
	GroupingCalendarQuarter:   {name: "calendar-quarter", kind: KindCalendar, granularity: GranularityQuarter},
	GroupingCalendarYear:      {name: "calendar-year", kind: KindCalendar, granularity: GranularityYear},
	GroupingCalendarUnbounded: {name: "calendar-unbounded", kind: KindCalendar, granularity: GranularityUnbounded},
	GroupingFiscalMonth:       {name: "fiscal-month", kind: KindFiscal, granularity: GranularityMonth},
	GroupingFiscalQuarter:     {name: "fiscal-quarter", kind: KindFiscal, granularity: GranularityQuarter},
	GroupingFiscalYear:        {name: "fiscal-year", kind: KindFiscal, granularity: GranularityYear},
	GroupingFiscalUnbounded:   {name: "fiscal-unbounded", kind: KindFiscal, granularity: GranularityUnbounded},
	GroupingGenericMonth:      {name: "generic-month", kind: KindGeneric, granularity: GranularityMonth},
	GroupingGenericQuarter:    {name: "generic-quarter", kind: KindGeneric, granularity: GranularityQuarter},
	GroupingGenericYear:       {name: "generic-year", kind: KindGeneric, granularity: GranularityYear},
	GroupingGenericUnbounded:  {name: "generic-unbounded", kind: KindGeneric, granularity: GranularityUnbounded},
}

func (g Grouping) String() string {
	if r, ok := groupingRules[g]; ok {
		return r.name
	}
	return fmt.Sprintf("grouping(%d)", int(g))
}

// ParseGrouping maps a name such as "calendar" or "fiscal-quarter" to its
// Grouping. The empty string means GroupingAny.
func ParseGrouping(s string) (Grouping, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return GroupingAny, nil
	}
	for g, r := range groupingRules {
		if r.name == name {
			return g, nil
		}
	}
	return GroupingAny, fmt.Errorf("%w: unknown grouping %q", ErrInvalidArgument, s)
}

// Accepts reports whether u belongs to the grouping.
func (g Grouping) Accepts(u UnitOfTime) bool {
	r, ok := groupingRules[g]
	if !ok || u == nil {
		return false
	}
	if r.bounded && !IsBounded(u) {
		return false
	}
	if r.kind != KindInvalid && u.Kind() != r.kind {
		return false
	}
	return r.granularity == GranularityInvalid || u.Granularity() == r.granularity
}

// acceptsPeriod requires both ends to be members of the grouping, the same
// rule a typed parse applies to its type parameter. Concrete variant
// groupings therefore reject Unbounded ends; "any" and the kind groupings
// admit them because Unbounded is a member of its kind.
func (g Grouping) acceptsPeriod(start, end UnitOfTime) bool {
	return g.Accepts(start) && g.Accepts(end)
}

// =============================================================================
// RUNTIME DECODING
// =============================================================================

// ParseSortableAs decodes a sortable token and checks it against g.
func ParseSortableAs(s string, g Grouping) (UnitOfTime, error) {
	u, err := parseSortable(s)
	if err != nil {
		return nil, err
	}
	return checkGrouping(s, g, u)
}

// ParseUnitStringAs decodes a plain token and checks it against g.
func ParseUnitStringAs(s string, g Grouping) (UnitOfTime, error) {
	u, err := parsePlain(s)
	if err != nil {
		return nil, err
	}
	return checkGrouping(s, g, u)
}

// ParseUnitAs accepts either token form. Plain tokens have a single letter
// before the first dash; sortable tokens have two.
func ParseUnitAs(s string, g Grouping) (UnitOfTime, error) {
	if i := strings.IndexByte(s, '-'); i == 1 {
		return ParseUnitStringAs(s, g)
	}
	return ParseSortableAs(s, g)
}

// ParsePeriodAs decodes a plain period and checks both ends against g.
func ParsePeriodAs(s string, g Grouping) (ReportingPeriod[UnitOfTime], error) {
	p, err := ParseReportingPeriod[UnitOfTime](s)
	if err != nil {
		return ReportingPeriod[UnitOfTime]{}, err
	}
	if !g.acceptsPeriod(p.start, p.end) {
		return ReportingPeriod[UnitOfTime]{}, parseErr(s, ErrIncompatibleType,
			"period of %s does not belong to %s", periodVariantName(p), g)
	}
	return p, nil
}

// ParseInclusivePeriodAs decodes a wrapped period and checks both ends against g.
func ParseInclusivePeriodAs(s string, g Grouping) (InclusivePeriod[UnitOfTime], error) {
	p, err := ParseInclusivePeriod[UnitOfTime](s)
	if err != nil {
		return InclusivePeriod[UnitOfTime]{}, err
	}
	if !g.acceptsPeriod(p.start, p.end) {
		return InclusivePeriod[UnitOfTime]{}, parseErr(s, ErrIncompatibleType,
			"period of %s does not belong to %s", periodVariantName(p), g)
	}
	return p, nil
}

// ParseAnyPeriodAs accepts either period form.
func ParseAnyPeriodAs(s string, g Grouping) (Period, error) {
	if strings.HasPrefix(s, inclusivePrefix) {
		return ParseInclusivePeriodAs(s, g)
	}
	return ParsePeriodAs(s, g)
}

func checkGrouping(input string, g Grouping, u UnitOfTime) (UnitOfTime, error) {
	if !g.Accepts(u) {
		return nil, parseErr(input, ErrIncompatibleType, "decoded %s does not belong to %s", variantName(u), g)
	}
	return u, nil
}
