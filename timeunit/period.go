package timeunit

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// =============================================================================
// PERIOD - What the algebra operates on
// =============================================================================

// Period is satisfied by ReportingPeriod and InclusivePeriod of any unit type.
type Period interface {
	Bounds() (start, end UnitOfTime)
}

// PeriodKind returns the kind shared by a period's start and end.
func PeriodKind(p Period) Kind {
	start, _ := p.Bounds()
	if start == nil {
		return KindInvalid
	}
	return start.Kind()
}

// PeriodGranularity returns the granularity of a period's bounded ends, or
// GranularityUnbounded when both ends are open.
func PeriodGranularity(p Period) Granularity {
	start, end := p.Bounds()
	switch {
	case start == nil || end == nil:
		return GranularityInvalid
	case IsBounded(start):
		return start.Granularity()
	default:
		return end.Granularity()
	}
}

// validateBounds enforces the invariants shared by both period flavors.
func validateBounds(start, end UnitOfTime) error {
	if start == nil || end == nil {
		return fmt.Errorf("%w: period ends must not be nil", ErrInvalidArgument)
	}
	if IsBounded(start) && IsBounded(end) {
		if !sameVariant(start, end) {
			return &MismatchError{Left: variantName(start), Right: variantName(end), Err: ErrTypeMismatch}
		}
		if start.(stepper).ordinal() > end.(stepper).ordinal() {
			return fmt.Errorf("%w: %s is after %s", ErrStartAfterEnd, start, end)
		}
		return nil
	}
	if start.Kind() != end.Kind() {
		return &MismatchError{Left: variantName(start), Right: variantName(end), Err: ErrKindMismatch}
	}
	return nil
}

// =============================================================================
// REPORTING PERIOD - Start/end pair, either end may be Unbounded
// =============================================================================

// ReportingPeriod is an inclusive range of units from Start to End. Either end
// may be the Unbounded unit of the period's kind, meaning open-ended.
type ReportingPeriod[T UnitOfTime] struct {
	start T
	end   T
}

// NewReportingPeriod requires both ends to be the same concrete variant with
// start <= end, or, when an end is Unbounded, the same kind.
func NewReportingPeriod[T UnitOfTime](start, end T) (ReportingPeriod[T], error) {
	if err := validateBounds(start, end); err != nil {
		return ReportingPeriod[T]{}, err
	}
	return ReportingPeriod[T]{start: start, end: end}, nil
}

func (p ReportingPeriod[T]) Start() T                         { return p.start }
func (p ReportingPeriod[T]) End() T                           { return p.end }
func (p ReportingPeriod[T]) Bounds() (UnitOfTime, UnitOfTime) { return p.start, p.end }
func (p ReportingPeriod[T]) Kind() Kind                       { return PeriodKind(p) }
func (p ReportingPeriod[T]) Granularity() Granularity         { return PeriodGranularity(p) }
func (p ReportingPeriod[T]) IsBounded() bool                  { return IsBounded(p.start) && IsBounded(p.end) }
func (p ReportingPeriod[T]) Equal(o ReportingPeriod[T]) bool  { return equalUnits(p.start, o.start) && equalUnits(p.end, o.end) }

// String renders the plain form, e.g. "c-2017-Q2,c-2017-Q3".
func (p ReportingPeriod[T]) String() string {
	var start, end UnitOfTime = p.start, p.end
	if start == nil || end == nil {
		return ""
	}
	return start.String() + "," + end.String()
}

func (p ReportingPeriod[T]) MarshalText() ([]byte, error) {
	if err := validateBounds(p.start, p.end); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

func (p *ReportingPeriod[T]) UnmarshalText(text []byte) error {
	parsed, err := ParseReportingPeriod[T](string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ToInclusive converts a fully bounded period to the inclusive flavor.
func (p ReportingPeriod[T]) ToInclusive() (InclusivePeriod[T], error) {
	return NewInclusivePeriod(p.start, p.end)
}

// Units yields every unit from Start to End in ascending order. The sequence
// can be ranged over any number of times.
func (p ReportingPeriod[T]) Units() (iter.Seq[T], error) {
	if err := requireBounded(p); err != nil {
		return nil, err
	}
	return unitsBetween(p.start, p.end), nil
}

// Permutations returns the contiguous sub-periods of p; see permutations.
func (p ReportingPeriod[T]) Permutations(maxUnitsInAnyPeriod int) ([]ReportingPeriod[T], error) {
	pairs, err := permutations(p, p.start, p.end, maxUnitsInAnyPeriod)
	if err != nil {
		return nil, err
	}
	out := make([]ReportingPeriod[T], len(pairs))
	for i, pair := range pairs {
		out[i] = ReportingPeriod[T]{start: pair[0], end: pair[1]}
	}
	return out, nil
}

// =============================================================================
// INCLUSIVE PERIOD - Both ends bounded
// =============================================================================

// InclusivePeriod is a reporting period whose ends are both bounded.
type InclusivePeriod[T UnitOfTime] struct {
	start T
	end   T
}

func NewInclusivePeriod[T UnitOfTime](start, end T) (InclusivePeriod[T], error) {
	if err := validateBounds(start, end); err != nil {
		return InclusivePeriod[T]{}, err
	}
	if !IsBounded(start) || !IsBounded(end) {
		return InclusivePeriod[T]{}, fmt.Errorf("%w: inclusive period ends must be bounded", ErrInvalidArgument)
	}
	return InclusivePeriod[T]{start: start, end: end}, nil
}

func (p InclusivePeriod[T]) Start() T                         { return p.start }
func (p InclusivePeriod[T]) End() T                           { return p.end }
func (p InclusivePeriod[T]) Bounds() (UnitOfTime, UnitOfTime) { return p.start, p.end }
func (p InclusivePeriod[T]) Kind() Kind                       { return PeriodKind(p) }
func (p InclusivePeriod[T]) Granularity() Granularity         { return PeriodGranularity(p) }
func (p InclusivePeriod[T]) Equal(o InclusivePeriod[T]) bool  { return equalUnits(p.start, o.start) && equalUnits(p.end, o.end) }

// String renders the wrapped form, e.g. "rpi(cq-2001-1,cq-2001-2)".
func (p InclusivePeriod[T]) String() string {
	var start, end UnitOfTime = p.start, p.end
	if !IsBounded(start) || !IsBounded(end) {
		return ""
	}
	return inclusivePrefix + formatSortable(start) + "," + formatSortable(end) + ")"
}

func (p InclusivePeriod[T]) MarshalText() ([]byte, error) {
	if _, err := NewInclusivePeriod(p.start, p.end); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

func (p *InclusivePeriod[T]) UnmarshalText(text []byte) error {
	parsed, err := ParseInclusivePeriod[T](string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ToReportingPeriod widens p to the flavor that also admits Unbounded ends.
func (p InclusivePeriod[T]) ToReportingPeriod() ReportingPeriod[T] {
	return ReportingPeriod[T]{start: p.start, end: p.end}
}

func (p InclusivePeriod[T]) Units() (iter.Seq[T], error) {
	if err := requireBounded(p); err != nil {
		return nil, err
	}
	return unitsBetween(p.start, p.end), nil
}

func (p InclusivePeriod[T]) Permutations(maxUnitsInAnyPeriod int) ([]InclusivePeriod[T], error) {
	pairs, err := permutations(p, p.start, p.end, maxUnitsInAnyPeriod)
	if err != nil {
		return nil, err
	}
	out := make([]InclusivePeriod[T], len(pairs))
	for i, pair := range pairs {
		out[i] = InclusivePeriod[T]{start: pair[0], end: pair[1]}
	}
	return out, nil
}

// =============================================================================
// PERIOD CODECS
// =============================================================================

const inclusivePrefix = "rpi("

// ParseReportingPeriod decodes the plain form "<start>,<end>" where each side
// is a plain unit token such as "c-2017-Q3" or "c-unbounded".
func ParseReportingPeriod[T UnitOfTime](s string) (ReportingPeriod[T], error) {
	start, end, err := parsePeriodTokens(s, s, parsePlain)
	if err != nil {
		return ReportingPeriod[T]{}, err
	}
	st, en, err := assignBounds[T](s, start, end)
	if err != nil {
		return ReportingPeriod[T]{}, err
	}
	return ReportingPeriod[T]{start: st, end: en}, nil
}

// ParseInclusivePeriod decodes the wrapped form "rpi(<start>,<end>)" where
// each side is a sortable unit token.
func ParseInclusivePeriod[T UnitOfTime](s string) (InclusivePeriod[T], error) {
	if strings.TrimSpace(s) == "" {
		return InclusivePeriod[T]{}, &ParseError{Input: s, Err: ErrBlankInput}
	}
	if !strings.HasPrefix(s, inclusivePrefix) || !strings.HasSuffix(s, ")") || len(s) < len(inclusivePrefix)+1 {
		return InclusivePeriod[T]{}, parseErr(s, ErrUnrecognizedFormat, "expected rpi(<start>,<end>)")
	}
	inner := s[len(inclusivePrefix) : len(s)-1]
	start, end, err := parsePeriodTokens(s, inner, parseSortable)
	if err != nil {
		return InclusivePeriod[T]{}, err
	}
	st, en, err := assignBounds[T](s, start, end)
	if err != nil {
		return InclusivePeriod[T]{}, err
	}
	return InclusivePeriod[T]{start: st, end: en}, nil
}

// ParseAnyPeriod decodes either form, returning the flavor the input used.
func ParseAnyPeriod(s string) (Period, error) {
	if strings.HasPrefix(s, inclusivePrefix) {
		return ParseInclusivePeriod[UnitOfTime](s)
	}
	return ParseReportingPeriod[UnitOfTime](s)
}

func parsePeriodTokens(input, body string, parseUnit func(string) (UnitOfTime, error)) (UnitOfTime, UnitOfTime, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil, &ParseError{Input: input, Err: ErrBlankInput}
	}
	tokens := strings.Split(body, ",")
	if len(tokens) != 2 {
		return nil, nil, parseErr(input, ErrWrongTokenCount, "expected 2 comma separated units, got %d", len(tokens))
	}
	start, err := parseUnit(tokens[0])
	if err != nil {
		return nil, nil, err
	}
	end, err := parseUnit(tokens[1])
	if err != nil {
		return nil, nil, err
	}
	if err := validateBounds(start, end); err != nil {
		return nil, nil, fmt.Errorf("parse %q: %w", input, err)
	}
	return start, end, nil
}

func assignBounds[T UnitOfTime](input string, start, end UnitOfTime) (T, T, error) {
	var zero T
	st, err := assignTo[T](input, start)
	if err != nil {
		return zero, zero, err
	}
	en, err := assignTo[T](input, end)
	if err != nil {
		return zero, zero, err
	}
	return st, en, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func equalUnits(a, b UnitOfTime) bool {
	c, err := Compare(a, b)
	return err == nil && c == 0
}

func requireBounded(p Period) error {
	if p == nil {
		return fmt.Errorf("%w: nil period", ErrInvalidArgument)
	}
	start, end := p.Bounds()
	if start == nil || end == nil {
		return fmt.Errorf("%w: period ends must not be nil", ErrInvalidArgument)
	}
	if !IsBounded(start) || !IsBounded(end) {
		return fmt.Errorf("%w: period %s,%s is unbounded", ErrUnsupported, start, end)
	}
	return nil
}

// unitsBetween enumerates a validated, bounded [start, end].
func unitsBetween[T UnitOfTime](start, end T) iter.Seq[T] {
	var s, e UnitOfTime = start, end
	first, last := s.(stepper).ordinal(), e.(stepper).ordinal()
	return func(yield func(T) bool) {
		for o := first; o <= last; o++ {
			u, err := s.(stepper).atOrdinal(o)
			if err != nil {
				return
			}
			if !yield(u.(T)) {
				return
			}
		}
	}
}

// permutations lists every contiguous [S, E] inside [start, end] spanning at
// most maxUnits units, ordered by S then E. A period that already spans no
// more than maxUnits units yields only itself.
func permutations[T UnitOfTime](p Period, start, end T, maxUnits int) ([][2]T, error) {
	if maxUnits <= 0 {
		return nil, fmt.Errorf("%w: max units in any period must be positive, got %d", ErrOutOfRange, maxUnits)
	}
	total, err := NumberOfUnitsWithin(p)
	if err != nil {
		return nil, err
	}
	if total <= maxUnits {
		return [][2]T{{start, end}}, nil
	}

	units := slices.Collect(unitsBetween(start, end))
	var pairs [][2]T
	for i := range units {
		for j := i; j < len(units) && j-i < maxUnits; j++ {
			pairs = append(pairs, [2]T{units[i], units[j]})
		}
	}
	return pairs, nil
}
