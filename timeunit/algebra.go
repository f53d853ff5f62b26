/*
algebra.go - Relations between units and reporting periods

PURPOSE:
  Containment, overlap, counting and enumeration over any Period. All
  operations are pure and accept either period flavor.

OPEN ENDS:
  An Unbounded start behaves as minus infinity and an Unbounded end as plus
  infinity. A period whose ends are both Unbounded covers every unit of its
  kind.

TYPE RULES:
  Two periods are compatible when they share a kind and, where both have a
  bounded end, the same concrete variant. A unit tested against a period
  must be the variant of the period's bounded ends.
*/
package timeunit

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CONTAINMENT
// =============================================================================

// IsInReportingPeriod reports whether p.Start <= u <= p.End, with open ends
// satisfied by every unit.
func IsInReportingPeriod(u UnitOfTime, p Period) (bool, error) {
	if u == nil {
		return false, fmt.Errorf("%w: nil unit of time", ErrInvalidArgument)
	}
	start, end, err := periodBounds(p)
	if err != nil {
		return false, err
	}
	if u.Kind() != start.Kind() {
		return false, &MismatchError{Left: variantName(u), Right: periodVariantName(p), Err: ErrTypeMismatch}
	}
	exemplar := boundedSide(p)
	if exemplar == nil {
		return true, nil
	}
	if !sameVariant(u, exemplar) {
		return false, &MismatchError{Left: variantName(u), Right: periodVariantName(p), Err: ErrTypeMismatch}
	}
	o := u.(stepper).ordinal()
	return atOrBefore(start, o) && atOrAfter(end, o), nil
}

// ContainsPeriod reports whether every unit of inner also lies in outer.
func ContainsPeriod(outer, inner Period) (bool, error) {
	if err := matchPeriods(outer, inner); err != nil {
		return false, err
	}
	os, oe := outer.Bounds()
	is, ie := inner.Bounds()
	startOK := !IsBounded(os) || (IsBounded(is) && ordinalOf(os) <= ordinalOf(is))
	endOK := !IsBounded(oe) || (IsBounded(ie) && ordinalOf(ie) <= ordinalOf(oe))
	return startOK && endOK, nil
}

// =============================================================================
// OVERLAP
// =============================================================================

// HasOverlapWith reports whether a and b share at least one unit, which holds
// iff a.Start <= b.End and b.Start <= a.End. It is symmetric.
func HasOverlapWith(a, b Period) (bool, error) {
	if err := matchPeriods(a, b); err != nil {
		return false, err
	}
	as, ae := a.Bounds()
	bs, be := b.Bounds()
	return startsNoLaterThan(as, be) && startsNoLaterThan(bs, ae), nil
}

// OverlapFraction returns the share of a's units that also lie in b, from 0
// to 1. a must be bounded; b may be open-ended.
func OverlapFraction(a, b Period) (decimal.Decimal, error) {
	total, err := NumberOfUnitsWithin(a)
	if err != nil {
		return decimal.Zero, err
	}
	if err := matchPeriods(a, b); err != nil {
		return decimal.Zero, err
	}
	as, ae := a.Bounds()
	bs, be := b.Bounds()
	lo, hi := ordinalOf(as), ordinalOf(ae)
	if IsBounded(bs) {
		lo = max(lo, ordinalOf(bs))
	}
	if IsBounded(be) {
		hi = min(hi, ordinalOf(be))
	}
	if lo > hi {
		return decimal.Zero, nil
	}
	shared := decimal.NewFromInt(int64(hi - lo + 1))
	return shared.Div(decimal.NewFromInt(int64(total))), nil
}

// =============================================================================
// COUNTING AND ENUMERATION
// =============================================================================

// NumberOfUnitsWithin counts the units from Start to End inclusive.
func NumberOfUnitsWithin(p Period) (int, error) {
	if err := requireBounded(p); err != nil {
		return 0, err
	}
	start, end := p.Bounds()
	return ordinalOf(end) - ordinalOf(start) + 1, nil
}

// UnitsOf enumerates any bounded period without knowing its unit type.
func UnitsOf(p Period) (iter.Seq[UnitOfTime], error) {
	if err := requireBounded(p); err != nil {
		return nil, err
	}
	start, end := p.Bounds()
	return unitsBetween(start, end), nil
}

// PermutationsOf is the untyped form of the Permutations methods.
func PermutationsOf(p Period, maxUnitsInAnyPeriod int) ([]ReportingPeriod[UnitOfTime], error) {
	if _, _, err := periodBounds(p); err != nil {
		return nil, err
	}
	start, end := p.Bounds()
	pairs, err := permutations(p, start, end, maxUnitsInAnyPeriod)
	if err != nil {
		return nil, err
	}
	out := make([]ReportingPeriod[UnitOfTime], len(pairs))
	for i, pair := range pairs {
		out[i] = ReportingPeriod[UnitOfTime]{start: pair[0], end: pair[1]}
	}
	return out, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func periodBounds(p Period) (UnitOfTime, UnitOfTime, error) {
	if p == nil {
		return nil, nil, fmt.Errorf("%w: nil period", ErrInvalidArgument)
	}
	start, end := p.Bounds()
	if start == nil || end == nil {
		return nil, nil, fmt.Errorf("%w: period ends must not be nil", ErrInvalidArgument)
	}
	return start, end, nil
}

// boundedSide returns a bounded end of p, or nil when both ends are open.
func boundedSide(p Period) UnitOfTime {
	start, end := p.Bounds()
	switch {
	case IsBounded(start):
		return start
	case IsBounded(end):
		return end
	default:
		return nil
	}
}

func periodVariantName(p Period) string {
	if b := boundedSide(p); b != nil {
		return variantName(b)
	}
	return PeriodKind(p).String() + "-" + GranularityUnbounded.String()
}

func matchPeriods(a, b Period) error {
	as, _, err := periodBounds(a)
	if err != nil {
		return err
	}
	bs, _, err := periodBounds(b)
	if err != nil {
		return err
	}
	mismatch := &MismatchError{Left: periodVariantName(a), Right: periodVariantName(b), Err: ErrTypeMismatch}
	if as.Kind() != bs.Kind() {
		return mismatch
	}
	ea, eb := boundedSide(a), boundedSide(b)
	if ea != nil && eb != nil && !sameVariant(ea, eb) {
		return mismatch
	}
	return nil
}

func ordinalOf(u UnitOfTime) int {
	return u.(stepper).ordinal()
}

// atOrBefore reports whether the start bound admits ordinal o.
func atOrBefore(start UnitOfTime, o int) bool {
	return !IsBounded(start) || ordinalOf(start) <= o
}

// atOrAfter reports whether the end bound admits ordinal o.
func atOrAfter(end UnitOfTime, o int) bool {
	return !IsBounded(end) || o <= ordinalOf(end)
}

// startsNoLaterThan compares a start bound against an end bound.
func startsNoLaterThan(start, end UnitOfTime) bool {
	return !IsBounded(start) || !IsBounded(end) || ordinalOf(start) <= ordinalOf(end)
}
