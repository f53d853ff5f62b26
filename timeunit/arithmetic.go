package timeunit

import (
	"cmp"
	"fmt"
	"time"
)

// =============================================================================
// COMPARISON
// =============================================================================

// Compare returns -1, 0 or +1 ordering a before, equal to, or after b.
// Both units must be the same concrete variant. Two Unbounded units of the
// same kind compare equal.
func Compare(a, b UnitOfTime) (int, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("%w: nil unit of time", ErrInvalidArgument)
	}
	if !sameVariant(a, b) {
		return 0, &MismatchError{Left: variantName(a), Right: variantName(b), Err: ErrTypeMismatch}
	}
	sa, ok := a.(stepper)
	if !ok {
		return 0, nil
	}
	return cmp.Compare(sa.ordinal(), b.(stepper).ordinal()), nil
}

// =============================================================================
// ARITHMETIC - Stepping a unit within its own variant
// =============================================================================

// Plus shifts u by n units of its own granularity. Negative n shifts
// backwards. Unbounded units have no neighbours and are rejected.
func Plus[T UnitOfTime](u T, n int) (T, error) {
	var zero T
	r, err := plus(u, n)
	if err != nil {
		return zero, err
	}
	return r.(T), nil
}

func plus(u UnitOfTime, n int) (UnitOfTime, error) {
	if u == nil {
		return nil, fmt.Errorf("%w: nil unit of time", ErrInvalidArgument)
	}
	s, ok := u.(stepper)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no successor or predecessor", ErrUnsupported, variantName(u))
	}
	return s.atOrdinal(s.ordinal() + n)
}

// PlusAt shifts u by n units of granularity g, which must be equal to or
// coarser than u's own granularity: two years can be added to a month, but
// days cannot be added to a quarter. A day shifted by months, quarters or
// years keeps its day of month, clamped to the length of the target month.
func PlusAt[T UnitOfTime](u T, n int, g Granularity) (T, error) {
	var zero T
	r, err := plusAt(u, n, g)
	if err != nil {
		return zero, err
	}
	return r.(T), nil
}

func plusAt(u UnitOfTime, n int, g Granularity) (UnitOfTime, error) {
	if u == nil {
		return nil, fmt.Errorf("%w: nil unit of time", ErrInvalidArgument)
	}
	if g.validate() != nil || g == GranularityUnbounded {
		return nil, fmt.Errorf("%w: cannot add units of granularity %s", ErrInvalidArgument, g)
	}
	if !IsBounded(u) {
		return nil, fmt.Errorf("%w: %s has no successor or predecessor", ErrUnsupported, variantName(u))
	}

	own := u.Granularity()
	if finer, _ := g.IsMoreGranularThan(own); finer {
		return nil, fmt.Errorf("%w: cannot add %s units to a %s", ErrUnsupported, g, variantName(u))
	}
	if g == own {
		return plus(u, n)
	}

	// No shift wider than the representable years can land in range.
	if limit := MaxYear * 12 / g.monthsPer(); n > limit || n < -limit {
		return nil, fmt.Errorf("%w: shifting %s by %d %s units leaves years %d-%d",
			ErrOutOfRange, variantName(u), n, g, MinYear, MaxYear)
	}
	if d, ok := u.(CalendarDay); ok {
		return d.addMonths(n * g.monthsPer())
	}
	return plus(u, n*g.monthsPer()/own.monthsPer())
}

func (d CalendarDay) addMonths(months int) (UnitOfTime, error) {
	f, err := monthAt(monthFields{year: d.year, month: int(d.month)}.ordinal() + months)
	if err != nil {
		return nil, err
	}
	month := time.Month(f.month)
	return CalendarDay{year: f.year, month: month, day: min(d.day, daysIn(f.year, month))}, nil
}

// =============================================================================
// UNITS TO DATE
// =============================================================================

// UnitsToDate returns every unit of last's variant from the start of last's
// year through last, in ascending order. For a year it is just [last].
func UnitsToDate[T UnitOfTime](last T) ([]T, error) {
	var u UnitOfTime = last
	if u == nil {
		return nil, fmt.Errorf("%w: nil unit of time", ErrInvalidArgument)
	}
	s, ok := u.(stepper)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no units to date", ErrUnsupported, variantName(u))
	}

	year := u.(interface{ Year() int }).Year()
	var first int
	switch u.Granularity() {
	case GranularityDay:
		first = CalendarDay{year: year, month: time.January, day: 1}.ordinal()
	case GranularityMonth:
		first = monthFields{year: year, month: 1}.ordinal()
	case GranularityQuarter:
		first = quarterFields{year: year, quarter: Q1}.ordinal()
	default:
		first = s.ordinal()
	}

	units := make([]T, 0, s.ordinal()-first+1)
	for o := first; o <= s.ordinal(); o++ {
		x, err := s.atOrdinal(o)
		if err != nil {
			return nil, err
		}
		units = append(units, x.(T))
	}
	return units, nil
}
