package timeunit

import (
	"fmt"
	"time"
)

// =============================================================================
// FISCAL <-> CALENDAR QUARTERS
// =============================================================================

// A fiscal year is named after the calendar year in which it ends. With
// firstFiscalQuarter = Q4 (a fiscal year starting in October), calendar
// 2017-Q4 is fiscal 2018-Q1 and calendar 2018-Q3 is fiscal 2018-Q4.
// With Q1 the two systems coincide.

// ToFiscalQuarter repositions a calendar quarter into the fiscal calendar
// whose Q1 begins in calendar quarter firstFiscalQuarter.
func ToFiscalQuarter(q CalendarQuarter, firstFiscalQuarter QuarterNumber) (FiscalQuarter, error) {
	shift, err := fiscalShift(firstFiscalQuarter)
	if err != nil {
		return FiscalQuarter{}, err
	}
	f, err := quarterAt(q.ordinal() + shift)
	if err != nil {
		return FiscalQuarter{}, err
	}
	return FiscalQuarter{f}, nil
}

// ToCalendarQuarter is the inverse of ToFiscalQuarter.
func ToCalendarQuarter(q FiscalQuarter, firstFiscalQuarter QuarterNumber) (CalendarQuarter, error) {
	shift, err := fiscalShift(firstFiscalQuarter)
	if err != nil {
		return CalendarQuarter{}, err
	}
	f, err := quarterAt(q.ordinal() - shift)
	if err != nil {
		return CalendarQuarter{}, err
	}
	return CalendarQuarter{f}, nil
}

func fiscalShift(firstFiscalQuarter QuarterNumber) (int, error) {
	if firstFiscalQuarter < Q1 || firstFiscalQuarter > Q4 {
		return 0, fmt.Errorf("%w: first fiscal quarter %s", ErrInvalidArgument, firstFiscalQuarter)
	}
	return (5 - int(firstFiscalQuarter)) % 4, nil
}

// =============================================================================
// CALENDAR DAY PROJECTION
// =============================================================================

// FirstCalendarDay returns the first day of a bounded calendar unit.
func FirstCalendarDay(u CalendarUnitOfTime) (CalendarDay, error) {
	switch v := u.(type) {
	case CalendarDay:
		return v, nil
	case CalendarMonth:
		return CalendarDay{year: v.year, month: v.Month(), day: 1}, nil
	case CalendarQuarter:
		return CalendarDay{year: v.year, month: firstMonthOf(v.quarter), day: 1}, nil
	case CalendarYear:
		return CalendarDay{year: v.year, month: time.January, day: 1}, nil
	case nil:
		return CalendarDay{}, fmt.Errorf("%w: nil unit of time", ErrInvalidArgument)
	default:
		return CalendarDay{}, fmt.Errorf("%w: %s has no first day", ErrUnsupported, variantName(u))
	}
}

// LastCalendarDay returns the last day of a bounded calendar unit.
func LastCalendarDay(u CalendarUnitOfTime) (CalendarDay, error) {
	switch v := u.(type) {
	case CalendarDay:
		return v, nil
	case CalendarMonth:
		return CalendarDay{year: v.year, month: v.Month(), day: daysIn(v.year, v.Month())}, nil
	case CalendarQuarter:
		month := firstMonthOf(v.quarter) + 2
		return CalendarDay{year: v.year, month: month, day: daysIn(v.year, month)}, nil
	case CalendarYear:
		return CalendarDay{year: v.year, month: time.December, day: 31}, nil
	case nil:
		return CalendarDay{}, fmt.Errorf("%w: nil unit of time", ErrInvalidArgument)
	default:
		return CalendarDay{}, fmt.Errorf("%w: %s has no last day", ErrUnsupported, variantName(u))
	}
}

// DaysIn returns how many calendar days a bounded calendar unit spans.
func DaysIn(u CalendarUnitOfTime) (int, error) {
	first, err := FirstCalendarDay(u)
	if err != nil {
		return 0, err
	}
	last, err := LastCalendarDay(u)
	if err != nil {
		return 0, err
	}
	return last.ordinal() - first.ordinal() + 1, nil
}

func firstMonthOf(q QuarterNumber) time.Month {
	return time.Month(3*(int(q)-1) + 1)
}
