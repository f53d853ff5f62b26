/*
Package allocation splits an amount across the units of a reporting period.

PURPOSE:
  Budgets, accruals and revenue are often booked for a whole period and then
  reported per month, quarter or day. Allocation turns one amount into one
  share per unit of a bounded period.

WEIGHTINGS:
  even: every unit receives the same share
  days: each unit is weighted by its calendar day count (Calendar only),
        so February receives less than March

ROUNDING:
  Shares are rounded to a fixed number of decimal places using cumulative
  rounding: share i is round(total * W(i)) - round(total * W(i-1)), where
  W(i) is the cumulative weight through unit i. The shares always sum to
  exactly amount.Round(places) and no share drifts by more than one unit in
  the last place.

USAGE:
  p, _ := timeunit.ParseReportingPeriod[timeunit.CalendarMonth]("c-2017-01,c-2017-03")
  shares, _ := allocation.Evenly(decimal.NewFromInt(100), 2, p)
  // 33.33, 33.34, 33.33
*/
package allocation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/accounting-time/timeunit"
)

// Share is the part of an amount allocated to one unit of time.
type Share struct {
	Unit   timeunit.UnitOfTime
	Amount decimal.Decimal
}

// Weighting selects how units are weighted against each other.
type Weighting string

const (
	WeightEven Weighting = "even"
	WeightDays Weighting = "days"
)

// ParseWeighting maps a name to a Weighting. The empty string means even.
func ParseWeighting(s string) (Weighting, error) {
	switch w := Weighting(strings.ToLower(strings.TrimSpace(s))); w {
	case "", WeightEven:
		return WeightEven, nil
	case WeightDays:
		return WeightDays, nil
	default:
		return "", fmt.Errorf("%w: unknown weighting %q", timeunit.ErrInvalidArgument, s)
	}
}

// Allocate dispatches on w.
func Allocate(amount decimal.Decimal, places int32, p timeunit.Period, w Weighting) ([]Share, error) {
	switch w {
	case WeightEven, "":
		return Evenly(amount, places, p)
	case WeightDays:
		return ByDays(amount, places, p)
	default:
		return nil, fmt.Errorf("%w: unknown weighting %q", timeunit.ErrInvalidArgument, w)
	}
}

// Evenly gives every unit of p the same share of amount.
func Evenly(amount decimal.Decimal, places int32, p timeunit.Period) ([]Share, error) {
	units, err := collect(p, places)
	if err != nil {
		return nil, err
	}
	weights := make([]int64, len(units))
	for i := range weights {
		weights[i] = 1
	}
	return split(amount, places, units, weights), nil
}

// ByDays weights each unit of a Calendar period by the days it spans.
func ByDays(amount decimal.Decimal, places int32, p timeunit.Period) ([]Share, error) {
	units, err := collect(p, places)
	if err != nil {
		return nil, err
	}
	if timeunit.PeriodKind(p) != timeunit.KindCalendar {
		return nil, fmt.Errorf("%w: day weighting needs a calendar period, got %s",
			timeunit.ErrUnsupported, timeunit.PeriodKind(p))
	}

	weights := make([]int64, len(units))
	for i, u := range units {
		days, err := timeunit.DaysIn(u.(timeunit.CalendarUnitOfTime))
		if err != nil {
			return nil, err
		}
		weights[i] = int64(days)
	}
	return split(amount, places, units, weights), nil
}

// Total sums the shares.
func Total(shares []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}

func collect(p timeunit.Period, places int32) ([]timeunit.UnitOfTime, error) {
	if places < 0 {
		return nil, fmt.Errorf("%w: decimal places must not be negative, got %d", timeunit.ErrOutOfRange, places)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: nil period", timeunit.ErrInvalidArgument)
	}
	seq, err := timeunit.UnitsOf(p)
	if err != nil {
		return nil, err
	}
	var units []timeunit.UnitOfTime
	for u := range seq {
		units = append(units, u)
	}
	return units, nil
}

// split applies cumulative rounding; see the package comment.
func split(amount decimal.Decimal, places int32, units []timeunit.UnitOfTime, weights []int64) []Share {
	var total int64
	for _, w := range weights {
		total += w
	}
	denominator := decimal.NewFromInt(total)
	rounded := amount.Round(places)

	shares := make([]Share, len(units))
	var cumulative int64
	previous := decimal.Zero
	for i, u := range units {
		cumulative += weights[i]
		current := rounded
		if i < len(units)-1 {
			current = amount.Mul(decimal.NewFromInt(cumulative)).Div(denominator).Round(places)
		}
		shares[i] = Share{Unit: u, Amount: current.Sub(previous)}
		previous = current
	}
	return shares
}
