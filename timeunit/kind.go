package timeunit

import (
	"fmt"
	"strings"
)

// =============================================================================
// GRANULARITY - Resolution of a unit of time
// =============================================================================

// Granularity is the resolution of a unit of time.
//
// Day is the most granular, Year the least. Unbounded sits past Year: it has
// no resolution at all and only marks an open end of a reporting period.
type Granularity int

const (
	GranularityInvalid Granularity = iota
	GranularityDay
	GranularityMonth
	GranularityQuarter
	GranularityYear
	GranularityUnbounded
)

var granularityNames = map[Granularity]string{
	GranularityInvalid:   "invalid",
	GranularityDay:       "day",
	GranularityMonth:     "month",
	GranularityQuarter:   "quarter",
	GranularityYear:      "year",
	GranularityUnbounded: "unbounded",
}

func (g Granularity) String() string {
	if name, ok := granularityNames[g]; ok {
		return name
	}
	return fmt.Sprintf("granularity(%d)", int(g))
}

// ParseGranularity parses a granularity name such as "quarter".
func ParseGranularity(s string) (Granularity, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for g, n := range granularityNames {
		if g != GranularityInvalid && n == name {
			return g, nil
		}
	}
	return GranularityInvalid, fmt.Errorf("%w: unknown granularity %q", ErrInvalidArgument, s)
}

// IsMoreGranularThan reports whether g has a finer resolution than other.
func (g Granularity) IsMoreGranularThan(other Granularity) (bool, error) {
	if err := g.validate(); err != nil {
		return false, err
	}
	if err := other.validate(); err != nil {
		return false, err
	}
	return g < other, nil
}

// IsLessGranularThan reports whether g has a coarser resolution than other.
func (g Granularity) IsLessGranularThan(other Granularity) (bool, error) {
	if err := g.validate(); err != nil {
		return false, err
	}
	if err := other.validate(); err != nil {
		return false, err
	}
	return g > other, nil
}

func (g Granularity) validate() error {
	if g <= GranularityInvalid || g > GranularityUnbounded {
		return fmt.Errorf("%w: granularity %s", ErrInvalidArgument, g)
	}
	return nil
}

// monthsPer is the number of months in one step of g (Month, Quarter, Year only).
func (g Granularity) monthsPer() int {
	switch g {
	case GranularityMonth:
		return 1
	case GranularityQuarter:
		return 3
	case GranularityYear:
		return 12
	default:
		return 0
	}
}

func (g Granularity) letter() byte {
	switch g {
	case GranularityDay:
		return 'd'
	case GranularityMonth:
		return 'm'
	case GranularityQuarter:
		return 'q'
	case GranularityYear:
		return 'y'
	default:
		return '?'
	}
}

func granularityFromLetter(b byte) Granularity {
	switch b {
	case 'd':
		return GranularityDay
	case 'm':
		return GranularityMonth
	case 'q':
		return GranularityQuarter
	case 'y':
		return GranularityYear
	default:
		return GranularityInvalid
	}
}

// =============================================================================
// KIND - Which calendar a unit is interpreted under
// =============================================================================

// Kind is the calendar a unit of time belongs to.
type Kind int

const (
	KindInvalid Kind = iota
	KindCalendar
	KindFiscal
	KindGeneric
)

var kindNames = map[Kind]string{
	KindInvalid:  "invalid",
	KindCalendar: "calendar",
	KindFiscal:   "fiscal",
	KindGeneric:  "generic",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses a kind name such as "fiscal".
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if k != KindInvalid && n == name {
			return k, nil
		}
	}
	return KindInvalid, fmt.Errorf("%w: unknown kind %q", ErrInvalidArgument, s)
}

func (k Kind) letter() byte {
	switch k {
	case KindCalendar:
		return 'c'
	case KindFiscal:
		return 'f'
	case KindGeneric:
		return 'g'
	default:
		return '?'
	}
}

func kindFromLetter(b byte) Kind {
	switch b {
	case 'c':
		return KindCalendar
	case 'f':
		return KindFiscal
	case 'g':
		return KindGeneric
	default:
		return KindInvalid
	}
}
