/*
store.go - Persistence interface for named reporting periods

PURPOSE:
  A catalog of reporting periods saved under a human-readable name, such as
  "FY2018 H1" or "Since launch". Everything else in this package is pure;
  the catalog is the one place periods are persisted.

KEY INTERFACES:
  PeriodStore: save, look up, list, delete, and overlap search

UNIQUENESS:
  Names are unique across the catalog. Saving a second period under a taken
  name fails with ErrDuplicateName. Lookups of missing IDs or names fail
  with ErrNotFound.

IMPLEMENTATIONS:
  - timeunit/store/memory.go: In-memory for testing
  - store/sqlite/sqlite.go: SQLite, stores sortable bound tokens

SEE ALSO:
  - algebra.go: HasOverlapWith backs FindOverlapping
*/
package timeunit

import (
	"context"
	"time"
)

// NamedPeriod is a reporting period saved in the catalog.
type NamedPeriod struct {
	ID        string
	Name      string
	Period    ReportingPeriod[UnitOfTime]
	CreatedAt time.Time
}

// PeriodStore persists named reporting periods.
type PeriodStore interface {
	// Save inserts np. An empty ID is assigned by the store; the stored
	// value is returned.
	Save(ctx context.Context, np NamedPeriod) (NamedPeriod, error)

	Get(ctx context.Context, id string) (NamedPeriod, error)
	GetByName(ctx context.Context, name string) (NamedPeriod, error)

	// List returns every named period ordered by name.
	List(ctx context.Context) ([]NamedPeriod, error)

	Delete(ctx context.Context, id string) error

	// FindOverlapping returns the named periods of p's variant that share at
	// least one unit with p, ordered by name.
	FindOverlapping(ctx context.Context, p Period) ([]NamedPeriod, error)
}

// Overlapping filters candidates down to those overlapping p. Candidates of
// a different variant are skipped rather than reported as errors.
func Overlapping(p Period, candidates []NamedPeriod) []NamedPeriod {
	var out []NamedPeriod
	for _, c := range candidates {
		ok, err := HasOverlapWith(c.Period, p)
		if err == nil && ok {
			out = append(out, c)
		}
	}
	return out
}
