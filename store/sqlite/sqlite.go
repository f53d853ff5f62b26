/*
Package sqlite provides a SQLite-backed implementation of timeunit.PeriodStore.

PURPOSE:
  Persists the named-period catalog. Periods are pure values, so the only
  thing stored is their text: the plain form as the source of truth plus the
  sortable tokens of each bounded end for indexed overlap queries.

KEY TABLES:
  named_periods: one row per named reporting period

SORTABLE BOUNDS:
  start_token and end_token hold the sortable form of each end (NULL when
  the end is Unbounded). Tokens of one variant sort chronologically as plain
  strings, so overlap candidates are found with string comparisons:
    start_token <= :end AND end_token >= :start
  Candidates are then confirmed with timeunit.HasOverlapWith.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/periods.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - timeunit/store.go: Interface definition
  - timeunit/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/accounting-time/timeunit"
)

// Store implements timeunit.PeriodStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ timeunit.PeriodStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS named_periods (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		granularity TEXT NOT NULL,
		start_token TEXT,
		end_token TEXT,
		display TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_named_periods_variant
		ON named_periods(kind, granularity, start_token, end_token);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PERIOD STORE
// =============================================================================

const selectColumns = "SELECT id, name, display, created_at FROM named_periods"

// Save inserts a named period. An empty ID is replaced with a new UUID.
func (s *Store) Save(ctx context.Context, np timeunit.NamedPeriod) (timeunit.NamedPeriod, error) {
	if strings.TrimSpace(np.Name) == "" {
		return timeunit.NamedPeriod{}, fmt.Errorf("%w: name is required", timeunit.ErrInvalidArgument)
	}
	display, err := np.Period.MarshalText()
	if err != nil {
		return timeunit.NamedPeriod{}, err
	}
	startToken, endToken := boundTokens(np.Period)

	if np.ID == "" {
		np.ID = uuid.New().String()
	}
	if np.CreatedAt.IsZero() {
		np.CreatedAt = time.Now().UTC()
	}
	np.CreatedAt = np.CreatedAt.Truncate(time.Second)

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO named_periods (id, name, kind, granularity, start_token, end_token, display, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		np.ID, np.Name, np.Period.Kind().String(), np.Period.Granularity().String(),
		startToken, endToken, string(display), np.CreatedAt.Format(time.RFC3339),
	)
	if isUniqueConstraintError(err) {
		return timeunit.NamedPeriod{}, fmt.Errorf("%w: %s", timeunit.ErrDuplicateName, np.Name)
	}
	if err != nil {
		return timeunit.NamedPeriod{}, fmt.Errorf("failed to save named period: %w", err)
	}
	return np, nil
}

// Get retrieves a named period by ID.
func (s *Store) Get(ctx context.Context, id string) (timeunit.NamedPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id)
	np, err := scanNamedPeriod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return timeunit.NamedPeriod{}, fmt.Errorf("%w: id %s", timeunit.ErrNotFound, id)
	}
	return np, err
}

// GetByName retrieves a named period by its unique name.
func (s *Store) GetByName(ctx context.Context, name string) (timeunit.NamedPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, selectColumns+" WHERE name = ?", name)
	np, err := scanNamedPeriod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return timeunit.NamedPeriod{}, fmt.Errorf("%w: name %s", timeunit.ErrNotFound, name)
	}
	return np, err
}

// List returns every named period ordered by name.
func (s *Store) List(ctx context.Context) ([]timeunit.NamedPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.query(ctx, selectColumns+" ORDER BY name")
}

// Delete removes a named period.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM named_periods WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: id %s", timeunit.ErrNotFound, id)
	}
	return nil
}

// FindOverlapping returns named periods of p's kind and granularity that
// share at least one unit with p, ordered by name.
func (s *Store) FindOverlapping(ctx context.Context, p timeunit.Period) ([]timeunit.NamedPeriod, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil period", timeunit.ErrInvalidArgument)
	}
	start, end := p.Bounds()
	if start == nil || end == nil {
		return nil, fmt.Errorf("%w: period ends must not be nil", timeunit.ErrInvalidArgument)
	}
	startToken, endToken := boundTokens(p)
	granularity := timeunit.PeriodGranularity(p).String()
	unbounded := timeunit.GranularityUnbounded.String()

	query := selectColumns + `
		WHERE kind = ?
		  AND (? = ? OR granularity = ? OR granularity = ?)
		  AND (start_token IS NULL OR ? IS NULL OR start_token <= ?)
		  AND (end_token IS NULL OR ? IS NULL OR end_token >= ?)
		ORDER BY name
	`

	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates, err := s.query(ctx, query,
		timeunit.PeriodKind(p).String(),
		granularity, unbounded, granularity, unbounded,
		endToken, endToken,
		startToken, startToken,
	)
	if err != nil {
		return nil, err
	}
	return timeunit.Overlapping(p, candidates), nil
}

// =============================================================================
// HELPERS
// =============================================================================

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]timeunit.NamedPeriod, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []timeunit.NamedPeriod
	for rows.Next() {
		np, err := scanNamedPeriod(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, np)
	}
	return result, rows.Err()
}

func scanNamedPeriod(row scanner) (timeunit.NamedPeriod, error) {
	var np timeunit.NamedPeriod
	var display, createdAt string
	if err := row.Scan(&np.ID, &np.Name, &display, &createdAt); err != nil {
		return timeunit.NamedPeriod{}, err
	}
	if err := np.Period.UnmarshalText([]byte(display)); err != nil {
		return timeunit.NamedPeriod{}, fmt.Errorf("stored period %s is corrupt: %w", np.ID, err)
	}
	np.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return np, nil
}

// boundTokens renders the sortable token of each bounded end. Unbounded
// ends are stored as NULL.
func boundTokens(p timeunit.Period) (sql.NullString, sql.NullString) {
	start, end := p.Bounds()
	return sortableToken(start), sortableToken(end)
}

func sortableToken(u timeunit.UnitOfTime) sql.NullString {
	token, err := timeunit.FormatSortable(u)
	if err != nil {
		return sql.NullString{}
	}
	return nullString(token)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}
