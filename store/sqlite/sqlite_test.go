package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/accounting-time/store/sqlite"
	"github.com/warp/accounting-time/timeunit"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func mustPeriod(t *testing.T, s string) timeunit.ReportingPeriod[timeunit.UnitOfTime] {
	t.Helper()
	p, err := timeunit.ParseReportingPeriod[timeunit.UnitOfTime](s)
	require.NoError(t, err)
	return p
}

func save(t *testing.T, store *sqlite.Store, name, period string) timeunit.NamedPeriod {
	t.Helper()
	np, err := store.Save(context.Background(), timeunit.NamedPeriod{Name: name, Period: mustPeriod(t, period)})
	require.NoError(t, err)
	return np
}

// =============================================================================
// CATALOG
// =============================================================================

func TestStore_SaveAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	saved := save(t, store, "FY2018 H1", "f-2018-Q1,f-2018-Q2")
	assert.NotEmpty(t, saved.ID)

	got, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "FY2018 H1", got.Name)
	assert.Equal(t, saved.Period, got.Period)
	assert.True(t, saved.CreatedAt.Equal(got.CreatedAt))

	byName, err := store.GetByName(ctx, "FY2018 H1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, byName.ID)
}

func TestStore_KeepsOpenEndedPeriods(t *testing.T) {
	store := newTestStore(t)

	saved := save(t, store, "since launch", "c-2015-03-02,c-unbounded")
	got, err := store.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, timeunit.CalendarUnbounded{}, got.Period.End())
	assert.Equal(t, "c-2015-03-02,c-unbounded", got.Period.String())
}

func TestStore_DuplicateNameRejected(t *testing.T) {
	store := newTestStore(t)
	save(t, store, "2017", "c-2017,c-2017")

	_, err := store.Save(context.Background(), timeunit.NamedPeriod{Name: "2017", Period: mustPeriod(t, "c-2016,c-2017")})
	assert.ErrorIs(t, err, timeunit.ErrDuplicateName)
}

func TestStore_InvalidInput(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save(context.Background(), timeunit.NamedPeriod{Period: mustPeriod(t, "c-2017,c-2017")})
	assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)

	_, err = store.Save(context.Background(), timeunit.NamedPeriod{Name: "no period"})
	assert.ErrorIs(t, err, timeunit.ErrInvalidArgument)
}

func TestStore_ListAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	b := save(t, store, "b", "g-2001-Q1,g-2001-Q4")
	save(t, store, "a", "c-2017-05,c-2017-06")

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "b", all[1].Name)

	require.NoError(t, store.Delete(ctx, b.ID))
	assert.ErrorIs(t, store.Delete(ctx, b.ID), timeunit.ErrNotFound)

	_, err = store.Get(ctx, b.ID)
	assert.ErrorIs(t, err, timeunit.ErrNotFound)
	_, err = store.GetByName(ctx, "b")
	assert.ErrorIs(t, err, timeunit.ErrNotFound)
}

func TestStore_FindOverlapping(t *testing.T) {
	// GIVEN: A catalog mixing variants and open ends
	// WHEN: Searching for overlaps with 2017-Q2..2017-Q3
	// THEN: Only calendar quarter periods sharing a quarter come back

	store := newTestStore(t)
	save(t, store, "h1", "c-2017-Q1,c-2017-Q2")
	save(t, store, "h2", "c-2017-Q3,c-2017-Q4")
	save(t, store, "2016", "c-2016-Q1,c-2016-Q4")
	save(t, store, "from Q4", "c-2017-Q4,c-unbounded")
	save(t, store, "until Q2", "c-unbounded,c-2017-Q2")
	save(t, store, "forever", "c-unbounded,c-unbounded")
	save(t, store, "fiscal", "f-2017-Q1,f-2017-Q4")
	save(t, store, "months", "c-2017-05,c-2017-06")
	save(t, store, "2009-2011", "c-2009-Q1,c-2011-Q4")

	found, err := store.FindOverlapping(context.Background(), mustPeriod(t, "c-2017-Q2,c-2017-Q3"))
	require.NoError(t, err)

	var names []string
	for _, np := range found {
		names = append(names, np.Name)
	}
	assert.Equal(t, []string{"forever", "h1", "h2", "until Q2"}, names)
}

func TestStore_FindOverlapping_OpenQuery(t *testing.T) {
	store := newTestStore(t)
	save(t, store, "old", "g-1999,g-2000")
	save(t, store, "new", "g-2020,g-2021")

	found, err := store.FindOverlapping(context.Background(), mustPeriod(t, "g-2010,g-unbounded"))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "new", found[0].Name)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "periods.db")

	store, err := sqlite.New(path)
	require.NoError(t, err)
	saved := save(t, store, "FY", "f-2018,f-2019")
	require.NoError(t, store.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	got, err := reopened.GetByName(context.Background(), "FY")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
}
