package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/accounting-time/timeunit"
	"github.com/warp/accounting-time/timeunit/store"
)

func displayByName(t *testing.T, nps []timeunit.NamedPeriod) map[string]string {
	t.Helper()
	out := make(map[string]string, len(nps))
	for _, np := range nps {
		out[np.Name] = np.Period.String()
	}
	return out
}

func TestRollingPeriods(t *testing.T) {
	// GIVEN: 15 Nov 2017 and a fiscal year starting in calendar Q4
	now := time.Date(2017, time.November, 15, 10, 0, 0, 0, time.UTC)

	periods, err := RollingPeriods(now, timeunit.Q4)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"current-month":          "c-2017-11,c-2017-11",
		"current-quarter":        "c-2017-Q4,c-2017-Q4",
		"current-fiscal-quarter": "f-2018-Q1,f-2018-Q1",
		"month-to-date":          "c-2017-11-01,c-2017-11-15",
		"year-to-date":           "c-2017-Q1,c-2017-Q4",
		"fiscal-year-to-date":    "f-2018-Q1,f-2018-Q1",
	}, displayByName(t, periods))
}

func TestRollingScheduler_RunNow(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	rs := NewRollingScheduler(mem, timeunit.Q4)

	clock := time.Date(2017, time.November, 15, 0, 0, 0, 0, time.UTC)
	rs.now = func() time.Time { return clock }

	// WHEN: The first run populates an empty catalog
	rolled, err := rs.RunNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, rolled)

	// THEN: A second run on the same day changes nothing
	rolled, err = rs.RunNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, rolled)

	// WHEN: The clock moves into the next month of the same quarter
	clock = time.Date(2017, time.December, 1, 0, 0, 0, 0, time.UTC)
	rolled, err = rs.RunNow(ctx)
	require.NoError(t, err)

	// THEN: Only the month-relative periods are replaced
	assert.Equal(t, 2, rolled)
	mtd, err := mem.GetByName(ctx, "month-to-date")
	require.NoError(t, err)
	assert.Equal(t, "c-2017-12-01,c-2017-12-01", mtd.Period.String())

	all, err := mem.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestRollingScheduler_LeavesOtherPeriodsAlone(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	p, err := timeunit.ParseReportingPeriod[timeunit.UnitOfTime]("f-2018-Q1,f-2018-Q4")
	require.NoError(t, err)
	saved, err := mem.Save(ctx, timeunit.NamedPeriod{Name: "FY2018", Period: p})
	require.NoError(t, err)

	rs := NewRollingScheduler(mem, timeunit.Q1)
	rs.now = func() time.Time { return time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC) }
	_, err = rs.RunNow(ctx)
	require.NoError(t, err)

	got, err := mem.GetByName(ctx, "FY2018")
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	fytd, err := mem.GetByName(ctx, "fiscal-year-to-date")
	require.NoError(t, err)
	assert.Equal(t, "f-2020-Q1,f-2020-Q1", fytd.Period.String())
}

func TestRollingScheduler_DisabledDoesNotStart(t *testing.T) {
	rs := NewRollingScheduler(store.NewMemory(), timeunit.Q1)
	rs.Enabled = false
	rs.Start()
	assert.Nil(t, rs.ticker)
	rs.Stop()
}
