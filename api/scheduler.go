/*
scheduler.go - Rolling period scheduler

PURPOSE:
  Keeps a fixed set of clock-relative named periods in the catalog up to
  date: the current month and quarter, the current fiscal quarter, and the
  to-date periods. Reports can then refer to "year-to-date" by name.

ROLLING PERIODS:
  current-month           c-YYYY-MM,c-YYYY-MM
  current-quarter         c-YYYY-Qn,c-YYYY-Qn
  current-fiscal-quarter  f-YYYY-Qn,f-YYYY-Qn (fiscal year per FiscalQ1)
  month-to-date           first day of month through today
  year-to-date            calendar Q1 through the current quarter
  fiscal-year-to-date     fiscal Q1 through the current fiscal quarter

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Computes every rolling period from the clock on each tick
  - Skips periods whose stored value is already current
  - Replaces stale ones (delete + save, the catalog has no update)

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewRollingScheduler(store, timeunit.Q4)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - timeunit/conversion.go: Fiscal quarter mapping
  - timeunit/arithmetic.go: UnitsToDate
*/
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/warp/accounting-time/timeunit"
)

// RollingScheduler keeps clock-relative named periods current.
type RollingScheduler struct {
	Store         timeunit.PeriodStore
	FiscalQ1      timeunit.QuarterNumber
	CheckInterval time.Duration
	Enabled       bool

	now    func() time.Time
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewRollingScheduler creates a new scheduler.
func NewRollingScheduler(store timeunit.PeriodStore, fiscalQ1 timeunit.QuarterNumber) *RollingScheduler {
	return &RollingScheduler{
		Store:         store,
		FiscalQ1:      fiscalQ1,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		now:           time.Now,
	}
}

// Start begins the scheduler.
func (rs *RollingScheduler) Start() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if !rs.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	rs.ticker = time.NewTicker(rs.CheckInterval)
	rs.stop = make(chan struct{})
	rs.wg.Add(1)

	go rs.run()

	log.Printf("[Scheduler] Started with check interval: %v", rs.CheckInterval)
}

// Stop stops the scheduler.
func (rs *RollingScheduler) Stop() {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.ticker != nil {
		rs.ticker.Stop()
		close(rs.stop)
		rs.wg.Wait()
		rs.ticker = nil
		log.Println("[Scheduler] Stopped")
	}
}

func (rs *RollingScheduler) run() {
	defer rs.wg.Done()

	// Run immediately on start
	rs.checkAndRoll()

	for {
		select {
		case <-rs.ticker.C:
			rs.checkAndRoll()
		case <-rs.stop:
			return
		}
	}
}

func (rs *RollingScheduler) checkAndRoll() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	rolled, err := rs.RunNow(ctx)
	if err != nil {
		log.Printf("[Scheduler] Error rolling periods: %v", err)
		return
	}
	if rolled > 0 {
		log.Printf("[Scheduler] Completed: %d periods rolled", rolled)
	}
}

// RunNow brings every rolling period up to date and returns how many were
// created or replaced.
func (rs *RollingScheduler) RunNow(ctx context.Context) (int, error) {
	wanted, err := RollingPeriods(rs.now(), rs.FiscalQ1)
	if err != nil {
		return 0, err
	}

	rolled := 0
	for _, np := range wanted {
		changed, err := rs.roll(ctx, np)
		if err != nil {
			return rolled, fmt.Errorf("roll %s: %w", np.Name, err)
		}
		if changed {
			log.Printf("[Scheduler] Rolled %s to %s", np.Name, np.Period)
			rolled++
		}
	}
	return rolled, nil
}

func (rs *RollingScheduler) roll(ctx context.Context, np timeunit.NamedPeriod) (bool, error) {
	existing, err := rs.Store.GetByName(ctx, np.Name)
	switch {
	case errors.Is(err, timeunit.ErrNotFound):
	case err != nil:
		return false, err
	case existing.Period.Equal(np.Period):
		return false, nil
	default:
		if err := rs.Store.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
	}

	if _, err := rs.Store.Save(ctx, np); err != nil {
		return false, err
	}
	return true, nil
}

// RollingPeriods computes the rolling periods for the day containing now.
func RollingPeriods(now time.Time, fiscalQ1 timeunit.QuarterNumber) ([]timeunit.NamedPeriod, error) {
	today, err := timeunit.CalendarDayOf(now)
	if err != nil {
		return nil, err
	}
	month, err := timeunit.NewCalendarMonth(today.Year(), today.Month())
	if err != nil {
		return nil, err
	}
	quarter, err := timeunit.NewCalendarQuarter(today.Year(), timeunit.QuarterNumber((int(today.Month())-1)/3+1))
	if err != nil {
		return nil, err
	}
	fiscalQuarter, err := timeunit.ToFiscalQuarter(quarter, fiscalQ1)
	if err != nil {
		return nil, err
	}
	firstOfMonth, err := timeunit.FirstCalendarDay(month)
	if err != nil {
		return nil, err
	}
	quarters, err := timeunit.UnitsToDate(quarter)
	if err != nil {
		return nil, err
	}
	fiscalQuarters, err := timeunit.UnitsToDate(fiscalQuarter)
	if err != nil {
		return nil, err
	}

	bounds := []struct {
		name       string
		start, end timeunit.UnitOfTime
	}{
		{"current-month", month, month},
		{"current-quarter", quarter, quarter},
		{"current-fiscal-quarter", fiscalQuarter, fiscalQuarter},
		{"month-to-date", firstOfMonth, today},
		{"year-to-date", quarters[0], quarter},
		{"fiscal-year-to-date", fiscalQuarters[0], fiscalQuarter},
	}

	periods := make([]timeunit.NamedPeriod, 0, len(bounds))
	for _, b := range bounds {
		p, err := timeunit.NewReportingPeriod(b.start, b.end)
		if err != nil {
			return nil, err
		}
		periods = append(periods, timeunit.NamedPeriod{Name: b.name, Period: p})
	}
	return periods, nil
}
