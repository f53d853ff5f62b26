// Package store provides PeriodStore implementations.
package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/warp/accounting-time/timeunit"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu     sync.RWMutex
	byID   map[string]timeunit.NamedPeriod
	byName map[string]string
	now    func() time.Time
}

var _ timeunit.PeriodStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		byID:   make(map[string]timeunit.NamedPeriod),
		byName: make(map[string]string),
		now:    time.Now,
	}
}

// Save inserts a named period. Names are unique.
func (m *Memory) Save(_ context.Context, np timeunit.NamedPeriod) (timeunit.NamedPeriod, error) {
	if strings.TrimSpace(np.Name) == "" {
		return timeunit.NamedPeriod{}, fmt.Errorf("%w: name is required", timeunit.ErrInvalidArgument)
	}
	start, end := np.Period.Bounds()
	if start == nil || end == nil {
		return timeunit.NamedPeriod{}, fmt.Errorf("%w: period is required", timeunit.ErrInvalidArgument)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.byName[np.Name]; taken {
		return timeunit.NamedPeriod{}, fmt.Errorf("%w: %s", timeunit.ErrDuplicateName, np.Name)
	}
	if np.ID == "" {
		np.ID = uuid.New().String()
	}
	if _, taken := m.byID[np.ID]; taken {
		return timeunit.NamedPeriod{}, fmt.Errorf("%w: id %s", timeunit.ErrDuplicateName, np.ID)
	}
	if np.CreatedAt.IsZero() {
		np.CreatedAt = m.now().UTC()
	}

	m.byID[np.ID] = np
	m.byName[np.Name] = np.ID
	return np, nil
}

func (m *Memory) Get(_ context.Context, id string) (timeunit.NamedPeriod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	np, ok := m.byID[id]
	if !ok {
		return timeunit.NamedPeriod{}, fmt.Errorf("%w: id %s", timeunit.ErrNotFound, id)
	}
	return np, nil
}

func (m *Memory) GetByName(_ context.Context, name string) (timeunit.NamedPeriod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byName[name]
	if !ok {
		return timeunit.NamedPeriod{}, fmt.Errorf("%w: name %s", timeunit.ErrNotFound, name)
	}
	return m.byID[id], nil
}

func (m *Memory) List(_ context.Context) ([]timeunit.NamedPeriod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sortedLocked(), nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	np, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%w: id %s", timeunit.ErrNotFound, id)
	}
	delete(m.byID, id)
	delete(m.byName, np.Name)
	return nil
}

func (m *Memory) FindOverlapping(_ context.Context, p timeunit.Period) ([]timeunit.NamedPeriod, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil period", timeunit.ErrInvalidArgument)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return timeunit.Overlapping(p, m.sortedLocked()), nil
}

func (m *Memory) sortedLocked() []timeunit.NamedPeriod {
	result := make([]timeunit.NamedPeriod, 0, len(m.byID))
	for _, np := range m.byID {
		result = append(result, np)
	}
	slices.SortFunc(result, func(a, b timeunit.NamedPeriod) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}
