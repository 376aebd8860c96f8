package store

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/coder/quartz"
)

// MemoryStore keeps records in memory
type MemoryStore struct {
	mu      sync.RWMutex
	clock   quartz.Clock
	records map[string]Record
}

// NewMemoryStore returns an empty store. A nil clock uses the real one.
func NewMemoryStore(clock quartz.Clock) *MemoryStore {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &MemoryStore{clock: clock, records: make(map[string]Record)}
}

func (m *MemoryStore) Save(ctx context.Context, rec Record) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	if rec.ID == "" {
		return Record{}, fmt.Errorf("save: record has no id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID]; ok {
		return Record{}, fmt.Errorf("save %s: %w", rec.ID, ErrDuplicate)
	}
	rec.CreatedAt = m.clock.Now().UTC()
	rec.Payoffs = maps.Clone(rec.Payoffs)
	m.records[rec.ID] = rec
	return rec, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return Record{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}
	return rec, nil
}

func (m *MemoryStore) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	records := make([]Record, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, rec)
	}
	m.mu.RUnlock()

	sortNewestFirst(records)
	return records, nil
}
