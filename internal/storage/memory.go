package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"retiresaveup/internal/core"
)

// MemoryRepository keeps records in process. Nothing survives a restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]core.CalculationRecord
	ordered []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]core.CalculationRecord)}
}

func (m *MemoryRepository) Save(_ context.Context, rec core.CalculationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byID[rec.ID]; exists {
		return fmt.Errorf("save record %s: duplicate id", rec.ID)
	}
	m.byID[rec.ID] = rec
	m.ordered = append(m.ordered, rec.ID)
	return nil
}

func (m *MemoryRepository) Get(_ context.Context, id string) (core.CalculationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.byID[id]
	if !ok {
		return core.CalculationRecord{}, ErrNotFound
	}
	return rec, nil
}

func (m *MemoryRepository) ListByUser(_ context.Context, userID string, limit int) ([]core.CalculationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []core.CalculationRecord{}
	// Walk backwards so insertion order breaks createdAt ties, newest first.
	for i := len(m.ordered) - 1; i >= 0; i-- {
		if rec := m.byID[m.ordered[i]]; rec.UserID == userID {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if limit = ClampLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryRepository) Ping(context.Context) error { return nil }

func (m *MemoryRepository) Close() error { return nil }
