package storage

import (
	"context"
	"errors"

	"retiresaveup/internal/core"
)

//go:generate mockgen -destination=store_mock.go -package=storage . HistoryStore

// ErrNotFound is returned by Get when no record has the requested id.
var ErrNotFound = errors.New("calculation record not found")

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// HistoryWriter persists calculation records.
type HistoryWriter interface {
	Save(ctx context.Context, rec core.CalculationRecord) error
}

// HistoryReader loads a single record by id.
type HistoryReader interface {
	Get(ctx context.Context, id string) (core.CalculationRecord, error)
}

// HistoryLister returns a user's records, newest first.
type HistoryLister interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]core.CalculationRecord, error)
}

// HistoryStore is the full set of operations every backend provides.
type HistoryStore interface {
	HistoryWriter
	HistoryReader
	HistoryLister
	Ping(ctx context.Context) error
	Close() error
}

// ClampLimit maps a requested page size onto [1, MaxListLimit], with
// non-positive values meaning DefaultListLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
