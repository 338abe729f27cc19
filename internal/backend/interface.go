package backend

import (
	"context"

	"retiresaveup/internal/amqp"
	"retiresaveup/internal/services"
	"retiresaveup/internal/sheets"
	"retiresaveup/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult carries everything the API server needs for history.
// Publisher is nil when AMQP is disabled or unreachable.
type BackendResult struct {
	Store     storage.HistoryStore
	History   *services.HistoryService
	Publisher *amqp.Client
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend opens the store and event publisher and wires the
	// history service over them.
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)

	// CreateStore opens only the history store.
	CreateStore(ctx context.Context, config Config) (storage.HistoryStore, error)

	// CreateExporter returns the spreadsheet exporter, or a logging
	// in-memory one when no spreadsheet is configured.
	CreateExporter(ctx context.Context, config Config) (sheets.HistoryExporter, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Postgres specific
	DatabaseURL string

	// Events, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Export, disabled when GoogleSpreadsheetID is empty
	GoogleSpreadsheetID   string
	GoogleSheetName       string
	GoogleCredentialsFile string
	GoogleCredentialsJSON string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend   BackendType = "memory"
	SQLiteBackend   BackendType = "sqlite"
	PostgresBackend BackendType = "postgres"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, PostgresBackend:
		return true
	default:
		return false
	}
}

// Shared reports whether several processes can see the same records.
func (bt BackendType) Shared() bool {
	return bt == SQLiteBackend || bt == PostgresBackend
}
