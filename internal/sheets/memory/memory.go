package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"retiresaveup/internal/core"
	"retiresaveup/internal/log"
	ports "retiresaveup/internal/sheets"
)

// Exporter keeps exported rows in process and logs each one. It stands in
// for a spreadsheet when none is configured.
type Exporter struct {
	mu     sync.Mutex
	rows   [][]any
	seen   map[string]int
	logger *log.Logger
}

var _ ports.HistoryExporter = (*Exporter)(nil)

func New(logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.Discard()
	}
	return &Exporter{
		seen:   make(map[string]int),
		logger: logger.WithComponent(log.ComponentSheets),
	}
}

// Export stores the record's row. Re-exporting a record returns the
// reference of its first export and adds nothing.
func (e *Exporter) Export(ctx context.Context, rec core.CalculationRecord) (string, error) {
	if rec.ID == "" {
		return "", errors.New("record has no id")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if n, ok := e.seen[rec.ID]; ok {
		return fmt.Sprintf("mem:%d", n), nil
	}

	row := ports.HistoryRow(rec)
	e.rows = append(e.rows, row)
	e.seen[rec.ID] = len(e.rows)

	e.logger.InfoContext(ctx, "Calculation exported",
		log.NewFields().WithCalculation(rec.UserID, rec.Vehicle.String(), len(rec.Payload.Transactions)).WithRecord(rec.ID).ToSlice()...)
	return fmt.Sprintf("mem:%d", len(e.rows)), nil
}

// Rows returns a copy of every exported row in export order.
func (e *Exporter) Rows() [][]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([][]any, len(e.rows))
	for i, r := range e.rows {
		out[i] = append([]any(nil), r...)
	}
	return out
}
