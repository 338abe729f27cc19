package sheets

import (
	"context"
	"time"

	"retiresaveup/internal/core"
)

// Ports for outbound adapters.
type (
	// HistoryExporter appends one calculation record to an external
	// spreadsheet and returns a reference to the written row.
	HistoryExporter interface {
		Export(ctx context.Context, rec core.CalculationRecord) (rowRef string, err error)
	}
)

// HistoryHeader names the columns written by HistoryRow.
var HistoryHeader = []any{
	"createdAt", "id", "userId", "vehicle",
	"totalTransactionAmount", "totalCeiling",
	"amount", "profit", "taxBenefit",
}

// HistoryRow flattens a record into spreadsheet cells. The last three
// columns sum every k period of the result.
func HistoryRow(rec core.CalculationRecord) []any {
	amount, profit, taxBenefit := rec.Result.Sums()
	return []any{
		rec.CreatedAt.UTC().Format(time.RFC3339),
		rec.ID,
		rec.UserID,
		rec.Vehicle.String(),
		rec.Result.TotalTransactionAmount,
		rec.Result.TotalCeiling,
		amount,
		profit,
		taxBenefit,
	}
}
