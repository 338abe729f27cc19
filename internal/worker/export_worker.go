package worker

import (
	"context"
	"errors"
	"fmt"

	"retiresaveup/internal/amqp"
	"retiresaveup/internal/log"
	"retiresaveup/internal/sheets"
	"retiresaveup/internal/storage"
)

// ExportWorker copies recorded calculations from the shared store to a
// spreadsheet as their events arrive.
type ExportWorker struct {
	store    storage.HistoryReader
	exporter sheets.HistoryExporter
	logger   *log.Logger
}

func NewExportWorker(store storage.HistoryReader, exporter sheets.HistoryExporter, logger *log.Logger) *ExportWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &ExportWorker{
		store:    store,
		exporter: exporter,
		logger:   logger.WithComponent(log.ComponentWorker),
	}
}

// HandleCalculationRecorded exports the record named by msg. It matches
// amqp.Handler: a returned error requeues the message.
func (w *ExportWorker) HandleCalculationRecorded(ctx context.Context, msg *amqp.CalculationRecordedMessage) error {
	w.logger.InfoContext(ctx, "Processing calculation event",
		log.FieldRecordID, msg.ID,
		log.FieldUserID, msg.UserID,
		log.FieldVehicle, msg.Vehicle)

	rec, err := w.store.Get(ctx, msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		// Retrying cannot make it appear.
		w.logger.WarnContext(ctx, "Calculation not in store, dropping event", log.FieldRecordID, msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get calculation from storage: %w", err)
	}

	ref, err := w.exporter.Export(ctx, rec)
	if err != nil {
		w.logger.ErrorContext(ctx, "Failed to export calculation",
			log.NewFields().WithRecord(msg.ID).WithError(err).WithOperation(log.OpExport).ToSlice()...)
		return fmt.Errorf("export calculation: %w", err)
	}

	w.logger.InfoContext(ctx, "Successfully exported calculation",
		log.FieldRecordID, msg.ID,
		"row_ref", ref,
		"event_time", msg.Timestamp)
	return nil
}
