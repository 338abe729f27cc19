package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"retiresaveup/internal/amqp"
	"retiresaveup/internal/core"
	"retiresaveup/internal/log"
	"retiresaveup/internal/storage"
)

//go:generate mockgen -destination=publisher_mock.go -package=services . EventPublisher

// EventPublisher announces stored calculations to downstream consumers.
type EventPublisher interface {
	PublishCalculationRecorded(ctx context.Context, msg *amqp.CalculationRecordedMessage) error
}

// HistoryService stores calculation records and publishes an event per
// record. The store is authoritative; events are best effort.
type HistoryService struct {
	store     storage.HistoryStore
	publisher EventPublisher
	logger    *log.Logger

	now   func() time.Time
	newID func() string
}

// NewHistoryService wires a store and an optional publisher. A nil publisher
// disables events.
func NewHistoryService(store storage.HistoryStore, publisher EventPublisher, logger *log.Logger) *HistoryService {
	if logger == nil {
		logger = log.Discard()
	}
	return &HistoryService{
		store:     store,
		publisher: publisher,
		logger:    logger.WithComponent(log.ComponentHistory),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Record saves a completed calculation for userID and publishes a
// calculation.recorded event for it.
func (s *HistoryService) Record(ctx context.Context, userID string, vehicle core.Vehicle, payload core.ReturnsInput, result core.ReturnsResult) (core.CalculationRecord, error) {
	rec := core.CalculationRecord{
		ID:        s.newID(),
		UserID:    userID,
		Vehicle:   vehicle,
		Payload:   payload,
		Result:    result,
		CreatedAt: s.now(),
	}

	if err := s.store.Save(ctx, rec); err != nil {
		return core.CalculationRecord{}, fmt.Errorf("save calculation: %w", err)
	}

	if err := s.publish(ctx, rec); err != nil {
		// Record is saved; the export can be replayed from the store.
		s.logger.ErrorContext(ctx, "Failed to publish calculation event",
			log.NewFields().WithRecord(rec.ID).WithError(err).WithOperation(log.OpPublish).ToSlice()...)
	}

	s.logger.InfoContext(ctx, "Calculation recorded",
		log.NewFields().WithCalculation(userID, vehicle.String(), len(payload.Transactions)).WithRecord(rec.ID).ToSlice()...)
	return rec, nil
}

func (s *HistoryService) publish(ctx context.Context, rec core.CalculationRecord) error {
	if s.publisher == nil {
		s.logger.DebugContext(ctx, "AMQP publisher not available, skipping calculation event", log.FieldRecordID, rec.ID)
		return nil
	}
	return s.publisher.PublishCalculationRecorded(ctx, amqp.NewCalculationRecordedMessage(rec))
}

// List returns userID's records newest first. limit is clamped to the
// store's bounds.
func (s *HistoryService) List(ctx context.Context, userID string, limit int) ([]core.CalculationRecord, error) {
	recs, err := s.store.ListByUser(ctx, userID, storage.ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	return recs, nil
}

// Get loads one record; storage.ErrNotFound passes through.
func (s *HistoryService) Get(ctx context.Context, id string) (core.CalculationRecord, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return core.CalculationRecord{}, fmt.Errorf("get calculation %s: %w", id, err)
	}
	return rec, nil
}

// Ping reports whether the store is reachable.
func (s *HistoryService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Close closes the store and, when it has one, the publisher.
func (s *HistoryService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if closer, ok := s.publisher.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close history service: %w", errors.Join(errs...))
	}
	return nil
}
