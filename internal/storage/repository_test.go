package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retiresaveup/internal/core"
)

func sampleRecord(userID string, createdAt time.Time) core.CalculationRecord {
	return core.CalculationRecord{
		ID:      uuid.NewString(),
		UserID:  userID,
		Vehicle: core.VehicleNPS,
		Payload: core.ReturnsInput{
			Age:       29,
			Wage:      50000,
			Inflation: 5.5,
			K:         []core.KPeriod{{DateRange: core.DateRange{Start: "2023-01-01 00:00:00", End: "2023-12-31 23:59:59"}}},
			Transactions: []core.TransactionInput{
				{Date: "2023-10-12 20:15:30", Amount: 250},
			},
		},
		Result: core.ReturnsResult{
			TotalTransactionAmount: 250,
			TotalCeiling:           300,
			SavingsByDates: []core.SavingsByDate{
				{Start: "2023-01-01 00:00:00", End: "2023-12-31 23:59:59", Amount: 50, Profit: 29.96},
			},
		},
		CreatedAt: createdAt.UTC().Truncate(time.Microsecond),
	}
}

// exerciseStore runs the behaviour every HistoryStore must share.
func exerciseStore(t *testing.T, store HistoryStore) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Ping(ctx))

	first := sampleRecord("alice", base)
	second := sampleRecord("alice", base.Add(time.Minute))
	other := sampleRecord("bob", base.Add(2*time.Minute))
	for _, rec := range []core.CalculationRecord{first, second, other} {
		require.NoError(t, store.Save(ctx, rec))
	}

	t.Run("get round trips the record", func(t *testing.T) {
		got, err := store.Get(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	})

	t.Run("get unknown id", func(t *testing.T) {
		_, err := store.Get(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list is per user and newest first", func(t *testing.T) {
		got, err := store.ListByUser(ctx, "alice", 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, second.ID, got[0].ID)
		assert.Equal(t, first.ID, got[1].ID)
	})

	t.Run("list honours limit", func(t *testing.T) {
		got, err := store.ListByUser(ctx, "alice", 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, second.ID, got[0].ID)
	})

	t.Run("list for unknown user is empty, not nil", func(t *testing.T) {
		got, err := store.ListByUser(ctx, "carol", 10)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, first))
	})
}

func TestMemoryRepository(t *testing.T) {
	store := NewMemoryRepository()
	defer store.Close()
	exerciseStore(t, store)
}

func TestSQLiteRepository(t *testing.T) {
	store, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	defer store.Close()
	exerciseStore(t, store)
}

func TestSQLiteRepositoryReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	rec := sampleRecord("alice", time.Now())

	store, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), rec))
	require.NoError(t, store.Close())

	// Migrations must be idempotent on an already migrated file.
	store, err = NewSQLiteRepository(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.UserID, got.UserID)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultListLimit, ClampLimit(0))
	assert.Equal(t, DefaultListLimit, ClampLimit(-3))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxListLimit, ClampLimit(10_000))
}
