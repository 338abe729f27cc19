package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"retiresaveup/internal/core"
)

// PostgresRepository stores history in the calculation_history table with
// payload and result as JSONB.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	if err := RunPostgresMigrations(databaseURL); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresRepository{pool: pool}, nil
}

func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Save implements HistoryWriter
func (r *PostgresRepository) Save(ctx context.Context, rec core.CalculationRecord) error {
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return fmt.Errorf("record id %q: %w", rec.ID, err)
	}
	payload, result, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO calculation_history (id, user_id, vehicle, payload, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, rec.UserID, string(rec.Vehicle), payload, result, rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert calculation %s: %w", rec.ID, err)
	}
	return nil
}

// Get implements HistoryReader
func (r *PostgresRepository) Get(ctx context.Context, id string) (core.CalculationRecord, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		// Not a uuid, so it cannot be stored here.
		return core.CalculationRecord{}, ErrNotFound
	}

	row := r.pool.QueryRow(ctx,
		`SELECT id::text, user_id, vehicle, payload, result, created_at
		 FROM calculation_history WHERE id = $1`, parsed)

	rec, err := scanPostgresRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.CalculationRecord{}, ErrNotFound
	}
	if err != nil {
		return core.CalculationRecord{}, fmt.Errorf("get calculation %s: %w", id, err)
	}
	return rec, nil
}

// ListByUser implements HistoryLister
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]core.CalculationRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, user_id, vehicle, payload, result, created_at
		 FROM calculation_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`, userID, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list calculations for %s: %w", userID, err)
	}
	defer rows.Close()

	out := []core.CalculationRecord{}
	for rows.Next() {
		rec, err := scanPostgresRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}
	return out, nil
}

func scanPostgresRecord(row pgx.Row) (core.CalculationRecord, error) {
	var (
		rec             core.CalculationRecord
		vehicle         string
		payload, result []byte
	)
	if err := row.Scan(&rec.ID, &rec.UserID, &vehicle, &payload, &result, &rec.CreatedAt); err != nil {
		return core.CalculationRecord{}, err
	}
	rec.Vehicle = core.Vehicle(vehicle)
	rec.CreatedAt = rec.CreatedAt.UTC()
	if err := decodeRecord(&rec, payload, result); err != nil {
		return core.CalculationRecord{}, err
	}
	return rec, nil
}
