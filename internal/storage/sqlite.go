package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"retiresaveup/internal/core"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunSQLiteMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Save implements HistoryWriter
func (r *SQLiteRepository) Save(ctx context.Context, rec core.CalculationRecord) error {
	payload, result, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO calculation_history (id, user_id, vehicle, payload, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, string(rec.Vehicle), string(payload), string(result), rec.CreatedAt.UTC().UnixMicro(),
	)
	if err != nil {
		return fmt.Errorf("insert calculation %s: %w", rec.ID, err)
	}
	return nil
}

// Get implements HistoryReader
func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.CalculationRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, vehicle, payload, result, created_at
		 FROM calculation_history WHERE id = ?`, id)

	rec, err := scanSQLiteRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.CalculationRecord{}, ErrNotFound
	}
	if err != nil {
		return core.CalculationRecord{}, fmt.Errorf("get calculation %s: %w", id, err)
	}
	return rec, nil
}

// ListByUser implements HistoryLister
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string, limit int) ([]core.CalculationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, vehicle, payload, result, created_at
		 FROM calculation_history
		 WHERE user_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`, userID, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list calculations for %s: %w", userID, err)
	}
	defer rows.Close()

	out := []core.CalculationRecord{}
	for rows.Next() {
		rec, err := scanSQLiteRecord(rows)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteRecord(row rowScanner) (core.CalculationRecord, error) {
	var (
		rec             core.CalculationRecord
		vehicle         string
		payload, result string
		createdAt       int64
	)
	if err := row.Scan(&rec.ID, &rec.UserID, &vehicle, &payload, &result, &createdAt); err != nil {
		return core.CalculationRecord{}, err
	}
	rec.Vehicle = core.Vehicle(vehicle)
	rec.CreatedAt = time.UnixMicro(createdAt).UTC()
	if err := decodeRecord(&rec, []byte(payload), []byte(result)); err != nil {
		return core.CalculationRecord{}, err
	}
	return rec, nil
}

func encodeRecord(rec core.CalculationRecord) (payload, result []byte, err error) {
	if payload, err = json.Marshal(rec.Payload); err != nil {
		return nil, nil, fmt.Errorf("encode payload: %w", err)
	}
	if result, err = json.Marshal(rec.Result); err != nil {
		return nil, nil, fmt.Errorf("encode result: %w", err)
	}
	return payload, result, nil
}

func decodeRecord(rec *core.CalculationRecord, payload, result []byte) error {
	if err := json.Unmarshal(payload, &rec.Payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if err := json.Unmarshal(result, &rec.Result); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
