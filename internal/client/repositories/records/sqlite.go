package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AHx92/my-workout-tracker/internal/client/models"
	"github.com/AHx92/my-workout-tracker/internal/common"
	"github.com/AHx92/my-workout-tracker/internal/dbx"
)

// ErrMalformedPayload marks a stored row whose payload no longer decodes.
var ErrMalformedPayload = errors.New("malformed payload")

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db          dbx.DBTX
	onMalformed func(id int64, err error)
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// OnMalformed registers fn to be told about rows that list queries skip
// because their payload does not decode.
func (r *SQLiteRepository) OnMalformed(fn func(id int64, err error)) {
	r.onMalformed = fn
}

func (r *SQLiteRepository) Insert(ctx context.Context, rec *models.Record) (int64, error) {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode payload: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO records (payload, timestamp, synced) VALUES (?, ?, ?)`,
		string(payload), rec.Timestamp, rec.Synced)
	if err != nil {
		return 0, fmt.Errorf("failed to insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get record id: %w", err)
	}

	rec.ID = id
	return id, nil
}

func (r *SQLiteRepository) GetUnsynced(ctx context.Context) ([]*models.Record, error) {
	query := `SELECT id, payload, timestamp, synced FROM records WHERE synced = ? ORDER BY id`
	return r.query(ctx, "unsynced records", query, false)
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]*models.Record, error) {
	query := `SELECT id, payload, timestamp, synced FROM records ORDER BY id`
	return r.query(ctx, "records", query)
}

// MarkSynced never reports absence: zero affected rows is not an error.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE records SET synced = ? WHERE id = ? AND synced = ?`, true, id, false)
	if err != nil {
		return fmt.Errorf("failed to mark record %d synced: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, payload, timestamp, synced FROM records WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return rec, nil
}

func (r *SQLiteRepository) query(ctx context.Context, what string, query string, args ...any) ([]*models.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", what, err)
	}
	defer rows.Close()

	result := []*models.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if errors.Is(err, ErrMalformedPayload) {
			if r.onMalformed != nil {
				r.onMalformed(rec.ID, err)
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", what, err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.Record, error) {
	var (
		rec     models.Record
		payload string
	)
	if err := s.Scan(&rec.ID, &payload, &rec.Timestamp, &rec.Synced); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(payload), &rec.Payload); err != nil {
		return &models.Record{ID: rec.ID}, fmt.Errorf("record %d: %w: %w", rec.ID, ErrMalformedPayload, err)
	}
	return &rec, nil
}
