package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) Get(ctx context.Context, patientID uuid.UUID) (*PatientRecord, error) {
	var (
		payload   []byte
		version   int
		createdAt time.Time
		updatedAt time.Time
	)
	err := r.pool.QueryRow(ctx, `
		SELECT payload, version, created_at, updated_at
		FROM patient_record WHERE patient_id = $1`, patientID).
		Scan(&payload, &version, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rec := &PatientRecord{}
	if err := json.Unmarshal(payload, rec); err != nil {
		return nil, fmt.Errorf("decode patient record %s: %w", patientID, err)
	}
	rec.PatientID = patientID
	rec.Version = version
	rec.CreatedAt = createdAt
	rec.UpdatedAt = updatedAt
	rec.Normalize()
	return rec, nil
}

func (r *repoPG) Create(ctx context.Context, rec *PatientRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode patient record %s: %w", rec.PatientID, err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO patient_record (patient_id, payload, version)
		VALUES ($1, $2, 1)`, rec.PatientID, payload)
	if err != nil {
		return err
	}
	rec.Version = 1
	return nil
}

// Save replaces the stored snapshot, guarded by an optimistic version
// check. The single UPDATE keeps the whole-record write atomic.
func (r *repoPG) Save(ctx context.Context, rec *PatientRecord) error {
	rec.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode patient record %s: %w", rec.PatientID, err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE patient_record
		SET payload = $2, version = version + 1, updated_at = NOW()
		WHERE patient_id = $1 AND version = $3`,
		rec.PatientID, payload, rec.Version)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionConflict
	}
	rec.Version++
	return nil
}
