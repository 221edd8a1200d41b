package record

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record exists for a patient yet.
var ErrNotFound = errors.New("patient record not found")

// ErrVersionConflict is returned when a snapshot save lost a race against a
// concurrent writer (another tab or admin window).
var ErrVersionConflict = errors.New("patient record version conflict")

// Repository persists whole PatientRecord snapshots. Save must be atomic:
// either the new snapshot replaces the old one entirely or nothing changes.
type Repository interface {
	Get(ctx context.Context, patientID uuid.UUID) (*PatientRecord, error)
	Create(ctx context.Context, rec *PatientRecord) error
	Save(ctx context.Context, rec *PatientRecord) error
}
