// Package record owns the per-patient clinical aggregate: both odontograms,
// the treatment-plan sessions, and the accounting lists. Every mutation
// loads the whole record, applies the change in memory, and writes the
// whole snapshot back — the rendering layer can never observe a partially
// applied update.
package record

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentalink/clinic/internal/domain/billing"
	"github.com/dentalink/clinic/internal/domain/chart"
	"github.com/dentalink/clinic/internal/domain/plan"
)

// MedicalAlert is a flag shown prominently in the consultation room
// (allergies, anticoagulants, pregnancy).
type MedicalAlert struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Prescription is a medication order issued from the consultation room.
type Prescription struct {
	ID           uuid.UUID `json:"id"`
	Medication   string    `json:"medication"`
	Instructions string    `json:"instructions"`
	IssuedAt     time.Time `json:"issued_at"`
}

// Consent records a signed consent document.
type Consent struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	URL      string    `json:"url,omitempty"`
	SignedAt time.Time `json:"signed_at"`
}

// PatientRecord is the full clinical state of one patient, persisted as a
// single JSON document and rewritten after each top-level change.
type PatientRecord struct {
	PatientID     uuid.UUID         `json:"patient_id"`
	Chart         *chart.Chart      `json:"chart"`
	Sessions      []plan.Session    `json:"sessions"`
	MedicalAlerts []MedicalAlert    `json:"medical_alerts"`
	Prescriptions []Prescription    `json:"prescriptions"`
	Consents      []Consent         `json:"consents"`
	Payments      []billing.Payment `json:"payments"`
	Version       int               `json:"version"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewPatientRecord materializes an empty record: both odontograms fully
// populated, everything else empty.
func NewPatientRecord(patientID uuid.UUID) *PatientRecord {
	now := time.Now().UTC()
	return &PatientRecord{
		PatientID:     patientID,
		Chart:         chart.NewChart(),
		Sessions:      []plan.Session{},
		MedicalAlerts: []MedicalAlert{},
		Prescriptions: []Prescription{},
		Consents:      []Consent{},
		Payments:      []billing.Payment{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Normalize repairs a record rehydrated from an older snapshot: optional
// lists missing from the stored shape default to empty and the chart is
// re-materialized where incomplete.
func (r *PatientRecord) Normalize() {
	if r.Chart == nil {
		r.Chart = chart.NewChart()
	}
	r.Chart.Normalize()
	if r.Sessions == nil {
		r.Sessions = []plan.Session{}
	}
	if r.MedicalAlerts == nil {
		r.MedicalAlerts = []MedicalAlert{}
	}
	if r.Prescriptions == nil {
		r.Prescriptions = []Prescription{}
	}
	if r.Consents == nil {
		r.Consents = []Consent{}
	}
	if r.Payments == nil {
		r.Payments = []billing.Payment{}
	}
}

// Session returns a pointer into the sessions list by id.
func (r *PatientRecord) Session(id uuid.UUID) (*plan.Session, bool) {
	for i := range r.Sessions {
		if r.Sessions[i].ID == id {
			return &r.Sessions[i], true
		}
	}
	return nil, false
}
