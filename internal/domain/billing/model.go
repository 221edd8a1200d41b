// Package billing derives cost totals and balances from treatment-plan
// sessions and recorded payments. It is pure computation over the plan and
// catalog types; the record service owns persistence.
package billing

import (
	"time"

	"github.com/google/uuid"
)

// Payment is money received from the patient.
type Payment struct {
	ID     uuid.UUID `json:"id"`
	Amount float64   `json:"amount"`
	Method string    `json:"method"`
	PaidAt time.Time `json:"paid_at"`
	Note   string    `json:"note,omitempty"`
}

// Policy decides which treatments count toward the billed total. The clinic
// bills the whole accepted plan by default; billing only completed work is
// the documented alternative, selectable via configuration.
type Policy string

const (
	PolicyBillPlanned   Policy = "planned"
	PolicyBillCompleted Policy = "completed"
)

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	return p == PolicyBillPlanned || p == PolicyBillCompleted
}

// SessionTotal is the per-session line of a statement.
type SessionTotal struct {
	SessionID     uuid.UUID `json:"session_id"`
	Name          string    `json:"name"`
	Total         float64   `json:"total"`
	Proposed      float64   `json:"proposed"`
	Completed     float64   `json:"completed"`
	TreatmentRows int       `json:"treatment_rows"`
}

// Statement is the internally consistent billing view handed to the
// print/export collaborator: per-session totals plus the overall balance,
// all computed from one snapshot of the record.
type Statement struct {
	Sessions []SessionTotal `json:"sessions"`
	Total    float64        `json:"total"`
	Paid     float64        `json:"paid"`
	Balance  float64        `json:"balance"`
	Policy   Policy         `json:"policy"`
}
