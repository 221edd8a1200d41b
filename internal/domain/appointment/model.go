package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status is the kanban column an appointment sits in.
type Status string

const (
	StatusRequested Status = "requested"
	StatusConfirmed Status = "confirmed"
	StatusCheckedIn Status = "checked_in"
	StatusInChair   Status = "in_chair"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// transitions is the allowed kanban movement table. Terminal columns have
// no outgoing edges.
var transitions = map[Status][]Status{
	StatusRequested: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusInChair, StatusCancelled},
	StatusInChair:   {StatusCompleted},
}

// CanTransition reports whether an appointment may move from one column to
// another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Appointment is a booking from the public site or the back office.
type Appointment struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	PatientName string     `db:"patient_name" json:"patient_name"`
	Phone       string     `db:"phone" json:"phone"`
	Email       *string    `db:"email" json:"email,omitempty"`
	DoctorID    *uuid.UUID `db:"doctor_id" json:"doctor_id,omitempty"`
	PatientID   *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	StartTime   time.Time  `db:"start_time" json:"start_time"`
	EndTime     *time.Time `db:"end_time" json:"end_time,omitempty"`
	Reason      *string    `db:"reason" json:"reason,omitempty"`
	Status      Status     `db:"status" json:"status"`
	Notes       *string    `db:"notes" json:"notes,omitempty"`
	Source      string     `db:"source" json:"source"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
