// Package plan groups unassigned chart findings into treatment-plan
// sessions and manages the proposed/completed lifecycle of the resulting
// treatments, keeping the chart projections in sync.
package plan

import (
	"time"

	"github.com/google/uuid"

	"github.com/dentalink/clinic/internal/domain/chart"
)

// SessionStatus tracks whether all of a session's treatments are done.
type SessionStatus string

const (
	SessionPending   SessionStatus = "pending"
	SessionCompleted SessionStatus = "completed"
)

// DocumentRef points at a file attached to a session (consent scan, x-ray).
type DocumentRef struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Session is one planned visit: a named, optionally dated batch of applied
// treatments. Its treatments list is the source of truth; the chart holds
// projections of the same entries.
type Session struct {
	ID            uuid.UUID                `json:"id"`
	Name          string                   `json:"name"`
	Status        SessionStatus            `json:"status"`
	Date          time.Time                `json:"date"`
	ScheduledDate *time.Time               `json:"scheduled_date,omitempty"`
	Treatments    []chart.AppliedTreatment `json:"treatments"`
	Notes         string                   `json:"notes"`
	Documents     []DocumentRef            `json:"documents"`
}

// refresh recomputes the session status: completed iff every treatment is.
func (s *Session) refresh() {
	for _, t := range s.Treatments {
		if t.Status != chart.StatusCompleted {
			s.Status = SessionPending
			return
		}
	}
	if len(s.Treatments) > 0 {
		s.Status = SessionCompleted
		return
	}
	s.Status = SessionPending
}

// ProposedSession is the builder's input: a user-defined group of findings
// to absorb into one session.
type ProposedSession struct {
	Name          string      `json:"name"`
	ScheduledDate *time.Time  `json:"scheduled_date,omitempty"`
	FindingIDs    []uuid.UUID `json:"finding_ids"`
}
