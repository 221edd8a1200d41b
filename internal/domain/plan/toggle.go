package plan

import (
	"github.com/google/uuid"

	"github.com/dentalink/clinic/internal/domain/catalog"
	"github.com/dentalink/clinic/internal/domain/chart"
)

// Toggle flips a treatment between proposed and completed and rewrites its
// chart projection so both copies always agree on status. The session's
// status is refreshed afterwards.
//
// An unknown session or treatment id is a no-op returning false: a stale
// reference self-heals on the next render, there is nothing to surface to
// the user.
func Toggle(sessions []Session, ch *chart.Chart, cat *catalog.Catalog, sessionID, treatmentID uuid.UUID) bool {
	for i := range sessions {
		if sessions[i].ID != sessionID {
			continue
		}
		s := &sessions[i]
		for j := range s.Treatments {
			if s.Treatments[j].ID != treatmentID {
				continue
			}
			s.Treatments[j].Status = s.Treatments[j].Status.Toggled()
			ch.Project(cat, s.Treatments[j])
			s.refresh()
			return true
		}
		return false
	}
	return false
}
