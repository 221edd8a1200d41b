package plan

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dentalink/clinic/internal/domain/catalog"
	"github.com/dentalink/clinic/internal/domain/chart"
)

// Build converts proposed sessions into real ones. Every referenced finding
// is removed from its tooth, turned into a proposed AppliedTreatment owned
// by the new session, and projected back into the chart — one transactional
// in-memory step, so no intermediate state where a finding and its
// treatment coexist is ever observable.
//
// A finding id that resolves to nothing (including one referenced twice) is
// an error: the builder's input is constructed from the chart's own
// unassigned pool, so a miss is a caller bug and the chart is left as-is
// only up to the failing proposal. Callers persist the chart snapshot only
// on success, which keeps the operation atomic.
func Build(ch *chart.Chart, cat *catalog.Catalog, proposals []ProposedSession) ([]Session, error) {
	sessions := make([]Session, 0, len(proposals))
	for _, p := range proposals {
		s := Session{
			ID:            uuid.New(),
			Name:          p.Name,
			Status:        SessionPending,
			Date:          time.Now().UTC(),
			ScheduledDate: p.ScheduledDate,
		}
		if s.Name == "" {
			s.Name = fmt.Sprintf("Session %d", len(sessions)+1)
		}
		for _, fid := range p.FindingIDs {
			f, ok := ch.TakeFinding(fid)
			if !ok {
				return nil, fmt.Errorf("finding %s not found in unassigned pool", fid)
			}
			t := chart.AppliedTreatment{
				ID:          uuid.New(),
				TreatmentID: f.Condition,
				ToothID:     f.ToothID,
				Surface:     f.Surface,
				Status:      chart.StatusProposed,
				SessionID:   s.ID,
			}
			s.Treatments = append(s.Treatments, t)
			ch.Project(cat, t)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// Cost values a set of findings against the catalog. The builder guarantees
// the same total is re-derivable from the built sessions' treatments.
func Cost(findings []chart.ClinicalFinding, cat *catalog.Catalog) float64 {
	var total float64
	for _, f := range findings {
		total += cat.Price(f.Condition)
	}
	return total
}
