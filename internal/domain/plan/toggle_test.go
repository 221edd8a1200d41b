package plan

import (
	"testing"

	"github.com/google/uuid"

	"github.com/dentalink/clinic/internal/domain/catalog"
	"github.com/dentalink/clinic/internal/domain/chart"
)

func builtPlan(t *testing.T) (*chart.Chart, *catalog.Catalog, []Session) {
	t.Helper()
	cat := catalog.Default()
	c, ids := chartWithFindings(t, cat)
	sessions, err := Build(c, cat, []ProposedSession{{FindingIDs: ids}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return c, cat, sessions
}

func TestToggle_FlipsBothCopies(t *testing.T) {
	c, cat, sessions := builtPlan(t)
	s := &sessions[0]
	tr := s.Treatments[0]

	if !Toggle(sessions, c, cat, s.ID, tr.ID) {
		t.Fatal("expected toggle to succeed")
	}
	if s.Treatments[0].Status != chart.StatusCompleted {
		t.Errorf("expected completed, got %s", s.Treatments[0].Status)
	}

	// The projection agrees with the session copy.
	tooth, _ := c.Tooth(tr.ToothID)
	for _, surf := range chart.AllSurfaces {
		for _, p := range tooth.Surfaces[surf] {
			if p.ID == tr.ID && p.Status != chart.StatusCompleted {
				t.Errorf("projection on %s still %s", surf, p.Status)
			}
		}
	}

	// Toggling back restores proposed.
	if !Toggle(sessions, c, cat, s.ID, tr.ID) {
		t.Fatal("expected second toggle to succeed")
	}
	if s.Treatments[0].Status != chart.StatusProposed {
		t.Errorf("expected proposed after round trip, got %s", s.Treatments[0].Status)
	}
}

func TestToggle_RefreshesSessionStatus(t *testing.T) {
	c, cat, sessions := builtPlan(t)
	s := &sessions[0]

	for _, tr := range s.Treatments {
		Toggle(sessions, c, cat, s.ID, tr.ID)
	}
	if s.Status != SessionCompleted {
		t.Errorf("all treatments done: expected session completed, got %s", s.Status)
	}

	// Un-completing any treatment reverts the session.
	Toggle(sessions, c, cat, s.ID, s.Treatments[0].ID)
	if s.Status != SessionPending {
		t.Errorf("expected session pending again, got %s", s.Status)
	}
}

func TestToggle_MissingIDsAreNoOps(t *testing.T) {
	c, cat, sessions := builtPlan(t)
	s := sessions[0]

	if Toggle(sessions, c, cat, uuid.New(), s.Treatments[0].ID) {
		t.Error("unknown session must be a no-op")
	}
	if Toggle(sessions, c, cat, s.ID, uuid.New()) {
		t.Error("unknown treatment must be a no-op")
	}
	if sessions[0].Treatments[0].Status != chart.StatusProposed {
		t.Error("no-op toggle must not change state")
	}
}

func TestSessionRefresh_EmptySessionStaysPending(t *testing.T) {
	s := Session{ID: uuid.New()}
	s.refresh()
	if s.Status != SessionPending {
		t.Errorf("empty session must be pending, got %s", s.Status)
	}
}
