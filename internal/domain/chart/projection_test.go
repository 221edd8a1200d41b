package chart

import (
	"testing"

	"github.com/google/uuid"

	"github.com/dentalink/clinic/internal/domain/catalog"
)

func applied(id catalog.TreatmentID, toothID int, surface Surface, status TreatmentStatus) AppliedTreatment {
	return AppliedTreatment{
		ID:          uuid.New(),
		TreatmentID: id,
		ToothID:     toothID,
		Surface:     surface,
		Status:      status,
		SessionID:   uuid.New(),
	}
}

func TestProject_SurfaceTreatment(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	tr := applied(catalog.Filling, 16, SurfaceOcclusal, StatusProposed)
	c.Project(cat, tr)

	tooth, _ := c.Tooth(16)
	if len(tooth.Surfaces[SurfaceOcclusal]) != 1 {
		t.Fatalf("expected 1 entry on occlusal, got %d", len(tooth.Surfaces[SurfaceOcclusal]))
	}
	if len(tooth.Surfaces[SurfaceBuccal]) != 0 {
		t.Error("other surfaces must stay empty")
	}
}

func TestProject_UpsertByID(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	tr := applied(catalog.Filling, 16, SurfaceOcclusal, StatusProposed)
	c.Project(cat, tr)

	tr.Status = StatusCompleted
	c.Project(cat, tr)

	tooth, _ := c.Tooth(16)
	list := tooth.Surfaces[SurfaceOcclusal]
	if len(list) != 1 {
		t.Fatalf("re-projecting the same treatment must not duplicate: got %d entries", len(list))
	}
	if list[0].Status != StatusCompleted {
		t.Errorf("expected status rewritten to completed, got %s", list[0].Status)
	}
}

func TestProject_RootTreatment(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	c.Project(cat, applied(catalog.RootCanal, 26, SurfaceRoot, StatusProposed))

	tooth, _ := c.Tooth(26)
	if len(tooth.Surfaces[SurfaceRoot]) != 1 {
		t.Fatalf("expected root slot populated, got %d", len(tooth.Surfaces[SurfaceRoot]))
	}
	for _, s := range CrownSurfaces {
		if len(tooth.Surfaces[s]) != 0 {
			t.Errorf("surface %s must stay empty", s)
		}
	}
}

func TestProject_CrownCoversVisibleSurfaces(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	tr := applied(catalog.Crown, 36, SurfaceOcclusal, StatusProposed)
	c.Project(cat, tr)

	tooth, _ := c.Tooth(36)
	for _, s := range CrownSurfaces {
		list := tooth.Surfaces[s]
		if len(list) != 1 || list[0].ID != tr.ID {
			t.Errorf("expected crown entry on %s", s)
		}
	}
	if len(tooth.Surfaces[SurfaceRoot]) != 0 {
		t.Error("crown must not touch the root slot")
	}
}

func TestProject_WholeToothClearsSurfaces(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	c.Project(cat, applied(catalog.Filling, 46, SurfaceOcclusal, StatusCompleted))
	c.Project(cat, applied(catalog.RootCanal, 46, SurfaceRoot, StatusCompleted))

	ext := applied(catalog.Extraction, 46, SurfaceWhole, StatusProposed)
	c.Project(cat, ext)

	tooth, _ := c.Tooth(46)
	if len(tooth.Whole) != 1 || tooth.Whole[0].ID != ext.ID {
		t.Fatal("expected extraction in the whole slot")
	}
	for _, s := range AllSurfaces {
		if len(tooth.Surfaces[s]) != 0 {
			t.Errorf("surface %s must be cleared by a whole-tooth treatment", s)
		}
	}
}

func TestProject_ValueSemantics(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	tr := applied(catalog.Filling, 16, SurfaceOcclusal, StatusProposed)
	c.Project(cat, tr)

	// Mutating the caller's copy must not leak into the projection.
	tr.Status = StatusCompleted

	tooth, _ := c.Tooth(16)
	if tooth.Surfaces[SurfaceOcclusal][0].Status != StatusProposed {
		t.Error("projection must hold its own copy of the treatment")
	}
}

func TestProject_UnknownToothOrTreatmentIsNoOp(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	c.Project(cat, applied(catalog.Filling, 99, SurfaceOcclusal, StatusProposed))
	c.Project(cat, applied("laser", 11, SurfaceOcclusal, StatusProposed))

	tooth, _ := c.Tooth(11)
	for _, s := range AllSurfaces {
		if len(tooth.Surfaces[s]) != 0 {
			t.Fatalf("expected no projections, surface %s has %d", s, len(tooth.Surfaces[s]))
		}
	}
}
