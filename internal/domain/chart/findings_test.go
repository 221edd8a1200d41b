package chart

import (
	"testing"

	"github.com/google/uuid"

	"github.com/dentalink/clinic/internal/domain/catalog"
)

func TestAddFinding_Success(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	if err := c.AddFinding(cat, catalog.Caries, 11, SurfaceOcclusal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tooth, _ := c.Tooth(11)
	if len(tooth.Findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(tooth.Findings))
	}
	f := tooth.Findings[0]
	if f.Condition != catalog.Caries || f.ToothID != 11 || f.Surface != SurfaceOcclusal {
		t.Errorf("unexpected finding: %+v", f)
	}
	if f.ID == uuid.Nil {
		t.Error("expected a generated finding id")
	}
}

func TestAddFinding_DuplicateIsNoOp(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	if err := c.AddFinding(cat, catalog.Caries, 11, SurfaceOcclusal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddFinding(cat, catalog.Caries, 11, SurfaceOcclusal); err != nil {
		t.Fatalf("duplicate add should be silent: %v", err)
	}

	tooth, _ := c.Tooth(11)
	if len(tooth.Findings) != 1 {
		t.Errorf("expected 1 finding after duplicate add, got %d", len(tooth.Findings))
	}

	// Same condition on a different surface is a distinct finding.
	if err := c.AddFinding(cat, catalog.Caries, 11, SurfaceBuccal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tooth.Findings) != 2 {
		t.Errorf("expected 2 findings, got %d", len(tooth.Findings))
	}
}

func TestAddFinding_InvalidInput(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	if err := c.AddFinding(cat, "laser", 11, SurfaceOcclusal); err == nil {
		t.Error("expected error for unknown treatment")
	}
	if err := c.AddFinding(cat, catalog.Caries, 11, "side"); err == nil {
		t.Error("expected error for unknown surface")
	}
	if err := c.AddFinding(cat, catalog.Caries, 99, SurfaceOcclusal); err == nil {
		t.Error("expected error for unknown tooth")
	}
}

func TestAddFinding_TargetCompatibility(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	// Surface treatment on the whole-tooth target
	if err := c.AddFinding(cat, catalog.Filling, 11, SurfaceWhole); err == nil {
		t.Error("expected error: surface treatment on whole target")
	}
	// Surface treatment on the root
	if err := c.AddFinding(cat, catalog.Filling, 11, SurfaceRoot); err == nil {
		t.Error("expected error: surface treatment on root")
	}
	// Whole-tooth treatment on a surface
	if err := c.AddFinding(cat, catalog.Extraction, 11, SurfaceOcclusal); err == nil {
		t.Error("expected error: whole-tooth treatment on a surface")
	}
	// Root treatment only on the root
	if err := c.AddFinding(cat, catalog.RootCanal, 11, SurfaceRoot); err != nil {
		t.Errorf("root canal on root should be valid: %v", err)
	}
	if err := c.AddFinding(cat, catalog.RootCanal, 12, SurfaceBuccal); err == nil {
		t.Error("expected error: root treatment on a non-root surface")
	}
	// Whole-tooth treatment on the whole target
	if err := c.AddFinding(cat, catalog.Extraction, 12, SurfaceWhole); err != nil {
		t.Errorf("extraction on whole target should be valid: %v", err)
	}
}

func TestAddFinding_DeciduousTooth(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	if err := c.AddFinding(cat, catalog.Caries, 55, SurfaceOcclusal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tooth, ok := c.Deciduous[55]
	if !ok || len(tooth.Findings) != 1 {
		t.Error("expected finding on deciduous tooth 55")
	}
	// 59 is outside the deciduous range (positions go up to 5)
	if err := c.AddFinding(cat, catalog.Caries, 59, SurfaceOcclusal); err == nil {
		t.Error("expected error for tooth 59")
	}
}

func TestEditFinding(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	if err := c.AddFinding(cat, catalog.Caries, 21, SurfaceMesial); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tooth, _ := c.Tooth(21)
	id := tooth.Findings[0].ID

	if err := c.EditFinding(cat, id, catalog.Fracture); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tooth.Findings[0].Condition != catalog.Fracture {
		t.Errorf("expected condition %q, got %q", catalog.Fracture, tooth.Findings[0].Condition)
	}

	// Unknown condition is an error, stale id is not.
	if err := c.EditFinding(cat, id, "laser"); err == nil {
		t.Error("expected error for unknown condition")
	}
	if err := c.EditFinding(cat, uuid.New(), catalog.Caries); err != nil {
		t.Errorf("stale finding id should be a silent no-op: %v", err)
	}
}

func TestEditFinding_TargetCompatibility(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	if err := c.AddFinding(cat, catalog.Caries, 16, SurfaceOcclusal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tooth, _ := c.Tooth(16)
	id := tooth.Findings[0].ID

	// A whole-tooth or root treatment cannot be pinned to a surface finding.
	if err := c.EditFinding(cat, id, catalog.Extraction); err == nil {
		t.Error("expected error: whole-tooth treatment on a surface finding")
	}
	if err := c.EditFinding(cat, id, catalog.RootCanal); err == nil {
		t.Error("expected error: root treatment on a surface finding")
	}
	if tooth.Findings[0].Condition != catalog.Caries {
		t.Errorf("rejected edit must not change the finding, got %q", tooth.Findings[0].Condition)
	}
}

func TestEditFinding_DuplicateCollapses(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	if err := c.AddFinding(cat, catalog.Filling, 16, SurfaceOcclusal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddFinding(cat, catalog.Caries, 16, SurfaceOcclusal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tooth, _ := c.Tooth(16)
	cariesID := tooth.Findings[1].ID

	// Editing caries into filling would duplicate (occlusal, filling); the
	// edited finding is dropped instead, so one filling finding survives.
	if err := c.EditFinding(cat, cariesID, catalog.Filling); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tooth.Findings) != 1 {
		t.Fatalf("expected 1 finding after collapsing edit, got %d", len(tooth.Findings))
	}
	f := tooth.Findings[0]
	if f.Condition != catalog.Filling || f.Surface != SurfaceOcclusal {
		t.Errorf("unexpected survivor: %+v", f)
	}

	// The collapsed duplicate must not re-enter the plan pool.
	if got := c.UnassignedFindings(); len(got) != 1 {
		t.Errorf("expected 1 unassigned finding, got %d", len(got))
	}
}

func TestDeleteFinding(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	if err := c.AddFinding(cat, catalog.Caries, 31, SurfaceDistal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tooth, _ := c.Tooth(31)
	id := tooth.Findings[0].ID

	if !c.DeleteFinding(id) {
		t.Error("expected DeleteFinding to report removal")
	}
	if len(tooth.Findings) != 0 {
		t.Errorf("expected 0 findings, got %d", len(tooth.Findings))
	}
	if c.DeleteFinding(id) {
		t.Error("second delete should report nothing removed")
	}
}

func TestUnassignedFindings_Order(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	// Insert out of tooth order, across both dentitions.
	if err := c.AddFinding(cat, catalog.Caries, 48, SurfaceOcclusal); err != nil {
		t.Fatal(err)
	}
	if err := c.AddFinding(cat, catalog.Caries, 11, SurfaceOcclusal); err != nil {
		t.Fatal(err)
	}
	if err := c.AddFinding(cat, catalog.Caries, 51, SurfaceOcclusal); err != nil {
		t.Fatal(err)
	}

	got := c.UnassignedFindings()
	if len(got) != 3 {
		t.Fatalf("expected 3 findings, got %d", len(got))
	}
	if got[0].ToothID != 11 || got[1].ToothID != 48 || got[2].ToothID != 51 {
		t.Errorf("expected tooth order [11 48 51], got [%d %d %d]",
			got[0].ToothID, got[1].ToothID, got[2].ToothID)
	}
}

func TestTakeFinding(t *testing.T) {
	c := NewChart()
	cat := catalog.Default()

	if err := c.AddFinding(cat, catalog.Filling, 14, SurfaceBuccal); err != nil {
		t.Fatal(err)
	}
	tooth, _ := c.Tooth(14)
	id := tooth.Findings[0].ID

	f, ok := c.TakeFinding(id)
	if !ok {
		t.Fatal("expected TakeFinding to succeed")
	}
	if f.ToothID != 14 || f.Condition != catalog.Filling {
		t.Errorf("unexpected finding: %+v", f)
	}
	if len(tooth.Findings) != 0 {
		t.Error("finding should be removed from the tooth")
	}
	if _, ok := c.TakeFinding(id); ok {
		t.Error("second take should fail")
	}
}

func TestNormalize_RepairsSparseChart(t *testing.T) {
	c := &Chart{}
	c.Normalize()

	if len(c.Permanent) != 32 {
		t.Errorf("expected 32 permanent teeth, got %d", len(c.Permanent))
	}
	if len(c.Deciduous) != 20 {
		t.Errorf("expected 20 deciduous teeth, got %d", len(c.Deciduous))
	}

	// A tooth deserialized without surface slots gets them back.
	c.Permanent[11] = &ToothState{}
	c.Normalize()
	if c.Permanent[11].Surfaces == nil {
		t.Fatal("expected surface slots to be re-materialized")
	}
	if _, ok := c.Permanent[11].Surfaces[SurfaceRoot]; !ok {
		t.Error("expected root slot to exist")
	}
}
