package catalog

import (
	"context"
	"testing"
)

type mockRepo struct{ overrides map[TreatmentID]TreatmentDefinition }

func newMockRepo() *mockRepo { return &mockRepo{overrides: make(map[TreatmentID]TreatmentDefinition)} }

func (m *mockRepo) List(_ context.Context) ([]TreatmentDefinition, error) {
	var out []TreatmentDefinition
	for _, d := range m.overrides {
		out = append(out, d)
	}
	return out, nil
}
func (m *mockRepo) Upsert(_ context.Context, d *TreatmentDefinition) error {
	m.overrides[d.ID] = *d
	return nil
}
func (m *mockRepo) Delete(_ context.Context, id TreatmentID) error {
	delete(m.overrides, id)
	return nil
}

func TestDefaultCatalog(t *testing.T) {
	cat := Default()

	d, ok := cat.Resolve(Filling)
	if !ok {
		t.Fatal("expected built-in filling")
	}
	if d.Price != 120 || d.AppliesTo != TargetSurface {
		t.Errorf("unexpected filling definition: %+v", d)
	}
	if cat.Price(Crown) != 1000 {
		t.Errorf("expected crown price 1000, got %v", cat.Price(Crown))
	}
	if cat.Price("laser") != 0 {
		t.Errorf("unknown id should price at 0, got %v", cat.Price("laser"))
	}
	if len(cat.List()) != 11 {
		t.Errorf("expected 11 built-in definitions, got %d", len(cat.List()))
	}
}

func TestNew_OverridesAndAdditions(t *testing.T) {
	cat := New([]TreatmentDefinition{
		{ID: Filling, Label: "Gold filling", Price: 300, AppliesTo: TargetSurface},
		{ID: "cleaning", Label: "Cleaning", Price: 60, AppliesTo: TargetWholeTooth},
	})

	if cat.Price(Filling) != 300 {
		t.Errorf("expected override price 300, got %v", cat.Price(Filling))
	}
	if d, ok := cat.Resolve("cleaning"); !ok || d.Price != 60 {
		t.Errorf("expected custom definition, got %+v (ok=%v)", d, ok)
	}
	if len(cat.List()) != 12 {
		t.Errorf("expected 12 definitions, got %d", len(cat.List()))
	}
}

func TestService_Catalog_MergesStoredOverrides(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.SetDefinition(ctx, &TreatmentDefinition{
		ID: Crown, Label: "Zirconia crown", Price: 1200, AppliesTo: TargetSurface,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cat, err := svc.Catalog(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Price(Crown) != 1200 {
		t.Errorf("expected overridden price 1200, got %v", cat.Price(Crown))
	}

	// Removing the override restores the built-in.
	if err := svc.RemoveDefinition(ctx, Crown); err != nil {
		t.Fatal(err)
	}
	cat, _ = svc.Catalog(ctx)
	if cat.Price(Crown) != 1000 {
		t.Errorf("expected built-in price restored, got %v", cat.Price(Crown))
	}
}

func TestSetDefinition_Validation(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		def  TreatmentDefinition
	}{
		{"missing id", TreatmentDefinition{Label: "X", AppliesTo: TargetSurface}},
		{"missing label", TreatmentDefinition{ID: "x", AppliesTo: TargetSurface}},
		{"negative price", TreatmentDefinition{ID: "x", Label: "X", Price: -1, AppliesTo: TargetSurface}},
		{"bad target", TreatmentDefinition{ID: "x", Label: "X", AppliesTo: "edge"}},
		{"built-in target change", TreatmentDefinition{ID: Extraction, Label: "Extraction", AppliesTo: TargetSurface}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			def := tc.def
			if err := svc.SetDefinition(ctx, &def); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
