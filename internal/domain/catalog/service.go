package catalog

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Catalog returns the effective catalog: built-in definitions merged with
// the clinic's stored overrides.
func (s *Service) Catalog(ctx context.Context) (*Catalog, error) {
	overrides, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return New(overrides), nil
}

// SetDefinition stores a clinic override. The target type of a built-in
// definition is fixed because the chart projection rules depend on it.
func (s *Service) SetDefinition(ctx context.Context, d *TreatmentDefinition) error {
	if d.ID == "" {
		return fmt.Errorf("id is required")
	}
	if d.Label == "" {
		return fmt.Errorf("label is required")
	}
	if d.Price < 0 {
		return fmt.Errorf("price must be non-negative")
	}
	if !d.AppliesTo.Valid() {
		return fmt.Errorf("invalid applies_to: %s", d.AppliesTo)
	}
	if base, ok := Default().Resolve(d.ID); ok && base.AppliesTo != d.AppliesTo {
		return fmt.Errorf("applies_to of built-in treatment %q cannot change", d.ID)
	}
	return s.repo.Upsert(ctx, d)
}

// RemoveDefinition deletes a stored override. For built-in ids this restores
// the built-in definition; custom ids disappear entirely.
func (s *Service) RemoveDefinition(ctx context.Context, id TreatmentID) error {
	return s.repo.Delete(ctx, id)
}
