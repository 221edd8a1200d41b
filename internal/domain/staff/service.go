package staff

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	d.Active = true
	return s.repo.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}
	return s.repo.Update(ctx, d)
}

// Deactivate soft-deletes a doctor; past appointments keep referencing the
// row.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	d.Active = false
	return s.repo.Update(ctx, d)
}

func (s *Service) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*Doctor, int, error) {
	return s.repo.List(ctx, activeOnly, limit, offset)
}
