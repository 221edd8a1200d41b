package promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p *Promotion) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Promotion, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Promotion) error {
	if err := validate(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Promotion, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// ListCurrent returns the promotions visible on the public site right now.
func (s *Service) ListCurrent(ctx context.Context, limit, offset int) ([]*Promotion, int, error) {
	items, _, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	now := time.Now()
	var current []*Promotion
	for _, p := range items {
		if p.CurrentAt(now) {
			current = append(current, p)
		}
	}
	return current, len(current), nil
}

func validate(p *Promotion) error {
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if p.DiscountPct != nil && (*p.DiscountPct < 0 || *p.DiscountPct > 100) {
		return fmt.Errorf("discount_pct must be between 0 and 100")
	}
	if p.ValidFrom != nil && p.ValidUntil != nil && p.ValidUntil.Before(*p.ValidFrom) {
		return fmt.Errorf("valid_until must not be before valid_from")
	}
	return nil
}
