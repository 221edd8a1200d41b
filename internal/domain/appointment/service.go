package appointment

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

// Book creates an appointment. Public-site bookings start in requested;
// the back office may create them directly confirmed.
func (s *Service) Book(ctx context.Context, a *Appointment) error {
	if a.PatientName == "" {
		return fmt.Errorf("patient_name is required")
	}
	if a.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if a.StartTime.IsZero() {
		return fmt.Errorf("start_time is required")
	}
	if a.EndTime != nil && !a.EndTime.After(a.StartTime) {
		return fmt.Errorf("end_time must be after start_time")
	}
	if a.Status == "" {
		a.Status = StatusRequested
	}
	if a.Status != StatusRequested && a.Status != StatusConfirmed {
		return fmt.Errorf("new appointments must be requested or confirmed, got %q", a.Status)
	}
	if a.Source == "" {
		a.Source = "back_office"
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

// Move shifts an appointment to another kanban column, enforcing the
// transition table.
func (s *Service) Move(ctx context.Context, id uuid.UUID, to Status) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(a.Status, to) {
		return nil, fmt.Errorf("cannot move appointment from %s to %s", a.Status, to)
	}
	a.Status = to
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update edits the booking details without touching the kanban status.
func (s *Service) Update(ctx context.Context, a *Appointment) error {
	existing, err := s.repo.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	a.Status = existing.Status
	a.Source = existing.Source
	if a.PatientName == "" {
		return fmt.Errorf("patient_name is required")
	}
	if a.EndTime != nil && !a.EndTime.After(a.StartTime) {
		return fmt.Errorf("end_time must be after start_time")
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByStatus(ctx, status, limit, offset)
}

func (s *Service) ListByRange(ctx context.Context, from, to time.Time, limit, offset int) ([]*Appointment, int, error) {
	return s.repo.ListByRange(ctx, from, to, limit, offset)
}

// Board returns the kanban view: every active column with its appointments.
func (s *Service) Board(ctx context.Context, limit int) (map[Status][]*Appointment, error) {
	board := make(map[Status][]*Appointment)
	for _, st := range []Status{StatusRequested, StatusConfirmed, StatusCheckedIn, StatusInChair, StatusCompleted} {
		items, _, err := s.repo.ListByStatus(ctx, st, limit, 0)
		if err != nil {
			return nil, err
		}
		board[st] = items
	}
	return board, nil
}
