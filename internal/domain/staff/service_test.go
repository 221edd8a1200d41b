package staff

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
)

type mockRepo struct{ store map[uuid.UUID]*Doctor }

func newMockRepo() *mockRepo { return &mockRepo{store: make(map[uuid.UUID]*Doctor)} }

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	d.ID = uuid.New()
	m.store[d.ID] = d
	return nil
}
func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	d, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return d, nil
}
func (m *mockRepo) Update(_ context.Context, d *Doctor) error {
	if _, ok := m.store[d.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.store[d.ID] = d
	return nil
}
func (m *mockRepo) List(_ context.Context, activeOnly bool, limit, offset int) ([]*Doctor, int, error) {
	var r []*Doctor
	for _, d := range m.store {
		if activeOnly && !d.Active {
			continue
		}
		r = append(r, d)
	}
	return r, len(r), nil
}

func TestCreate(t *testing.T) {
	svc := NewService(newMockRepo())
	ctx := context.Background()

	if err := svc.Create(ctx, &Doctor{}); err == nil {
		t.Error("expected error for missing name")
	}

	d := &Doctor{Name: "Dr. Herrera"}
	if err := svc.Create(ctx, d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Active {
		t.Error("new doctors must start active")
	}
}

func TestDeactivate(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	d := &Doctor{Name: "Dr. Herrera"}
	if err := svc.Create(ctx, d); err != nil {
		t.Fatal(err)
	}
	if err := svc.Deactivate(ctx, d.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Active {
		t.Error("expected doctor deactivated")
	}
	// The row survives for historical references.
	if _, err := svc.Get(ctx, d.ID); err != nil {
		t.Errorf("deactivated doctor must stay readable: %v", err)
	}

	active, total, err := svc.List(ctx, true, 50, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 || len(active) != 0 {
		t.Errorf("expected no active doctors, got %d", len(active))
	}
}
