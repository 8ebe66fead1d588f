package doctor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockRepo struct {
	mu      sync.Mutex
	doctors map[uuid.UUID]*Doctor
}

func newMockRepo() *mockRepo {
	return &mockRepo{doctors: make(map[uuid.UUID]*Doctor)}
}

func (m *mockRepo) Create(_ context.Context, d *Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	m.doctors[d.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Doctor, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []*Doctor
	for _, d := range m.doctors {
		cp := *d
		items = append(items, &cp)
	}
	return items, len(m.doctors), nil
}

func (m *mockRepo) SetAvailability(_ context.Context, id uuid.UUID, available bool) (*Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	d.Available = available
	d.UpdatedAt = time.Now()
	cp := *d
	return &cp, nil
}

func validDoctor() *Doctor {
	return &Doctor{
		Name:          "Dr. Asha Rao",
		Speciality:    "Dermatology",
		Fee:           50,
		ClinicAddress: "12 Hill Road",
		Available:     true,
	}
}

func TestRegister(t *testing.T) {
	svc := NewService(newMockRepo())
	d := validDoctor()
	if err := svc.Register(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(newMockRepo())

	cases := []struct {
		name   string
		mutate func(*Doctor)
	}{
		{"missing name", func(d *Doctor) { d.Name = "" }},
		{"missing speciality", func(d *Doctor) { d.Speciality = "" }},
		{"zero fee", func(d *Doctor) { d.Fee = 0 }},
		{"negative fee", func(d *Doctor) { d.Fee = -10 }},
		{"missing address", func(d *Doctor) { d.ClinicAddress = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDoctor()
			tc.mutate(d)
			if err := svc.Register(context.Background(), d); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSetAvailability(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	d := validDoctor()
	if err := svc.Register(context.Background(), d); err != nil {
		t.Fatalf("register: %v", err)
	}

	updated, err := svc.SetAvailability(context.Background(), d.ID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Available {
		t.Error("expected doctor to be unavailable")
	}

	got, err := svc.Get(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Available {
		t.Error("availability change was not persisted")
	}
}

func TestSetAvailability_NotFound(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.SetAvailability(context.Background(), uuid.New(), false); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
