package doctor

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

// Register adds a doctor to the directory. New doctors start available unless
// the caller says otherwise.
func (s *Service) Register(ctx context.Context, d *Doctor) error {
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if d.Speciality == "" {
		return fmt.Errorf("%w: speciality is required", ErrValidation)
	}
	if d.Fee <= 0 {
		return fmt.Errorf("%w: fee must be positive", ErrValidation)
	}
	if d.ClinicAddress == "" {
		return fmt.Errorf("%w: clinic_address is required", ErrValidation)
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// SetAvailability flips the bookable flag; an unavailable doctor refuses new
// bookings but existing appointments are untouched.
func (s *Service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*Doctor, error) {
	return s.repo.SetAvailability(ctx, id, available)
}
