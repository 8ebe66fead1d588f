package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careslot/careslot/internal/domain/catalog"
	"github.com/careslot/careslot/internal/domain/doctor"
	"github.com/careslot/careslot/internal/platform/auth"
)

// DoctorDirectory is the slice of the doctor subsystem the booking core
// consumes: existence and the availability flag.
type DoctorDirectory interface {
	Get(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
}

type Service struct {
	repo          Repository
	doctors       DoctorDirectory
	windowDays    int
	retentionDays int
	now           func() time.Time
}

func NewService(repo Repository, doctors DoctorDirectory, windowDays, retentionDays int) *Service {
	if windowDays < 1 {
		windowDays = catalog.DefaultWindowDays
	}
	if retentionDays < 1 {
		retentionDays = DefaultRetentionDays
	}
	return &Service{
		repo:          repo,
		doctors:       doctors,
		windowDays:    windowDays,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// DefaultRetentionDays is how long finished appointments are kept before the
// purge sweep removes them.
const DefaultRetentionDays = 30

func (s *Service) retentionDefault() int { return s.retentionDays }

// BookingRequest carries the booking input plus the doctor snapshot fields
// the caller captured. The snapshot is frozen onto the appointment at this
// instant and never re-joined to the live doctor record.
type BookingRequest struct {
	PatientID     uuid.UUID `json:"-"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	Date          string    `json:"date"`
	Slot          string    `json:"time"`
	DoctorName    string    `json:"doctor_name"`
	DoctorImage   string    `json:"doctor_image"`
	Speciality    string    `json:"speciality"`
	ClinicAddress string    `json:"clinic_address"`
	Fee           float64   `json:"fee"`
	Notes         string    `json:"notes"`
}

func (r BookingRequest) validate(now time.Time, windowDays int) error {
	if r.PatientID == uuid.Nil {
		return fmt.Errorf("%w: patient id is required", ErrValidation)
	}
	if r.DoctorID == uuid.Nil {
		return fmt.Errorf("%w: doctor id is required", ErrValidation)
	}
	if !catalog.ValidSlot(now, windowDays, r.Date, r.Slot) {
		return fmt.Errorf("%w: %q %q is not a bookable slot", ErrValidation, r.Date, r.Slot)
	}
	if r.DoctorName == "" {
		return fmt.Errorf("%w: doctor_name is required", ErrValidation)
	}
	if r.Speciality == "" {
		return fmt.Errorf("%w: speciality is required", ErrValidation)
	}
	if r.ClinicAddress == "" {
		return fmt.Errorf("%w: clinic_address is required", ErrValidation)
	}
	if r.Fee <= 0 {
		return fmt.Errorf("%w: fee must be positive", ErrValidation)
	}
	return nil
}

// Book validates the request, re-checks the doctor server-side, and creates
// the appointment in pending_payment. The duplicate-slot check is enforced by
// the store's conditional insert, so two concurrent bookings for the same
// slot cannot both succeed.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*Appointment, error) {
	if err := req.validate(s.now(), s.windowDays); err != nil {
		return nil, err
	}

	doc, err := s.doctors.Get(ctx, req.DoctorID)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("look up doctor: %w", err)
	}
	if !doc.Available {
		return nil, ErrDoctorUnavailable
	}

	a := &Appointment{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		DoctorName:    req.DoctorName,
		DoctorImage:   req.DoctorImage,
		Speciality:    req.Speciality,
		ClinicAddress: req.ClinicAddress,
		Fee:           req.Fee,
		Date:          req.Date,
		Slot:          req.Slot,
		Status:        StatusPendingPayment,
		Notes:         req.Notes,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// PaymentInput is the attestation descriptor supplied by the caller. The
// payment reference comes from outside; the core records it as given.
type PaymentInput struct {
	PaymentID string  `json:"payment_id"`
	Method    string  `json:"method"`
	CardLast4 string  `json:"card_last4"`
	Amount    float64 `json:"amount"`
}

func (p PaymentInput) validate() error {
	if p.PaymentID == "" {
		return fmt.Errorf("%w: payment_id is required", ErrValidation)
	}
	if p.Method == "" {
		return fmt.Errorf("%w: payment method is required", ErrValidation)
	}
	if p.Amount <= 0 {
		return fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	return nil
}

// AttestPayment records a claimed payment and confirms the appointment. Only
// the owning patient may attest. The pending_payment precondition is applied
// by the store as a conditional write; a repeat attestation, or one racing a
// cancellation, fails with ErrInvalidTransition.
func (s *Service) AttestPayment(ctx context.Context, id uuid.UUID, actor auth.Actor, input PaymentInput) (*Appointment, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsPatient(a.PatientID) {
		return nil, ErrForbidden
	}

	return s.repo.AttachPayment(ctx, id, Payment{
		PaymentID: input.PaymentID,
		Method:    input.Method,
		CardLast4: input.CardLast4,
		Amount:    input.Amount,
	})
}

// Cancel moves an active appointment to cancelled. Permitted for the owning
// patient, the assigned doctor, and admins. A recorded payment is kept for
// the audit trail.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actor auth.Actor) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.IsPatient(a.PatientID) && !actor.IsDoctor(a.DoctorID) {
		return nil, ErrForbidden
	}
	return s.repo.Transition(ctx, id, ActiveStatuses, StatusCancelled)
}

// Complete marks a confirmed appointment as completed. Permitted for the
// assigned doctor and admins.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, actor auth.Actor) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.IsDoctor(a.DoctorID) {
		return nil, ErrForbidden
	}
	return s.repo.Transition(ctx, id, []Status{StatusConfirmed}, StatusCompleted)
}

// Delete hard-deletes a terminal appointment. Permitted for the owning
// patient and admins; active appointments must be cancelled first.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor auth.Actor) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && !actor.IsPatient(a.PatientID) {
		return ErrForbidden
	}
	if !a.Status.Terminal() {
		return ErrInvalidTransition
	}
	return s.repo.Delete(ctx, id)
}

// Get returns a single appointment, visible to its patient, its doctor, and
// admins.
func (s *Service) Get(ctx context.Context, id uuid.UUID, actor auth.Actor) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !actor.IsPatient(a.PatientID) && !actor.IsDoctor(a.DoctorID) {
		return nil, ErrForbidden
	}
	return a, nil
}

// ListFilter narrows a listing to one patient or one doctor. Admins may leave
// it empty to see everything.
type ListFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
}

// List returns appointments scoped to the actor: patients see their own,
// doctors see their schedule, admins see any requested slice.
func (s *Service) List(ctx context.Context, actor auth.Actor, filter ListFilter, limit, offset int) ([]*Appointment, int, error) {
	switch actor.Role {
	case auth.RolePatient:
		return s.repo.ListByPatient(ctx, actor.ID, limit, offset)
	case auth.RoleDoctor:
		return s.repo.ListByDoctor(ctx, actor.ID, limit, offset)
	case auth.RoleAdmin:
		if filter.PatientID != nil {
			return s.repo.ListByPatient(ctx, *filter.PatientID, limit, offset)
		}
		if filter.DoctorID != nil {
			return s.repo.ListByDoctor(ctx, *filter.DoctorID, limit, offset)
		}
		return s.repo.List(ctx, limit, offset)
	}
	return nil, 0, ErrForbidden
}

// AutoComplete bulk-completes confirmed appointments dated before today.
// Re-running with no intervening bookings converges to a zero count.
func (s *Service) AutoComplete(ctx context.Context) (int64, error) {
	today := s.now().Format(catalog.DateLayout)
	return s.repo.CompletePast(ctx, today)
}

// PurgeOld hard-deletes terminal appointments older than the retention
// window. Idempotent in the same way as AutoComplete.
func (s *Service) PurgeOld(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays < 1 {
		return 0, fmt.Errorf("%w: retention must be at least one day", ErrValidation)
	}
	cutoff := s.now().AddDate(0, 0, -retentionDays).Format(catalog.DateLayout)
	return s.repo.PurgeTerminalBefore(ctx, cutoff)
}

// Dashboard returns admin aggregates.
func (s *Service) Dashboard(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx)
}
