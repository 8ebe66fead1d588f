package appointment

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the appointment store. Implementations must enforce the
// active-slot uniqueness invariant and the transition preconditions as single
// conditional writes; callers never get a chance to interleave a check and an
// update as two round trips.
type Repository interface {
	// Create inserts a new appointment. If an active appointment already holds
	// the same (doctor, date, slot) it returns ErrSlotTaken.
	Create(ctx context.Context, a *Appointment) error

	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)

	// Transition conditionally moves the appointment to the target status,
	// guarded by the set of expected current statuses. Returns ErrNotFound if
	// the appointment does not exist, ErrInvalidTransition if its current
	// status is outside the expected set.
	Transition(ctx context.Context, id uuid.UUID, from []Status, to Status) (*Appointment, error)

	// AttachPayment records the payment attestation and confirms the
	// appointment in one conditional write, guarded by status pending_payment.
	AttachPayment(ctx context.Context, id uuid.UUID, p Payment) (*Appointment, error)

	// Delete removes a terminal appointment. Returns ErrInvalidTransition when
	// the record is still active.
	Delete(ctx context.Context, id uuid.UUID) error

	// CompletePast bulk-completes confirmed appointments dated strictly before
	// today. Returns the number of records changed.
	CompletePast(ctx context.Context, today string) (int64, error)

	// PurgeTerminalBefore hard-deletes cancelled/completed appointments dated
	// strictly before the cutoff. Returns the number of records removed.
	PurgeTerminalBefore(ctx context.Context, cutoff string) (int64, error)

	// Stats aggregates counts for the admin dashboard.
	Stats(ctx context.Context) (*Stats, error)
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	Appointments int64            `json:"appointments"`
	Patients     int64            `json:"patients"`
	Doctors      int64            `json:"doctors"`
	ByStatus     map[Status]int64 `json:"by_status"`
	Latest       []*Appointment   `json:"latest"`
}
