package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusCancelled      Status = "cancelled"
	StatusCompleted      Status = "completed"
)

// ActiveStatuses are the states that occupy a slot and block rebooking.
var ActiveStatuses = []Status{StatusPendingPayment, StatusConfirmed}

// TerminalStatuses are the states with no outgoing transitions.
var TerminalStatuses = []Status{StatusCancelled, StatusCompleted}

func (s Status) Valid() bool {
	switch s {
	case StatusPendingPayment, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Active reports whether the status occupies a slot.
func (s Status) Active() bool {
	return s == StatusPendingPayment || s == StatusConfirmed
}

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// transitions is the edge set of the lifecycle graph. Terminal states have no
// outgoing edges; nothing ever moves back to a non-terminal state.
var transitions = map[Status][]Status{
	StatusPendingPayment: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusCancelled, StatusCompleted},
}

// CanTransition reports whether from -> to is a defined lifecycle edge.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Payment is the attestation recorded when an appointment is confirmed. The
// reference is generated externally; the core records it, it does not charge.
type Payment struct {
	PaymentID string  `db:"payment_id" json:"payment_id"`
	Method    string  `db:"payment_method" json:"method"`
	CardLast4 string  `db:"card_last4" json:"card_last4,omitempty"`
	Amount    float64 `db:"payment_amount" json:"amount"`
}

// Appointment is a booked slot. The doctor display fields are a snapshot
// frozen at booking time; later edits to the doctor's live profile must not
// rewrite appointment history.
type Appointment struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	DoctorName    string     `db:"doctor_name" json:"doctor_name"`
	DoctorImage   string     `db:"doctor_image" json:"doctor_image,omitempty"`
	Speciality    string     `db:"speciality" json:"speciality"`
	ClinicAddress string     `db:"clinic_address" json:"clinic_address"`
	Fee           float64    `db:"fee" json:"fee"`
	Date          string     `db:"visit_date" json:"date"` // YYYY-MM-DD
	Slot          string     `db:"slot_time" json:"time"`  // slot label, e.g. "9:00 AM"
	Status        Status     `db:"status" json:"status"`
	Payment       *Payment   `json:"payment,omitempty"`
	PaidAt        *time.Time `db:"paid_at" json:"paid_at,omitempty"`
	Notes         string     `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
