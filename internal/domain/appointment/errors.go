package appointment

import "errors"

// Caller-facing error taxonomy. All of these are recoverable; the core never
// retries on its own. Raw store errors stay behind this boundary.
var (
	// ErrNotFound is returned when no appointment exists with the given id.
	ErrNotFound = errors.New("appointment not found")
	// ErrDoctorNotFound is returned when the booking target does not exist.
	ErrDoctorNotFound = errors.New("doctor not found")
	// ErrDoctorUnavailable is returned when the doctor is not accepting bookings.
	ErrDoctorUnavailable = errors.New("doctor is not available")
	// ErrSlotTaken is returned when an active appointment already holds the
	// requested doctor/date/slot, including when a concurrent insert wins.
	ErrSlotTaken = errors.New("slot is already booked")
	// ErrInvalidTransition is returned when the requested lifecycle edge does
	// not exist for the appointment's current status. Retrying an
	// already-applied transition yields this same error, never silent success.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrForbidden is returned when the actor may not perform the transition.
	ErrForbidden = errors.New("actor is not permitted to act on this appointment")
	// ErrValidation is returned for malformed or missing required fields.
	ErrValidation = errors.New("invalid booking request")
)
