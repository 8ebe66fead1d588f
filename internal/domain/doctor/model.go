package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is a provider in the directory. The booking core reads the
// availability flag and the display fields it snapshots onto appointments.
type Doctor struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Speciality    string    `db:"speciality" json:"speciality"`
	Image         string    `db:"image" json:"image,omitempty"`
	Fee           float64   `db:"fee" json:"fee"`
	ClinicAddress string    `db:"clinic_address" json:"clinic_address"`
	Available     bool      `db:"available" json:"available"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
