package auth

import (
	"context"

	"github.com/google/uuid"
)

// Roles recognised by the booking core.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// Actor is the verified identity acting on a request, resolved once at the
// boundary and passed into services as plain data. The core never reaches
// back into session state.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role string    `json:"role"`
}

// IsAdmin reports whether the actor carries the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// IsPatient reports whether the actor is the patient with the given id.
func (a Actor) IsPatient(patientID uuid.UUID) bool {
	return a.Role == RolePatient && a.ID == patientID
}

// IsDoctor reports whether the actor is the doctor with the given id.
func (a Actor) IsDoctor(doctorID uuid.UUID) bool {
	return a.Role == RoleDoctor && a.ID == doctorID
}

type contextKey string

const actorKey contextKey = "actor"

// WithActor returns a context carrying the actor.
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext extracts the actor resolved by the auth middleware. The
// second return is false when no middleware ran (e.g. in direct unit calls).
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey).(Actor)
	return actor, ok
}
