// Package repository defines the activity registry interface and errors.
package repository

import (
	"context"

	"github.com/mergington/activities/internal/domain/model"
)

// Store provides read/write access to the activity registry.
type Store interface {
	// List returns a deep copy of every activity keyed by name.
	List(ctx context.Context) map[string]model.Activity

	// Get returns a copy of one activity.
	// Returns ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// Signup appends email to the named activity's roster.
	// Returns ErrActivityNotFound for an unknown activity and
	// ErrAlreadySignedUp when the email is already enrolled.
	Signup(ctx context.Context, name, email string) error

	// Unregister removes email from the named activity's roster,
	// preserving the relative order of the remaining entries.
	// Returns ErrActivityNotFound for an unknown activity and
	// ErrNotSignedUp when the email is not enrolled.
	Unregister(ctx context.Context, name, email string) error

	// Reset restores the registry to its seed state, discarding every
	// signup and unregistration made since startup.
	Reset(ctx context.Context)

	// Count returns the number of activities in the registry.
	Count(ctx context.Context) int

	// ParticipantCount returns the total enrollment across all activities.
	ParticipantCount(ctx context.Context) int
}
