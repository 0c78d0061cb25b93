// Package model contains domain models passed between layers.
package model

import "slices"

// Activity represents one extracurricular offering and its roster.
// JSON field names mirror the public API schema for GET /activities.
type Activity struct {
	Description string `json:"description" koanf:"description"`
	Schedule    string `json:"schedule" koanf:"schedule"`
	// MaxParticipants is advisory capacity; signup does not enforce it.
	MaxParticipants int `json:"max_participants" koanf:"max_participants"`
	// Participants holds enrolled student emails in signup order.
	Participants []string `json:"participants" koanf:"participants"`
}

// HasParticipant reports whether email is already enrolled.
func (a Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Clone returns a deep copy so callers cannot mutate registry state
// through a returned record.
func (a Activity) Clone() Activity {
	c := a
	c.Participants = slices.Clone(a.Participants)
	return c
}
