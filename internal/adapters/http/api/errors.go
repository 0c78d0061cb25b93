package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrMissingEmail = errors.New("email is required")
)

// Literal detail strings surfaced to clients. Tests (and the original web
// frontend) match on substrings of these, so they must not be reworded.
const (
	detailActivityNotFound = "Activity not found"
	detailAlreadySignedUp  = "Student is already signed up"
	detailNotSignedUp      = "Student is not signed up for this activity"
	detailEmailRequired    = "email is required"
)
