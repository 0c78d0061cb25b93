// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/pkg/metrics"
)

// SignupDependencies defines the interface for signup operations.
type SignupDependencies interface {
	Signup(ctx context.Context, name, email string) error
}

// SignupHandler handles signup requests.
type SignupHandler struct {
	deps SignupDependencies
}

// NewSignupHandler creates a new signup handler.
func NewSignupHandler(deps SignupDependencies) *SignupHandler {
	return &SignupHandler{deps: deps}
}

// HandleSignup handles POST /activities/{name}/signup?email= requests.
// The activity name has already been extracted from the path by the router.
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeDetail(w, http.StatusBadRequest, detailEmailRequired)
		return
	}

	err := h.deps.Signup(r.Context(), name, email)
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		metrics.RecordRejection("not_found")
		writeDetail(w, http.StatusNotFound, detailActivityNotFound)
	case errors.Is(err, repository.ErrAlreadySignedUp):
		metrics.RecordRejection("duplicate_signup")
		writeDetail(w, http.StatusBadRequest, detailAlreadySignedUp)
	case err != nil:
		writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	default:
		writeJSON(w, http.StatusOK, messageResponse{
			Message: fmt.Sprintf("Signed up %s for %s", email, name),
		})
	}
}
