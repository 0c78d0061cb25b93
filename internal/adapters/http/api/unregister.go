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

// UnregisterDependencies defines the interface for unregister operations.
type UnregisterDependencies interface {
	Unregister(ctx context.Context, name, email string) error
}

// UnregisterHandler handles unregister requests.
type UnregisterHandler struct {
	deps UnregisterDependencies
}

// NewUnregisterHandler creates a new unregister handler.
func NewUnregisterHandler(deps UnregisterDependencies) *UnregisterHandler {
	return &UnregisterHandler{deps: deps}
}

// HandleUnregister handles DELETE /activities/{name}/unregister?email= requests.
func (h *UnregisterHandler) HandleUnregister(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeDetail(w, http.StatusBadRequest, detailEmailRequired)
		return
	}

	err := h.deps.Unregister(r.Context(), name, email)
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		metrics.RecordRejection("not_found")
		writeDetail(w, http.StatusNotFound, detailActivityNotFound)
	case errors.Is(err, repository.ErrNotSignedUp):
		metrics.RecordRejection("not_signed_up")
		writeDetail(w, http.StatusBadRequest, detailNotSignedUp)
	case err != nil:
		writeDetail(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	default:
		writeJSON(w, http.StatusOK, messageResponse{
			Message: fmt.Sprintf("Unregistered %s from %s", email, name),
		})
	}
}
