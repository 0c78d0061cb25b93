// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// ResetDependencies defines the interface for the test-only reset operation.
type ResetDependencies interface {
	ResetActivities(ctx context.Context)
}

// ResetHandler restores the registry to its seed state. Test scaffolding
// only: the route is registered solely when test_endpoints is enabled.
type ResetHandler struct {
	deps ResetDependencies
}

// NewResetHandler creates a new reset handler.
func NewResetHandler(deps ResetDependencies) *ResetHandler {
	return &ResetHandler{deps: deps}
}

// HandleReset handles POST /test/reset-activities requests.
func (h *ResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	h.deps.ResetActivities(r.Context())
	writeJSON(w, http.StatusOK, messageResponse{Message: "Activities reset to seed state"})
}
