// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/mergington/activities/internal/domain/model"
)

// ActivitiesDependencies defines the interface for registry read operations.
type ActivitiesDependencies interface {
	ListActivities(ctx context.Context) map[string]model.Activity
}

// ActivitiesHandler handles activity listing requests.
type ActivitiesHandler struct {
	deps ActivitiesDependencies
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivitiesDependencies) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// HandleListActivities handles GET /activities requests. The response is
// the whole registry as a name -> record mapping; no filtering, no
// pagination.
func (h *ActivitiesHandler) HandleListActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ListActivities(r.Context()))
}
