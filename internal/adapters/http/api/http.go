// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mergington/activities/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ListActivities returns a copy of the full registry keyed by name.
	ListActivities(ctx context.Context) map[string]model.Activity

	// Signup enrolls email in the named activity.
	Signup(ctx context.Context, name, email string) error

	// Unregister removes email from the named activity.
	Unregister(ctx context.Context, name, email string) error

	// ResetActivities restores the registry to its seed state.
	ResetActivities(ctx context.Context)
}

// Activity mirrors the read shape returned by registry queries.
type Activity = model.Activity

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
	signupHandler     *SignupHandler
	unregisterHandler *UnregisterHandler
	resetHandler      *ResetHandler

	testEndpoints bool
}

// NewServer creates a new API server with all handlers. When testEndpoints
// is true the test-only reset route is registered as well.
func NewServer(deps Dependencies, statsProvider StatsProvider, testEndpoints bool) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps),
		signupHandler:     NewSignupHandler(deps),
		unregisterHandler: NewUnregisterHandler(deps),
		resetHandler:      NewResetHandler(deps),
		testEndpoints:     testEndpoints,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/activities", RequestIDMiddleware(MetricsMiddleware(s.activitiesHandler.HandleListActivities, "activities")))
	mux.HandleFunc("/activities/", RequestIDMiddleware(MetricsMiddleware(s.routeActivityAction, "activity_action")))
	if s.testEndpoints {
		mux.HandleFunc("/test/reset-activities", RequestIDMiddleware(MetricsMiddleware(s.resetHandler.HandleReset, "reset_activities")))
	}
}

// routeActivityAction dispatches /activities/{name}/signup and
// /activities/{name}/unregister to their handlers. The activity name may
// contain spaces or punctuation, so everything up to the final segment is
// the name.
func (s *Server) routeActivityAction(w http.ResponseWriter, r *http.Request) {
	name, action, ok := splitActivityPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch action {
	case "signup":
		s.signupHandler.HandleSignup(w, r, name)
	case "unregister":
		s.unregisterHandler.HandleUnregister(w, r, name)
	default:
		http.NotFound(w, r)
	}
}

// messageResponse is the success envelope for mutations.
type messageResponse struct {
	Message string `json:"message"`
}

// detailResponse is the failure envelope. Clients match on substrings of
// Detail, so the literal strings in the handlers are part of the contract.
type detailResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}
