// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"

	repository "github.com/mergington/activities/internal/adapters/repository"
	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/logger"
	"github.com/mergington/activities/pkg/metrics"
)

// Service owns the activity registry and exposes the operations the HTTP
// API depends on: list, signup, unregister, and the test-only reset.
type Service struct {
	mu sync.RWMutex

	registry repository.Store

	// Configuration
	seed     map[string]model.Activity
	seedFile string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed replaces the compiled-in activity seed.
func WithSeed(seed map[string]model.Activity) Option {
	return func(s *Service) {
		if len(seed) > 0 {
			s.seed = seed
		}
	}
}

// WithSeedFile points the service at a YAML seed file loaded during Start.
// Takes precedence over WithSeed when both are set.
func WithSeedFile(path string) Option {
	return func(s *Service) {
		s.seedFile = path
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the registry. Safe to call once; subsequent calls are
// no-ops until Stop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	seed := s.seed
	if s.seedFile != "" {
		loaded, err := repository.LoadSeedFile(s.seedFile)
		if err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
		seed = loaded
		s.logger.Info(ctx, "loaded seed file", logger.String("path", s.seedFile), logger.Int("activities", len(loaded)))
	}

	s.registry = repository.NewMemStore(ctx, repository.WithSeed(seed))
	s.started = true

	s.logger.Info(ctx, "activity registry started",
		logger.Int("activities", s.registry.Count(ctx)),
		logger.Int("participants", s.registry.ParticipantCount(ctx)),
	)
	return nil
}

// Stop marks the service stopped. The registry is memory only, so there is
// nothing to flush; sign-ups made since Start are discarded by design.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
}

// ListActivities returns a copy of the full registry keyed by name.
func (s *Service) ListActivities(ctx context.Context) map[string]model.Activity {
	return s.store().List(ctx)
}

// Signup enrolls email in the named activity.
func (s *Service) Signup(ctx context.Context, name, email string) error {
	if err := s.store().Signup(ctx, name, email); err != nil {
		return err
	}
	s.logger.Debug(ctx, "signed up participant", logger.String("activity", name), logger.String("email", email))
	return nil
}

// Unregister removes email from the named activity.
func (s *Service) Unregister(ctx context.Context, name, email string) error {
	if err := s.store().Unregister(ctx, name, email); err != nil {
		return err
	}
	s.logger.Debug(ctx, "unregistered participant", logger.String("activity", name), logger.String("email", email))
	return nil
}

// ResetActivities restores the registry to its seed state. Wired to the
// test-only reset route; not part of the production surface.
func (s *Service) ResetActivities(ctx context.Context) {
	s.store().Reset(ctx)
	metrics.RecordRegistryReset()
	s.logger.Info(ctx, "registry reset to seed state")
}

// GetStats returns current service statistics.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
	}
	if s.registry != nil {
		ctx := context.Background()
		stats["activities"] = s.registry.Count(ctx)
		stats["participants"] = s.registry.ParticipantCount(ctx)
	}
	return stats
}

// store returns the registry, guarding against use before Start.
func (s *Service) store() repository.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.registry == nil {
		panic("service not started")
	}
	return s.registry
}
