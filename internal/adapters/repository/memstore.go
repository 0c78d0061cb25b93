package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/mergington/activities/internal/domain/model"
	"github.com/mergington/activities/pkg/metrics"
)

// MemStore is the in-memory registry implementation. A single registry-wide
// RWMutex guards every read and mutation so roster uniqueness and ordering
// hold under concurrent requests. The registry is small (a handful of short
// rosters), so one lock beats per-activity locking on simplicity with no
// measurable contention.
type MemStore struct {
	mu         sync.RWMutex
	activities map[string]model.Activity
	seed       map[string]model.Activity
}

// NewMemStore creates a registry populated from the default seed, or from
// the seed supplied via WithSeed. The seed is retained as a deep copy so
// Reset can restore it later.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		seed: DefaultSeed(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.activities = cloneRegistry(s.seed)
	s.publishGauges()
	return s
}

// List returns a deep copy of every activity keyed by name.
func (s *MemStore) List(_ context.Context) map[string]model.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRegistry(s.activities)
}

// Get returns a copy of one activity.
func (s *MemStore) Get(_ context.Context, name string) (model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.activities[name]
	if !ok {
		return model.Activity{}, ErrActivityNotFound
	}
	return a.Clone(), nil
}

// Signup appends email to the named activity's roster. The duplicate check
// and the append happen under the same critical section, so two concurrent
// signups with the same email cannot both succeed.
//
// MaxParticipants is deliberately not checked: capacity is advisory and a
// roster may grow past it.
func (s *MemStore) Signup(_ context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[name]
	if !ok {
		return ErrActivityNotFound
	}
	if a.HasParticipant(email) {
		return ErrAlreadySignedUp
	}
	a.Participants = append(a.Participants, email)
	s.activities[name] = a
	metrics.RecordSignup(name)
	metrics.UpdateParticipantsTotal(s.participantCountLocked())
	return nil
}

// Unregister removes email from the named activity's roster.
func (s *MemStore) Unregister(_ context.Context, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.activities[name]
	if !ok {
		return ErrActivityNotFound
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return ErrNotSignedUp
	}
	a.Participants = slices.Delete(slices.Clone(a.Participants), i, i+1)
	s.activities[name] = a
	metrics.RecordUnregister(name)
	metrics.UpdateParticipantsTotal(s.participantCountLocked())
	return nil
}

// Reset restores the registry to its seed state.
func (s *MemStore) Reset(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = cloneRegistry(s.seed)
	metrics.UpdateActivitiesTotal(len(s.activities))
	metrics.UpdateParticipantsTotal(s.participantCountLocked())
}

// Count returns the number of activities in the registry.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities)
}

// ParticipantCount returns the total enrollment across all activities.
func (s *MemStore) ParticipantCount(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.participantCountLocked()
}

// participantCountLocked sums roster lengths. Callers must hold mu.
func (s *MemStore) participantCountLocked() int {
	n := 0
	for _, a := range s.activities {
		n += len(a.Participants)
	}
	return n
}

func (s *MemStore) publishGauges() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	metrics.UpdateActivitiesTotal(len(s.activities))
	metrics.UpdateParticipantsTotal(s.participantCountLocked())
}

func cloneRegistry(in map[string]model.Activity) map[string]model.Activity {
	out := make(map[string]model.Activity, len(in))
	for name, a := range in {
		out[name] = a.Clone()
	}
	return out
}
