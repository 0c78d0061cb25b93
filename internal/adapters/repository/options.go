// Package repository defines the activity registry interface and errors.
package repository

import "github.com/mergington/activities/internal/domain/model"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithSeed replaces the default seed registry. Empty or nil seeds are
// ignored so a misconfigured override never yields an empty registry.
func WithSeed(seed map[string]model.Activity) Option {
	return func(s *MemStore) {
		if len(seed) > 0 {
			s.seed = cloneRegistry(seed)
		}
	}
}
