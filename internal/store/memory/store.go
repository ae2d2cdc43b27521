// Package memory implements the store.Store interface with a mutex-guarded
// map. It exists so the rest of the system can be exercised deterministically
// in tests without a database on disk.
package memory

import (
	"context"
	"sync"

	"github.com/trackstash/trackstash-server/internal/domain"
	"github.com/trackstash/trackstash-server/internal/store"
)

// Store holds resources in process memory.
// Safe for concurrent use; handlers run on parallel goroutines.
type Store struct {
	mu        sync.RWMutex
	resources map[string]*domain.Resource
}

// compile-time interface check
var _ store.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		resources: make(map[string]*domain.Resource),
	}
}

// Close is a no-op; there is no backend to release.
func (s *Store) Close() error { return nil }

// SaveResource inserts or fully overwrites the resource under its ID.
func (s *Store) SaveResource(ctx context.Context, resource *domain.Resource) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy so later mutations by the caller don't leak in.
	s.resources[resource.ID] = resource.Clone()
	return nil
}

// GetResource retrieves a resource by ID.
// Returns store.ErrNotFound if the resource does not exist.
func (s *Store) GetResource(ctx context.Context, id string) (*domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	resource, ok := s.resources[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return resource.Clone(), nil
}

// ListResources returns all stored resources in unspecified order.
func (s *Store) ListResources(ctx context.Context) ([]*domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	resources := make([]*domain.Resource, 0, len(s.resources))
	for _, resource := range s.resources {
		resources = append(resources, resource.Clone())
	}
	return resources, nil
}

// UpdateResource fully overwrites the resource under its ID.
// Unlike the Badger store this upserts when the ID is absent; the service
// layer pre-checks existence, so the difference is never visible to callers.
func (s *Store) UpdateResource(ctx context.Context, resource *domain.Resource) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.resources[resource.ID] = resource.Clone()
	return nil
}

// DeleteResource removes a resource by ID.
// Deleting an absent ID is a no-op, not an error.
func (s *Store) DeleteResource(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.resources, id)
	return nil
}
