// Package store defines the persistence interface for the Trackstash server.
package store

import (
	"context"

	"github.com/trackstash/trackstash-server/internal/domain"
)

// Store defines the interface for all persistence operations.
//
// Two implementations exist: a durable Badger-backed store (store/badger) and
// an in-memory store used by the test suite (store/memory). Both satisfy the
// same behavioral contract so services depend only on this interface.
type Store interface {
	// SaveResource persists a resource under its ID, inserting or fully
	// overwriting. It succeeds even if a resource with the same ID exists.
	SaveResource(ctx context.Context, resource *domain.Resource) error

	// GetResource returns the resource with the given ID, or ErrNotFound.
	// Absence is never a panic or a raw backend error.
	GetResource(ctx context.Context, id string) (*domain.Resource, error)

	// ListResources returns every stored resource. Order is backend-dependent
	// and an empty slice is a valid, non-error result.
	ListResources(ctx context.Context) ([]*domain.Resource, error)

	// UpdateResource fully overwrites an existing record. Behavior for an
	// absent ID is backend-dependent: the Badger store returns ErrNotFound,
	// the memory store upserts. Services pre-check existence so callers never
	// observe the difference.
	UpdateResource(ctx context.Context, resource *domain.Resource) error

	// DeleteResource removes the record if present. Deleting an absent ID is
	// a no-op, not an error.
	DeleteResource(ctx context.Context, id string) error

	// Close releases the underlying backend.
	Close() error
}
