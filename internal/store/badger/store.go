// Package badger implements the store.Store interface on top of Badger v4,
// an embedded document store keyed by resource ID.
package badger

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/trackstash/trackstash-server/internal/domain"
	"github.com/trackstash/trackstash-server/internal/store"
)

// resourcePrefix namespaces resource documents in the key space.
// The document key is always resourcePrefix + resource.ID.
const resourcePrefix = "resource:"

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// compile-time interface check
var _ store.Store = (*Store)(nil)

// New opens the Badger database at path and returns a Store.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// SaveResource inserts or fully overwrites the resource under its ID.
func (s *Store) SaveResource(ctx context.Context, resource *domain.Resource) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(resource)
	if err != nil {
		return fmt.Errorf("failed to marshal resource: %w", err)
	}

	key := resourcePrefix + resource.ID
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}

	return nil
}

// GetResource retrieves a resource by ID.
// Returns store.ErrNotFound if the resource does not exist.
func (s *Store) GetResource(ctx context.Context, id string) (*domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := resourcePrefix + id
	var resource domain.Resource

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &resource); err != nil {
				return fmt.Errorf("failed to unmarshal resource: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// ListResources returns all stored resources in key order.
func (s *Store) ListResources(ctx context.Context) ([]*domain.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resources := make([]*domain.Resource, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(resourcePrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var resource domain.Resource
				if err := json.Unmarshal(val, &resource); err != nil {
					return fmt.Errorf("failed to unmarshal resource: %w", err)
				}
				resources = append(resources, &resource)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, store.ErrInternal.WithCause(err)
	}

	return resources, nil
}

// UpdateResource fully overwrites an existing resource.
// Returns store.ErrNotFound if the resource does not exist.
func (s *Store) UpdateResource(ctx context.Context, resource *domain.Resource) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(resource)
	if err != nil {
		return fmt.Errorf("failed to marshal resource: %w", err)
	}

	key := resourcePrefix + resource.ID
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check existing key: %w", err)
		}

		return txn.Set([]byte(key), data)
	})
}

// DeleteResource removes a resource by ID.
// Deleting an absent ID is a no-op, not an error.
func (s *Store) DeleteResource(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := resourcePrefix + id
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return store.ErrInternal.WithCause(err)
	}

	return nil
}
