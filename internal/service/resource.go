// Package service contains the business logic of the Trackstash server.
package service

import (
	"context"
	"log/slog"

	"github.com/trackstash/trackstash-server/internal/domain"
	"github.com/trackstash/trackstash-server/internal/errors"
	"github.com/trackstash/trackstash-server/internal/id"
	"github.com/trackstash/trackstash-server/internal/store"
)

// ResourceInput carries the caller-supplied fields of a resource.
// It never includes an ID; identifiers are assigned here and only here.
type ResourceInput struct {
	URL    string
	Artist string
	Title  string
	Type   string
	Tags   []domain.Tag
}

// ResourceService orchestrates resource lifecycle operations.
//
// It is the sole place where "does this resource exist" is decided and the
// sole generator of identifiers. It depends only on the store interface so
// the durable and in-memory backends are interchangeable underneath it.
type ResourceService struct {
	store  store.Store
	logger *slog.Logger
}

// NewResourceService creates a new resource service.
func NewResourceService(store store.Store, logger *slog.Logger) *ResourceService {
	return &ResourceService{
		store:  store,
		logger: logger,
	}
}

// Create assigns a fresh ID to the input and persists the resulting resource.
// IDs are 128-bit random values, so no pre-existence check is needed.
func (s *ResourceService) Create(ctx context.Context, in ResourceInput) (*domain.Resource, error) {
	resource := &domain.Resource{
		ID:     id.New(),
		URL:    in.URL,
		Artist: in.Artist,
		Title:  in.Title,
		Type:   in.Type,
		Tags:   in.Tags,
	}

	if err := s.store.SaveResource(ctx, resource); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("resource created", "id", resource.ID, "artist", resource.Artist, "title", resource.Title)
	}

	return resource, nil
}

// Get returns the resource with the given ID.
// Absence surfaces as a NotFound error naming the requested ID.
func (s *ResourceService) Get(ctx context.Context, resourceID string) (*domain.Resource, error) {
	resource, err := s.store.GetResource(ctx, resourceID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("resource with id %s not found", resourceID)
	}
	if err != nil {
		return nil, err
	}
	return resource, nil
}

// List returns every stored resource, untransformed.
func (s *ResourceService) List(ctx context.Context) ([]*domain.Resource, error) {
	return s.store.ListResources(ctx)
}

// Update replaces an existing resource with the given payload, keeping its ID.
//
// The payload is a complete replacement document, not a patch: omitted
// optional fields (type, tags) are dropped, never carried over from the
// previous record. Updating an absent ID is a NotFound error — never a blind
// upsert; that distinction is what separates Update from Create.
func (s *ResourceService) Update(ctx context.Context, resourceID string, in ResourceInput) (*domain.Resource, error) {
	_, err := s.store.GetResource(ctx, resourceID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("resource with id %s not found", resourceID)
	}
	if err != nil {
		return nil, err
	}

	resource := &domain.Resource{
		ID:     resourceID,
		URL:    in.URL,
		Artist: in.Artist,
		Title:  in.Title,
		Type:   in.Type,
		Tags:   in.Tags,
	}

	if err := s.store.UpdateResource(ctx, resource); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("resource updated", "id", resource.ID)
	}

	return resource, nil
}

// Delete removes the resource with the given ID.
// Deleting an absent ID succeeds silently without touching the store's
// delete path, so the operation is idempotent regardless of backend.
func (s *ResourceService) Delete(ctx context.Context, resourceID string) error {
	_, err := s.store.GetResource(ctx, resourceID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.store.DeleteResource(ctx, resourceID); err != nil {
		return err
	}

	if s.logger != nil {
		s.logger.Info("resource deleted", "id", resourceID)
	}

	return nil
}
