package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackstash/trackstash-server/internal/domain"
	"github.com/trackstash/trackstash-server/internal/store"
	"github.com/trackstash/trackstash-server/internal/store/memory"
)

func testResource(id string) *domain.Resource {
	return &domain.Resource{
		ID:     id,
		URL:    "https://soundcloud.com/artist/track",
		Artist: "Daft Punk",
		Title:  "Around the World",
		Type:   "track",
		Tags: []domain.Tag{
			{Label: "genre", Value: "house"},
		},
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	resource := testResource("1")
	require.NoError(t, s.SaveResource(ctx, resource))

	retrieved, err := s.GetResource(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, resource, retrieved)
}

func TestStore_Get_NotFound(t *testing.T) {
	s := memory.New()

	_, err := s.GetResource(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Get_ReturnsCopy(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.SaveResource(ctx, testResource("1")))

	first, err := s.GetResource(ctx, "1")
	require.NoError(t, err)

	// Mutating what we got back must not affect stored state.
	first.Title = "mutated"
	first.Tags[0].Value = "mutated"

	second, err := s.GetResource(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Around the World", second.Title)
	assert.Equal(t, "house", second.Tags[0].Value)
}

func TestStore_List_Empty(t *testing.T) {
	s := memory.New()

	resources, err := s.ListResources(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resources)
	assert.Empty(t, resources)
}

func TestStore_List_ReturnsAll(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	for i := range 5 {
		require.NoError(t, s.SaveResource(ctx, testResource(fmt.Sprintf("%d", i))))
	}

	resources, err := s.ListResources(ctx)
	require.NoError(t, err)
	assert.Len(t, resources, 5)
}

func TestStore_Update_Upserts(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	// Backend-dependent behavior: the memory store upserts on update.
	require.NoError(t, s.UpdateResource(ctx, testResource("fresh")))

	retrieved, err := s.GetResource(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "Around the World", retrieved.Title)
}

func TestStore_Delete_Idempotent(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	require.NoError(t, s.SaveResource(ctx, testResource("1")))
	require.NoError(t, s.DeleteResource(ctx, "1"))

	_, err := s.GetResource(ctx, "1")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.DeleteResource(ctx, "1"))
	require.NoError(t, s.DeleteResource(ctx, "1"))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("%d", n)
			_ = s.SaveResource(ctx, testResource(id))
			_, _ = s.GetResource(ctx, id)
			_, _ = s.ListResources(ctx)
			_ = s.DeleteResource(ctx, id)
		}(i)
	}
	wg.Wait()

	resources, err := s.ListResources(ctx)
	require.NoError(t, err)
	assert.Empty(t, resources)
}
