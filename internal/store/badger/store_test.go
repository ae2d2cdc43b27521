package badger_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackstash/trackstash-server/internal/domain"
	"github.com/trackstash/trackstash-server/internal/store"
	"github.com/trackstash/trackstash-server/internal/store/badger"
)

func setupTestStore(t *testing.T) *badger.Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := badger.New(dbPath, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func testResource(id string) *domain.Resource {
	return &domain.Resource{
		ID:     id,
		URL:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		Artist: "Rick Astley",
		Title:  "Never Gonna Give You Up",
		Type:   "video",
		Tags: []domain.Tag{
			{Label: "genre", Value: "pop"},
			{Label: "decade", Value: "80s"},
		},
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	resource := testResource("1")
	require.NoError(t, s.SaveResource(ctx, resource))

	retrieved, err := s.GetResource(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, resource, retrieved)
}

func TestStore_Save_Overwrites(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveResource(ctx, testResource("1")))

	updated := testResource("1")
	updated.Title = "Together Forever"
	updated.Tags = nil
	require.NoError(t, s.SaveResource(ctx, updated))

	retrieved, err := s.GetResource(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Together Forever", retrieved.Title)
	assert.Empty(t, retrieved.Tags)
}

func TestStore_Get_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetResource(context.Background(), "missing")
	require.Error(t, err)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_List_Empty(t *testing.T) {
	s := setupTestStore(t)

	resources, err := s.ListResources(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resources)
	assert.Empty(t, resources)
}

func TestStore_List_ReturnsAll(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveResource(ctx, testResource("1")))
	require.NoError(t, s.SaveResource(ctx, testResource("2")))
	require.NoError(t, s.SaveResource(ctx, testResource("3")))

	resources, err := s.ListResources(ctx)
	require.NoError(t, err)
	assert.Len(t, resources, 3)

	ids := make(map[string]bool)
	for _, r := range resources {
		ids[r.ID] = true
	}
	assert.Equal(t, map[string]bool{"1": true, "2": true, "3": true}, ids)
}

func TestStore_Update_Existing(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveResource(ctx, testResource("1")))

	updated := testResource("1")
	updated.Artist = "Rick Astley & Friends"
	require.NoError(t, s.UpdateResource(ctx, updated))

	retrieved, err := s.GetResource(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Rick Astley & Friends", retrieved.Artist)
}

func TestStore_Update_NotFound(t *testing.T) {
	s := setupTestStore(t)

	err := s.UpdateResource(context.Background(), testResource("missing"))
	require.Error(t, err)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Delete_Existing(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveResource(ctx, testResource("1")))
	require.NoError(t, s.DeleteResource(ctx, "1"))

	_, err := s.GetResource(ctx, "1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Delete_AbsentIsNoop(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	// Deleting something that was never there is not an error, twice in a row.
	require.NoError(t, s.DeleteResource(ctx, "missing"))
	require.NoError(t, s.DeleteResource(ctx, "missing"))
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := badger.New(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveResource(ctx, testResource("1")))
	require.NoError(t, s.Close())

	reopened, err := badger.New(dbPath, nil)
	require.NoError(t, err)
	defer reopened.Close()

	retrieved, err := reopened.GetResource(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", retrieved.Title)
}
