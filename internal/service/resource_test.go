package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackstash/trackstash-server/internal/domain"
	"github.com/trackstash/trackstash-server/internal/errors"
	"github.com/trackstash/trackstash-server/internal/store/memory"
)

func setupResourceTest(t *testing.T) *ResourceService {
	t.Helper()
	return NewResourceService(memory.New(), nil)
}

func testInput() ResourceInput {
	return ResourceInput{
		URL:    "https://www.youtube.com/watch?v=HyHNuVaZJ-k",
		Artist: "Gorillaz",
		Title:  "Feel Good Inc.",
		Type:   "video",
		Tags: []domain.Tag{
			{Label: "genre", Value: "alternative"},
			{Label: "mood", Value: "upbeat"},
		},
	}
}

func TestResourceService_Create_Success(t *testing.T) {
	svc := setupResourceTest(t)
	ctx := context.Background()

	in := testInput()
	resource, err := svc.Create(ctx, in)
	require.NoError(t, err)

	assert.NotEmpty(t, resource.ID)
	assert.Equal(t, in.URL, resource.URL)
	assert.Equal(t, in.Artist, resource.Artist)
	assert.Equal(t, in.Title, resource.Title)
	assert.Equal(t, in.Type, resource.Type)
	assert.Equal(t, in.Tags, resource.Tags)
}

func TestResourceService_Create_DistinctIDs(t *testing.T) {
	svc := setupResourceTest(t)
	ctx := context.Background()

	// Identical payloads must still get distinct identifiers.
	first, err := svc.Create(ctx, testInput())
	require.NoError(t, err)
	second, err := svc.Create(ctx, testInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestResourceService_Get_RoundTrip(t *testing.T) {
	svc := setupResourceTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, testInput())
	require.NoError(t, err)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)
}

func TestResourceService_Get_NotFound(t *testing.T) {
	svc := setupResourceTest(t)

	_, err := svc.Get(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.Contains(t, err.Error(), "no-such-id")
}

func TestResourceService_List_Empty(t *testing.T) {
	svc := setupResourceTest(t)

	resources, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resources)
}

func TestResourceService_Update_ReplacesFields(t *testing.T) {
	svc := setupResourceTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ResourceInput{
		URL:    "https://a",
		Artist: "A",
		Title:  "T",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, ResourceInput{
		URL:    "https://b",
		Artist: "B",
		Title:  "T2",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID, "update must preserve the original id")
	assert.Equal(t, "https://b", updated.URL)
	assert.Equal(t, "B", updated.Artist)
	assert.Equal(t, "T2", updated.Title)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, fetched)
}

func TestResourceService_Update_DropsOmittedOptionalFields(t *testing.T) {
	svc := setupResourceTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, testInput())
	require.NoError(t, err)
	require.NotEmpty(t, created.Type)
	require.NotEmpty(t, created.Tags)

	// The update payload is a full replacement document: leaving type and
	// tags out drops them rather than keeping the previous values.
	updated, err := svc.Update(ctx, created.ID, ResourceInput{
		URL:    created.URL,
		Artist: created.Artist,
		Title:  created.Title,
	})
	require.NoError(t, err)

	assert.Empty(t, updated.Type)
	assert.Empty(t, updated.Tags)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Type)
	assert.Empty(t, fetched.Tags)
}

func TestResourceService_Update_NotFound(t *testing.T) {
	svc := setupResourceTest(t)

	_, err := svc.Update(context.Background(), "no-such-id", testInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.Contains(t, err.Error(), "no-such-id")

	// The failed update must not have created anything.
	resources, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resources)
}

func TestResourceService_Delete_RemovesResource(t *testing.T) {
	svc := setupResourceTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, testInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestResourceService_Delete_Idempotent(t *testing.T) {
	svc := setupResourceTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, testInput())
	require.NoError(t, err)

	// Deleting twice in sequence succeeds both times.
	require.NoError(t, svc.Delete(ctx, created.ID))
	require.NoError(t, svc.Delete(ctx, created.ID))

	// And deleting an id that never existed is also fine.
	require.NoError(t, svc.Delete(ctx, "never-existed"))
}
