package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wistiamirror/internal/domain"
)

func newVideoService(videoRepo *fakeVideoRepo, tagRepo *fakeTagRepo, wistia *fakeWistiaClient, cache *fakeCache) domain.VideoService {
	return NewVideoService(videoRepo, tagRepo, wistia, cache, time.Hour, time.Minute)
}

func TestVideoService_GetPlaylist_MissPopulatesCache(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	cache := newFakeCache()

	v := domain.NewVideo("abc123", "Test Video", "thumbnail-url", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 120, 100)
	require.NoError(t, videoRepo.Create(context.Background(), v))

	svc := newVideoService(videoRepo, newFakeTagRepo(), newFakeWistiaClient(), cache)
	videos, err := svc.GetPlaylist(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "abc123", videos[0].WistiaHashedID)

	// The snapshot is stored under the visible-only key with the configured TTL
	snapshot, ok := cache.entries[domain.CacheKeyPlaylist]
	require.True(t, ok)
	var cached []*domain.Video
	require.NoError(t, json.Unmarshal(snapshot, &cached))
	require.Len(t, cached, 1)
	assert.Equal(t, "abc123", cached[0].WistiaHashedID)
	assert.Equal(t, time.Hour, cache.ttls[domain.CacheKeyPlaylist])
	assert.NotContains(t, cache.entries, domain.CacheKeyPlaylistAll)
}

func TestVideoService_GetPlaylist_HitSkipsStorage(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	cache := newFakeCache()

	// The cached snapshot is returned verbatim even when storage differs.
	cache.entries[domain.CacheKeyPlaylist] = []byte(`[{"id":"vid-9","title":"Cached Video","visible":true}]`)

	svc := newVideoService(videoRepo, newFakeTagRepo(), newFakeWistiaClient(), cache)
	videos, err := svc.GetPlaylist(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "Cached Video", videos[0].Title)
	assert.Equal(t, 0, videoRepo.listCalls)
}

func TestVideoService_GetPlaylist_ScopeSelectsKey(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	cache := newFakeCache()

	visible := domain.NewVideo("abc123", "Visible", "u", time.Now(), 10, 0)
	require.NoError(t, videoRepo.Create(context.Background(), visible))
	hidden := domain.NewVideo("def456", "Hidden", "u", time.Now(), 10, 0)
	hidden.Visible = false
	require.NoError(t, videoRepo.Create(context.Background(), hidden))

	svc := newVideoService(videoRepo, newFakeTagRepo(), newFakeWistiaClient(), cache)

	all, err := svc.GetPlaylist(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Contains(t, cache.entries, domain.CacheKeyPlaylistAll)

	visibleOnly, err := svc.GetPlaylist(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, visibleOnly, 1)
	assert.Contains(t, cache.entries, domain.CacheKeyPlaylist)
}

func TestVideoService_GetPlaylist_EmptyStoreCachesEmptyList(t *testing.T) {
	cache := newFakeCache()
	svc := newVideoService(newFakeVideoRepo(), newFakeTagRepo(), newFakeWistiaClient(), cache)

	videos, err := svc.GetPlaylist(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, videos)
	assert.JSONEq(t, `[]`, string(cache.entries[domain.CacheKeyPlaylist]))
}

func TestVideoService_GetPlaylist_CacheErrorPropagates(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("cache store unavailable")

	svc := newVideoService(newFakeVideoRepo(), newFakeTagRepo(), newFakeWistiaClient(), cache)
	_, err := svc.GetPlaylist(context.Background(), false)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)
}

func TestVideoService_ToggleVisibility(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	cache := newFakeCache()
	cache.entries[domain.CacheKeyPlaylist] = []byte(`stale`)

	v := domain.NewVideo("abc123", "Test Video", "u", time.Now(), 10, 0)
	require.NoError(t, videoRepo.Create(context.Background(), v))

	svc := newVideoService(videoRepo, newFakeTagRepo(), newFakeWistiaClient(), cache)
	updated, err := svc.ToggleVisibility(context.Background(), v.ID)
	require.NoError(t, err)
	assert.False(t, updated.Visible)
	assert.False(t, videoRepo.videos[v.ID].Visible)
	assert.Equal(t, 1, cache.invalidations)
	assert.NotContains(t, cache.entries, domain.CacheKeyPlaylist)

	// Toggling again restores visibility
	updated, err = svc.ToggleVisibility(context.Background(), v.ID)
	require.NoError(t, err)
	assert.True(t, updated.Visible)
}

func TestVideoService_ToggleVisibility_NotFound(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	cache := newFakeCache()
	cache.entries[domain.CacheKeyPlaylist] = []byte(`snapshot`)

	svc := newVideoService(videoRepo, newFakeTagRepo(), newFakeWistiaClient(), cache)
	_, err := svc.ToggleVisibility(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Store and cache are untouched
	assert.Empty(t, videoRepo.videos)
	assert.Equal(t, 0, cache.invalidations)
	assert.Contains(t, cache.entries, domain.CacheKeyPlaylist)
}

func TestVideoService_AddTag(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	tagRepo := newFakeTagRepo()
	wistia := newFakeWistiaClient()
	cache := newFakeCache()

	v := domain.NewVideo("abc123", "Test Video", "u", time.Now(), 10, 0)
	v.Tags = []*domain.Tag{{ID: "tag-existing", Name: "Existing"}}
	require.NoError(t, videoRepo.Create(context.Background(), v))
	tagRepo.byName["Existing"] = &domain.Tag{ID: "tag-existing", Name: "Existing"}
	tagRepo.links[v.ID] = []string{"tag-existing"}

	svc := newVideoService(videoRepo, tagRepo, wistia, cache)
	require.NoError(t, svc.AddTag(context.Background(), v.ID, "Tag1"))

	// The full current tag-name list is pushed remotely, not just the new tag
	assert.Equal(t, []string{"Existing", "Tag1"}, wistia.replacedTags["abc123"])
	assert.Equal(t, []string{"tag-existing", "tag-1"}, tagRepo.links[v.ID])
	assert.Equal(t, 1, cache.invalidations)
}

func TestVideoService_AddTag_PushesStoredTagSet(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	tagRepo := newFakeTagRepo()
	wistia := newFakeWistiaClient()
	cache := newFakeCache()

	// The video row carries no tags, but the store already links one
	// (e.g. written by a sync pass after the entity was loaded).
	v := domain.NewVideo("abc123", "Test Video", "u", time.Now(), 10, 0)
	require.NoError(t, videoRepo.Create(context.Background(), v))
	tagRepo.byName["Archived"] = &domain.Tag{ID: "tag-archived", Name: "Archived"}
	tagRepo.links[v.ID] = []string{"tag-archived"}

	svc := newVideoService(videoRepo, tagRepo, wistia, cache)
	require.NoError(t, svc.AddTag(context.Background(), v.ID, "Tag1"))

	// The remote replace reflects the stored tag set, not the stale entity
	assert.Equal(t, []string{"Archived", "Tag1"}, wistia.replacedTags["abc123"])
}

func TestVideoService_AddTag_ListFailureSkipsRemoteAndCache(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	tagRepo := newFakeTagRepo()
	wistia := newFakeWistiaClient()
	cache := newFakeCache()
	tagRepo.listErr = errors.New("connection reset")

	v := domain.NewVideo("abc123", "Test Video", "u", time.Now(), 10, 0)
	require.NoError(t, videoRepo.Create(context.Background(), v))

	svc := newVideoService(videoRepo, tagRepo, wistia, cache)
	err := svc.AddTag(context.Background(), v.ID, "Tag1")
	require.Error(t, err)
	assert.Empty(t, wistia.replacedTags)
	assert.Equal(t, 0, cache.invalidations)
}

func TestVideoService_AddTag_IdempotentPerName(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	tagRepo := newFakeTagRepo()
	wistia := newFakeWistiaClient()
	cache := newFakeCache()

	v := domain.NewVideo("abc123", "Test Video", "u", time.Now(), 10, 0)
	require.NoError(t, videoRepo.Create(context.Background(), v))

	svc := newVideoService(videoRepo, tagRepo, wistia, cache)
	require.NoError(t, svc.AddTag(context.Background(), v.ID, "Tag1"))
	require.NoError(t, svc.AddTag(context.Background(), v.ID, "Tag1"))

	// The tag appears exactly once
	assert.Equal(t, []string{"tag-1"}, tagRepo.links[v.ID])
	require.Len(t, videoRepo.videos[v.ID].Tags, 1)
	// The remote replace and cache eviction still run on every call
	assert.Equal(t, []string{"Tag1"}, wistia.replacedTags["abc123"])
	assert.Equal(t, 2, cache.invalidations)
}

func TestVideoService_AddTag_NotFound(t *testing.T) {
	cache := newFakeCache()
	svc := newVideoService(newFakeVideoRepo(), newFakeTagRepo(), newFakeWistiaClient(), cache)

	err := svc.AddTag(context.Background(), "missing", "Tag1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, cache.invalidations)
}

func TestVideoService_AddTag_RemoteFailurePropagates(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	wistia := newFakeWistiaClient()
	cache := newFakeCache()
	wistia.replaceErr = errors.New("failed to update tags for video abc123 on wistia: 503")

	v := domain.NewVideo("abc123", "Test Video", "u", time.Now(), 10, 0)
	require.NoError(t, videoRepo.Create(context.Background(), v))

	svc := newVideoService(videoRepo, newFakeTagRepo(), wistia, cache)
	err := svc.AddTag(context.Background(), v.ID, "Tag1")
	require.Error(t, err)
	assert.Equal(t, 0, cache.invalidations)
}
