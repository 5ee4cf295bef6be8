package domain

import (
	"context"
	"errors"
	"time"
)

// Cache keys for the two playlist scopes. Kept in one place so they don't
// spread through the code.
const (
	CacheKeyPlaylist    = "videos_playlist"
	CacheKeyPlaylistAll = "videos_playlist_all"
)

// PlaylistCacheKey returns the cache key for the given visibility scope.
func PlaylistCacheKey(includeHidden bool) string {
	if includeHidden {
		return CacheKeyPlaylistAll
	}
	return CacheKeyPlaylist
}

// ErrCacheMiss is returned by PlaylistCache.Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// PlaylistCache is a key/value cache for serialized playlist snapshots.
type PlaylistCache interface {
	// Get returns the cached value for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key with the given expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Invalidate deletes both playlist keys unconditionally.
	Invalidate(ctx context.Context) error
}
