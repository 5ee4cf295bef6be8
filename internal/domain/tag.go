package domain

import "context"

// Tag represents a named tag shared across videos.
// swagger:model Tag
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TagRepository defines storage for tags and video-tag links.
type TagRepository interface {
	// EnsureTag resolves a tag by exact name, creating it if missing.
	EnsureTag(ctx context.Context, name string) (*Tag, error)
	// SetVideoTags replaces all tag links for the given video with the given tag IDs.
	SetVideoTags(ctx context.Context, videoID string, tagIDs []string) error
	// AddVideoTag links a single tag to a video; linking an already linked tag is a no-op.
	AddVideoTag(ctx context.Context, videoID, tagID string) error
	// ListTagsByVideoID returns all tags associated with the given video.
	ListTagsByVideoID(ctx context.Context, videoID string) ([]*Tag, error)
}
