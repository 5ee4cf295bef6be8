package domain

import (
	"context"
	"time"
)

// Video is a locally mirrored Wistia video.
// swagger:model Video
type Video struct {
	ID             string    `json:"id"`
	WistiaHashedID string    `json:"hashed_id"`
	Title          string    `json:"title"`
	ThumbnailURL   string    `json:"thumbnail_url"`
	CreatedAt      time.Time `json:"created_at"`
	Duration       float64   `json:"duration"`
	Plays          int       `json:"plays"`
	Visible        bool      `json:"visible"`
	Tags           []*Tag    `json:"tags"`
}

// NewVideo returns a new Video with the given fields. ID is set by the repository on create.
// Visibility defaults to true.
func NewVideo(hashedID, title, thumbnailURL string, createdAt time.Time, duration float64, plays int) *Video {
	return &Video{
		WistiaHashedID: hashedID,
		Title:          title,
		ThumbnailURL:   thumbnailURL,
		CreatedAt:      createdAt,
		Duration:       duration,
		Plays:          plays,
		Visible:        true,
	}
}

// TagNames returns the names of the video's tags in association order.
func (v *Video) TagNames() []string {
	names := make([]string, 0, len(v.Tags))
	for _, t := range v.Tags {
		names = append(names, t.Name)
	}
	return names
}

// HasTag reports whether the video already carries a tag with the given ID.
func (v *Video) HasTag(tagID string) bool {
	for _, t := range v.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// VideoRepository defines the interface for video storage.
type VideoRepository interface {
	// Create inserts the video and sets its ID.
	Create(ctx context.Context, video *Video) error
	// GetByID returns the video with its tags, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Video, error)
	// List returns all videos with their tags. When includeHidden is false,
	// only visible videos are returned.
	List(ctx context.Context, includeHidden bool) ([]*Video, error)
	// UpdateSyncedFields updates only the fields refreshed by a sync pass:
	// title and play count. All other columns are left as stored.
	UpdateSyncedFields(ctx context.Context, id, title string, plays int) error
	// UpdateVisibility sets the visible flag, or returns ErrNotFound.
	UpdateVisibility(ctx context.Context, id string, visible bool) error
}

// VideoService serves the playlist read path and video mutations.
type VideoService interface {
	GetPlaylist(ctx context.Context, includeHidden bool) ([]*Video, error)
	ToggleVisibility(ctx context.Context, videoID string) (*Video, error)
	AddTag(ctx context.Context, videoID, tagName string) error
}

// SyncService reconciles the remote Wistia catalog with local storage.
type SyncService interface {
	SyncVideos(ctx context.Context) error
}
