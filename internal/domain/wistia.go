package domain

import (
	"context"
	"time"
)

// WistiaClient talks to the Wistia media API (or a test double).
type WistiaClient interface {
	// ListVideos returns the account's media catalog, without tags.
	ListVideos(ctx context.Context) ([]WistiaVideoListItem, error)
	// GetVideoDetail returns detailed information for one video, including tags.
	GetVideoDetail(ctx context.Context, hashedID string) (WistiaVideoDetail, error)
	// GetVideoStats returns play stats for one video.
	GetVideoStats(ctx context.Context, hashedID string) (WistiaVideoStats, error)
	// ReplaceTags replaces the full tag list of a video on the remote side.
	ReplaceTags(ctx context.Context, hashedID string, tagNames []string) error
}

// WistiaThumbnail is the thumbnail object on Wistia media responses.
type WistiaThumbnail struct {
	URL string `json:"url"`
}

// WistiaTag is a tag entry on Wistia media responses.
type WistiaTag struct {
	Name string `json:"name"`
}

// WistiaVideoListItem is one entry of the Wistia medias list response.
type WistiaVideoListItem struct {
	HashedID  string          `json:"hashed_id"`
	Name      string          `json:"name"`
	Created   time.Time       `json:"created"`
	Thumbnail WistiaThumbnail `json:"thumbnail"`
	Duration  float64         `json:"duration"`
}

// WistiaVideoDetail is the Wistia media detail response, carrying tags.
type WistiaVideoDetail struct {
	HashedID  string          `json:"hashed_id"`
	Name      string          `json:"name"`
	Created   time.Time       `json:"created"`
	Thumbnail WistiaThumbnail `json:"thumbnail"`
	Tags      []WistiaTag     `json:"tags"`
}

// WistiaVideoStats holds play stats for a single video.
type WistiaVideoStats struct {
	Plays int `json:"plays"`
}
