package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wistiamirror/internal/domain"
)

type videoService struct {
	videoRepo      domain.VideoRepository
	tagRepo        domain.TagRepository
	wistia         domain.WistiaClient
	cache          domain.PlaylistCache
	cacheTTL       time.Duration
	contextTimeout time.Duration
}

func NewVideoService(videoRepo domain.VideoRepository, tagRepo domain.TagRepository, wistia domain.WistiaClient, cache domain.PlaylistCache, cacheTTL, timeout time.Duration) domain.VideoService {
	return &videoService{
		videoRepo:      videoRepo,
		tagRepo:        tagRepo,
		wistia:         wistia,
		cache:          cache,
		cacheTTL:       cacheTTL,
		contextTimeout: timeout,
	}
}

// GetPlaylist serves the playlist for the requested visibility scope through
// the cache: a hit is returned verbatim, a miss is computed from storage and
// stored with the configured expiry.
func (s *videoService) GetPlaylist(ctx context.Context, includeHidden bool) ([]*domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key := domain.PlaylistCacheKey(includeHidden)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var videos []*domain.Video
		if err := json.Unmarshal(cached, &videos); err != nil {
			return nil, fmt.Errorf("decode cached playlist: %w", err)
		}
		return videos, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		return nil, err
	}

	videos, err := s.videoRepo.List(ctx, includeHidden)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	if videos == nil {
		videos = []*domain.Video{}
	}

	snapshot, err := json.Marshal(videos)
	if err != nil {
		return nil, fmt.Errorf("encode playlist: %w", err)
	}
	if err := s.cache.Set(ctx, key, snapshot, s.cacheTTL); err != nil {
		return nil, err
	}
	return videos, nil
}

// ToggleVisibility flips the video's visible flag and evicts both cached
// playlists.
func (s *videoService) ToggleVisibility(ctx context.Context, videoID string) (*domain.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get video: %w", err)
	}

	video.Visible = !video.Visible
	if err := s.videoRepo.UpdateVisibility(ctx, video.ID, video.Visible); err != nil {
		return nil, fmt.Errorf("update visibility: %w", err)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		return nil, err
	}
	return video, nil
}

// AddTag attaches a tag to the video (idempotent per name), pushes the
// video's full tag list to Wistia (the remote side only supports full
// replacement), and evicts both cached playlists.
func (s *videoService) AddTag(ctx context.Context, videoID, tagName string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get video: %w", err)
	}

	tag, err := s.tagRepo.EnsureTag(ctx, tagName)
	if err != nil {
		return fmt.Errorf("failed to resolve tag %s: %w", tagName, err)
	}

	if !video.HasTag(tag.ID) {
		if err := s.tagRepo.AddVideoTag(ctx, video.ID, tag.ID); err != nil {
			return fmt.Errorf("failed to attach tag %s: %w", tagName, err)
		}
	}

	// Re-read the stored tag set before the remote replace; the entity
	// loaded above may not reflect links added since.
	tags, err := s.tagRepo.ListTagsByVideoID(ctx, video.ID)
	if err != nil {
		return fmt.Errorf("failed to list tags for video %s: %w", video.ID, err)
	}
	video.Tags = tags

	if err := s.wistia.ReplaceTags(ctx, video.WistiaHashedID, video.TagNames()); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		return err
	}
	return nil
}
