package services

import (
	"context"
	"fmt"
	"time"

	"wistiamirror/internal/domain"
)

type syncService struct {
	videoRepo      domain.VideoRepository
	tagRepo        domain.TagRepository
	wistia         domain.WistiaClient
	cache          domain.PlaylistCache
	contextTimeout time.Duration
}

func NewSyncService(videoRepo domain.VideoRepository, tagRepo domain.TagRepository, wistia domain.WistiaClient, cache domain.PlaylistCache, timeout time.Duration) domain.SyncService {
	return &syncService{
		videoRepo:      videoRepo,
		tagRepo:        tagRepo,
		wistia:         wistia,
		cache:          cache,
		contextTimeout: timeout,
	}
}

// SyncVideos reconciles the remote Wistia catalog with local storage, one
// video at a time in the order the provider returns them. A remote or
// persistence failure aborts the pass; videos persisted before the failure
// stay committed. Both playlist cache keys are evicted after a full pass.
func (s *syncService) SyncVideos(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// 1. Fetch the remote catalog
	wistiaVideos, err := s.wistia.ListVideos(ctx)
	if err != nil {
		return err
	}

	// 2. Index local videos by hashed id
	existing, err := s.videoRepo.List(ctx, true)
	if err != nil {
		return fmt.Errorf("list local videos: %w", err)
	}
	existingByHashedID := make(map[string]*domain.Video, len(existing))
	for _, v := range existing {
		existingByHashedID[v.WistiaHashedID] = v
	}

	// 3. Reconcile each remote video
	for _, wv := range wistiaVideos {
		stats, err := s.wistia.GetVideoStats(ctx, wv.HashedID)
		if err != nil {
			return err
		}
		detail, err := s.wistia.GetVideoDetail(ctx, wv.HashedID)
		if err != nil {
			return err
		}

		tagNames := make([]string, 0, len(detail.Tags))
		for _, t := range detail.Tags {
			tagNames = append(tagNames, t.Name)
		}
		tags, err := s.resolveTags(ctx, tagNames)
		if err != nil {
			return err
		}

		video, ok := existingByHashedID[wv.HashedID]
		if !ok {
			video = domain.NewVideo(wv.HashedID, wv.Name, wv.Thumbnail.URL, wv.Created, wv.Duration, stats.Plays)
			if err := s.videoRepo.Create(ctx, video); err != nil {
				return fmt.Errorf("failed to create video %s: %w", wv.HashedID, err)
			}
		} else {
			// Updates refresh only title and play count; thumbnail,
			// duration, created-at and visibility keep their stored values.
			video.Title = wv.Name
			video.Plays = stats.Plays
			if err := s.videoRepo.UpdateSyncedFields(ctx, video.ID, video.Title, video.Plays); err != nil {
				return fmt.Errorf("failed to update video %s: %w", wv.HashedID, err)
			}
		}

		tagIDs := make([]string, 0, len(tags))
		for _, t := range tags {
			tagIDs = append(tagIDs, t.ID)
		}
		if err := s.tagRepo.SetVideoTags(ctx, video.ID, tagIDs); err != nil {
			return fmt.Errorf("failed to set tags for video %s: %w", wv.HashedID, err)
		}
		video.Tags = tags
	}

	// 4. Invalidate the cached playlists
	if err := s.cache.Invalidate(ctx); err != nil {
		return err
	}
	return nil
}

// resolveTags maps tag names to persisted tags, creating missing ones.
// Names are de-duplicated (first occurrence wins) before resolution so a
// repeated name cannot trip the unique constraint on creation.
func (s *syncService) resolveTags(ctx context.Context, names []string) ([]*domain.Tag, error) {
	seen := make(map[string]struct{}, len(names))
	var tags []*domain.Tag
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		tag, err := s.tagRepo.EnsureTag(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %s: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
