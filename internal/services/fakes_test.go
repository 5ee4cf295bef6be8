package services

import (
	"context"
	"fmt"
	"time"

	"wistiamirror/internal/domain"
)

// fakeVideoRepo is an in-memory VideoRepository for tests.
type fakeVideoRepo struct {
	videos map[string]*domain.Video // id -> video
	order  []string                 // insertion order
	nextID int

	createErr           error
	listErr             error
	getErr              error
	updateSyncedErr     error
	updateVisibilityErr error

	listCalls         int
	updateSyncedCalls int
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{
		videos: make(map[string]*domain.Video),
		nextID: 1,
	}
}

func (f *fakeVideoRepo) Create(ctx context.Context, v *domain.Video) error {
	if f.createErr != nil {
		return f.createErr
	}
	v.ID = fmt.Sprintf("vid-%d", f.nextID)
	f.nextID++
	f.videos[v.ID] = v
	f.order = append(f.order, v.ID)
	return nil
}

func (f *fakeVideoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if v, ok := f.videos[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVideoRepo) List(ctx context.Context, includeHidden bool) ([]*domain.Video, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Video
	for _, id := range f.order {
		v := f.videos[id]
		if !includeHidden && !v.Visible {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVideoRepo) UpdateSyncedFields(ctx context.Context, id, title string, plays int) error {
	if f.updateSyncedErr != nil {
		return f.updateSyncedErr
	}
	v, ok := f.videos[id]
	if !ok {
		return domain.ErrNotFound
	}
	f.updateSyncedCalls++
	v.Title = title
	v.Plays = plays
	return nil
}

func (f *fakeVideoRepo) UpdateVisibility(ctx context.Context, id string, visible bool) error {
	if f.updateVisibilityErr != nil {
		return f.updateVisibilityErr
	}
	v, ok := f.videos[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Visible = visible
	return nil
}

// fakeTagRepo is an in-memory TagRepository for tests.
type fakeTagRepo struct {
	byName map[string]*domain.Tag
	links  map[string][]string // videoID -> tagIDs
	nextID int

	ensureErr error
	setErr    error
	addErr    error
	listErr   error

	ensuredNames []string
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{
		byName: make(map[string]*domain.Tag),
		links:  make(map[string][]string),
		nextID: 1,
	}
}

func (f *fakeTagRepo) EnsureTag(ctx context.Context, name string) (*domain.Tag, error) {
	if f.ensureErr != nil {
		return nil, f.ensureErr
	}
	f.ensuredNames = append(f.ensuredNames, name)
	if t, ok := f.byName[name]; ok {
		return t, nil
	}
	t := &domain.Tag{ID: fmt.Sprintf("tag-%d", f.nextID), Name: name}
	f.nextID++
	f.byName[name] = t
	return t, nil
}

func (f *fakeTagRepo) SetVideoTags(ctx context.Context, videoID string, tagIDs []string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.links[videoID] = tagIDs
	return nil
}

func (f *fakeTagRepo) AddVideoTag(ctx context.Context, videoID, tagID string) error {
	if f.addErr != nil {
		return f.addErr
	}
	for _, id := range f.links[videoID] {
		if id == tagID {
			return nil
		}
	}
	f.links[videoID] = append(f.links[videoID], tagID)
	return nil
}

func (f *fakeTagRepo) ListTagsByVideoID(ctx context.Context, videoID string) ([]*domain.Tag, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Tag
	for _, id := range f.links[videoID] {
		for _, t := range f.byName {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

// fakeWistiaClient is a scripted WistiaClient for tests.
type fakeWistiaClient struct {
	listItems []domain.WistiaVideoListItem
	stats     map[string]domain.WistiaVideoStats
	details   map[string]domain.WistiaVideoDetail

	listErr    error
	statsErr   map[string]error
	detailErr  map[string]error
	replaceErr error

	replacedTags map[string][]string
}

func newFakeWistiaClient() *fakeWistiaClient {
	return &fakeWistiaClient{
		stats:        make(map[string]domain.WistiaVideoStats),
		details:      make(map[string]domain.WistiaVideoDetail),
		statsErr:     make(map[string]error),
		detailErr:    make(map[string]error),
		replacedTags: make(map[string][]string),
	}
}

func (f *fakeWistiaClient) ListVideos(ctx context.Context) ([]domain.WistiaVideoListItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listItems, nil
}

func (f *fakeWistiaClient) GetVideoStats(ctx context.Context, hashedID string) (domain.WistiaVideoStats, error) {
	if err := f.statsErr[hashedID]; err != nil {
		return domain.WistiaVideoStats{}, err
	}
	return f.stats[hashedID], nil
}

func (f *fakeWistiaClient) GetVideoDetail(ctx context.Context, hashedID string) (domain.WistiaVideoDetail, error) {
	if err := f.detailErr[hashedID]; err != nil {
		return domain.WistiaVideoDetail{}, err
	}
	return f.details[hashedID], nil
}

func (f *fakeWistiaClient) ReplaceTags(ctx context.Context, hashedID string, tagNames []string) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replacedTags[hashedID] = tagNames
	return nil
}

// fakeCache is an in-memory PlaylistCache for tests.
type fakeCache struct {
	entries map[string][]byte
	ttls    map[string]time.Duration

	getErr        error
	setErr        error
	invalidateErr error

	invalidations int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if v, ok := f.entries[key]; ok {
		return v, nil
	}
	return nil, domain.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context) error {
	if f.invalidateErr != nil {
		return f.invalidateErr
	}
	f.invalidations++
	delete(f.entries, domain.CacheKeyPlaylist)
	delete(f.entries, domain.CacheKeyPlaylistAll)
	return nil
}
