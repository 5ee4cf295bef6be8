package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"wistiamirror/internal/delivery/http/helpers"
	"wistiamirror/internal/domain"
)

type VideoController struct {
	Logger *slog.Logger
	Videos domain.VideoService
	Sync   domain.SyncService
}

func NewVideoController(logger *slog.Logger, videos domain.VideoService, sync domain.SyncService) *VideoController {
	return &VideoController{
		Logger: logger,
		Videos: videos,
		Sync:   sync,
	}
}

// VideoView is the playlist view record served to the player.
// swagger:model VideoView
type VideoView struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	HashedID     string   `json:"hashedId"`
	ThumbnailURL string   `json:"thumbnailUrl"`
	Plays        int      `json:"plays"`
	Visible      bool     `json:"visible"`
	Duration     float64  `json:"duration"`
	Tags         []string `json:"tags"`
}

func toVideoView(v *domain.Video) VideoView {
	return VideoView{
		ID:           v.ID,
		Title:        v.Title,
		HashedID:     v.WistiaHashedID,
		ThumbnailURL: v.ThumbnailURL,
		Plays:        v.Plays,
		Visible:      v.Visible,
		Duration:     v.Duration,
		Tags:         v.TagNames(),
	}
}

// GetPlaylistSuccessResponse is the success response envelope for GET /videos (200).
type GetPlaylistSuccessResponse struct {
	Data  []VideoView       `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetPlaylist godoc
// @Summary Get the video playlist
// @Description Returns the playlist for the requested visibility scope, served through the playlist cache. Pass includeHidden=true for the full catalog including hidden videos.
// @Tags videos
// @Produce json
// @Param includeHidden query bool false "Include hidden videos (default false)"
// @Success 200 {object} controllers.GetPlaylistSuccessResponse "data is an array of playlist view records"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /videos [get]
func (c *VideoController) GetPlaylist(w http.ResponseWriter, r *http.Request) {
	includeHidden := r.URL.Query().Get("includeHidden") == "true"

	videos, err := c.Videos.GetPlaylist(r.Context(), includeHidden)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to fetch playlist")
		return
	}

	views := make([]VideoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, toVideoView(v))
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, views)
}

// SyncVideosResponse is the data payload for POST /videos/sync (200).
type SyncVideosResponse struct {
	Status string `json:"status"`
}

// SyncVideosSuccessResponse is the success response envelope for POST /videos/sync (200).
type SyncVideosSuccessResponse struct {
	Data  SyncVideosResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// SyncVideos godoc
// @Summary Sync videos from Wistia
// @Description Runs a full sync pass: pulls the Wistia catalog, creates or updates local records with their tags, and evicts both cached playlists. A remote or storage failure aborts the pass; already-synced videos stay committed.
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SyncVideosSuccessResponse "data contains status message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /videos/sync [post]
func (c *VideoController) SyncVideos(w http.ResponseWriter, r *http.Request) {
	if err := c.Sync.SyncVideos(r.Context()); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to sync videos")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SyncVideosResponse{Status: "synced"})
}

// ToggleVisibilitySuccessResponse is the success response envelope for PATCH /videos/{videoID}/visibility (200).
type ToggleVisibilitySuccessResponse struct {
	Data  VideoView         `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ToggleVisibility godoc
// @Summary Toggle a video's visibility
// @Description Flips the video's visible flag and evicts both cached playlists.
// @Tags videos
// @Produce json
// @Security BearerAuth
// @Param videoID path string true "Video ID (UUID)"
// @Success 200 {object} controllers.ToggleVisibilitySuccessResponse "data contains the updated video"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /videos/{videoID}/visibility [patch]
func (c *VideoController) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoID")
	if videoID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing videoID")
		return
	}

	video, err := c.Videos.ToggleVisibility(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "video not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to toggle visibility")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, toVideoView(video))
}

// AddTagRequest is the request body for PATCH /videos/{videoID}/tags.
type AddTagRequest struct {
	TagName string `json:"tagName"`
}

// Validate implements Validator.
func (a AddTagRequest) Validate() []string {
	if a.TagName == "" {
		return []string{"tagName is required"}
	}
	return nil
}

// AddTagResponse is the data payload for PATCH /videos/{videoID}/tags (200).
type AddTagResponse struct {
	Status string `json:"status"`
}

// AddTagSuccessResponse is the success response envelope for PATCH /videos/{videoID}/tags (200).
type AddTagSuccessResponse struct {
	Data  AddTagResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AddTag godoc
// @Summary Add a tag to a video
// @Description Attaches the named tag to the video (idempotent per name), pushes the video's full tag list to Wistia, and evicts both cached playlists.
// @Tags videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param videoID path string true "Video ID (UUID)"
// @Param body body AddTagRequest true "Tag name (free text)"
// @Success 200 {object} controllers.AddTagSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /videos/{videoID}/tags [patch]
func (c *VideoController) AddTag(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoID")
	if videoID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing videoID")
		return
	}
	var req AddTagRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := c.Videos.AddTag(r.Context(), videoID, req.TagName); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "video not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "failed to add tag")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AddTagResponse{Status: "tagged"})
}
