package http

import (
	"net/http"

	"wistiamirror/internal/delivery/http/controllers"
	"wistiamirror/internal/delivery/http/middleware"
	"wistiamirror/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(videoController *controllers.VideoController, authController *controllers.AuthController, verifier domain.TokenVerifier) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)

	// Playlist (public)
	mux.HandleFunc("GET /videos", videoController.GetPlaylist)

	// Admin
	mux.HandleFunc("POST /videos/sync", requireAuth(videoController.SyncVideos))
	mux.HandleFunc("PATCH /videos/{videoID}/visibility", requireAuth(videoController.ToggleVisibility))
	mux.HandleFunc("PATCH /videos/{videoID}/tags", requireAuth(videoController.AddTag))

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
