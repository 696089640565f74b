package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/biolink/pkg/config"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

// Services bundles what the HTTP layer calls into.
type Services struct {
	Links       ports.LinkService
	Collections ports.CollectionService
	Ordering    ports.OrderingService
	Clicks      ports.ClickService
	Profiles    ports.ProfileService
}

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, log zerolog.Logger, svc Services) http.Handler {
	// Initialize Handlers
	lh := NewLinkHandler(svc.Links, log)
	ch := NewCollectionHandler(svc.Collections, svc.Ordering, log)
	bh := NewBoardHandler(svc.Ordering, log)
	th := NewTrackHandler(svc.Clicks)
	ph := NewProfileHandler(svc.Profiles, log)
	pages := NewPageHandler(svc.Profiles, svc.Ordering, log)
	authHandler := NewAuthHandler(cfg, svc.Profiles, log)

	mw := NewMiddleware(cfg)

	mux := http.NewServeMux()

	// Public Routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /api/track-click", th.TrackClick)
	mux.HandleFunc("GET /api/v1/profiles/{username}", ph.Public)
	mux.HandleFunc("GET /auth/google/login", authHandler.Login)
	mux.HandleFunc("GET /auth/google/callback", authHandler.Callback)
	mux.HandleFunc("GET /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /{username}", pages.PublicProfile)
	mux.Handle("GET /dashboard", mw.AuthMiddleware(http.HandlerFunc(pages.Dashboard)))

	// Protected API Routes
	// Registered on mux itself so r.Pattern reaches the metrics middleware.
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, mw.AuthMiddleware(h))
	}
	protected("GET /api/v1/board", bh.Get)
	protected("POST /api/v1/board/drop", bh.Drop)
	protected("POST /api/v1/board/reorder", bh.Reorder)
	protected("POST /api/v1/board/move", bh.Move)
	protected("POST /api/v1/board/collections/reorder", bh.ReorderCollections)

	protected("POST /api/v1/links", lh.Create)
	protected("GET /api/v1/links", lh.List)
	protected("PUT /api/v1/links/{id}", lh.Update)
	protected("PATCH /api/v1/links/{id}/active", lh.SetActive)
	protected("DELETE /api/v1/links/{id}", lh.Delete)
	protected("GET /api/v1/links/{id}/stats", lh.Stats)

	protected("POST /api/v1/collections", ch.CreateCollection)
	protected("GET /api/v1/collections", ch.ListCollections)
	protected("PUT /api/v1/collections/{id}", ch.UpdateCollection)
	protected("DELETE /api/v1/collections/{id}", ch.DeleteCollection)
	protected("POST /api/v1/collections/{id}/ungroup", ch.Ungroup)

	protected("GET /api/v1/profile", ph.Get)
	protected("PUT /api/v1/profile", ph.Update)

	return Metrics(Logging(log)(mux))
}
