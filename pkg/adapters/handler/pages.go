package handler

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	profileTemplate   = template.Must(template.ParseFS(templateFS, "templates/profile.html"))
	dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))
)

// PageHandler renders the server-side HTML views.
type PageHandler struct {
	profiles ports.ProfileService
	ordering ports.OrderingService
	log      zerolog.Logger
}

func NewPageHandler(profiles ports.ProfileService, ordering ports.OrderingService, log zerolog.Logger) *PageHandler {
	return &PageHandler{profiles: profiles, ordering: ordering, log: log}
}

type dashboardView struct {
	Profile   domain.Profile
	Ungrouped []domain.Link
	Groups    []domain.CollectionGroup
}

// PublicProfile serves /{username}. Private and unknown profiles are both 404.
func (h *PageHandler) PublicProfile(w http.ResponseWriter, r *http.Request) {
	page, err := h.profiles.GetPublicPage(r.Context(), r.PathValue("username"))
	if err != nil {
		if domain.IsNotFound(err) {
			http.NotFound(w, r)
			return
		}
		h.log.Error().Err(err).Str("username", r.PathValue("username")).Msg("failed to load public page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	h.render(w, profileTemplate, page)
}

func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID := UserIDFromContext(r.Context())
	profile, err := h.profiles.GetProfile(r.Context(), userID)
	if err != nil {
		if domain.IsNotFound(err) {
			http.Redirect(w, r, "/auth/google/login", http.StatusTemporaryRedirect)
			return
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to load profile")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	board, err := h.ordering.Board(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to load board")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, dashboardTemplate, dashboardView{
		Profile:   *profile,
		Ungrouped: board.BucketLinks(domain.Ungrouped),
		Groups:    board.Groups(),
	})
}

func (h *PageHandler) render(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		h.log.Error().Err(err).Str("template", tmpl.Name()).Msg("render failed")
	}
}
