package handler

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

type LinkHandler struct {
	service ports.LinkService
	log     zerolog.Logger
}

func NewLinkHandler(service ports.LinkService, log zerolog.Logger) *LinkHandler {
	return &LinkHandler{service: service, log: log}
}

// LinkRequest payload for create and update
type LinkRequest struct {
	Title        string  `json:"title" validate:"max=200"`
	URL          string  `json:"url" validate:"max=2048"`
	Description  string  `json:"description" validate:"max=500"`
	Icon         string  `json:"icon" validate:"max=64"`
	CollectionID *string `json:"collectionId,omitempty"`
}

func (req LinkRequest) input() domain.LinkInput {
	in := domain.LinkInput{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Icon:        req.Icon,
	}
	if req.CollectionID != nil {
		in.CollectionID = domain.ParseBucketID(*req.CollectionID).CollectionID()
	}
	return in
}

type setActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// Create Link
func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	link, err := h.service.CreateLink(r.Context(), UserIDFromContext(r.Context()), req.input())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

// List Links
func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.ListLinks(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	if links == nil {
		links = []domain.Link{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": links, "total": len(links)})
}

// Update Link
func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	link, err := h.service.UpdateLink(r.Context(), UserIDFromContext(r.Context()), r.PathValue("id"), req.input())
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, link)
}

// SetActive toggles whether the link shows on the public page.
func (h *LinkHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	link, err := h.service.SetLinkActive(r.Context(), UserIDFromContext(r.Context()), r.PathValue("id"), *req.IsActive)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, link)
}

// Delete Link
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteLink(r.Context(), UserIDFromContext(r.Context()), r.PathValue("id")); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get Stats for a Link
func (h *LinkHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetLinkStats(r.Context(), UserIDFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
