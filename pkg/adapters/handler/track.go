package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

type TrackHandler struct {
	clicks ports.ClickService
}

func NewTrackHandler(clicks ports.ClickService) *TrackHandler {
	return &TrackHandler{clicks: clicks}
}

type trackClickRequest struct {
	LinkID string `json:"linkId"`
}

// TrackClick is called by public pages when a visitor opens a link.
// Failures are already logged by the click service.
func (h *TrackHandler) TrackClick(w http.ResponseWriter, r *http.Request) {
	var req trackClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.LinkID) == "" {
		writeError(w, http.StatusBadRequest, "Link ID is required")
		return
	}

	err := h.clicks.RecordClick(r.Context(), req.LinkID, clickMeta(r))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	case errors.Is(err, domain.ErrLinkNotFound):
		writeError(w, http.StatusNotFound, "Link not found")
	case errors.Is(err, domain.ErrLinkIDRequired):
		writeError(w, http.StatusBadRequest, "Link ID is required")
	default:
		writeError(w, http.StatusInternalServerError, "Failed to track click")
	}
}

func clickMeta(r *http.Request) domain.ClickMeta {
	return domain.ClickMeta{
		IP:        clientIP(r),
		UserAgent: r.Header.Get("User-Agent"),
		Referrer:  r.Header.Get("Referer"),
	}
}
