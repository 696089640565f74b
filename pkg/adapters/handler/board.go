package handler

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

type BoardHandler struct {
	ordering ports.OrderingService
	log      zerolog.Logger
}

func NewBoardHandler(ordering ports.OrderingService, log zerolog.Logger) *BoardHandler {
	return &BoardHandler{ordering: ordering, log: log.With().Str("component", "board").Logger()}
}

type dropRequest struct {
	DraggedID string `json:"draggedId" validate:"required"`
	OverID    string `json:"overId" validate:"required"`
}

type reorderRequest struct {
	BucketID  string `json:"bucketId"`
	DraggedID string `json:"draggedId" validate:"required"`
	TargetID  string `json:"targetId" validate:"required"`
}

type moveRequest struct {
	LinkID   string `json:"linkId" validate:"required"`
	BucketID string `json:"bucketId"`
}

type reorderCollectionsRequest struct {
	DraggedID string `json:"draggedId" validate:"required"`
	TargetID  string `json:"targetId" validate:"required"`
}

// Get returns the caller's collections and links.
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	board, err := h.ordering.Board(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// Drop resolves a drag-and-drop gesture: dragged item released over overId.
func (h *BoardHandler) Drop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	update, err := h.ordering.Drop(r.Context(), UserIDFromContext(r.Context()), req.DraggedID, req.OverID)
	writeBoardUpdate(w, h.log, update, err)
}

func (h *BoardHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	update, err := h.ordering.ReorderWithinBucket(r.Context(), UserIDFromContext(r.Context()),
		domain.ParseBucketID(req.BucketID), req.DraggedID, req.TargetID)
	writeBoardUpdate(w, h.log, update, err)
}

func (h *BoardHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	update, err := h.ordering.MoveToBucket(r.Context(), UserIDFromContext(r.Context()), req.LinkID, domain.ParseBucketID(req.BucketID))
	writeBoardUpdate(w, h.log, update, err)
}

func (h *BoardHandler) ReorderCollections(w http.ResponseWriter, r *http.Request) {
	var req reorderCollectionsRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	update, err := h.ordering.ReorderBuckets(r.Context(), UserIDFromContext(r.Context()), req.DraggedID, req.TargetID)
	writeBoardUpdate(w, h.log, update, err)
}
