package handler

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

type CollectionHandler struct {
	service  ports.CollectionService
	ordering ports.OrderingService
	log      zerolog.Logger
}

func NewCollectionHandler(service ports.CollectionService, ordering ports.OrderingService, log zerolog.Logger) *CollectionHandler {
	return &CollectionHandler{service: service, ordering: ordering, log: log}
}

type collectionRequest struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	collection, err := h.service.CreateCollection(r.Context(), UserIDFromContext(r.Context()), req.Title, req.Description)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, collection)
}

func (h *CollectionHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.service.ListCollections(r.Context(), UserIDFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}
	if collections == nil {
		collections = []domain.Collection{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": collections, "total": len(collections)})
}

func (h *CollectionHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	var req collectionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	collection, err := h.service.UpdateCollection(r.Context(), UserIDFromContext(r.Context()), r.PathValue("id"), req.Title, req.Description, req.IsActive)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, collection)
}

// DeleteCollection releases the member links to the ungrouped area before
// removing the collection.
func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	update, err := h.ordering.DeleteBucket(r.Context(), UserIDFromContext(r.Context()), r.PathValue("id"))
	writeBoardUpdate(w, h.log, update, err)
}

func (h *CollectionHandler) Ungroup(w http.ResponseWriter, r *http.Request) {
	update, err := h.ordering.UngroupBucket(r.Context(), UserIDFromContext(r.Context()), r.PathValue("id"))
	writeBoardUpdate(w, h.log, update, err)
}
