package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps a service error to a status code. Unexpected errors
// are logged and reported with a generic message.
func writeServiceError(w http.ResponseWriter, log zerolog.Logger, err error) {
	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		writeError(w, http.StatusNotFound, notFoundMessage(err))
	default:
		log.Error().Err(err).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrLinkNotFound):
		return "Link not found"
	case errors.Is(err, domain.ErrCollectionNotFound):
		return "Collection not found"
	default:
		return "Profile not found"
	}
}

// writeBoardUpdate answers an ordering request. A partially applied batch is
// still a 200: the body carries the reconciled board and the per-row report.
func writeBoardUpdate(w http.ResponseWriter, log zerolog.Logger, update *domain.BoardUpdate, err error) {
	var partial *domain.PartialSyncError
	if err != nil && !errors.As(err, &partial) {
		writeServiceError(w, log, err)
		return
	}
	if partial != nil {
		log.Warn().Err(partial).Bool("reconciled", update.Reconciled).Msg("board update partially applied")
	}
	writeJSON(w, http.StatusOK, update)
}
