package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/eventure/rankd/internal/adapters/backend"
	"github.com/eventure/rankd/internal/adapters/repository"
	"github.com/eventure/rankd/internal/domain/scoring"
)

// RankingHandler handles ranking requests.
type RankingHandler struct {
	deps Dependencies
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(deps Dependencies) *RankingHandler {
	return &RankingHandler{deps: deps}
}

// HandleRankEvents handles POST /rank-events/{userID} requests. A request
// either succeeds with a fully ordered, persisted result and a summary, or
// fails with a descriptive error; never a partial result.
func (h *RankingHandler) HandleRankEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.rank_events"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	idPart := strings.TrimPrefix(r.URL.Path, "/rank-events/")
	userID, err := strconv.Atoi(idPart)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("user id must be a positive integer")))
		return
	}

	summary, err := h.deps.RankForUser(r.Context(), userID)
	if err != nil {
		status, code := classify(err)
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// classify maps domain errors onto HTTP semantics.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, backend.ErrUserNotFound),
		errors.Is(err, repository.ErrBatchNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, backend.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, repository.ErrMissingColumn),
		errors.Is(err, repository.ErrMalformedBatch),
		errors.Is(err, scoring.ErrUnknownPriceTier),
		errors.Is(err, scoring.ErrUnknownDistanceTier):
		return http.StatusUnprocessableEntity, "invalid_batch"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
