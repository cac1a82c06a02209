package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/friendlens/friendlens/internal/services/ai"
	"github.com/friendlens/friendlens/internal/store"
	"github.com/friendlens/friendlens/internal/validation"
	"go.uber.org/zap"
)

// QueryRequest is the body for POST /api/query.
type QueryRequest struct {
	Query string `json:"query" validate:"required"`
}

// QueryResponse is the body for a routed question. Type is "model" when the
// language model answered and "fallback" when the deterministic path did.
type QueryResponse struct {
	Answer string         `json:"answer"`
	Type   string         `json:"type"`
	Data   map[string]any `json:"data"`
}

// QueryHandler serves free-text questions about the event data.
type QueryHandler struct {
	store   store.EventStore
	queries *ai.QueryService
	limit   int
	logger  *zap.Logger
}

// NewQueryHandler creates a new query handler.
func NewQueryHandler(eventStore store.EventStore, queries *ai.QueryService, limit int, logger *zap.Logger) *QueryHandler {
	if limit <= 0 {
		limit = store.DefaultFetchLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryHandler{store: eventStore, queries: queries, limit: limit, logger: logger}
}

// Query handles POST /api/query
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Query is required")
		return
	}

	req.Query = validation.SanitizeText(req.Query)

	ctx := r.Context()
	events, err := h.store.FetchAllEvents(ctx, h.limit)
	if err != nil {
		h.logger.Error("failed_to_fetch_events_for_query", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	activities, err := h.store.FetchAllActivities(ctx, h.limit)
	if err != nil {
		h.logger.Error("failed_to_fetch_activities_for_query", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Failed to fetch activities")
		return
	}
	people, err := h.store.FetchAllPeople(ctx, h.limit)
	if err != nil {
		h.logger.Error("failed_to_fetch_people_for_query", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Failed to fetch people")
		return
	}

	answer, err := h.queries.Answer(ctx, events, activities, people, req.Query)
	if err != nil {
		if errors.Is(err, ai.ErrEmptyQuery) {
			respondJSONError(w, http.StatusBadRequest, "Query is required")
			return
		}
		h.logger.Error("failed_to_answer_query", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Failed to answer query")
		return
	}

	data := answer.Data
	if data == nil {
		data = map[string]any{}
	}
	respondJSON(w, http.StatusOK, QueryResponse{
		Answer: answer.Text,
		Type:   string(answer.Source),
		Data:   data,
	})
}
