package handlers

import (
	"net/http"

	"github.com/friendlens/friendlens/internal/analysis"
	"github.com/friendlens/friendlens/internal/models"
	"github.com/friendlens/friendlens/internal/store"
	"go.uber.org/zap"
)

// FriendsHandler serves the co-attendance ranking.
type FriendsHandler struct {
	store  store.EventStore
	limit  int
	logger *zap.Logger
}

// NewFriendsHandler creates a new friends handler.
func NewFriendsHandler(eventStore store.EventStore, limit int, logger *zap.Logger) *FriendsHandler {
	if limit <= 0 {
		limit = store.DefaultFetchLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FriendsHandler{store: eventStore, limit: limit, logger: logger}
}

// BestFriends handles GET /api/best-friends. The ranking is derived from
// the current event snapshot on every request; nothing is cached.
func (h *FriendsHandler) BestFriends(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.FetchAllEvents(r.Context(), h.limit)
	if err != nil {
		h.logger.Error("failed_to_fetch_events_for_ranking", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	pairs := analysis.Aggregate(events)
	if pairs == nil {
		pairs = []models.FriendPair{}
	}
	respondJSON(w, http.StatusOK, pairs)
}
