package handlers

import (
	"net/http"

	"github.com/friendlens/friendlens/internal/models"
	"github.com/friendlens/friendlens/internal/store"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// EventHandler serves event listing and lookup endpoints.
type EventHandler struct {
	store  store.EventStore
	limit  int
	logger *zap.Logger
}

// NewEventHandler creates a new event handler. A non-positive limit falls
// back to the store default.
func NewEventHandler(eventStore store.EventStore, limit int, logger *zap.Logger) *EventHandler {
	if limit <= 0 {
		limit = store.DefaultFetchLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{store: eventStore, limit: limit, logger: logger}
}

// ActivityEventsResponse is the body for activity event lookups.
type ActivityEventsResponse struct {
	ActivityName string         `json:"activity_name"`
	EventCount   int            `json:"event_count"`
	Events       []models.Event `json:"events"`
}

// PersonEventsResponse is the body for person event lookups.
type PersonEventsResponse struct {
	PersonName string         `json:"person_name"`
	EventCount int            `json:"event_count"`
	Events     []models.Event `json:"events"`
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.store.FetchAllEvents(r.Context(), h.limit)
	if err != nil {
		h.logger.Error("failed_to_fetch_events", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	if events == nil {
		events = []models.Event{}
	}
	respondJSON(w, http.StatusOK, events)
}

// EventsByActivity handles GET /api/activity/{name}/events
func (h *EventHandler) EventsByActivity(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	candidates, err := h.store.SearchEventsByKeyword(r.Context(), store.SearchFieldActivityName, name, h.limit)
	if err != nil {
		h.logger.Error("failed_to_search_events_by_activity",
			zap.String("activity_name", name),
			zap.Error(err),
		)
		respondJSONError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	// Keyword search is ranked full text and may include partial matches;
	// keep only events naming exactly this activity.
	events := []models.Event{}
	for _, ev := range candidates {
		if ev.ActivityName == name {
			events = append(events, ev)
		}
	}

	respondJSON(w, http.StatusOK, ActivityEventsResponse{
		ActivityName: name,
		EventCount:   len(events),
		Events:       events,
	})
}

// EventsByPerson handles GET /api/person/{name}/events
func (h *EventHandler) EventsByPerson(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	candidates, err := h.store.SearchEventsByKeyword(r.Context(), store.SearchFieldPeople, name, h.limit)
	if err != nil {
		h.logger.Error("failed_to_search_events_by_person",
			zap.String("person_name", name),
			zap.Error(err),
		)
		respondJSONError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}

	// Exact membership only; substring hits from the text search are not
	// attendance.
	events := []models.Event{}
	for _, ev := range candidates {
		for _, attendee := range ev.People {
			if attendee == name {
				events = append(events, ev)
				break
			}
		}
	}

	respondJSON(w, http.StatusOK, PersonEventsResponse{
		PersonName: name,
		EventCount: len(events),
		Events:     events,
	})
}
