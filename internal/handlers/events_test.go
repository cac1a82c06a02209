package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/friendlens/friendlens/internal/models"
	"github.com/friendlens/friendlens/internal/store"
	"github.com/gorilla/mux"
)

// mockEventStore implements store.EventStore with function fields.
type mockEventStore struct {
	fetchAllEventsFunc        func(ctx context.Context, limit int) ([]models.Event, error)
	fetchAllPeopleFunc        func(ctx context.Context, limit int) ([]models.Person, error)
	fetchAllActivitiesFunc    func(ctx context.Context, limit int) ([]models.Activity, error)
	searchEventsByKeywordFunc func(ctx context.Context, field store.SearchField, keyword string, limit int) ([]models.Event, error)
}

func (m *mockEventStore) FetchAllEvents(ctx context.Context, limit int) ([]models.Event, error) {
	if m.fetchAllEventsFunc != nil {
		return m.fetchAllEventsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockEventStore) FetchAllPeople(ctx context.Context, limit int) ([]models.Person, error) {
	if m.fetchAllPeopleFunc != nil {
		return m.fetchAllPeopleFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockEventStore) FetchAllActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	if m.fetchAllActivitiesFunc != nil {
		return m.fetchAllActivitiesFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockEventStore) SearchEventsByKeyword(ctx context.Context, field store.SearchField, keyword string, limit int) ([]models.Event, error) {
	if m.searchEventsByKeywordFunc != nil {
		return m.searchEventsByKeywordFunc(ctx, field, keyword, limit)
	}
	return nil, nil
}

func eventWith(name, activity string, people ...string) models.Event {
	return models.Event{Name: name, ActivityName: activity, People: people}
}

func TestListEvents(t *testing.T) {
	t.Parallel()

	mock := &mockEventStore{
		fetchAllEventsFunc: func(ctx context.Context, limit int) ([]models.Event, error) {
			if limit != 100 {
				t.Errorf("limit = %d, want 100", limit)
			}
			return []models.Event{
				eventWith("Morning Run", "Running", "Alice", "Bob"),
				eventWith("Chess Night", "Chess", "Carol"),
			}, nil
		},
	}

	handler := NewEventHandler(mock, 0, nil)

	req := httptest.NewRequest("GET", "/api/events", nil)
	w := httptest.NewRecorder()
	handler.ListEvents(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var events []models.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("Expected 2 events, got %d", len(events))
	}
}

func TestListEvents_StoreError(t *testing.T) {
	t.Parallel()

	mock := &mockEventStore{
		fetchAllEventsFunc: func(ctx context.Context, limit int) ([]models.Event, error) {
			return nil, errors.New("connection refused")
		},
	}

	handler := NewEventHandler(mock, 100, nil)

	req := httptest.NewRequest("GET", "/api/events", nil)
	w := httptest.NewRecorder()
	handler.ListEvents(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("Expected status 500, got %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["error"] == "" {
		t.Error("Expected an error message in the body")
	}
}

func TestListEvents_EmptyIsArray(t *testing.T) {
	t.Parallel()

	mock := &mockEventStore{}
	handler := NewEventHandler(mock, 100, nil)

	req := httptest.NewRequest("GET", "/api/events", nil)
	w := httptest.NewRecorder()
	handler.ListEvents(w, req)

	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", got)
	}
}

func TestEventsByActivity_ExactMatchOnly(t *testing.T) {
	t.Parallel()

	mock := &mockEventStore{
		searchEventsByKeywordFunc: func(ctx context.Context, field store.SearchField, keyword string, limit int) ([]models.Event, error) {
			if field != store.SearchFieldActivityName {
				t.Errorf("field = %q, want %q", field, store.SearchFieldActivityName)
			}
			if keyword != "Running" {
				t.Errorf("keyword = %q, want Running", keyword)
			}
			// Ranked search returns a partial match alongside the exact ones.
			return []models.Event{
				eventWith("Morning Run", "Running", "Alice", "Bob"),
				eventWith("Trail Day", "Trail Running", "Carol"),
				eventWith("Evening Run", "Running", "Alice"),
			}, nil
		},
	}

	handler := NewEventHandler(mock, 100, nil)

	req := httptest.NewRequest("GET", "/api/activity/Running/events", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "Running"})
	w := httptest.NewRecorder()
	handler.EventsByActivity(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var body ActivityEventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if body.ActivityName != "Running" {
		t.Errorf("ActivityName = %q, want Running", body.ActivityName)
	}
	if body.EventCount != 2 {
		t.Errorf("EventCount = %d, want 2", body.EventCount)
	}
	for _, ev := range body.Events {
		if ev.ActivityName != "Running" {
			t.Errorf("Partial match leaked through: %q", ev.ActivityName)
		}
	}
}

func TestEventsByActivity_NoMatches(t *testing.T) {
	t.Parallel()

	mock := &mockEventStore{}
	handler := NewEventHandler(mock, 100, nil)

	req := httptest.NewRequest("GET", "/api/activity/Knitting/events", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "Knitting"})
	w := httptest.NewRecorder()
	handler.EventsByActivity(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	var body ActivityEventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.EventCount != 0 {
		t.Errorf("EventCount = %d, want 0", body.EventCount)
	}
	if body.Events == nil {
		t.Error("Events should be an empty array, not null")
	}
}

func TestEventsByPerson_ExactMembership(t *testing.T) {
	t.Parallel()

	mock := &mockEventStore{
		searchEventsByKeywordFunc: func(ctx context.Context, field store.SearchField, keyword string, limit int) ([]models.Event, error) {
			if field != store.SearchFieldPeople {
				t.Errorf("field = %q, want %q", field, store.SearchFieldPeople)
			}
			return []models.Event{
				eventWith("Morning Run", "Running", "Alice", "Bob"),
				eventWith("Chess Night", "Chess", "Alice Smith"),
				eventWith("Picnic", "Picnic", "Bob", "Alice"),
			}, nil
		},
	}

	handler := NewEventHandler(mock, 100, nil)

	req := httptest.NewRequest("GET", "/api/person/Alice/events", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "Alice"})
	w := httptest.NewRecorder()
	handler.EventsByPerson(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	var body PersonEventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if body.PersonName != "Alice" {
		t.Errorf("PersonName = %q, want Alice", body.PersonName)
	}
	if body.EventCount != 2 {
		t.Errorf("EventCount = %d, want 2 (Alice Smith must not match)", body.EventCount)
	}
}

func TestEventsByPerson_StoreError(t *testing.T) {
	t.Parallel()

	mock := &mockEventStore{
		searchEventsByKeywordFunc: func(ctx context.Context, field store.SearchField, keyword string, limit int) ([]models.Event, error) {
			return nil, errors.New("connection refused")
		},
	}

	handler := NewEventHandler(mock, 100, nil)

	req := httptest.NewRequest("GET", "/api/person/Alice/events", nil)
	req = mux.SetURLVars(req, map[string]string{"name": "Alice"})
	w := httptest.NewRecorder()
	handler.EventsByPerson(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}
