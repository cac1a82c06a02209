package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/friendlens/friendlens/internal/models"
)

func TestBestFriends(t *testing.T) {
	t.Parallel()

	mock := &mockEventStore{
		fetchAllEventsFunc: func(ctx context.Context, limit int) ([]models.Event, error) {
			return []models.Event{
				eventWith("E1", "Running", "Alice", "Bob", "Carol"),
				eventWith("E2", "Chess", "Alice", "Bob"),
				eventWith("E3", "Picnic", "Carol", "Dave"),
			}, nil
		},
	}

	handler := NewFriendsHandler(mock, 100, nil)

	req := httptest.NewRequest("GET", "/api/best-friends", nil)
	w := httptest.NewRecorder()
	handler.BestFriends(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var pairs []models.FriendPair
	if err := json.NewDecoder(resp.Body).Decode(&pairs); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(pairs) != 5 {
		t.Fatalf("Expected 5 pairs, got %d", len(pairs))
	}
	top := pairs[0]
	if top.Person1 != "Alice" || top.Person2 != "Bob" || top.EventsTogether != 2 {
		t.Errorf("Top pair = %+v, want Alice/Bob with 2 events", top)
	}
	for i := 1; i < len(pairs); i++ {
		if pairs[i].EventsTogether > pairs[i-1].EventsTogether {
			t.Errorf("Pairs not sorted descending at index %d", i)
		}
	}
}

func TestBestFriends_NoEvents(t *testing.T) {
	t.Parallel()

	mock := &mockEventStore{}
	handler := NewFriendsHandler(mock, 100, nil)

	req := httptest.NewRequest("GET", "/api/best-friends", nil)
	w := httptest.NewRecorder()
	handler.BestFriends(w, req)

	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", got)
	}
}

func TestBestFriends_StoreError(t *testing.T) {
	t.Parallel()

	mock := &mockEventStore{
		fetchAllEventsFunc: func(ctx context.Context, limit int) ([]models.Event, error) {
			return nil, errors.New("connection refused")
		},
	}

	handler := NewFriendsHandler(mock, 100, nil)

	req := httptest.NewRequest("GET", "/api/best-friends", nil)
	w := httptest.NewRecorder()
	handler.BestFriends(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", w.Code)
	}
}
