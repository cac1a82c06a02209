package store

import (
	"context"
	"errors"

	"github.com/friendlens/friendlens/internal/models"
)

// DefaultFetchLimit caps collection reads per request, matching the
// reference deployment.
const DefaultFetchLimit = 100

// SearchField identifies an event property searched by keyword.
type SearchField string

const (
	// SearchFieldActivityName searches the denormalized activity name.
	SearchFieldActivityName SearchField = "activity_name"
	// SearchFieldPeople searches the attendee name list.
	SearchFieldPeople SearchField = "people"
)

// ErrUnsupportedField is returned for an unknown search field.
var ErrUnsupportedField = errors.New("unsupported search field")

// EventStore provides read access to the event collection. Implementations
// must release any acquired connection on every exit path.
//
// Keyword search is relevance-ranked full text, not exact match; it may
// return partial-match false positives and callers are expected to
// re-filter for exactness.
type EventStore interface {
	FetchAllEvents(ctx context.Context, limit int) ([]models.Event, error)
	FetchAllPeople(ctx context.Context, limit int) ([]models.Person, error)
	FetchAllActivities(ctx context.Context, limit int) ([]models.Activity, error)
	SearchEventsByKeyword(ctx context.Context, field SearchField, keyword string, limit int) ([]models.Event, error)
}

// Ensure the concrete type implements the interface.
var _ EventStore = (*Postgres)(nil)
