package models

import (
	"time"

	"github.com/google/uuid"
)

// Person is a registered attendee. Name is the display key used to match
// entries in event people lists; no other key is guaranteed unique in the
// source data.
type Person struct {
	ID        uuid.UUID  `json:"uuid"`
	Name      string     `json:"name"`
	Gender    string     `json:"gender"`
	BirthDate *time.Time `json:"birth_date"`
}

// Activity describes something people do together.
type Activity struct {
	ID      uuid.UUID `json:"uuid"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Indoor  bool      `json:"indoor"`
	Outdoor bool      `json:"outdoor"`
}

// Event records several people doing one activity at one time.
//
// People is insertion-ordered and may contain duplicate names (the source
// data is not validated upstream). ActivityName is a denormalized copy of
// the activity's name. Activity and Attendees carry resolved references
// when the store could resolve them; both may be absent.
type Event struct {
	ID           uuid.UUID  `json:"uuid"`
	Name         string     `json:"name"`
	ActivityName string     `json:"activity_name"`
	DateTime     *time.Time `json:"date_time"`
	People       []string   `json:"people"`
	Activity     *Activity  `json:"activity,omitempty"`
	Attendees    []Person   `json:"attendees,omitempty"`
}

// FriendPair is an unordered pair of people with the number of events they
// attended together. Person1 is always the lexically smaller name, so at
// most one FriendPair exists per unordered pair. Derived per request, never
// stored.
type FriendPair struct {
	Person1        string `json:"person1"`
	Person2        string `json:"person2"`
	EventsTogether int    `json:"events_together"`
}
