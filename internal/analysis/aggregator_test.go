package analysis

import (
	"reflect"
	"testing"

	"github.com/friendlens/friendlens/internal/models"
)

func eventWithPeople(name string, people ...string) models.Event {
	return models.Event{Name: name, People: people}
}

func TestAggregate_RanksPairsByCount(t *testing.T) {
	t.Parallel()

	events := []models.Event{
		eventWithPeople("hike", "Alice", "Bob", "Carol"),
		eventWithPeople("dinner", "Alice", "Bob"),
		eventWithPeople("movie", "Carol", "Dave"),
	}

	got := Aggregate(events)

	want := []models.FriendPair{
		{Person1: "Alice", Person2: "Bob", EventsTogether: 2},
		{Person1: "Alice", Person2: "Carol", EventsTogether: 1},
		{Person1: "Bob", Person2: "Carol", EventsTogether: 1},
		{Person1: "Carol", Person2: "Dave", EventsTogether: 1},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Aggregate() = %+v, want %+v", got, want)
	}
}

func TestAggregate_NormalizesPairOrder(t *testing.T) {
	t.Parallel()

	// The same unordered pair in both list orders must collapse into one
	// normalized pair.
	events := []models.Event{
		eventWithPeople("a", "Zoe", "Adam"),
		eventWithPeople("b", "Adam", "Zoe"),
	}

	got := Aggregate(events)

	if len(got) != 1 {
		t.Fatalf("expected 1 pair, got %d: %+v", len(got), got)
	}
	if got[0].Person1 != "Adam" || got[0].Person2 != "Zoe" {
		t.Errorf("pair not normalized: %+v", got[0])
	}
	if got[0].EventsTogether != 2 {
		t.Errorf("expected count 2, got %d", got[0].EventsTogether)
	}
}

func TestAggregate_SkipsSelfPairs(t *testing.T) {
	t.Parallel()

	// Malformed data: the same name twice in one attendee list.
	events := []models.Event{
		eventWithPeople("dup", "Alice", "Alice", "Bob"),
	}

	got := Aggregate(events)

	if len(got) != 1 {
		t.Fatalf("expected 1 pair, got %d: %+v", len(got), got)
	}
	if got[0].Person1 != "Alice" || got[0].Person2 != "Bob" {
		t.Errorf("unexpected pair: %+v", got[0])
	}
	// Alice appears at two positions, so (Alice, Bob) is generated twice.
	if got[0].EventsTogether != 2 {
		t.Errorf("expected position-pair count 2, got %d", got[0].EventsTogether)
	}
}

func TestAggregate_SmallEventsContributeNothing(t *testing.T) {
	t.Parallel()

	events := []models.Event{
		eventWithPeople("empty"),
		eventWithPeople("solo", "Alice"),
	}

	if got := Aggregate(events); len(got) != 0 {
		t.Errorf("expected no pairs, got %+v", got)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	t.Parallel()

	got := Aggregate(nil)
	if len(got) != 0 {
		t.Errorf("Aggregate(nil) = %+v, want empty", got)
	}
}

func TestAggregate_TieBreakIsLexical(t *testing.T) {
	t.Parallel()

	events := []models.Event{
		eventWithPeople("a", "Carol", "Dave"),
		eventWithPeople("b", "Alice", "Bob"),
	}

	got := Aggregate(events)

	if len(got) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(got))
	}
	if got[0].Person1 != "Alice" {
		t.Errorf("equal counts should order lexically, got %+v first", got[0])
	}
}

func TestAggregate_SortedAndDuplicateFree(t *testing.T) {
	t.Parallel()

	events := []models.Event{
		eventWithPeople("a", "A", "B", "C", "D"),
		eventWithPeople("b", "B", "C"),
		eventWithPeople("c", "A", "D", "E"),
		eventWithPeople("d", "E", "A"),
	}

	got := Aggregate(events)

	seen := make(map[models.FriendPair]bool)
	total := 0
	for i, pair := range got {
		key := models.FriendPair{Person1: pair.Person1, Person2: pair.Person2}
		if seen[key] {
			t.Errorf("duplicate pair %s/%s", pair.Person1, pair.Person2)
		}
		seen[key] = true
		total += pair.EventsTogether

		if pair.Person1 >= pair.Person2 {
			t.Errorf("pair %d not normalized: %+v", i, pair)
		}
		if i > 0 && got[i-1].EventsTogether < pair.EventsTogether {
			t.Errorf("output not sorted non-increasing at index %d", i)
		}
	}

	// Sum of counts equals the total 2-combinations over each event's
	// attendee positions: C(4,2) + C(2,2)... = 6 + 1 + 3 + 1.
	if want := 11; total != want {
		t.Errorf("total pair count = %d, want %d", total, want)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	t.Parallel()

	events := []models.Event{
		eventWithPeople("a", "Alice", "Bob", "Carol"),
		eventWithPeople("b", "Bob", "Carol"),
	}

	first := Aggregate(events)
	second := Aggregate(events)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregate is not idempotent: %+v vs %+v", first, second)
	}
}
