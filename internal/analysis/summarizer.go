package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/friendlens/friendlens/internal/models"
)

// recentEventCount is how many recent event names a summary carries.
const recentEventCount = 3

// Summary holds compact statistics over an event batch. It is recomputed
// per request and used both for display and as grounding context in
// language model prompts.
type Summary struct {
	TotalEvents               int                `json:"total_events"`
	TotalPeople               int                `json:"total_people"`
	TotalActivities           int                `json:"total_activities"`
	MostActivePerson          string             `json:"most_active_person"`
	MostActivePersonEvents    int                `json:"most_active_person_events"`
	MostPopularActivity       string             `json:"most_popular_activity"`
	MostPopularActivityEvents int                `json:"most_popular_activity_events"`
	TopFriendPair             *models.FriendPair `json:"top_friend_pair,omitempty"`
	RecentEventNames          []string           `json:"recent_event_names"`
}

// Summarize computes a Summary in one pass over the events plus one
// aggregation run.
//
// Person counts are per-occurrence: a name listed twice in one event counts
// twice. That matches the source data's counting semantics rather than
// distinct-event attendance. Ties for most active person and most popular
// activity resolve to the lexically smallest name.
func Summarize(events []models.Event) Summary {
	personCounts := make(map[string]int)
	activityCounts := make(map[string]int)
	for _, event := range events {
		for _, name := range event.People {
			personCounts[name]++
		}
		if event.ActivityName != "" {
			activityCounts[event.ActivityName]++
		}
	}

	summary := Summary{
		TotalEvents:      len(events),
		TotalPeople:      len(personCounts),
		TotalActivities:  len(activityCounts),
		RecentEventNames: recentEventNames(events, recentEventCount),
	}
	summary.MostActivePerson, summary.MostActivePersonEvents = maxByCount(personCounts)
	summary.MostPopularActivity, summary.MostPopularActivityEvents = maxByCount(activityCounts)

	if pairs := Aggregate(events); len(pairs) > 0 {
		top := pairs[0]
		summary.TopFriendPair = &top
	}

	return summary
}

// maxByCount returns the highest-count key, ties resolved to the lexically
// smallest key. Empty map yields ("", 0).
func maxByCount(counts map[string]int) (string, int) {
	var bestName string
	var bestCount int
	for name, count := range counts {
		if count > bestCount || (count == bestCount && name < bestName) {
			bestName, bestCount = name, count
		}
	}
	return bestName, bestCount
}

// recentEventNames returns the names of the n events with the greatest
// non-null timestamps, in ascending timestamp order. Events without a
// timestamp are excluded entirely, not treated as epoch-zero. Equal
// timestamps order by event name.
func recentEventNames(events []models.Event, n int) []string {
	dated := make([]models.Event, 0, len(events))
	for _, event := range events {
		if event.DateTime != nil {
			dated = append(dated, event)
		}
	}

	sort.Slice(dated, func(i, j int) bool {
		if !dated[i].DateTime.Equal(*dated[j].DateTime) {
			return dated[i].DateTime.Before(*dated[j].DateTime)
		}
		return dated[i].Name < dated[j].Name
	})

	if len(dated) > n {
		dated = dated[len(dated)-n:]
	}

	names := make([]string, 0, len(dated))
	for _, event := range dated {
		names = append(names, event.Name)
	}
	return names
}

// Text renders the summary as a human-readable block.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total events: %d\n", s.TotalEvents)
	fmt.Fprintf(&b, "Total people: %d\n", s.TotalPeople)
	fmt.Fprintf(&b, "Total activities: %d\n", s.TotalActivities)
	if s.MostActivePerson != "" {
		fmt.Fprintf(&b, "Most active person: %s (%d events)\n", s.MostActivePerson, s.MostActivePersonEvents)
	}
	if s.MostPopularActivity != "" {
		fmt.Fprintf(&b, "Most popular activity: %s (%d events)\n", s.MostPopularActivity, s.MostPopularActivityEvents)
	}
	if s.TopFriendPair != nil {
		fmt.Fprintf(&b, "Best friends: %s and %s (%d events together)\n",
			s.TopFriendPair.Person1, s.TopFriendPair.Person2, s.TopFriendPair.EventsTogether)
	}
	if len(s.RecentEventNames) > 0 {
		fmt.Fprintf(&b, "Recent events: %s\n", strings.Join(s.RecentEventNames, ", "))
	}
	return b.String()
}
