package analysis

import (
	"sort"

	"github.com/friendlens/friendlens/internal/models"
)

// pairKey is a normalized unordered pair: a is always the lexically smaller
// name. Value equality on the struct makes it usable as a map key.
type pairKey struct {
	a, b string
}

// Aggregate counts, for every unordered pair of people, how many events the
// pair attended together, and returns the pairs ranked by count descending.
// Equal counts are ordered by (Person1, Person2) ascending so the ranking is
// deterministic.
//
// Events with fewer than two attendees contribute nothing. A name listed
// twice in one event would produce a degenerate self-pair from position
// pairing; those are skipped.
//
// Pure function: no store access, no shared state. Cost is O(sum of k^2)
// over event attendee counts, which stays small under the fetch limit.
func Aggregate(events []models.Event) []models.FriendPair {
	counts := make(map[pairKey]int)
	for _, event := range events {
		people := event.People
		for i := 0; i < len(people); i++ {
			for j := i + 1; j < len(people); j++ {
				a, b := people[i], people[j]
				if a == b {
					continue
				}
				if a > b {
					a, b = b, a
				}
				counts[pairKey{a, b}]++
			}
		}
	}

	pairs := make([]models.FriendPair, 0, len(counts))
	for key, count := range counts {
		pairs = append(pairs, models.FriendPair{
			Person1:        key.a,
			Person2:        key.b,
			EventsTogether: count,
		})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].EventsTogether != pairs[j].EventsTogether {
			return pairs[i].EventsTogether > pairs[j].EventsTogether
		}
		if pairs[i].Person1 != pairs[j].Person1 {
			return pairs[i].Person1 < pairs[j].Person1
		}
		return pairs[i].Person2 < pairs[j].Person2
	})

	return pairs
}
