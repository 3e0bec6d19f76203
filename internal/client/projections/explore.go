// Package projections contains the derived views over a journal collection:
// explore filter/sort, timeline grouping, and map points. All functions are
// pure and deterministic — they never mutate their input and hold no state,
// so views can recompute them on demand.
package projections

import (
	"sort"
	"strings"

	"github.com/odysseyhq/odyssey-cli/internal/client/models"
)

// SortKey selects the explore ordering.
type SortKey string

const (
	// SortRecent orders by creation time, newest first.
	SortRecent SortKey = "recent"
	// SortOldest orders by creation time, oldest first.
	SortOldest SortKey = "oldest"
	// SortPopular orders by total reaction count, highest first.
	SortPopular SortKey = "popular"
)

// ExploreQuery is the filter/sort state of the explore view.
type ExploreQuery struct {
	// Search is matched case-insensitively as a substring of the entry's
	// title and location fields. Empty matches everything.
	Search string
	// LocationName, when non-empty, keeps only entries whose location name
	// equals it exactly.
	LocationName string
	// Sort defaults to SortRecent.
	Sort SortKey
}

// Explore filters and sorts entries for the explore view. The sort is
// stable: entries that compare equal keep their input order.
func Explore(entries []models.JournalEntry, q ExploreQuery) []models.JournalEntry {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if needle != "" && !strings.Contains(searchText(&e), needle) {
			continue
		}
		if q.LocationName != "" && (e.Location == nil || e.Location.Name != q.LocationName) {
			continue
		}
		out = append(out, e)
	}

	switch q.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].TotalReactions() > out[j].TotalReactions()
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// LocationNames returns the distinct location names present in entries,
// sorted, for populating the explore location filter.
func LocationNames(entries []models.JournalEntry) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, e := range entries {
		if e.Location == nil || e.Location.Name == "" {
			continue
		}
		if _, ok := seen[e.Location.Name]; ok {
			continue
		}
		seen[e.Location.Name] = struct{}{}
		names = append(names, e.Location.Name)
	}
	sort.Strings(names)
	return names
}

// searchText is the haystack for free-text matching: title plus location
// name, city and country, lowercased.
func searchText(e *models.JournalEntry) string {
	parts := []string{e.Title}
	if e.Location != nil {
		parts = append(parts, e.Location.Name, e.Location.City, e.Location.Country)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
