package projections

import (
	"fmt"
	"sort"
	"time"

	"github.com/odysseyhq/odyssey-cli/internal/client/models"
)

// TimelineGroup is one month of journal entries. Entries are ordered by
// creation time, newest first.
type TimelineGroup struct {
	Year  int
	Month time.Month
	// Label is the display heading, e.g. "January 2024".
	Label   string
	Entries []models.JournalEntry
}

// Timeline groups entries by calendar month and year of creation. Groups
// are ordered most-recent-month first; entries inside a group are ordered
// by creation time descending.
func Timeline(entries []models.JournalEntry) []TimelineGroup {
	type key struct {
		year  int
		month time.Month
	}
	buckets := make(map[key][]models.JournalEntry)
	for _, e := range entries {
		k := key{year: e.CreatedAt.Year(), month: e.CreatedAt.Month()}
		buckets[k] = append(buckets[k], e)
	}

	groups := make([]TimelineGroup, 0, len(buckets))
	for k, bucket := range buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].CreatedAt.After(bucket[j].CreatedAt)
		})
		groups = append(groups, TimelineGroup{
			Year:    k.year,
			Month:   k.month,
			Label:   fmt.Sprintf("%s %d", k.month, k.year),
			Entries: bucket,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Year != groups[j].Year {
			return groups[i].Year > groups[j].Year
		}
		return groups[i].Month > groups[j].Month
	})
	return groups
}
