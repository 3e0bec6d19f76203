package projections

import "github.com/odysseyhq/odyssey-cli/internal/client/models"

// Point is a plottable map marker with a back-reference to its entry for
// on-selection detail display.
type Point struct {
	Name      string
	Latitude  float64
	Longitude float64
	Entry     *models.JournalEntry
}

// MapPoints projects entries onto map markers. Entries without a location,
// and records carrying the legacy zero-coordinate sentinel, are skipped —
// the projection filters the ambiguity out rather than guessing what a
// zeroed record means.
func MapPoints(entries []models.JournalEntry) []Point {
	var points []Point
	for i := range entries {
		loc := entries[i].Location
		if loc == nil || loc.IsZeroSentinel() {
			continue
		}
		points = append(points, Point{
			Name:      loc.Name,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Entry:     &entries[i],
		})
	}
	return points
}
