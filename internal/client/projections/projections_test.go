package projections

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odysseyhq/odyssey-cli/internal/client/models"
)

func dated(id, title string, created time.Time) models.JournalEntry {
	return models.JournalEntry{ID: id, Title: title, IsPublic: true, CreatedAt: created}
}

func located(id, title, locName, city, country string, created time.Time) models.JournalEntry {
	e := dated(id, title, created)
	e.Location = &models.Location{Name: locName, City: city, Country: country, Latitude: 1, Longitude: 2}
	return e
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 10, 0, 0, 0, time.UTC)
}

func TestExplore_TextMatchesTitleAndLocation(t *testing.T) {
	entries := []models.JournalEntry{
		located("j1", "Week in Lisbon", "Lisbon, Portugal", "Lisbon", "Portugal", day(1)),
		located("j2", "Alps hike", "Zermatt", "Zermatt", "Switzerland", day(2)),
		dated("j3", "No location here", day(3)),
	}

	got := Explore(entries, ExploreQuery{Search: "lisbon"})
	require.Len(t, got, 1)
	require.Equal(t, "j1", got[0].ID)

	// location country matches too, case-insensitively
	got = Explore(entries, ExploreQuery{Search: "SWITZERLAND"})
	require.Len(t, got, 1)
	require.Equal(t, "j2", got[0].ID)

	// empty search matches everything
	got = Explore(entries, ExploreQuery{})
	require.Len(t, got, 3)
}

func TestExplore_LocationFilter(t *testing.T) {
	entries := []models.JournalEntry{
		located("j1", "A", "Lisbon, Portugal", "", "", day(1)),
		located("j2", "B", "Zermatt", "", "", day(2)),
		dated("j3", "C", day(3)),
	}

	got := Explore(entries, ExploreQuery{LocationName: "Zermatt"})
	require.Len(t, got, 1)
	require.Equal(t, "j2", got[0].ID)
}

func TestExplore_SortKeys(t *testing.T) {
	a := dated("a", "A", day(1))
	b := dated("b", "B", day(5))
	c := dated("c", "C", day(3))
	c.Reactions = []models.Reaction{{Type: models.ReactionLike, Count: 7}}
	entries := []models.JournalEntry{a, b, c}

	recent := Explore(entries, ExploreQuery{Sort: SortRecent})
	require.Equal(t, []string{"b", "c", "a"}, ids(recent))

	oldest := Explore(entries, ExploreQuery{Sort: SortOldest})
	require.Equal(t, []string{"a", "c", "b"}, ids(oldest))

	popular := Explore(entries, ExploreQuery{Sort: SortPopular})
	require.Equal(t, "c", popular[0].ID)
}

// Spec property: the projection is deterministic — same input, same output,
// every call. (The old featured-journal shuffle was presentation-only and
// has no counterpart here.)
func TestExplore_Deterministic(t *testing.T) {
	entries := []models.JournalEntry{
		dated("a", "Same day", day(2)),
		dated("b", "Same day too", day(2)),
		dated("c", "Also same day", day(2)),
	}
	q := ExploreQuery{Search: "same", Sort: SortRecent}

	first := ids(Explore(entries, q))
	for i := 0; i < 10; i++ {
		require.Equal(t, first, ids(Explore(entries, q)))
	}
	// stable: ties preserve input order
	require.Equal(t, []string{"a", "b", "c"}, first)
}

func TestExplore_DoesNotMutateInput(t *testing.T) {
	entries := []models.JournalEntry{
		dated("a", "A", day(1)),
		dated("b", "B", day(5)),
	}
	Explore(entries, ExploreQuery{Sort: SortRecent})
	require.Equal(t, "a", entries[0].ID)
	require.Equal(t, "b", entries[1].ID)
}

func TestLocationNames_DistinctSorted(t *testing.T) {
	entries := []models.JournalEntry{
		located("j1", "A", "Zermatt", "", "", day(1)),
		located("j2", "B", "Lisbon, Portugal", "", "", day(2)),
		located("j3", "C", "Zermatt", "", "", day(3)),
		dated("j4", "D", day(4)),
	}
	require.Equal(t, []string{"Lisbon, Portugal", "Zermatt"}, LocationNames(entries))
}

// Spec scenario: 2024-01-05, 2024-01-20, 2024-02-01 group into
// February-then-January, January internally 20th-then-5th.
func TestTimeline_GroupingScenario(t *testing.T) {
	entries := []models.JournalEntry{
		dated("jan5", "Early Jan", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)),
		dated("jan20", "Late Jan", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
		dated("feb1", "Feb", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	}

	groups := Timeline(entries)
	require.Len(t, groups, 2)

	require.Equal(t, "February 2024", groups[0].Label)
	require.Equal(t, []string{"feb1"}, ids(groups[0].Entries))

	require.Equal(t, "January 2024", groups[1].Label)
	require.Equal(t, []string{"jan20", "jan5"}, ids(groups[1].Entries))
}

func TestTimeline_YearBoundary(t *testing.T) {
	entries := []models.JournalEntry{
		dated("dec23", "Old year", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)),
		dated("jan24", "New year", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	groups := Timeline(entries)
	require.Len(t, groups, 2)
	require.Equal(t, "January 2024", groups[0].Label)
	require.Equal(t, "December 2023", groups[1].Label)
}

func TestTimeline_Empty(t *testing.T) {
	require.Empty(t, Timeline(nil))
}

func TestMapPoints_SkipsAbsentAndSentinelLocations(t *testing.T) {
	withLoc := located("j1", "Lisbon", "Lisbon, Portugal", "Lisbon", "Portugal", day(1))
	noLoc := dated("j2", "Nowhere", day(2))
	sentinel := dated("j3", "Legacy", day(3))
	sentinel.Location = &models.Location{} // zero coords, no name

	points := MapPoints([]models.JournalEntry{withLoc, noLoc, sentinel})
	require.Len(t, points, 1)
	require.Equal(t, "Lisbon, Portugal", points[0].Name)
	require.Equal(t, 1.0, points[0].Latitude)
	require.Equal(t, 2.0, points[0].Longitude)
	require.Equal(t, "j1", points[0].Entry.ID)
}

func ids(entries []models.JournalEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
