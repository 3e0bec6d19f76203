package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func validDraft() JournalDraft {
	return JournalDraft{
		Title:    "Three days in Lisbon",
		Content:  "Trams, tiles and too many pastéis de nata.",
		IsPublic: true,
		Images:   []string{"https://cdn.example.com/img/1.jpg"},
		Location: &Location{Name: "Lisbon, Portugal", Latitude: 38.72, Longitude: -9.14},
	}
}

func TestDraftValidate_OK(t *testing.T) {
	d := validDraft()
	require.NoError(t, d.Validate())
}

func TestDraftValidate_Title(t *testing.T) {
	d := validDraft()
	d.Title = "   "
	require.ErrorIs(t, d.Validate(), ErrTitleRequired)

	d.Title = strings.Repeat("x", MaxTitleLen+1)
	require.ErrorIs(t, d.Validate(), ErrTitleTooLong)

	// exactly at the limit is fine
	d.Title = strings.Repeat("x", MaxTitleLen)
	require.NoError(t, d.Validate())
}

func TestDraftValidate_Content(t *testing.T) {
	d := validDraft()
	d.Content = "too short"
	require.ErrorIs(t, d.Validate(), ErrContentTooShort)
}

func TestDraftValidate_RejectsPendingImages(t *testing.T) {
	d := validDraft()
	d.Images = []string{"https://cdn.example.com/a.jpg", "blob:http://localhost/xyz"}
	require.ErrorIs(t, d.Validate(), ErrUnresolvedImage)
}

func TestDraftValidate_RejectsZeroSentinelLocation(t *testing.T) {
	d := validDraft()
	d.Location = &Location{}
	require.ErrorIs(t, d.Validate(), ErrAmbiguousLocation)
}

func TestDraftValidate_NilLocationAllowed(t *testing.T) {
	d := validDraft()
	d.Location = nil
	require.NoError(t, d.Validate())
}

func TestLocationValidate_Ranges(t *testing.T) {
	l := &Location{Name: "nowhere", Latitude: 91}
	require.ErrorIs(t, l.Validate(), ErrLatitudeOutOfRange)

	l = &Location{Name: "nowhere", Longitude: -181}
	require.ErrorIs(t, l.Validate(), ErrLongitudeOutOfRange)

	// a named location at the origin is a real place, not the sentinel
	l = &Location{Name: "Null Island"}
	require.NoError(t, l.Validate())
}

func TestPatchValidate_OnlySetFields(t *testing.T) {
	p := JournalPatch{}
	require.NoError(t, p.Validate())

	bad := "short"
	p.Content = &bad
	require.ErrorIs(t, p.Validate(), ErrContentTooShort)

	good := "long enough to pass the minimum"
	p.Content = &good
	require.NoError(t, p.Validate())
}

func TestTotalReactions(t *testing.T) {
	e := JournalEntry{Reactions: []Reaction{
		{Type: ReactionLike, Count: 3},
		{Type: ReactionGlobe, Count: 2},
	}}
	require.Equal(t, 5, e.TotalReactions())
}

func TestKnownReaction(t *testing.T) {
	require.True(t, KnownReaction(ReactionWow))
	require.False(t, KnownReaction(ReactionKind("meh")))
}
