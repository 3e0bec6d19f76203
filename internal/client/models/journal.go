package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Validation limits enforced before a draft or patch is sent to the server.
const (
	MaxTitleLen   = 100
	MinContentLen = 10
)

// Sentinel validation errors. Match with errors.Is.
var (
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title is too long")
	ErrContentTooShort     = errors.New("content is too short")
	ErrUnresolvedImage     = errors.New("image reference is not an uploaded URI")
	ErrAmbiguousLocation   = errors.New("location has zero coordinates and no name")
	ErrLatitudeOutOfRange  = errors.New("latitude out of range")
	ErrLongitudeOutOfRange = errors.New("longitude out of range")
)

// ReactionKind enumerates the supported reaction types.
type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionLove  ReactionKind = "love"
	ReactionWow   ReactionKind = "wow"
	ReactionGlobe ReactionKind = "globe"
)

// KnownReaction reports whether k is one of the supported kinds.
func KnownReaction(k ReactionKind) bool {
	switch k {
	case ReactionLike, ReactionLove, ReactionWow, ReactionGlobe:
		return true
	}
	return false
}

// Reaction is a per-kind tally on a journal entry. Counts are non-negative
// and there is at most one tally per kind.
type Reaction struct {
	Type  ReactionKind `json:"type"`
	Count int          `json:"count"`
}

// Comment is a reader comment on a journal entry. Author name/avatar are
// denormalized by the server at fetch time for display.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Avatar    string    `json:"userAvatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// JournalEntry is a single travel-journal record. The remote system is
// authoritative: the client only ever holds server-returned representations.
type JournalEntry struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Location  *Location  `json:"location,omitempty"`
	Images    []string   `json:"images"`
	IsPublic  bool       `json:"isPublic"`
	UserID    string     `json:"userId"`
	Reactions []Reaction `json:"reactions"`
	Comments  []Comment  `json:"comments"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TotalReactions sums all reaction tallies.
func (e *JournalEntry) TotalReactions() int {
	total := 0
	for _, r := range e.Reactions {
		total += r.Count
	}
	return total
}

// JournalDraft is the payload for creating a new entry. Image references
// must already be uploaded (resolved remote URIs); mixing pending local
// references into a create request is a protocol violation.
type JournalDraft struct {
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	IsPublic bool      `json:"isPublic"`
	Location *Location `json:"location,omitempty"`
	Images   []string  `json:"images"`
}

// Validate applies the client-side rules: non-empty title of at most
// MaxTitleLen characters, content of at least MinContentLen characters,
// resolved image URIs only, and a well-formed (or absent) location.
func (d *JournalDraft) Validate() error {
	if err := validateTitle(d.Title); err != nil {
		return err
	}
	if err := validateContent(d.Content); err != nil {
		return err
	}
	for _, img := range d.Images {
		if !ResolvedImageURI(img) {
			return ErrUnresolvedImage
		}
	}
	return d.Location.Validate()
}

// JournalPatch is a partial update; nil fields are left untouched by the
// server. Set fields are validated with the same rules as a draft.
type JournalPatch struct {
	Title    *string   `json:"title,omitempty"`
	Content  *string   `json:"content,omitempty"`
	IsPublic *bool     `json:"isPublic,omitempty"`
	Location *Location `json:"location,omitempty"`
	Images   *[]string `json:"images,omitempty"`
}

// Validate checks only the fields present in the patch.
func (p *JournalPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Content != nil {
		if err := validateContent(*p.Content); err != nil {
			return err
		}
	}
	if p.Images != nil {
		for _, img := range *p.Images {
			if !ResolvedImageURI(img) {
				return ErrUnresolvedImage
			}
		}
	}
	return p.Location.Validate()
}

// ResolvedImageURI reports whether ref points at remote, already-uploaded
// storage. Transient local references (blob:, file:, data:) and relative
// paths must never be sent to the server.
func ResolvedImageURI(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return ErrTitleTooLong
	}
	return nil
}

func validateContent(content string) error {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinContentLen {
		return ErrContentTooShort
	}
	return nil
}
