// Package api is the REST adapter over the remote Odyssey backend. It owns
// the wire contract: endpoint paths, auth header, response-shape
// normalization, and the error taxonomy. Nothing above this package sees a
// raw HTTP status or the paginated/bare-array ambiguity of the journal list.
package api

import (
	"context"

	"github.com/odysseyhq/odyssey-cli/internal/client/models"
)

// ImageFile is an in-memory image ready for multipart upload. Data is the
// full file content; Name is the original filename sent to the server.
type ImageFile struct {
	Name string
	Data []byte
}

// Client is the remote API surface consumed by the stores. Implementations
// must honor context cancellation and return *Error values normalized per
// the taxonomy in errors.go.
type Client interface {
	// SetToken installs (or clears, with "") the bearer token attached to
	// subsequent requests.
	SetToken(token string)

	// Me resolves the current session; KindUnauthenticated when none.
	Me(ctx context.Context) (*models.User, error)
	// Login exchanges credentials for the principal and a bearer token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	// Register creates a new account and returns the new principal.
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	// Logout invalidates the remote session (best effort).
	Logout(ctx context.Context) error
	// UserProfile fetches another user's public profile.
	UserProfile(ctx context.Context, id string) (*models.User, error)

	// MyJournals lists the authenticated user's journals.
	MyJournals(ctx context.Context) ([]models.JournalEntry, error)
	// PublicJournals lists public journals; both the bare-array and the
	// paginated {content: [...]} response shapes are accepted.
	PublicJournals(ctx context.Context) ([]models.JournalEntry, error)
	// Journal fetches a single entry by id (direct-link access).
	Journal(ctx context.Context, id string) (*models.JournalEntry, error)
	// CreateJournal creates an entry and returns the canonical server
	// representation (with id and timestamps assigned).
	CreateJournal(ctx context.Context, draft models.JournalDraft) (*models.JournalEntry, error)
	// UpdateJournal applies a partial update and returns the result.
	UpdateJournal(ctx context.Context, id string, patch models.JournalPatch) (*models.JournalEntry, error)
	// DeleteJournal removes an entry.
	DeleteJournal(ctx context.Context, id string) error

	// UploadImages uploads files and returns the resulting remote URIs,
	// in input order.
	UploadImages(ctx context.Context, files []ImageFile) ([]string, error)

	// AddComment appends a comment to an entry.
	AddComment(ctx context.Context, journalID, content string) (*models.Comment, error)
	// DeleteComment removes a comment (remote-authorized).
	DeleteComment(ctx context.Context, journalID, commentID string) error
	// AddReaction registers a reaction of the given kind.
	AddReaction(ctx context.Context, journalID string, kind models.ReactionKind) error
	// RemoveReaction withdraws a reaction of the given kind.
	RemoveReaction(ctx context.Context, journalID string, kind models.ReactionKind) error
}
