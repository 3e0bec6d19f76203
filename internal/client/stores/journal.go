package stores

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/odysseyhq/odyssey-cli/internal/client/api"
	"github.com/odysseyhq/odyssey-cli/internal/client/models"
	"github.com/odysseyhq/odyssey-cli/internal/client/notify"
	"github.com/odysseyhq/odyssey-cli/internal/logging"
)

// JournalCache is the optional offline write-through store for the last
// refreshed collection. Implemented by the cache's journal repository.
type JournalCache interface {
	ReplaceAll(ctx context.Context, entries []models.JournalEntry) error
	List(ctx context.Context) ([]models.JournalEntry, error)
}

// JournalStore maintains the working set of journal entries visible to the
// current viewer and mediates every mutation. Mutations are
// confirm-then-apply: local state changes only after the remote confirms,
// so a failed call always leaves the collection untouched.
type JournalStore struct {
	api     api.Client
	session *SessionStore
	hub     *notify.Hub
	cache   JournalCache // optional
	log     logging.Logger

	issueSeq atomic.Uint64

	mu         sync.RWMutex
	entries    []models.JournalEntry
	appliedSeq uint64
}

// NewJournalStore wires a journal store. It subscribes to the session store
// so the collection is dropped when the viewer logs out (private entries
// must not survive the principal that fetched them).
func NewJournalStore(client api.Client, session *SessionStore, hub *notify.Hub, cache JournalCache, log logging.Logger) *JournalStore {
	s := &JournalStore{
		api:     client,
		session: session,
		hub:     hub,
		cache:   cache,
		log:     log.With("component", "journals"),
	}
	session.Subscribe(func(st Status) {
		if st == StatusUnauthenticated {
			s.mu.Lock()
			s.entries = nil
			s.mu.Unlock()
		}
	})
	return s
}

// Refresh replaces the whole collection with the viewer's scope: own
// journals when authenticated, the public set otherwise. Responses are
// sequence-tagged at issue time; a slow response that completes after a
// newer one has been applied is discarded, so an in-flight older refresh
// can never clobber a newer one.
func (s *JournalStore) Refresh(ctx context.Context) error {
	seq := s.issueSeq.Add(1)

	var entries []models.JournalEntry
	var err error
	if s.session.Status() == StatusAuthenticated {
		entries, err = s.api.MyJournals(ctx)
	} else {
		entries, err = s.api.PublicJournals(ctx)
	}
	if err != nil {
		s.hub.Error(failMessage(err, "Failed to fetch journals"))
		return fmt.Errorf("refresh journals: %w", err)
	}

	s.mu.Lock()
	if seq <= s.appliedSeq {
		s.mu.Unlock()
		s.log.Debug(ctx, "discarding stale refresh response", "seq", seq)
		return nil
	}
	s.appliedSeq = seq
	s.entries = entries
	s.mu.Unlock()

	s.writeThrough(ctx, entries)
	return nil
}

// LoadCached seeds the collection from the offline cache. It never
// overrides data fetched from the remote: any applied refresh wins.
func (s *JournalStore) LoadCached(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	entries, err := s.cache.List(ctx)
	if err != nil {
		return fmt.Errorf("load cached journals: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appliedSeq > 0 {
		return nil
	}
	s.entries = entries
	return nil
}

// Create validates the draft locally, creates the entry remotely, and
// appends the server-returned canonical entry to the collection.
func (s *JournalStore) Create(ctx context.Context, draft models.JournalDraft) (*models.JournalEntry, error) {
	if _, ok := s.session.CurrentUser(); !ok {
		s.hub.Error("You must be logged in to create a journal")
		return nil, fmt.Errorf("create journal: %w", api.ErrUnauthenticated)
	}
	if err := draft.Validate(); err != nil {
		s.hub.Error(err.Error())
		return nil, fmt.Errorf("create journal: %w", err)
	}

	entry, err := s.api.CreateJournal(ctx, draft)
	if err != nil {
		s.hub.Error(failMessage(err, "Failed to create journal"))
		return nil, fmt.Errorf("create journal: %w", err)
	}

	s.mu.Lock()
	s.entries = append(s.entries, *entry)
	snapshot := s.copyEntriesLocked()
	s.mu.Unlock()

	s.writeThrough(ctx, snapshot)
	s.hub.Info("Journal created successfully")
	return entry, nil
}

// Update applies a partial update remotely and replaces the matching local
// entry with the server's representation. Completion order wins: whichever
// update lands last leaves its server response in the collection, matching
// the remote's own final state. If the entry is no longer in the working
// set (a refresh changed scope), the confirmed result is simply dropped.
func (s *JournalStore) Update(ctx context.Context, id string, patch models.JournalPatch) (*models.JournalEntry, error) {
	if _, ok := s.session.CurrentUser(); !ok {
		s.hub.Error("You must be logged in to update a journal")
		return nil, fmt.Errorf("update journal: %w", api.ErrUnauthenticated)
	}
	if err := patch.Validate(); err != nil {
		s.hub.Error(err.Error())
		return nil, fmt.Errorf("update journal: %w", err)
	}

	entry, err := s.api.UpdateJournal(ctx, id, patch)
	if err != nil {
		if api.IsKind(err, api.KindForbidden) {
			s.hub.Error("You don't have permission to edit this journal")
		} else {
			s.hub.Error(failMessage(err, "Failed to update journal"))
		}
		return nil, fmt.Errorf("update journal: %w", err)
	}

	s.mu.Lock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries[i] = *entry
			break
		}
	}
	snapshot := s.copyEntriesLocked()
	s.mu.Unlock()

	s.writeThrough(ctx, snapshot)
	s.hub.Info("Journal updated successfully")
	return entry, nil
}

// Delete removes the entry remotely, then locally. On failure the entry
// stays in the collection.
func (s *JournalStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.session.CurrentUser(); !ok {
		s.hub.Error("You must be logged in to delete a journal")
		return fmt.Errorf("delete journal: %w", api.ErrUnauthenticated)
	}

	if err := s.api.DeleteJournal(ctx, id); err != nil {
		s.hub.Error(failMessage(err, "Failed to delete journal"))
		return fmt.Errorf("delete journal: %w", err)
	}

	s.mu.Lock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	snapshot := s.copyEntriesLocked()
	s.mu.Unlock()

	s.writeThrough(ctx, snapshot)
	s.hub.Info("Journal deleted successfully")
	return nil
}

// AddComment posts a comment and appends the server-returned comment to the
// matching local entry.
func (s *JournalStore) AddComment(ctx context.Context, journalID, content string) (*models.Comment, error) {
	if _, ok := s.session.CurrentUser(); !ok {
		s.hub.Error("You must be logged in to comment")
		return nil, fmt.Errorf("add comment: %w", api.ErrUnauthenticated)
	}

	comment, err := s.api.AddComment(ctx, journalID, content)
	if err != nil {
		s.hub.Error(failMessage(err, "Failed to add comment"))
		return nil, fmt.Errorf("add comment: %w", err)
	}

	s.mu.Lock()
	for i := range s.entries {
		if s.entries[i].ID == journalID {
			s.entries[i].Comments = append(s.entries[i].Comments, *comment)
			break
		}
	}
	s.mu.Unlock()

	s.hub.Info("Comment added")
	return comment, nil
}

// DeleteComment removes a comment remotely, then drops it from the local
// entry. Authorization (own comment or own journal) is the remote's call.
func (s *JournalStore) DeleteComment(ctx context.Context, journalID, commentID string) error {
	if _, ok := s.session.CurrentUser(); !ok {
		s.hub.Error("You must be logged in to delete a comment")
		return fmt.Errorf("delete comment: %w", api.ErrUnauthenticated)
	}

	if err := s.api.DeleteComment(ctx, journalID, commentID); err != nil {
		s.hub.Error(failMessage(err, "Failed to delete comment"))
		return fmt.Errorf("delete comment: %w", err)
	}

	s.mu.Lock()
	for i := range s.entries {
		if s.entries[i].ID != journalID {
			continue
		}
		comments := s.entries[i].Comments
		for j := range comments {
			if comments[j].ID == commentID {
				s.entries[i].Comments = append(comments[:j], comments[j+1:]...)
				break
			}
		}
		break
	}
	s.mu.Unlock()

	s.hub.Info("Comment deleted")
	return nil
}

// AddReaction registers a reaction remotely and bumps the local tally.
func (s *JournalStore) AddReaction(ctx context.Context, journalID string, kind models.ReactionKind) error {
	if _, ok := s.session.CurrentUser(); !ok {
		s.hub.Error("You must be logged in to react")
		return fmt.Errorf("add reaction: %w", api.ErrUnauthenticated)
	}
	if !models.KnownReaction(kind) {
		s.hub.Error("Unknown reaction type")
		return fmt.Errorf("add reaction: unknown kind %q", kind)
	}

	if err := s.api.AddReaction(ctx, journalID, kind); err != nil {
		s.hub.Error(failMessage(err, "Failed to add reaction"))
		return fmt.Errorf("add reaction: %w", err)
	}

	s.adjustReaction(journalID, kind, +1)
	return nil
}

// RemoveReaction withdraws a reaction remotely and lowers the local tally.
func (s *JournalStore) RemoveReaction(ctx context.Context, journalID string, kind models.ReactionKind) error {
	if _, ok := s.session.CurrentUser(); !ok {
		s.hub.Error("You must be logged in to react")
		return fmt.Errorf("remove reaction: %w", api.ErrUnauthenticated)
	}

	if err := s.api.RemoveReaction(ctx, journalID, kind); err != nil {
		s.hub.Error(failMessage(err, "Failed to remove reaction"))
		return fmt.Errorf("remove reaction: %w", err)
	}

	s.adjustReaction(journalID, kind, -1)
	return nil
}

// adjustReaction keeps the tally invariants: one entry per kind, counts
// never below zero, zero-count tallies removed.
func (s *JournalStore) adjustReaction(journalID string, kind models.ReactionKind, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID != journalID {
			continue
		}
		reactions := s.entries[i].Reactions
		found := false
		for j := range reactions {
			if reactions[j].Type == kind {
				found = true
				reactions[j].Count += delta
				if reactions[j].Count <= 0 {
					reactions = append(reactions[:j], reactions[j+1:]...)
				}
				break
			}
		}
		if !found && delta > 0 {
			reactions = append(reactions, models.Reaction{Type: kind, Count: delta})
		}
		s.entries[i].Reactions = reactions
		return
	}
}

// GetByID looks the entry up in the local collection only. Direct-link
// access to entries outside the working set goes through FetchByID.
func (s *JournalStore) GetByID(id string) (models.JournalEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.JournalEntry{}, false
}

// FetchByID retrieves a single entry from the remote without touching the
// collection; it serves direct links to entries the store does not hold.
func (s *JournalStore) FetchByID(ctx context.Context, id string) (*models.JournalEntry, error) {
	entry, err := s.api.Journal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch journal %s: %w", id, err)
	}
	return entry, nil
}

// All returns a copy of the current collection.
func (s *JournalStore) All() []models.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyEntriesLocked()
}

// OwnedBy filters the collection to entries owned by the given principal.
func (s *JournalStore) OwnedBy(userID string) []models.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.JournalEntry
	for _, e := range s.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// PublicOnly filters the collection to public entries.
func (s *JournalStore) PublicOnly() []models.JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.JournalEntry
	for _, e := range s.entries {
		if e.IsPublic {
			out = append(out, e)
		}
	}
	return out
}

func (s *JournalStore) copyEntriesLocked() []models.JournalEntry {
	out := make([]models.JournalEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// writeThrough persists the current collection to the offline cache.
// Cache failures are logged, never surfaced: the cache is an optimization.
func (s *JournalStore) writeThrough(ctx context.Context, entries []models.JournalEntry) {
	if s.cache == nil {
		return
	}
	if err := s.cache.ReplaceAll(ctx, entries); err != nil {
		s.log.Warn(ctx, "failed to write journals to cache", "err", err)
	}
}
