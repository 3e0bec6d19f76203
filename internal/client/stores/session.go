// Package stores holds the application-lifetime state of the client: the
// session store (who the viewer is) and the journal store (the working set
// of entries). Stores are the only components that mutate their own state;
// views get read-only snapshots and route every mutation through store
// operations.
package stores

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/odysseyhq/odyssey-cli/internal/client/api"
	"github.com/odysseyhq/odyssey-cli/internal/client/models"
	"github.com/odysseyhq/odyssey-cli/internal/client/notify"
	"github.com/odysseyhq/odyssey-cli/internal/logging"
)

// Status is the authentication state of the client.
//
// Valid transitions:
//
//	Unknown         -> Authenticated | Unauthenticated   (bootstrap)
//	Unauthenticated -> Authenticated                     (login/register)
//	Authenticated   -> Unauthenticated                   (logout, failed session check)
type Status int

const (
	StatusUnknown Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// SessionVault persists the session across process restarts: the bearer
// token plus a snapshot of the principal. Implemented by the cache's
// metadata repository.
type SessionVault interface {
	SaveSession(ctx context.Context, token string, user *models.User) error
	LoadSession(ctx context.Context) (string, *models.User, error)
	ClearSession(ctx context.Context) error
}

// SessionStore is the single source of truth for the current viewer.
// It is created once at startup and shared for the application lifetime.
type SessionStore struct {
	api   api.Client
	hub   *notify.Hub
	vault SessionVault // optional
	log   logging.Logger

	mu     sync.RWMutex
	status Status
	user   *models.User
	token  string
	subs   []func(Status)
}

// NewSessionStore wires a session store. vault may be nil (no persistence).
func NewSessionStore(client api.Client, hub *notify.Hub, vault SessionVault, log logging.Logger) *SessionStore {
	return &SessionStore{
		api:    client,
		hub:    hub,
		vault:  vault,
		log:    log.With("component", "session"),
		status: StatusUnknown,
	}
}

// Subscribe registers a callback invoked after every status transition.
// Callbacks run synchronously on the mutating goroutine and must not call
// back into the store.
func (s *SessionStore) Subscribe(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Status returns the current authentication status.
func (s *SessionStore) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// CurrentUser returns a copy of the principal, if authenticated.
func (s *SessionStore) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status != StatusAuthenticated || s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// Token returns the current bearer token ("" when unauthenticated).
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Bootstrap resolves an existing session on startup: restore the persisted
// token, drop it if already expired, and confirm it against the remote.
// Not being logged in is an expected outcome, never an error: the method
// only moves the store out of StatusUnknown.
func (s *SessionStore) Bootstrap(ctx context.Context) {
	var token string
	var cached *models.User
	if s.vault != nil {
		var err error
		token, cached, err = s.vault.LoadSession(ctx)
		if err != nil {
			s.log.Warn(ctx, "failed to load persisted session", "err", err)
		}
	}

	if token == "" {
		s.transition(StatusUnauthenticated, nil, "")
		return
	}
	if tokenExpired(token) {
		s.log.Info(ctx, "persisted token expired")
		s.clearPersisted(ctx)
		s.transition(StatusUnauthenticated, nil, "")
		return
	}

	s.api.SetToken(token)
	user, err := s.api.Me(ctx)
	if err != nil {
		s.log.Info(ctx, "session check failed", "kind", api.KindOf(err).String())
		s.api.SetToken("")
		s.clearPersisted(ctx)
		s.transition(StatusUnauthenticated, nil, "")
		return
	}

	_ = cached // server copy wins over the snapshot
	s.transition(StatusAuthenticated, user, token)
}

// Login authenticates with the remote. On success the returned principal
// replaces the session; on failure the state stays unauthenticated and the
// error is re-raised for form-level handling.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	user, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.hub.Error(failMessage(err, "Login failed"))
		return fmt.Errorf("login: %w", err)
	}

	s.api.SetToken(token)
	s.persist(ctx, token, user)
	s.transition(StatusAuthenticated, user, token)
	s.hub.Info(fmt.Sprintf("Welcome back, %s!", user.Name))
	return nil
}

// Register creates an account and makes the new principal the active
// session. The registration endpoint does not issue a token, so a login
// round trip with the same credentials follows immediately.
func (s *SessionStore) Register(ctx context.Context, name, email, password string) error {
	user, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		s.hub.Error(failMessage(err, "Registration failed"))
		return fmt.Errorf("register: %w", err)
	}

	_, token, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.hub.Error(failMessage(err, "Account created, but login failed"))
		return fmt.Errorf("post-register login: %w", err)
	}

	s.api.SetToken(token)
	s.persist(ctx, token, user)
	s.transition(StatusAuthenticated, user, token)
	s.hub.Info(fmt.Sprintf("Welcome to Odyssey, %s!", user.Name))
	return nil
}

// Logout invalidates the remote session best-effort and always clears the
// local one: the client must never look logged in after Logout returns,
// even when the network call fails.
func (s *SessionStore) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "remote logout failed", "err", err)
	}

	s.api.SetToken("")
	s.clearPersisted(ctx)
	s.transition(StatusUnauthenticated, nil, "")
	s.hub.Info("You have been logged out")
}

func (s *SessionStore) persist(ctx context.Context, token string, user *models.User) {
	if s.vault == nil {
		return
	}
	if err := s.vault.SaveSession(ctx, token, user); err != nil {
		s.log.Warn(ctx, "failed to persist session", "err", err)
	}
}

func (s *SessionStore) clearPersisted(ctx context.Context) {
	if s.vault == nil {
		return
	}
	if err := s.vault.ClearSession(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear persisted session", "err", err)
	}
}

func (s *SessionStore) transition(to Status, user *models.User, token string) {
	s.mu.Lock()
	s.status = to
	s.user = user
	s.token = token
	subs := make([]func(Status), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(to)
	}
}

// tokenExpired inspects the token's exp claim without verifying the
// signature (the server remains authoritative). Malformed tokens are not
// treated as expired; the session check decides.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// failMessage picks the user-facing text for a failed operation: the
// server's message when one was given, otherwise a fallback suited to the
// error kind.
func failMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Status != 0 {
		return apiErr.Message
	}
	switch api.KindOf(err) {
	case api.KindTimeout:
		return fallback + ": the request timed out"
	case api.KindNetwork:
		return fallback + ": the server is unreachable"
	default:
		return fallback
	}
}
