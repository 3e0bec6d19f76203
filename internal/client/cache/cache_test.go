package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/odysseyhq/odyssey-cli/internal/client/models"
)

func setupRepos(t *testing.T) *Repositories {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "cache.db")
	repos, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

func entry(id, userID, title string, public bool, created time.Time) models.JournalEntry {
	return models.JournalEntry{
		ID:        id,
		Title:     title,
		Content:   "long enough content",
		UserID:    userID,
		IsPublic:  public,
		CreatedAt: created,
	}
}

func TestInitDatabase_MigrationsAreIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, RunMigrations(ctx, repos.DB))
	require.NoError(t, repos.Close())
}

func TestJournals_ReplaceAllAndList(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	older := entry("j1", "u1", "Old trip", true, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	newer := entry("j2", "u1", "New trip", false, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	newer.Location = &models.Location{Name: "Lisbon, Portugal", Latitude: 38.72, Longitude: -9.14}

	require.NoError(t, repos.Journals.ReplaceAll(ctx, []models.JournalEntry{older, newer}))

	got, err := repos.Journals.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "j2", got[0].ID, "newest first")
	require.NotNil(t, got[0].Location)
	require.Equal(t, "Lisbon, Portugal", got[0].Location.Name)
	require.Equal(t, "j1", got[1].ID)
}

func TestJournals_ReplaceAllDropsPreviousSnapshot(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Journals.ReplaceAll(ctx, []models.JournalEntry{
		entry("stale", "u1", "Stale", true, time.Now()),
	}))
	require.NoError(t, repos.Journals.ReplaceAll(ctx, []models.JournalEntry{
		entry("fresh", "u1", "Fresh", true, time.Now()),
	}))

	got, err := repos.Journals.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "fresh", got[0].ID)
}

func TestJournals_ReplaceAllEmptyClears(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Journals.ReplaceAll(ctx, []models.JournalEntry{
		entry("j1", "u1", "T", true, time.Now()),
	}))
	require.NoError(t, repos.Journals.ReplaceAll(ctx, nil))

	got, err := repos.Journals.List(ctx)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestJournals_GetByID(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Journals.ReplaceAll(ctx, []models.JournalEntry{
		entry("j1", "u1", "Trip", true, time.Now()),
	}))

	got, err := repos.Journals.GetByID(ctx, "j1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Trip", got.Title)

	absent, err := repos.Journals.GetByID(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, absent)
}

func TestJournals_LastRefresh(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	ts, err := repos.Journals.LastRefresh(ctx)
	require.NoError(t, err)
	require.True(t, ts.IsZero(), "never refreshed")

	before := time.Now().Add(-time.Second)
	require.NoError(t, repos.Journals.ReplaceAll(ctx, nil))

	ts, err = repos.Journals.LastRefresh(ctx)
	require.NoError(t, err)
	require.True(t, ts.After(before))
}

func TestMetadata_SessionRoundTrip(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	user := &models.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, repos.Metadata.SaveSession(ctx, "tok-123", user))

	token, got, err := repos.Metadata.LoadSession(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)
	require.Equal(t, user, got)
}

func TestMetadata_LoadSessionEmptyVault(t *testing.T) {
	repos := setupRepos(t)

	token, user, err := repos.Metadata.LoadSession(context.Background())
	require.NoError(t, err)
	require.Empty(t, token)
	require.Nil(t, user)
}

func TestMetadata_ClearSession(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Metadata.SaveSession(ctx, "tok", &models.User{ID: "u1"}))
	require.NoError(t, repos.Metadata.ClearSession(ctx))

	token, user, err := repos.Metadata.LoadSession(ctx)
	require.NoError(t, err)
	require.Empty(t, token)
	require.Nil(t, user)
}

func TestMetadata_SaveSessionOverwrites(t *testing.T) {
	repos := setupRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Metadata.SaveSession(ctx, "old", &models.User{ID: "u1", Name: "Old"}))
	require.NoError(t, repos.Metadata.SaveSession(ctx, "new", &models.User{ID: "u1", Name: "New"}))

	token, user, err := repos.Metadata.LoadSession(ctx)
	require.NoError(t, err)
	require.Equal(t, "new", token)
	require.Equal(t, "New", user.Name)
}
