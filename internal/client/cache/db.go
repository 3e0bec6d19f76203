// Package cache persists journal entries and session material in a local
// SQLite database so the application can show the last known state before
// the first refresh completes, and keep the viewer signed in across runs.
package cache

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/odysseyhq/odyssey-cli/internal/client/cache/migrations"
)

// Repositories bundles the cache-backed stores the application wires up.
type Repositories struct {
	Journals *JournalRepository
	Metadata *MetadataRepository
	DB       *sql.DB
}

// RunMigrations applies the embedded goose migrations to the database.
// It is idempotent: already-applied versions are skipped.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("cache: set dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the cache database at dsn,
// applies migrations, and returns the repositories bound to it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", dsn, err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: migrate: %w", err)
	}
	return &Repositories{
		Journals: NewJournalRepository(db),
		Metadata: NewMetadataRepository(db),
		DB:       db,
	}, nil
}

// Close releases the underlying database handle.
func (r *Repositories) Close() error {
	return r.DB.Close()
}
