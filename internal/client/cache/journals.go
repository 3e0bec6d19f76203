package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/odysseyhq/odyssey-cli/internal/client/models"
	"github.com/odysseyhq/odyssey-cli/internal/dbx"
)

// JournalRepository is the SQLite-backed snapshot of the journal
// collection. The full entry is stored as a JSON payload; id, owner and
// visibility are broken out as columns for indexed lookups.
type JournalRepository struct {
	db *sql.DB
}

func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// ReplaceAll swaps the cached snapshot for the given entries in one
// transaction, so readers never observe a half-written snapshot.
func (r *JournalRepository) ReplaceAll(ctx context.Context, entries []models.JournalEntry) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM journals`); err != nil {
			return fmt.Errorf("failed to clear journals: %w", err)
		}
		for _, e := range entries {
			payload, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to encode journal %s: %w", e.ID, err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO journals (id, user_id, is_public, payload, created_at)
				VALUES (?, ?, ?, ?, ?)
			`, e.ID, e.UserID, boolToInt(e.IsPublic), string(payload), e.CreatedAt.UTC().Format(time.RFC3339Nano))
			if err != nil {
				return fmt.Errorf("failed to insert journal %s: %w", e.ID, err)
			}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO metadata (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, keyLastRefresh, time.Now().UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to record refresh time: %w", err)
		}
		return nil
	})
}

// GetByID returns one cached entry, or (nil, nil) when absent.
func (r *JournalRepository) GetByID(ctx context.Context, id string) (*models.JournalEntry, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM journals WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal %s: %w", id, err)
	}
	var e models.JournalEntry
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return nil, fmt.Errorf("failed to decode journal payload: %w", err)
	}
	return &e, nil
}

// LastRefresh reports when the snapshot was last replaced; zero time when
// the cache has never been written.
func (r *JournalRepository) LastRefresh(ctx context.Context) (time.Time, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, keyLastRefresh).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get refresh time: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse refresh time: %w", err)
	}
	return ts, nil
}

// List returns the cached snapshot, newest first.
func (r *JournalRepository) List(ctx context.Context) ([]models.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payload FROM journals ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select journals: %w", err)
	}
	defer rows.Close()

	var result []models.JournalEntry
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		var e models.JournalEntry
		if err := json.Unmarshal([]byte(payload), &e); err != nil {
			return nil, fmt.Errorf("failed to decode journal payload: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal rows: %w", err)
	}
	return result, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
