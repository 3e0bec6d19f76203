package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/odysseyhq/odyssey-cli/internal/client/models"
	"github.com/odysseyhq/odyssey-cli/internal/dbx"
)

const (
	keyToken       = "session.token"
	keyUser        = "session.user"
	keyLastRefresh = "journals.last_refresh"
)

// MetadataRepository is a small key/value store over the metadata table.
// Its main job is persisting the session (bearer token plus cached
// principal) between runs; it satisfies stores.SessionVault.
type MetadataRepository struct {
	db dbx.DBTX
}

func NewMetadataRepository(db dbx.DBTX) *MetadataRepository {
	return &MetadataRepository{db: db}
}

func (r *MetadataRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *MetadataRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *MetadataRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

// SaveSession stores the bearer token and the principal it belongs to.
func (r *MetadataRepository) SaveSession(ctx context.Context, token string, user *models.User) error {
	if err := r.Set(ctx, keyToken, []byte(token)); err != nil {
		return err
	}
	encoded, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}
	return r.Set(ctx, keyUser, encoded)
}

// LoadSession returns the persisted token and principal. An empty vault
// yields ("", nil, nil) so callers can treat absence as signed-out.
func (r *MetadataRepository) LoadSession(ctx context.Context) (string, *models.User, error) {
	token, err := r.Get(ctx, keyToken)
	if err != nil {
		return "", nil, err
	}
	if len(token) == 0 {
		return "", nil, nil
	}

	encoded, err := r.Get(ctx, keyUser)
	if err != nil {
		return "", nil, err
	}
	var user *models.User
	if len(encoded) > 0 {
		user = &models.User{}
		if err := json.Unmarshal(encoded, user); err != nil {
			return "", nil, fmt.Errorf("failed to decode session user: %w", err)
		}
	}
	return string(token), user, nil
}

// ClearSession removes any persisted session material.
func (r *MetadataRepository) ClearSession(ctx context.Context) error {
	if err := r.Delete(ctx, keyToken); err != nil {
		return err
	}
	return r.Delete(ctx, keyUser)
}
