package repository

import (
	"context"
	"database/sql"
	"errors"

	"menu-planner/internal/database"
)

var ErrKeyNotFound = errors.New("key not found")

// KeyValueRepository stores whole JSON documents under a string key.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type kvRepository struct {
	db *database.DB
}

func NewKeyValueRepository(db *database.DB) KeyValueRepository {
	return &kvRepository{db: db}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *kvRepository) Set(ctx context.Context, key, value string) error {
	query := `
        INSERT INTO kv_store (key, value, created_at, updated_at)
        VALUES (?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
    `
	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}
