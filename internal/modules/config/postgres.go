package config

import (
	"context"
	"database/sql"
	"errors"
)

type postgresBlobStore struct{ db *sql.DB }

// NewPostgresBlobStore keeps blobs in the config_blobs table.
func NewPostgresBlobStore(db *sql.DB) BlobStore { return &postgresBlobStore{db: db} }

// EnsureSchema creates the config_blobs table when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS config_blobs (
		  key        TEXT PRIMARY KEY,
		  value      TEXT NOT NULL,
		  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (r *postgresBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM config_blobs WHERE key=$1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (r *postgresBlobStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config_blobs (key, value, updated_at)
		VALUES ($1,$2,NOW())
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`,
		key, string(value))
	return err
}

func (r *postgresBlobStore) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM config_blobs WHERE key=$1`, key)
	return err
}
