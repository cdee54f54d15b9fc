package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS inventory_levels (
	item       TEXT PRIMARY KEY,
	quantity   NUMERIC NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// EnsureSchema creates the inventory_levels table if it is missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create inventory_levels: %w", err)
	}
	return nil
}

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Get(ctx context.Context, item string) (*Level, error) {
	l := &Level{}
	err := r.db.QueryRowContext(ctx, `
		SELECT item, quantity, updated_at FROM inventory_levels WHERE item=$1`, item).
		Scan(&l.Item, &l.Quantity, &l.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLevelNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Level, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT item, quantity, updated_at FROM inventory_levels ORDER BY item`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var levels []*Level
	for rows.Next() {
		l := &Level{}
		if err := rows.Scan(&l.Item, &l.Quantity, &l.UpdatedAt); err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

func (r *postgresRepo) Set(ctx context.Context, level *Level) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_levels (item, quantity, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (item) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`,
		level.Item, level.Quantity, level.UpdatedAt)
	return err
}
