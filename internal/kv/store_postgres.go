package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"curator/pkg/platform/sentinel"
)

// Postgres is the persistent backend for deployments that already run a
// relational database. The whole namespace lives in one two-column table;
// there is deliberately no schema enforcement on values.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an existing database handle. Connection lifecycle is
// managed by the caller.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Init creates the backing table when it does not exist yet.
func (p *Postgres) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS curator_kv (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("init curator_kv: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	query := `SELECT value FROM curator_kv WHERE key = $1`
	err := p.db.QueryRowContext(ctx, query, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get %s: %w", key, err)
	}
	return raw, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO curator_kv (key, value, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
	if _, err := p.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("postgres set %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM curator_kv WHERE key = $1`
	if _, err := p.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("postgres delete %s: %w", key, err)
	}
	return nil
}
