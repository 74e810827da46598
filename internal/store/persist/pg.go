package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableDDL = `
CREATE TABLE IF NOT EXISTS evaluation_store (
	key   TEXT PRIMARY KEY,
	value JSONB NOT NULL
)`

// PGPersister keeps one row per storage key in Postgres.
type PGPersister struct {
	pool *pgxpool.Pool
}

func NewPGPersister(ctx context.Context, connStr string) (*PGPersister, error) {
	if connStr == "" {
		return nil, fmt.Errorf("pg persister needs a connection string")
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	if _, err := pool.Exec(ctx, createTableDDL); err != nil {
		return nil, fmt.Errorf("failed to ensure evaluation_store table: %w", err)
	}

	return &PGPersister{pool: pool}, nil
}

func (p *PGPersister) Save(ctx context.Context, key string, data []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO evaluation_store (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, data)
	if err != nil {
		return fmt.Errorf("upsert evaluation store %q: %w", key, err)
	}
	return nil
}

func (p *PGPersister) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM evaluation_store WHERE key = $1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load evaluation store %q: %w", key, err)
	}
	return data, nil
}

func (p *PGPersister) Close() {
	p.pool.Close()
}
