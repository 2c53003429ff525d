// Package db provides PostgreSQL storage for fit assessments.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// schemaSQL creates the assessment table. It is safe to run repeatedly.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS fit_assessments (
	id           UUID PRIMARY KEY,
	job_id       TEXT NOT NULL,
	applicant_id TEXT NOT NULL,
	fit_score    INTEGER NOT NULL CHECK (fit_score BETWEEN 0 AND 100),
	assessment   JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (job_id, applicant_id)
);
CREATE INDEX IF NOT EXISTS fit_assessments_job_score_idx
	ON fit_assessments (job_id, fit_score DESC);
`

// Migrate creates the tables the store needs.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
