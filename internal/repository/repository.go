// Package repository provides the optional Postgres mirror of the signup log.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTable is the mirror table created by migrations/000001.
const DefaultTable = "waitlist_signups"

// Repository provides database access methods.
type Repository struct {
	pool  *pgxpool.Pool
	table string
}

// New creates a new Repository with a connection pool.
// table may be schema-qualified ("marketing.waitlist_signups").
func New(ctx context.Context, databaseURL, table string) (*Repository, error) {
	if table == "" {
		table = DefaultTable
	}
	quoted, err := quoteTable(table)
	if err != nil {
		return nil, err
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings. Inserts are one per signup.
	config.MaxConns = 4
	config.MinConns = 0

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{pool: pool, table: quoted}, nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// Pool returns the underlying connection pool.
// Use sparingly - prefer adding methods to Repository.
func (r *Repository) Pool() *pgxpool.Pool {
	return r.pool
}
