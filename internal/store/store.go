// Package store provides PostgreSQL persistence for candidate profiles,
// job postings, and submitted applications.
//
// Schema migrations are managed externally. The expected tables are:
//
//	profiles      (id uuid primary key, source_text text, skills text[],
//	               experience text[], education text[], summary text,
//	               created_at timestamptz)
//	job_postings  (id uuid primary key, title text, company text,
//	               location text, description text, requirements text,
//	               url text, posted_date text, match_score double precision,
//	               applied boolean, created_at timestamptz)
//	applications  (id uuid primary key, job_id uuid, profile_id uuid,
//	               cover_letter text, status text, application_date timestamptz)
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultListLimit bounds list queries when the caller passes no limit.
const defaultListLimit = 100

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New establishes a connection pool to the database.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Ping verifies the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
