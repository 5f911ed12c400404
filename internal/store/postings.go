package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mariana/jobpilot/internal/types"
)

// InsertPosting stores a scored job posting.
func (s *Store) InsertPosting(ctx context.Context, posting *types.JobPosting) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO job_postings (id, title, company, location, description, requirements,
		                           url, posted_date, match_score, applied, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		posting.ID, posting.Title, posting.Company, posting.Location, posting.Description,
		posting.Requirements, posting.URL, posting.PostedDate, posting.MatchScore,
		posting.Applied, posting.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert posting: %w", err)
	}
	return nil
}

// GetPosting retrieves a posting by ID, or nil if it does not exist.
func (s *Store) GetPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error) {
	var posting types.JobPosting
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, company, location, description, requirements,
		        url, posted_date, match_score, applied, created_at
		 FROM job_postings WHERE id = $1`,
		id,
	).Scan(&posting.ID, &posting.Title, &posting.Company, &posting.Location,
		&posting.Description, &posting.Requirements, &posting.URL, &posting.PostedDate,
		&posting.MatchScore, &posting.Applied, &posting.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get posting: %w", err)
	}
	return &posting, nil
}

// ListPostings retrieves stored postings ordered by match score, best first.
func (s *Store) ListPostings(ctx context.Context, limit int) ([]types.JobPosting, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, title, company, location, description, requirements,
		        url, posted_date, match_score, applied, created_at
		 FROM job_postings ORDER BY match_score DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	defer rows.Close()

	return scanPostings(rows)
}

// EligiblePostings retrieves unapplied postings scoring at or above minScore,
// ordered by match score, best first.
func (s *Store) EligiblePostings(ctx context.Context, minScore float64, limit int) ([]types.JobPosting, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, title, company, location, description, requirements,
		        url, posted_date, match_score, applied, created_at
		 FROM job_postings
		 WHERE applied = false AND match_score >= $1
		 ORDER BY match_score DESC LIMIT $2`,
		minScore, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list eligible postings: %w", err)
	}
	defer rows.Close()

	return scanPostings(rows)
}

// MarkApplied transitions a posting's applied flag from false to true.
// It reports whether this call performed the transition; false means the
// posting was already applied to (or does not exist).
func (s *Store) MarkApplied(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE job_postings SET applied = true WHERE id = $1 AND applied = false`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark posting applied: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ReleaseApplied resets a posting's applied flag so a later attempt can
// claim it again.
func (s *Store) ReleaseApplied(ctx context.Context, id uuid.UUID) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE job_postings SET applied = false WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to release posting: %w", err)
	}
	return nil
}

func scanPostings(rows pgx.Rows) ([]types.JobPosting, error) {
	var postings []types.JobPosting
	for rows.Next() {
		var posting types.JobPosting
		if err := rows.Scan(&posting.ID, &posting.Title, &posting.Company, &posting.Location,
			&posting.Description, &posting.Requirements, &posting.URL, &posting.PostedDate,
			&posting.MatchScore, &posting.Applied, &posting.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan posting: %w", err)
		}
		postings = append(postings, posting)
	}
	return postings, nil
}
