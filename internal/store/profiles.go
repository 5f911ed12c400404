package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mariana/jobpilot/internal/types"
)

// InsertProfile stores a candidate profile.
func (s *Store) InsertProfile(ctx context.Context, profile *types.CandidateProfile) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profiles (id, source_text, skills, experience, education, summary, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		profile.ID, profile.SourceText, profile.Skills, profile.Experience,
		profile.Education, profile.Summary, profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// GetProfile returns the profile with the given ID, or nil if it does not
// exist.
func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*types.CandidateProfile, error) {
	var profile types.CandidateProfile
	err := s.pool.QueryRow(ctx,
		`SELECT id, source_text, skills, experience, education, summary, created_at
		 FROM profiles WHERE id = $1`, id,
	).Scan(&profile.ID, &profile.SourceText, &profile.Skills, &profile.Experience,
		&profile.Education, &profile.Summary, &profile.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	profile.Normalize()
	return &profile, nil
}

// LatestProfile returns the most recently created profile, or nil if none
// has been stored yet.
func (s *Store) LatestProfile(ctx context.Context) (*types.CandidateProfile, error) {
	var profile types.CandidateProfile
	err := s.pool.QueryRow(ctx,
		`SELECT id, source_text, skills, experience, education, summary, created_at
		 FROM profiles ORDER BY created_at DESC LIMIT 1`,
	).Scan(&profile.ID, &profile.SourceText, &profile.Skills, &profile.Experience,
		&profile.Education, &profile.Summary, &profile.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest profile: %w", err)
	}
	profile.Normalize()
	return &profile, nil
}
