package store

import (
	"context"
	"fmt"

	"github.com/mariana/jobpilot/internal/types"
)

// InsertApplication stores a submitted application.
func (s *Store) InsertApplication(ctx context.Context, application *types.Application) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO applications (id, job_id, profile_id, cover_letter, status, application_date)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		application.ID, application.JobID, application.ProfileID,
		application.CoverLetter, application.Status, application.ApplicationDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

// ListApplications retrieves submitted applications, newest first, with the
// posting's title and company joined in for display.
func (s *Store) ListApplications(ctx context.Context, limit int) ([]types.ApplicationRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.job_id, a.profile_id, a.cover_letter, a.status, a.application_date,
		        COALESCE(j.title, ''), COALESCE(j.company, '')
		 FROM applications a
		 LEFT JOIN job_postings j ON j.id = a.job_id
		 ORDER BY a.application_date DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var records []types.ApplicationRecord
	for rows.Next() {
		var record types.ApplicationRecord
		if err := rows.Scan(&record.ID, &record.JobID, &record.ProfileID, &record.CoverLetter,
			&record.Status, &record.ApplicationDate, &record.JobTitle, &record.Company); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}
