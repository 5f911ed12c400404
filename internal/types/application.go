package types

import (
	"time"

	"github.com/google/uuid"
)

// Application status values. The pipeline only produces "applied"; later
// states would come from response tracking, which does not exist here.
const (
	StatusApplied = "applied"
)

// Application records a submitted application. Immutable once created.
type Application struct {
	ID              uuid.UUID `json:"id"`
	JobID           uuid.UUID `json:"job_id"`
	ProfileID       uuid.UUID `json:"profile_id"`
	CoverLetter     string    `json:"cover_letter"`
	Status          string    `json:"status"`
	ApplicationDate time.Time `json:"application_date"`
}

// ApplicationRecord is an application joined with its posting for listings
type ApplicationRecord struct {
	Application
	JobTitle string `json:"job_title"`
	Company  string `json:"company"`
}

// NewApplication creates an application record for a posting/profile pair
func NewApplication(jobID, profileID uuid.UUID, coverLetter string) *Application {
	return &Application{
		ID:              uuid.New(),
		JobID:           jobID,
		ProfileID:       profileID,
		CoverLetter:     coverLetter,
		Status:          StatusApplied,
		ApplicationDate: time.Now().UTC(),
	}
}
