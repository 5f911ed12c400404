package types

import (
	"time"

	"github.com/google/uuid"
)

// RawPosting is a job posting as returned by a job source, before scoring
type RawPosting struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	URL          string `json:"url"`
	PostedDate   string `json:"posted_date"`
}

// JobPosting is a stored posting carrying the match score computed at creation time.
// The score is never recomputed when the candidate profile changes later.
type JobPosting struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	URL          string    `json:"url"`
	PostedDate   string    `json:"posted_date"`
	MatchScore   float64   `json:"match_score"`
	Applied      bool      `json:"applied"`
	CreatedAt    time.Time `json:"created_at"`
}

// PostingText returns the searchable text the matcher scores against
func (p *JobPosting) PostingText() string {
	return p.Description + " " + p.Requirements
}

// NewJobPosting builds a stored posting from a raw posting and its score
func NewJobPosting(raw RawPosting, matchScore float64) *JobPosting {
	return &JobPosting{
		ID:           uuid.New(),
		Title:        raw.Title,
		Company:      raw.Company,
		Location:     raw.Location,
		Description:  raw.Description,
		Requirements: raw.Requirements,
		URL:          raw.URL,
		PostedDate:   raw.PostedDate,
		MatchScore:   matchScore,
		Applied:      false,
		CreatedAt:    time.Now().UTC(),
	}
}
