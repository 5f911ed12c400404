// Package types provides type definitions for structured data used throughout the jobpilot system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// CandidateProfile represents the structured profile extracted from a resume
type CandidateProfile struct {
	ID         uuid.UUID `json:"id"`
	SourceText string    `json:"source_text"`
	Skills     []string  `json:"skills"`
	Experience []string  `json:"experience"`
	Education  []string  `json:"education"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewCandidateProfile creates a profile with a fresh ID and non-nil slices
func NewCandidateProfile(sourceText string) *CandidateProfile {
	return &CandidateProfile{
		ID:         uuid.New(),
		SourceText: sourceText,
		Skills:     []string{},
		Experience: []string{},
		Education:  []string{},
		CreatedAt:  time.Now().UTC(),
	}
}

// Normalize guarantees the slice fields are non-nil so they serialize as []
func (p *CandidateProfile) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []string{}
	}
	if p.Education == nil {
		p.Education = []string{}
	}
}
