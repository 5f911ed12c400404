// Package jobsource provides job posting discovery backends.
// A Source turns a search query into raw postings; scoring and
// persistence happen downstream, so backends can be swapped without
// touching the matcher.
package jobsource

import (
	"context"

	"github.com/mariana/jobpilot/internal/types"
)

// Query describes a job search request.
type Query struct {
	Keywords        string
	Location        string
	ExperienceLevel string
	MaxResults      int
}

// Source finds job postings matching a query.
type Source interface {
	Search(ctx context.Context, query Query) ([]types.RawPosting, error)
}
