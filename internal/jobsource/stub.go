package jobsource

import (
	"context"
	"fmt"

	"github.com/mariana/jobpilot/internal/types"
)

// maxStubResults caps how many synthesized postings a single search returns.
const maxStubResults = 10

var (
	stubTitles    = []string{"Software Engineer", "Full Stack Developer", "Backend Developer", "Frontend Developer", "DevOps Engineer"}
	stubCompanies = []string{"Google", "Microsoft", "Amazon", "Meta", "Netflix", "Uber", "Airbnb", "Spotify"}
)

// StubSource synthesizes postings from the query instead of hitting a live
// board. Results are deterministic for a given query, which keeps scoring
// and application flows testable end to end.
type StubSource struct{}

// NewStubSource creates a stub job source.
func NewStubSource() *StubSource {
	return &StubSource{}
}

// Search returns up to min(MaxResults, 10) synthesized postings. The first
// entries take titles and companies from fixed lists; the rest fall back
// to a generic senior role.
func (s *StubSource) Search(_ context.Context, query Query) ([]types.RawPosting, error) {
	count := query.MaxResults
	if count > maxStubResults {
		count = maxStubResults
	}
	if count < 0 {
		count = 0
	}

	postings := make([]types.RawPosting, 0, count)
	for i := 0; i < count; i++ {
		posting := types.RawPosting{
			Title:        fmt.Sprintf("Senior %s Developer", query.Keywords),
			Company:      "Tech Innovators Inc",
			Location:     query.Location,
			Description:  fmt.Sprintf("We are looking for an experienced %s developer to join our dynamic team. You will work on cutting-edge projects and collaborate with cross-functional teams.", query.Keywords),
			Requirements: fmt.Sprintf("5+ years experience with %s, strong problem-solving skills, team player", query.Keywords),
			URL:          fmt.Sprintf("https://linkedin.com/jobs/view/12345%d", i),
			PostedDate:   "2 days ago",
		}
		if i < len(stubTitles) {
			posting.Title = fmt.Sprintf("%s - %s", stubTitles[i], query.Keywords)
		}
		if i < len(stubCompanies) {
			posting.Company = stubCompanies[i]
		}
		postings = append(postings, posting)
	}
	return postings, nil
}
