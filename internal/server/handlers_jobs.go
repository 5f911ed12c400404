package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mariana/jobpilot/internal/jobsource"
	"github.com/mariana/jobpilot/internal/matching"
	"github.com/mariana/jobpilot/internal/types"
)

// parseQueryInt parses an integer query parameter with default and max values
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// SearchJobsRequest represents the request body for /api/search-jobs
type SearchJobsRequest struct {
	Keywords        string `json:"keywords" validate:"required"`
	Location        string `json:"location"`
	ExperienceLevel string `json:"experience_level"`
	MaxResults      int    `json:"max_results" validate:"omitempty,min=1,max=50"`
}

// SearchJobsResponse represents the response for /api/search-jobs
type SearchJobsResponse struct {
	Message string              `json:"message"`
	Jobs    []*types.JobPosting `json:"jobs"`
}

// handleSearchJobs fetches postings from the job source, scores them against
// the latest candidate profile and persists the scored postings
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	var req SearchJobsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	// Set defaults
	if req.Location == "" {
		req.Location = "Remote"
	}
	if req.ExperienceLevel == "" {
		req.ExperienceLevel = "mid-level"
	}
	if req.MaxResults == 0 {
		req.MaxResults = 20
	}

	ctx := r.Context()
	profile, err := s.store.LatestProfile(ctx)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if profile == nil {
		s.errorResponse(w, http.StatusBadRequest, "Please upload your CV first")
		return
	}

	raw, err := s.source.Search(ctx, jobsource.Query{
		Keywords:        req.Keywords,
		Location:        req.Location,
		ExperienceLevel: req.ExperienceLevel,
		MaxResults:      req.MaxResults,
	})
	if err != nil {
		s.errorResponse(w, httpStatus(err), "Job source error: "+err.Error())
		return
	}

	postings := matching.BuildPostings(profile, raw)
	for _, posting := range postings {
		if err := s.store.InsertPosting(ctx, posting); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
	}
	matching.Rank(postings)

	s.jsonResponse(w, http.StatusOK, SearchJobsResponse{
		Message: fmt.Sprintf("Found %d jobs", len(postings)),
		Jobs:    postings,
	})
}

// ListJobsResponse represents the response for /api/jobs
type ListJobsResponse struct {
	Jobs  []types.JobPosting `json:"jobs"`
	Count int                `json:"count"`
}

// handleListJobs lists stored postings, best match first
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 50, 100)

	jobs, err := s.store.ListPostings(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{
		Jobs:  jobs,
		Count: len(jobs),
	})
}
