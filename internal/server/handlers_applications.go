package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/mariana/jobpilot/internal/apply"
	"github.com/mariana/jobpilot/internal/types"
)

// ApplyJobResponse represents the response for /api/apply-job/{id}
type ApplyJobResponse struct {
	Message       string `json:"message"`
	ApplicationID string `json:"application_id"`
	CoverLetter   string `json:"cover_letter"`
}

// handleApplyJob applies to a single posting with a generated cover letter
func (s *Server) handleApplyJob(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	jobID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	result, err := s.applier.ApplyToJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.notifier.ApplicationSubmitted(result.Posting)

	s.jsonResponse(w, http.StatusOK, ApplyJobResponse{
		Message:       "Application submitted successfully",
		ApplicationID: result.Application.ID.String(),
		CoverLetter:   result.Application.CoverLetter,
	})
}

// ListApplicationsResponse represents the response for /api/applications
type ListApplicationsResponse struct {
	Applications []types.ApplicationRecord `json:"applications"`
	Count        int                       `json:"count"`
}

// handleListApplications lists submitted applications, newest first
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 100, 500)

	applications, err := s.store.ListApplications(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListApplicationsResponse{
		Applications: applications,
		Count:        len(applications),
	})
}

// AutoApplyRequest represents the request body for /api/auto-apply. An empty
// body runs the batch with the configured defaults.
type AutoApplyRequest struct {
	MinMatchScore   *float64 `json:"min_match_score" validate:"omitempty,min=0,max=100"`
	MaxApplications int      `json:"max_applications" validate:"omitempty,min=1,max=50"`
}

// AutoApplyResponse represents the response for /api/auto-apply
type AutoApplyResponse struct {
	Message               string                     `json:"message"`
	ApplicationsSubmitted int                        `json:"applications_submitted"`
	Applications          []apply.ApplicationSummary `json:"applications"`
	Failures              []apply.BatchFailure       `json:"failures"`
}

// handleAutoApply runs a rate-limited batch over the eligible postings. The
// batch runs on the request context, so a dropped connection stops it.
func (s *Server) handleAutoApply(w http.ResponseWriter, r *http.Request) {
	var req AutoApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	opts := s.batch
	if req.MinMatchScore != nil {
		opts.MinScore = *req.MinMatchScore
	}
	if req.MaxApplications > 0 {
		opts.MaxApplications = req.MaxApplications
	}

	result, err := s.applier.RunBatch(r.Context(), opts)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Auto-apply failed: "+err.Error())
		return
	}

	if len(result.Applications) > 0 || len(result.Failures) > 0 {
		s.notifier.BatchCompleted(result)
	}

	message := fmt.Sprintf("Auto-applied to %d jobs", len(result.Applications))
	if len(result.Applications) == 0 && len(result.Failures) == 0 {
		message = "No suitable jobs found for auto-application"
	}

	s.jsonResponse(w, http.StatusOK, AutoApplyResponse{
		Message:               message,
		ApplicationsSubmitted: len(result.Applications),
		Applications:          result.Applications,
		Failures:              result.Failures,
	})
}
