package server

import (
	"io"
	"log"
	"net/http"

	"github.com/mariana/jobpilot/internal/extraction"
)

// maxUploadSize bounds resume uploads at 10 MB.
const maxUploadSize = 10 << 20

// UploadResponse represents the response for /api/upload-cv
type UploadResponse struct {
	Message   string          `json:"message"`
	ProfileID string          `json:"profile_id"`
	Analysis  ProfileAnalysis `json:"analysis"`
}

// ProfileAnalysis carries the extracted profile fields back to the caller
type ProfileAnalysis struct {
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
	Summary    string   `json:"summary"`
}

// handleUploadCV accepts a resume document, extracts its text, analyzes it
// into a candidate profile and persists the result
func (s *Server) handleUploadCV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}

	text, err := extraction.Extract(header.Filename, data)
	if err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	ctx := r.Context()
	profile := s.analyzer.Analyze(ctx, text)

	if err := s.store.InsertProfile(ctx, profile); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	// Archive the original document; failure never blocks the upload.
	if key, err := s.archive.Store(ctx, profile.ID, header.Filename, data); err != nil {
		log.Printf("Warning: failed to archive resume: %v", err)
	} else if key != "" {
		log.Printf("Archived resume at %s", key)
	}

	s.jsonResponse(w, http.StatusOK, UploadResponse{
		Message:   "CV uploaded and analyzed successfully",
		ProfileID: profile.ID.String(),
		Analysis: ProfileAnalysis{
			Skills:     profile.Skills,
			Experience: profile.Experience,
			Education:  profile.Education,
			Summary:    profile.Summary,
		},
	})
}
