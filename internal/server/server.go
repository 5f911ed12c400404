// Package server provides the HTTP REST API for the job application pipeline.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mariana/jobpilot/internal/apply"
	"github.com/mariana/jobpilot/internal/docstore"
	"github.com/mariana/jobpilot/internal/jobsource"
	"github.com/mariana/jobpilot/internal/notify"
	"github.com/mariana/jobpilot/internal/types"
)

// Store is the persistence surface the HTTP handlers use.
type Store interface {
	InsertProfile(ctx context.Context, profile *types.CandidateProfile) error
	LatestProfile(ctx context.Context) (*types.CandidateProfile, error)
	InsertPosting(ctx context.Context, posting *types.JobPosting) error
	ListPostings(ctx context.Context, limit int) ([]types.JobPosting, error)
	ListApplications(ctx context.Context, limit int) ([]types.ApplicationRecord, error)
}

// Analyzer turns resume text into a structured candidate profile.
type Analyzer interface {
	Analyze(ctx context.Context, text string) *types.CandidateProfile
}

// Applier executes single-job and batch apply operations.
type Applier interface {
	ApplyToJob(ctx context.Context, jobID uuid.UUID) (*apply.ApplyResult, error)
	RunBatch(ctx context.Context, opts apply.BatchOptions) (*apply.BatchResult, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      Store
	analyzer   Analyzer
	source     jobsource.Source
	applier    Applier
	archive    *docstore.Archive
	notifier   *notify.Notifier
	validate   *validator.Validate
	batch      apply.BatchOptions
}

// Config holds server configuration
type Config struct {
	Port int
	// Batch defaults for /api/auto-apply; request fields override them.
	MinScore          float64
	MaxApplications   int
	ApplyDelay        time.Duration
	DelayAfterFailure bool
}

// Deps bundles the collaborators the server drives. Archive and Notifier
// may be nil when the corresponding integration is not configured.
type Deps struct {
	Store    Store
	Analyzer Analyzer
	Source   jobsource.Source
	Applier  Applier
	Archive  *docstore.Archive
	Notifier *notify.Notifier
}

// New creates a new server instance
func New(cfg Config, deps Deps) *Server {
	s := &Server{
		store:    deps.Store,
		analyzer: deps.Analyzer,
		source:   deps.Source,
		applier:  deps.Applier,
		archive:  deps.Archive,
		notifier: deps.Notifier,
		validate: validator.New(),
		batch: apply.BatchOptions{
			MinScore:          cfg.MinScore,
			MaxApplications:   cfg.MaxApplications,
			Delay:             cfg.ApplyDelay,
			DelayAfterFailure: cfg.DelayAfterFailure,
		},
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/upload-cv", s.handleUploadCV)
	mux.HandleFunc("POST /api/search-jobs", s.handleSearchJobs)
	mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	mux.HandleFunc("POST /api/apply-job/{id}", s.handleApplyJob)
	mux.HandleFunc("GET /api/applications", s.handleListApplications)
	mux.HandleFunc("POST /api/auto-apply", s.handleAutoApply)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 15 * time.Minute, // Long timeout for auto-apply batch runs
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"service":   "jobpilot",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
