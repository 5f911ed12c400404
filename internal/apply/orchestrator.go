// Package apply drives job applications: the single-job apply operation and
// the rate-limited auto-apply batch built on top of it.
package apply

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mariana/jobpilot/internal/types"
)

// Store is the persistence surface the orchestrator depends on.
type Store interface {
	GetPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error)
	LatestProfile(ctx context.Context) (*types.CandidateProfile, error)
	EligiblePostings(ctx context.Context, minScore float64, limit int) ([]types.JobPosting, error)
	MarkApplied(ctx context.Context, id uuid.UUID) (bool, error)
	ReleaseApplied(ctx context.Context, id uuid.UUID) error
	InsertApplication(ctx context.Context, application *types.Application) error
}

// LetterGenerator produces cover-letter text for a posting.
type LetterGenerator interface {
	Generate(ctx context.Context, profile *types.CandidateProfile, posting *types.JobPosting) string
}

// Orchestrator coordinates job applications against the store.
type Orchestrator struct {
	store   Store
	letters LetterGenerator
}

// NewOrchestrator creates an orchestrator backed by the given store and
// letter generator.
func NewOrchestrator(store Store, letters LetterGenerator) *Orchestrator {
	return &Orchestrator{
		store:   store,
		letters: letters,
	}
}

// ApplyResult describes a completed single-job application.
type ApplyResult struct {
	Application *types.Application
	Posting     *types.JobPosting
}

// ApplyToJob applies to a single posting using the most recent candidate
// profile. The posting's applied flag is claimed up front with a conditional
// update, so concurrent attempts on the same posting cannot both succeed;
// the claim is released again if the application record cannot be persisted.
func (o *Orchestrator) ApplyToJob(ctx context.Context, jobID uuid.UUID) (*ApplyResult, error) {
	var posting *types.JobPosting
	var profile *types.CandidateProfile

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := o.store.GetPosting(gCtx, jobID)
		if err != nil {
			return err
		}
		posting = p
		return nil
	})
	g.Go(func() error {
		p, err := o.store.LatestProfile(gCtx)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if posting == nil {
		return nil, &NotFoundError{Resource: "job posting", ID: jobID.String()}
	}
	if profile == nil {
		return nil, &NotFoundError{Resource: "candidate profile"}
	}

	claimed, err := o.store.MarkApplied(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, ErrAlreadyApplied
	}

	coverLetter := o.letters.Generate(ctx, profile, posting)

	application := types.NewApplication(posting.ID, profile.ID, coverLetter)
	if err := o.store.InsertApplication(ctx, application); err != nil {
		// Give the claim back so a later attempt can retry this posting.
		if releaseErr := o.store.ReleaseApplied(ctx, jobID); releaseErr != nil {
			log.Printf("Failed to release applied flag for %s: %v", jobID, releaseErr)
		}
		return nil, fmt.Errorf("failed to record application: %w", err)
	}

	posting.Applied = true
	return &ApplyResult{Application: application, Posting: posting}, nil
}
