package apply

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// DefaultInterApplicationDelay spaces consecutive applications to respect
// external rate limits.
const DefaultInterApplicationDelay = 60 * time.Second

// DefaultMaxApplications bounds a batch when the caller gives no limit.
const DefaultMaxApplications = 10

// Progress event stages emitted during a batch run.
const (
	StageSelected = "selected"
	StageApplied  = "applied"
	StageSkipped  = "skipped"
	StageWaiting  = "waiting"
)

// ProgressEvent represents a progress update during a batch run.
type ProgressEvent struct {
	Stage    string `json:"stage"`
	JobID    string `json:"job_id,omitempty"`
	JobTitle string `json:"job_title,omitempty"`
	Company  string `json:"company,omitempty"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called as the batch advances.
type ProgressCallback func(event ProgressEvent)

// BatchOptions configures an auto-apply run.
type BatchOptions struct {
	MinScore        float64
	MaxApplications int
	Delay           time.Duration
	// DelayAfterFailure extends the inter-application delay to failed
	// attempts as well. Off by default: a skipped posting does not hold
	// up the rest of the batch.
	DelayAfterFailure bool
	OnProgress        ProgressCallback
}

// withDefaults fills in unset batch options.
func (opts BatchOptions) withDefaults() BatchOptions {
	if opts.MaxApplications <= 0 {
		opts.MaxApplications = DefaultMaxApplications
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultInterApplicationDelay
	}
	return opts
}

// ApplicationSummary describes one successful application within a batch.
type ApplicationSummary struct {
	JobID         uuid.UUID `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	Company       string    `json:"company"`
	MatchScore    float64   `json:"match_score"`
	ApplicationID uuid.UUID `json:"application_id"`
}

// BatchFailure describes one posting the batch could not apply to.
type BatchFailure struct {
	JobID    uuid.UUID `json:"job_id"`
	JobTitle string    `json:"job_title"`
	Company  string    `json:"company"`
	Reason   string    `json:"reason"`
}

// BatchResult reports what a batch run accomplished.
type BatchResult struct {
	Applications []ApplicationSummary `json:"applications"`
	Failures     []BatchFailure       `json:"failures"`
}

// emitProgress calls the progress callback if configured.
func emitProgress(cb ProgressCallback, event ProgressEvent) {
	if cb != nil {
		cb(event)
	}
}

// RunBatch applies to every unapplied posting scoring at or above
// opts.MinScore, best match first, up to opts.MaxApplications. A failed
// posting is recorded and skipped; it never aborts the batch. Successive
// applications are separated by opts.Delay, and cancelling ctx stops the run
// before the next posting or mid-delay, returning the partial result
// together with the context error.
func (o *Orchestrator) RunBatch(ctx context.Context, opts BatchOptions) (*BatchResult, error) {
	opts = opts.withDefaults()

	postings, err := o.store.EligiblePostings(ctx, opts.MinScore, opts.MaxApplications)
	if err != nil {
		return nil, fmt.Errorf("failed to select postings: %w", err)
	}

	result := &BatchResult{
		Applications: []ApplicationSummary{},
		Failures:     []BatchFailure{},
	}
	if len(postings) == 0 {
		return result, nil
	}

	emitProgress(opts.OnProgress, ProgressEvent{
		Stage:   StageSelected,
		Message: fmt.Sprintf("Selected %d postings for auto-apply", len(postings)),
	})

	for i := range postings {
		posting := &postings[i]

		if err := ctx.Err(); err != nil {
			return result, err
		}

		pause := true
		applied, err := o.ApplyToJob(ctx, posting.ID)
		if err != nil {
			log.Printf("Failed to apply to %s at %s: %v", posting.Title, posting.Company, err)
			result.Failures = append(result.Failures, BatchFailure{
				JobID:    posting.ID,
				JobTitle: posting.Title,
				Company:  posting.Company,
				Reason:   err.Error(),
			})
			emitProgress(opts.OnProgress, ProgressEvent{
				Stage:    StageSkipped,
				JobID:    posting.ID.String(),
				JobTitle: posting.Title,
				Company:  posting.Company,
				Message:  fmt.Sprintf("Skipped %s at %s: %v", posting.Title, posting.Company, err),
			})
			pause = opts.DelayAfterFailure
		} else {
			summary := ApplicationSummary{
				JobID:         posting.ID,
				JobTitle:      posting.Title,
				Company:       posting.Company,
				MatchScore:    posting.MatchScore,
				ApplicationID: applied.Application.ID,
			}
			result.Applications = append(result.Applications, summary)
			emitProgress(opts.OnProgress, ProgressEvent{
				Stage:    StageApplied,
				JobID:    posting.ID.String(),
				JobTitle: posting.Title,
				Company:  posting.Company,
				Message:  fmt.Sprintf("Applied to %s at %s (score %.1f)", posting.Title, posting.Company, posting.MatchScore),
				Content:  summary,
			})
		}

		if !pause || i == len(postings)-1 {
			continue
		}

		emitProgress(opts.OnProgress, ProgressEvent{
			Stage:   StageWaiting,
			Message: fmt.Sprintf("Waiting %s before next application", opts.Delay),
		})
		if err := sleepContext(ctx, opts.Delay); err != nil {
			return result, err
		}
	}

	return result, nil
}

// sleepContext waits for the given duration, returning early with the
// context error if ctx is cancelled first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
