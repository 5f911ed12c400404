// Package letter synthesizes application cover letters.
//
// Generation prefers the LLM; any failure or empty response falls back to
// a fixed interpolated template, so synthesis never fails outward.
package letter

import (
	"context"
	"log"
	"strings"

	"github.com/mariana/jobpilot/internal/llm"
	"github.com/mariana/jobpilot/internal/prompts"
	"github.com/mariana/jobpilot/internal/types"
)

// Synthesizer produces a cover letter for a profile/posting pair
type Synthesizer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewSynthesizer creates a synthesizer. A nil client disables the LLM path
// and every letter comes from the fallback template.
func NewSynthesizer(client llm.Client, tier llm.ModelTier) *Synthesizer {
	return &Synthesizer{client: client, tier: tier}
}

// Generate writes a cover letter for the posting. It never fails: service
// errors, timeouts and empty responses all fall back to the template.
func (s *Synthesizer) Generate(ctx context.Context, profile *types.CandidateProfile, posting *types.JobPosting) string {
	text, err := s.llmLetter(ctx, profile, posting)
	if err != nil {
		log.Printf("cover letter generation falling back to template: %v", err)
		return FallbackLetter(profile, posting)
	}
	return text
}

func (s *Synthesizer) llmLetter(ctx context.Context, profile *types.CandidateProfile, posting *types.JobPosting) (string, error) {
	if s.client == nil {
		return "", &llm.ServiceError{Kind: llm.KindUnavailable, Message: "no completion client configured"}
	}

	system := prompts.MustGet("letter.json", "cover-letter-system")
	prompt := prompts.Format(prompts.MustGet("letter.json", "cover-letter"), map[string]string{
		"Title":        posting.Title,
		"Company":      posting.Company,
		"Location":     posting.Location,
		"Description":  posting.Description,
		"Requirements": posting.Requirements,
		"Skills":       strings.Join(profile.Skills, ", "),
		"Experience":   strings.Join(profile.Experience, "; "),
		"Education":    strings.Join(profile.Education, "; "),
		"Summary":      profile.Summary,
	})

	text, err := s.client.Complete(ctx, system, prompt, s.tier)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &llm.ServiceError{Kind: llm.KindMalformed, Message: "empty cover letter response"}
	}
	return text, nil
}
