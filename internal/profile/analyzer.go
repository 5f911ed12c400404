// Package profile extracts structured candidate profiles from resume text.
//
// The primary strategy delegates to an LLM with a fixed extraction contract;
// any failure on that path falls through to a deterministic text extractor,
// so analysis never fails outward.
package profile

import (
	"context"
	"encoding/json"
	"log"

	"github.com/mariana/jobpilot/internal/llm"
	"github.com/mariana/jobpilot/internal/prompts"
	"github.com/mariana/jobpilot/internal/schemas"
	"github.com/mariana/jobpilot/internal/types"
)

// analysisResult mirrors the JSON contract of the extraction prompt
type analysisResult struct {
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
	Education  []string `json:"education"`
	Summary    string   `json:"summary"`
}

// Analyzer turns raw resume text into a structured candidate profile
type Analyzer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewAnalyzer creates an analyzer. A nil client disables the LLM path and
// every analysis uses the deterministic extractor.
func NewAnalyzer(client llm.Client, tier llm.ModelTier) *Analyzer {
	return &Analyzer{client: client, tier: tier}
}

// Analyze produces a candidate profile from resume text. It never fails:
// when the LLM path errors in any way the deterministic fallback supplies
// the result. The returned profile always carries the full source text and
// a non-empty summary.
func (a *Analyzer) Analyze(ctx context.Context, text string) *types.CandidateProfile {
	result, err := a.llmAnalysis(ctx, text)
	if err != nil {
		log.Printf("profile analysis falling back to deterministic extraction: %v", err)
		result = fallbackAnalysis(text)
	}

	p := types.NewCandidateProfile(text)
	p.Skills = result.Skills
	p.Experience = result.Experience
	p.Education = result.Education
	p.Summary = result.Summary
	p.Normalize()
	if p.Summary == "" {
		p.Summary = fallbackSummary(text)
	}
	return p
}

// llmAnalysis runs the LLM extraction path: prompt, fence cleanup, schema
// validation, JSON decode. Every failure is returned for fallback handling.
func (a *Analyzer) llmAnalysis(ctx context.Context, text string) (*analysisResult, error) {
	if a.client == nil {
		return nil, &llm.ServiceError{Kind: llm.KindUnavailable, Message: "no completion client configured"}
	}

	system := prompts.MustGet("profile.json", "analyze-resume-system")
	prompt := prompts.Format(prompts.MustGet("profile.json", "analyze-resume"), map[string]string{
		"ResumeText": text,
	})

	raw, err := a.client.CompleteJSON(ctx, system, prompt, a.tier)
	if err != nil {
		return nil, err
	}

	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.CandidateProfileSchema, cleaned); err != nil {
		return nil, err
	}

	var result analysisResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, &llm.ServiceError{Kind: llm.KindMalformed, Message: "analysis output is not valid JSON", Cause: err}
	}
	return &result, nil
}
