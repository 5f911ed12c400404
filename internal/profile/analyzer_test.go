package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariana/jobpilot/internal/llm"
)

// fakeClient implements llm.Client with a canned response
type fakeClient struct {
	response   string
	err        error
	lastSystem string
	lastPrompt string
}

func (f *fakeClient) Complete(_ context.Context, system, prompt string, _ llm.ModelTier) (string, error) {
	f.lastSystem = system
	f.lastPrompt = prompt
	return f.response, f.err
}

func (f *fakeClient) CompleteJSON(ctx context.Context, system, prompt string, tier llm.ModelTier) (string, error) {
	return f.Complete(ctx, system, prompt, tier)
}

func (f *fakeClient) Close() error { return nil }

const resumeText = "Senior Software Engineer with Python, Docker and AWS experience. " +
	"2018 - 2022 Software Engineer at Initech. Bachelor of Science, 2014."

func TestAnalyze_LLMSuccess(t *testing.T) {
	client := &fakeClient{
		response: `{
			"skills": ["Go", "Distributed Systems"],
			"experience": ["Staff Engineer at Initech, 2018-2022"],
			"education": ["B.S. Computer Science, 2014"],
			"summary": "Seasoned backend engineer."
		}`,
	}
	analyzer := NewAnalyzer(client, llm.TierStandard)

	p := analyzer.Analyze(context.Background(), resumeText)
	assert.Equal(t, []string{"Go", "Distributed Systems"}, p.Skills)
	assert.Equal(t, []string{"Staff Engineer at Initech, 2018-2022"}, p.Experience)
	assert.Equal(t, []string{"B.S. Computer Science, 2014"}, p.Education)
	assert.Equal(t, "Seasoned backend engineer.", p.Summary)
	assert.Equal(t, resumeText, p.SourceText)
	assert.NotEqual(t, p.ID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestAnalyze_FencedResponse(t *testing.T) {
	client := &fakeClient{
		response: "```json\n{\"skills\": [\"Go\"], \"experience\": [], \"education\": [], \"summary\": \"ok\"}\n```",
	}
	analyzer := NewAnalyzer(client, llm.TierStandard)

	p := analyzer.Analyze(context.Background(), resumeText)
	assert.Equal(t, []string{"Go"}, p.Skills)
	assert.Equal(t, "ok", p.Summary)
}

func TestAnalyze_PromptCarriesResumeText(t *testing.T) {
	client := &fakeClient{
		response: `{"skills": [], "experience": [], "education": [], "summary": "s"}`,
	}
	analyzer := NewAnalyzer(client, llm.TierStandard)

	analyzer.Analyze(context.Background(), resumeText)
	assert.Contains(t, client.lastPrompt, "Senior Software Engineer")
	assert.Contains(t, client.lastSystem, "JSON")
}

func TestAnalyze_ServiceErrorFallsBack(t *testing.T) {
	client := &fakeClient{
		err: &llm.ServiceError{Kind: llm.KindUnavailable, Message: "connection refused"},
	}
	analyzer := NewAnalyzer(client, llm.TierStandard)

	p := analyzer.Analyze(context.Background(), resumeText)
	// Deterministic extraction results
	assert.Equal(t, []string{"Python", "Docker", "AWS"}, p.Skills)
	assert.Contains(t, p.Experience, "2018 - 2022 Software Engineer")
	assert.Equal(t, []string{"Bachelor 2014"}, p.Education)
	assert.Equal(t, resumeText, p.Summary)
}

func TestAnalyze_TimeoutFallsBack(t *testing.T) {
	client := &fakeClient{
		err: &llm.ServiceError{Kind: llm.KindTimeout, Message: "deadline exceeded"},
	}
	analyzer := NewAnalyzer(client, llm.TierStandard)

	p := analyzer.Analyze(context.Background(), resumeText)
	assert.Equal(t, []string{"Python", "Docker", "AWS"}, p.Skills)
}

func TestAnalyze_MalformedJSONFallsBack(t *testing.T) {
	client := &fakeClient{response: `{"skills": ["Go"`}
	analyzer := NewAnalyzer(client, llm.TierStandard)

	p := analyzer.Analyze(context.Background(), resumeText)
	assert.Equal(t, []string{"Python", "Docker", "AWS"}, p.Skills)
}

func TestAnalyze_SchemaViolationFallsBack(t *testing.T) {
	// skills must be an array of strings
	client := &fakeClient{
		response: `{"skills": "Go, Rust", "experience": [], "education": [], "summary": "s"}`,
	}
	analyzer := NewAnalyzer(client, llm.TierStandard)

	p := analyzer.Analyze(context.Background(), resumeText)
	assert.Equal(t, []string{"Python", "Docker", "AWS"}, p.Skills)
}

func TestAnalyze_NilClientUsesFallback(t *testing.T) {
	analyzer := NewAnalyzer(nil, llm.TierStandard)

	p := analyzer.Analyze(context.Background(), resumeText)
	assert.Equal(t, []string{"Python", "Docker", "AWS"}, p.Skills)
}

func TestAnalyze_MissingSummaryFilled(t *testing.T) {
	client := &fakeClient{
		response: `{"skills": ["Go"], "experience": [], "education": []}`,
	}
	analyzer := NewAnalyzer(client, llm.TierStandard)

	p := analyzer.Analyze(context.Background(), resumeText)
	// Summary is always populated, here from source text truncation
	assert.Equal(t, resumeText, p.Summary)
}

func TestAnalyze_SlicesNeverNil(t *testing.T) {
	client := &fakeClient{response: `{"summary": "only a summary"}`}
	analyzer := NewAnalyzer(client, llm.TierStandard)

	p := analyzer.Analyze(context.Background(), resumeText)
	require.NotNil(t, p.Skills)
	require.NotNil(t, p.Experience)
	require.NotNil(t, p.Education)
	assert.Empty(t, p.Skills)
}
