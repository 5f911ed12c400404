package letter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mariana/jobpilot/internal/llm"
	"github.com/mariana/jobpilot/internal/types"
)

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

func testProfile() *types.CandidateProfile {
	p := types.NewCandidateProfile("Senior backend engineer resume text")
	p.Skills = []string{"Python", "Docker", "AWS", "Kubernetes"}
	p.Experience = []string{"Backend Engineer at Initech 2018-2022", "Intern 2017"}
	p.Education = []string{"B.S. Computer Science 2017"}
	p.Summary = "Backend engineer."
	return p
}

func testPosting() *types.JobPosting {
	return types.NewJobPosting(types.RawPosting{
		Title:        "Backend Developer",
		Company:      "Spotify",
		Location:     "Remote",
		Description:  "Build audio streaming APIs",
		Requirements: "Python, Kubernetes",
	}, 82.5)
}

func TestGenerate_LLMSuccess(t *testing.T) {
	client := &fakeClient{response: "  Dear Hiring Manager,\n\nA generated letter.\n"}
	synth := NewSynthesizer(client, llm.TierAdvanced)

	text := synth.Generate(context.Background(), testProfile(), testPosting())
	assert.Equal(t, "Dear Hiring Manager,\n\nA generated letter.", text)
}

func TestGenerate_PromptCarriesJobAndProfile(t *testing.T) {
	client := &fakeClient{response: "letter"}
	synth := NewSynthesizer(client, llm.TierAdvanced)

	synth.Generate(context.Background(), testProfile(), testPosting())
	assert.Contains(t, client.lastPrompt, "Backend Developer")
	assert.Contains(t, client.lastPrompt, "Spotify")
	assert.Contains(t, client.lastPrompt, "Python, Docker, AWS, Kubernetes")
	assert.Contains(t, client.lastPrompt, "Backend Engineer at Initech 2018-2022; Intern 2017")
	assert.Contains(t, client.lastSystem, "cover letter writer")
}

func TestGenerate_ServiceErrorFallsBack(t *testing.T) {
	client := &fakeClient{err: &llm.ServiceError{Kind: llm.KindUnavailable, Message: "down"}}
	synth := NewSynthesizer(client, llm.TierAdvanced)

	text := synth.Generate(context.Background(), testProfile(), testPosting())
	assert.Contains(t, text, "Dear Hiring Manager")
	assert.Contains(t, text, "Backend Developer position at Spotify")
}

func TestGenerate_EmptyResponseFallsBack(t *testing.T) {
	client := &fakeClient{response: "   \n  "}
	synth := NewSynthesizer(client, llm.TierAdvanced)

	text := synth.Generate(context.Background(), testProfile(), testPosting())
	assert.Contains(t, text, "Dear Hiring Manager")
}

func TestGenerate_NilClientUsesTemplate(t *testing.T) {
	synth := NewSynthesizer(nil, llm.TierAdvanced)

	text := synth.Generate(context.Background(), testProfile(), testPosting())
	assert.Contains(t, text, "Dear Hiring Manager")
}

func TestFallbackLetter_InterpolatesTitleAndCompany(t *testing.T) {
	text := FallbackLetter(testProfile(), testPosting())

	assert.Contains(t, text, "the Backend Developer position at Spotify")
	// Company appears again in the closing
	assert.Equal(t, 2, strings.Count(text, "Spotify"))
	assert.True(t, strings.HasSuffix(text, "Best regards"))
}

func TestFallbackLetter_FirstThreeSkillsOnly(t *testing.T) {
	text := FallbackLetter(testProfile(), testPosting())

	assert.Contains(t, text, "background in Python, Docker, AWS,")
	assert.NotContains(t, text, "Kubernetes,")
}

func TestFallbackLetter_FirstExperienceEntry(t *testing.T) {
	text := FallbackLetter(testProfile(), testPosting())

	assert.Contains(t, text, "My experience includes Backend Engineer at Initech 2018-2022,")
	assert.NotContains(t, text, "Intern 2017")
}

func TestFallbackLetter_DefaultExperiencePhrase(t *testing.T) {
	profile := testProfile()
	profile.Experience = []string{}

	text := FallbackLetter(profile, testPosting())
	assert.Contains(t, text, "My experience includes relevant professional experience,")
}

func TestFallbackLetter_FewerThanThreeSkills(t *testing.T) {
	profile := testProfile()
	profile.Skills = []string{"Go"}

	text := FallbackLetter(profile, testPosting())
	require.Contains(t, text, "background in Go,")
}
