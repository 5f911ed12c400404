package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mariana/jobpilot/internal/apply"
	"github.com/mariana/jobpilot/internal/types"
)

func TestFormatApplication(t *testing.T) {
	posting := types.NewJobPosting(types.RawPosting{
		Title:   "Backend Developer",
		Company: "Spotify",
		URL:     "https://linkedin.com/jobs/view/123450",
	}, 82.5)

	text := FormatApplication(posting)
	assert.Contains(t, text, "<b>Backend Developer</b>")
	assert.Contains(t, text, "Spotify")
	assert.Contains(t, text, "82.5")
	assert.Contains(t, text, "https://linkedin.com/jobs/view/123450")
}

func TestFormatApplication_EscapesHTML(t *testing.T) {
	posting := types.NewJobPosting(types.RawPosting{
		Title:   "C++ Developer <Senior>",
		Company: "Black & White",
	}, 70)

	text := FormatApplication(posting)
	assert.Contains(t, text, "&lt;Senior&gt;")
	assert.Contains(t, text, "Black &amp; White")
	assert.NotContains(t, text, "<Senior>")
}

func TestFormatBatchSummary(t *testing.T) {
	result := &apply.BatchResult{
		Applications: []apply.ApplicationSummary{
			{JobTitle: "Backend Developer", Company: "Google", MatchScore: 90},
			{JobTitle: "DevOps Engineer", Company: "Netflix", MatchScore: 75},
		},
		Failures: []apply.BatchFailure{
			{JobTitle: "Frontend Developer", Company: "Meta", Reason: "job posting already applied to"},
		},
	}

	text := FormatBatchSummary(result)
	assert.Contains(t, text, "Auto-applied to 2 jobs")
	assert.Contains(t, text, "(1 skipped)")
	assert.Contains(t, text, "Backend Developer at Google (90.0)")
	assert.Contains(t, text, "Frontend Developer at Meta: job posting already applied to")
}

func TestFormatBatchSummary_Empty(t *testing.T) {
	result := &apply.BatchResult{}
	text := FormatBatchSummary(result)
	assert.Equal(t, "🤖 Auto-applied to 0 jobs", text)
}

// TestNilNotifier verifies the nil no-op contract: an unconfigured notifier
// must never panic.
func TestNilNotifier(t *testing.T) {
	var notifier *Notifier
	notifier.ApplicationSubmitted(types.NewJobPosting(types.RawPosting{Title: "x"}, 50))
	notifier.BatchCompleted(&apply.BatchResult{})
}
