package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/mariana/jobpilot/internal/apply"
	"github.com/mariana/jobpilot/internal/types"
)

// FormatApplication renders the chat message for one submitted application.
func FormatApplication(posting *types.JobPosting) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Applied to <b>%s</b> at %s\n", html.EscapeString(posting.Title), html.EscapeString(posting.Company))
	fmt.Fprintf(&b, "📊 Match score: %.1f", posting.MatchScore)
	if posting.URL != "" {
		fmt.Fprintf(&b, "\n🔗 %s", html.EscapeString(posting.URL))
	}
	return b.String()
}

// FormatBatchSummary renders the chat message for a finished auto-apply run.
func FormatBatchSummary(result *apply.BatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🤖 Auto-applied to %d jobs", len(result.Applications))
	if len(result.Failures) > 0 {
		fmt.Fprintf(&b, " (%d skipped)", len(result.Failures))
	}
	for _, application := range result.Applications {
		fmt.Fprintf(&b, "\n✅ %s at %s (%.1f)",
			html.EscapeString(application.JobTitle), html.EscapeString(application.Company), application.MatchScore)
	}
	for _, failure := range result.Failures {
		fmt.Fprintf(&b, "\n⚠️ %s at %s: %s",
			html.EscapeString(failure.JobTitle), html.EscapeString(failure.Company), html.EscapeString(failure.Reason))
	}
	return b.String()
}
