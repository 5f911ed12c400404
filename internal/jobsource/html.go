package jobsource

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripHTML reduces an HTML fragment to its visible text. Script, style and
// noscript elements are dropped entirely. Plain text passes through with
// surrounding whitespace trimmed.
func StripHTML(content string) string {
	if !strings.ContainsAny(content, "<>") {
		return strings.TrimSpace(content)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return strings.TrimSpace(content)
	}

	doc.Find("script, style, noscript").Remove()

	// goquery wraps fragments in html/body during parsing.
	text := doc.Find("body").Text()
	return cleanWhitespace(text)
}

// cleanWhitespace trims each line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
