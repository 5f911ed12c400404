package jobsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mariana/jobpilot/internal/types"
)

// DefaultFeedTimeout is the default HTTP request timeout for feed fetches.
const DefaultFeedTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for feed requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; JobPilot/1.0)"

// maxFeedBody caps how much of a feed response is read.
const maxFeedBody = 4 << 20

// FeedError represents an error while querying a job feed.
type FeedError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FeedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("feed error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("feed error for %s: %s", e.URL, e.Message)
}

func (e *FeedError) Unwrap() error {
	return e.Cause
}

// feedItem mirrors one posting object in a feed response.
type feedItem struct {
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	URL          string `json:"url"`
	PostedDate   string `json:"posted_date"`
}

// FeedSource queries an HTTP endpoint that serves postings as a JSON array.
// Description and requirements fields are HTML-stripped before they reach
// the matcher, since many feeds embed rendered markup.
type FeedSource struct {
	feedURL   string
	userAgent string
	client    *http.Client
}

// NewFeedSource creates a source backed by the JSON feed at feedURL.
func NewFeedSource(feedURL string) *FeedSource {
	return &FeedSource{
		feedURL:   feedURL,
		userAgent: DefaultUserAgent,
		client:    &http.Client{Timeout: DefaultFeedTimeout},
	}
}

// Search fetches postings from the feed. The query is forwarded as URL
// parameters; ExperienceLevel is passed through uninterpreted. MaxResults
// also truncates locally in case the feed ignores it.
func (f *FeedSource) Search(ctx context.Context, query Query) ([]types.RawPosting, error) {
	parsedURL, err := url.Parse(f.feedURL)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &FeedError{
			URL:     f.feedURL,
			Message: "invalid feed URL",
			Cause:   err,
		}
	}

	params := parsedURL.Query()
	params.Set("keywords", query.Keywords)
	if query.Location != "" {
		params.Set("location", query.Location)
	}
	if query.ExperienceLevel != "" {
		params.Set("experience_level", query.ExperienceLevel)
	}
	if query.MaxResults > 0 {
		params.Set("max_results", strconv.Itoa(query.MaxResults))
	}
	parsedURL.RawQuery = params.Encode()
	requestURL := parsedURL.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &FeedError{
			URL:     requestURL,
			Message: "failed to create request",
			Cause:   err,
		}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FeedError{
			URL:     requestURL,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FeedError{
			URL:     requestURL,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody))
	if err != nil {
		return nil, &FeedError{
			URL:     requestURL,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	var items []feedItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &FeedError{
			URL:     requestURL,
			Message: "failed to decode feed response",
			Cause:   err,
		}
	}

	postings := make([]types.RawPosting, 0, len(items))
	for _, item := range items {
		postings = append(postings, types.RawPosting{
			Title:        strings.TrimSpace(item.Title),
			Company:      strings.TrimSpace(item.Company),
			Location:     strings.TrimSpace(item.Location),
			Description:  StripHTML(item.Description),
			Requirements: StripHTML(item.Requirements),
			URL:          item.URL,
			PostedDate:   item.PostedDate,
		})
		if query.MaxResults > 0 && len(postings) >= query.MaxResults {
			break
		}
	}
	return postings, nil
}
