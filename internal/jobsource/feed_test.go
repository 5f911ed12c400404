package jobsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedPayload = `[
	{
		"title": "Platform Engineer",
		"company": "Acme Corp",
		"location": "Remote",
		"description": "<div><p>Build <b>resilient</b> services.</p><script>track()</script></div>",
		"requirements": "Go, Kubernetes",
		"url": "https://boards.example.com/jobs/1",
		"posted_date": "3 days ago"
	},
	{
		"title": "  Data Engineer  ",
		"company": "Globex",
		"location": "NYC",
		"description": "Pipelines at scale",
		"requirements": "Python, SQL",
		"url": "https://boards.example.com/jobs/2",
		"posted_date": "1 week ago"
	}
]`

func TestFeedSearch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Go", r.URL.Query().Get("keywords"))
		assert.Equal(t, "Remote", r.URL.Query().Get("location"))
		assert.Equal(t, "senior", r.URL.Query().Get("experience_level"))
		assert.Equal(t, "20", r.URL.Query().Get("max_results"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(feedPayload))
	}))
	defer server.Close()

	source := NewFeedSource(server.URL)
	postings, err := source.Search(context.Background(), Query{
		Keywords:        "Go",
		Location:        "Remote",
		ExperienceLevel: "senior",
		MaxResults:      20,
	})
	require.NoError(t, err)
	require.Len(t, postings, 2)

	assert.Equal(t, "Platform Engineer", postings[0].Title)
	assert.Equal(t, "Acme Corp", postings[0].Company)
	assert.Equal(t, "https://boards.example.com/jobs/1", postings[0].URL)
	assert.Equal(t, "3 days ago", postings[0].PostedDate)
	// HTML markup and script content are stripped from the description.
	assert.Contains(t, postings[0].Description, "resilient")
	assert.NotContains(t, postings[0].Description, "<p>")
	assert.NotContains(t, postings[0].Description, "track()")

	// Whitespace around feed fields is trimmed.
	assert.Equal(t, "Data Engineer", postings[1].Title)
}

func TestFeedSearch_TruncatesToMaxResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(feedPayload))
	}))
	defer server.Close()

	source := NewFeedSource(server.URL)
	postings, err := source.Search(context.Background(), Query{Keywords: "Go", MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, postings, 1)
}

func TestFeedSearch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	source := NewFeedSource(server.URL)
	_, err := source.Search(context.Background(), Query{Keywords: "Go"})
	require.Error(t, err)

	var feedErr *FeedError
	assert.ErrorAs(t, err, &feedErr)
	assert.Contains(t, err.Error(), "500")
}

func TestFeedSearch_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	source := NewFeedSource(server.URL)
	_, err := source.Search(context.Background(), Query{Keywords: "Go"})
	require.Error(t, err)

	var feedErr *FeedError
	assert.ErrorAs(t, err, &feedErr)
	assert.Contains(t, err.Error(), "decode")
}

func TestFeedSearch_InvalidFeedURL(t *testing.T) {
	source := NewFeedSource("not-a-valid-url")
	_, err := source.Search(context.Background(), Query{Keywords: "Go"})
	require.Error(t, err)

	var feedErr *FeedError
	assert.ErrorAs(t, err, &feedErr)
	assert.Contains(t, err.Error(), "invalid feed URL")
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text passthrough",
			input:    "  Just plain text  ",
			expected: "Just plain text",
		},
		{
			name:     "tags removed",
			input:    "<p>Hello <b>world</b></p>",
			expected: "Hello world",
		},
		{
			name:     "script and style dropped",
			input:    "<style>.a{}</style><div>Visible</div><script>alert(1)</script>",
			expected: "Visible",
		},
		{
			name:     "blank lines collapsed",
			input:    "<div>First</div>\n\n\n<div>Second</div>",
			expected: "First\nSecond",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripHTML(tt.input))
		})
	}
}
