package server

import (
	"errors"
	"net/http"

	"github.com/mariana/jobpilot/internal/apply"
	"github.com/mariana/jobpilot/internal/extraction"
	"github.com/mariana/jobpilot/internal/jobsource"
)

// httpStatus maps pipeline errors to HTTP status codes. Errors without a
// dedicated mapping are treated as internal failures.
func httpStatus(err error) int {
	var notFound *apply.NotFoundError
	var unreadable *extraction.UnreadableDocumentError
	var feed *jobsource.FeedError

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.Is(err, apply.ErrAlreadyApplied):
		return http.StatusConflict
	case errors.As(err, &unreadable):
		return http.StatusBadRequest
	case errors.As(err, &feed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
