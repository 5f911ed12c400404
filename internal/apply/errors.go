package apply

import (
	"errors"
	"fmt"
)

// ErrAlreadyApplied indicates the posting's applied flag was already set
// when an application attempt tried to claim it.
var ErrAlreadyApplied = errors.New("job posting already applied to")

// NotFoundError indicates a record required for an application is missing.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
