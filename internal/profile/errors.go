package profile

import (
	"errors"
	"fmt"
)

// ErrProfileNotFound is matched by every *NotFoundError.
var ErrProfileNotFound = errors.New("profile not found")

// NotFoundError reports that no candidate location produced a usable document.
type NotFoundError struct {
	Slug     string
	Attempts []Attempt
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("profile %q not found after %d attempts", e.Slug, len(e.Attempts))
}

// Is lets errors.Is(err, ErrProfileNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrProfileNotFound
}

// Tried returns the URLs attempted, in order.
func (e *NotFoundError) Tried() []string {
	urls := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		urls[i] = a.URL
	}
	return urls
}

// DocumentError reports a fetched body that could not be used as a profile record.
type DocumentError struct {
	URL     string
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("document error for %s: %s", e.URL, e.Message)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}
