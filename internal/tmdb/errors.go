package tmdb

import (
	"errors"
	"fmt"
	"net/http"
)

// FetchError describes a failed detail lookup. Status is 0 when the request
// never produced an HTTP response.
type FetchError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status > 0 && e.Err != nil:
		return fmt.Sprintf("%s: %s (status %d): %v", e.Op, e.Message, e.Status, e.Err)
	case e.Status > 0:
		return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the request could succeed.
func (e *FetchError) Temporary() bool {
	if e.Status == 0 {
		return e.Err != nil && !isContextError(e.Err)
	}
	return e.Status >= http.StatusInternalServerError || e.Status == http.StatusTooManyRequests
}

// defaultMessage is used when the provider did not send a status_message.
func defaultMessage(op string) string {
	switch op {
	case opMovieDetails:
		return "Error fetching movie details"
	case opTVDetails:
		return "Error fetching TV show details"
	default:
		return "Error searching for titles"
	}
}

func isRetryable(err error) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Temporary()
	}
	return false
}
