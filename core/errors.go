package core

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrEmptyInput is returned when there is no text to analyze.
	ErrEmptyInput = errors.New("no content to analyze")

	// ErrInvalidURL is returned for URLs without an http(s) scheme and host.
	ErrInvalidURL = errors.New("invalid URL")

	// ErrEmptyContent is returned when a fetched page yields no usable text.
	ErrEmptyContent = errors.New("could not extract meaningful content")
)

// FetchError reports a transport failure or a non-2xx response.
// StatusCode is zero when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Timeout reports whether the fetch failed because a deadline expired.
func (e *FetchError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}
