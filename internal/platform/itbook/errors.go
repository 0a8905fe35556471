package itbook

import (
	"errors"
	"fmt"
)

// ErrEmptyQuery is returned when Search is called without a term.
var ErrEmptyQuery = errors.New("itbook: search query must not be empty")

// ErrEmptyISBN is returned when Book is called without an identifier.
var ErrEmptyISBN = errors.New("itbook: isbn13 must not be empty")

// StatusError reports a non-success HTTP status from the remote service.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("itbook: api error %d", e.Status)
	}
	return fmt.Sprintf("itbook: api error %d: %s", e.Status, e.Body)
}

// TransportError wraps network-level failures (DNS, connect, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("itbook: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
