package strapiclient

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when a 2xx body is not a JSON envelope.
var ErrMalformedResponse = errors.New("strapi: malformed response")

// TransportError wraps a network-level failure. It is never retried.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("strapi %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RequestFailedError reports a non-2xx response.
type RequestFailedError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("strapi %s %s: status=%d body=%s", e.Method, e.URL, e.Status, e.Body)
}

// StatusCode returns the upstream status carried by err, or 0.
func StatusCode(err error) int {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Status
	}
	return 0
}
