package api

import (
	"errors"
	"fmt"
)

// ClientError is a definitive 4xx response. Message is the server's own
// wording, passed through verbatim; the UI must not rephrase it.
type ClientError struct {
	Code    int
	Message string
}

func (e *ClientError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request rejected (%d)", e.Code)
}

// ServerError is a 5xx response.
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (%d)", e.Code)
}

// NetworkError is a transport-level failure: the request may or may not
// have reached the server. Transient marks timeouts and unreachable hosts,
// the only failures eligible for the upload retry policy.
type NetworkError struct {
	Cause     error
	Transient bool
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error { return e.Cause }

// IsTransient reports whether err is a retry-eligible NetworkError.
func IsTransient(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne) && ne.Transient
}
