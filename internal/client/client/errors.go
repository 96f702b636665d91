package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrRejected          = errors.New("rejected by server")
	ErrMalformedResponse = errors.New("malformed response")
)

// TransportError is a failed exchange with the API: the request never got a
// usable answer. Err wraps ErrUnavailable or ErrUnauthorized.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RejectionError is an answer with success:false. It matches ErrRejected.
type RejectionError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Op, ErrRejected)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, ErrRejected, e.Message)
}

func (e *RejectionError) Is(target error) bool { return target == ErrRejected }
