package api

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is wrapped by every error the client returns: transport
// failures, non-2xx responses and undecodable bodies alike.
var ErrRequestFailed = errors.New("request failed")

// StatusError is returned when the backend answers outside 2xx.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %s %s: http %d", ErrRequestFailed, e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s: %s %s: http %d: %s", ErrRequestFailed, e.Method, e.Path, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrRequestFailed }
