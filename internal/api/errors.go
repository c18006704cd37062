package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Operation names used in error text and logs.
const (
	OpList   = "polling messages"
	OpCreate = "creating messages"
	OpUpdate = "editing messages"
	OpDelete = "deleting"
)

// StatusError is an application failure: the service answered with a
// status code the operation does not accept.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	text := strings.TrimSpace(e.Status)
	if text == "" {
		text = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("something went wrong with %s request: %s", e.Op, strings.TrimSpace(text))
}

// TransportError is a failure to reach the service or read its answer.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("something went wrong with %s request: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 from the service.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// StatusCode extracts the HTTP status from err, or 0 for transport failures.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}
