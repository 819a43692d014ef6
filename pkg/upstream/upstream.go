// Package upstream defines the error type shared by all third-party API
// clients. Handlers use it to relay the status code reported by the remote
// service back to the browser instead of collapsing everything to 500.
package upstream

import (
	"errors"
	"fmt"
)

// Error describes a non-2xx response from a third-party API. Message holds a
// best-effort human readable explanation extracted from the upstream error
// envelope and may be empty.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream error: status %d", e.Status)
	}
	return fmt.Sprintf("upstream error: status %d: %s", e.Status, e.Message)
}

// StatusOf returns the upstream status carried by err, or fallback when err
// is not an upstream error (network failures, decode errors).
func StatusOf(err error, fallback int) int {
	var ue *Error
	if errors.As(err, &ue) && ue.Status != 0 {
		return ue.Status
	}
	return fallback
}

// MessageOf returns the upstream message carried by err, or fallback when no
// message is available.
func MessageOf(err error, fallback string) string {
	var ue *Error
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	return fallback
}
