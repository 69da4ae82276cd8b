// Package errdefs defines the error kinds surfaced by the collection engine.
// Callers distinguish kinds with errors.Is / errors.As rather than string
// matching, so the HTTP layer can map them to status codes.
package errdefs

import (
	"errors"
	"fmt"
)

// ErrStopped is returned by engine operations after Stop has been called.
var ErrStopped = errors.New("engine stopped")

// NotFoundError indicates that a scrape target did not resolve in the
// instance registry. It is fatal for the call that produced it.
type NotFoundError struct {
	Target string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("target %q not found", e.Target)
}

// NotFound wraps a target identifier in a NotFoundError.
func NotFound(target string) error {
	return &NotFoundError{Target: target}
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
