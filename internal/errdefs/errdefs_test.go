package errdefs

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	err := NotFound("3f1a8f22-14e1-4f62-98a0-9c6b0f4648a5")
	if !IsNotFound(err) {
		t.Error("IsNotFound() = false for a NotFoundError")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("IsNotFound() = true for a plain error")
	}
	if IsNotFound(nil) {
		t.Error("IsNotFound(nil) = true")
	}
}

func TestIsNotFoundWrapped(t *testing.T) {
	err := fmt.Errorf("resolving target: %w", NotFound("missing"))
	if !IsNotFound(err) {
		t.Error("IsNotFound() = false for a wrapped NotFoundError")
	}
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("abc")
	want := `target "abc" not found`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
