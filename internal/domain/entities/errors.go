package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrSkipped marks a recoverable per-repository condition. The fleet iterator
	// turns it into a warning and continues with the next repository.
	ErrSkipped = errors.New("repository skipped")

	// ErrMissingParameter is returned when an operation needs a run parameter
	// that was not supplied.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrMissingToken is returned when a hosting API operation runs without a token.
	ErrMissingToken = errors.New("missing API token")

	// ErrConfigNotFound is returned when no configuration file can be located.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrNotProvisioned means a repository has no local checkout yet.
	ErrNotProvisioned = errors.New("repository has not been set up")

	// ErrNotConfigured means a resolved name has no usable descriptor.
	ErrNotConfigured = errors.New("repository not configured")

	// ErrUnsupportedHost is returned when no hosting implementation matches a remote.
	ErrUnsupportedHost = errors.New("unsupported hosting service")

	// ErrInvalidRemote is returned when a remote URL carries no org/repo segment.
	ErrInvalidRemote = errors.New("invalid remote URL")

	// ErrPushRejected is returned when the remote refuses a non-fast-forward update.
	ErrPushRejected = errors.New("push rejected")
)

// Skip wraps a formatted message with ErrSkipped.
func Skip(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrSkipped, fmt.Sprintf(format, args...))
}

// IsSkipped reports whether err describes a recoverable per-repository condition.
func IsSkipped(err error) bool {
	return errors.Is(err, ErrSkipped)
}

// SkipReason strips the ErrSkipped prefix so warnings read naturally.
func SkipReason(err error) string {
	message := err.Error()
	prefix := ErrSkipped.Error() + ": "
	if len(message) > len(prefix) && message[:len(prefix)] == prefix {
		return message[len(prefix):]
	}
	return message
}
