// Package apperr defines the error kinds the service surfaces to callers.
// Handlers map them onto HTTP status codes; services return them wrapped
// with fmt.Errorf("...: %w", err) where extra context helps.
package apperr

import "fmt"

// ValidationError reports malformed or incomplete input, e.g. missing
// answers at submit time or a resource that is not in the day's manifest.
type ValidationError struct {
	Msg                string
	MissingCount       int
	MissingQuestionIDs []string
}

func (e *ValidationError) Error() string {
	if e.MissingCount > 0 {
		return fmt.Sprintf("%s: %d answers missing", e.Msg, e.MissingCount)
	}
	return e.Msg
}

// NotFoundError reports a referenced phase, roadmap, day, resource or
// attempt that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// ConflictError is reserved for future non-idempotent writes. Completion
// marking never returns it.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// TransientStorageError wraps a persistence failure that is safe to retry
// with in-memory state intact.
type TransientStorageError struct {
	Op  string
	Err error
}

func (e *TransientStorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *TransientStorageError) Unwrap() error { return e.Err }

// ConfigurationError reports a missing or incomplete scoring scheme.
// Fatal for the request; retrying cannot help.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string { return e.Msg }
