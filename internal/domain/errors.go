package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// ProviderError reports a failed stage provider invocation: network failure,
// auth failure, quota exhaustion, timeout, or a malformed upstream response.
// The pipeline recovers from it by falling back to a placeholder; it is never
// surfaced to callers as a failure of the overall operation.
type ProviderError struct {
	Stage    string
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider %s: %v", e.Stage, e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError wraps err as a provider failure for the given stage.
func NewProviderError(stage, provider string, err error) *ProviderError {
	return &ProviderError{Stage: stage, Provider: provider, Err: err}
}

// PersistenceError reports that an artifact could not be durably stored.
// Unlike provider failures it is always surfaced: silently dropping a
// requested artifact would leave the caller believing a record exists.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ValidationError reports a malformed generation request. It is surfaced
// before any stage runs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
