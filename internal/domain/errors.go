package domain

import "errors"

// Closed error taxonomy. Components wrap these sentinels with context via
// fmt.Errorf(...: %w) so callers can branch on kind with errors.Is instead
// of matching message text.
var (
	// ErrConnectivity covers an unreachable store or rejected credentials.
	// Always fatal to the current operation.
	ErrConnectivity = errors.New("store connectivity failure")

	// ErrValidation marks a malformed bulk-write payload. Reported to the
	// HTTP caller as a client error, never raised further.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a uniqueness violation that the upsert path could
	// not resolve (the constraint migration has not been applied).
	ErrConflict = errors.New("conflict")

	// ErrUpstream marks a failed HTTP call from the batch job into the
	// bulk-write endpoint.
	ErrUpstream = errors.New("upstream call failed")
)

// ValidationError carries the caller-facing rejection message for a
// malformed bulk-write payload. Error() is the exact message the HTTP
// response echoes; errors.Is reports it as ErrValidation.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Unwrap() error { return ErrValidation }
