package users

import "errors"

// ErrNotFound is returned when no user row matches the given id.
// Callers match it with errors.Is.
var ErrNotFound = errors.New("user not found")

// ValidationError reports malformed or missing input. The caller is
// expected to re-prompt; it is never retried automatically.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// AuthError reports a credential mismatch (password or, for deletion,
// email). It is distinct from ErrNotFound: a failed check leaves the
// row unchanged.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }
