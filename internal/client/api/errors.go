package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	// ErrUpdateRejected marks a profile update the server refused (non-2xx).
	ErrUpdateRejected = errors.New("profile update rejected")
)

// AuthError is a server-side rejection of a login attempt. Message is the
// server-supplied human-readable reason and must be shown to the user
// verbatim, with a retry of the whole flow as the only affordance.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Message)
}
