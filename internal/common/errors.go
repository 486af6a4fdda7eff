// Package common defines shared constants and sentinel errors used across
// Verdantly client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Service-level errors (generic flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorNotLoggedIn = errors.New("not logged in")
)
