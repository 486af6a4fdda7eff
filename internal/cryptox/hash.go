// Package cryptox contains the client-side credential transforms: a one-way
// deterministic digest applied to credentials before they leave the device,
// and public-key encryption for payloads that need confidentiality.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrEmptyCredential is returned by HashCredential for empty input.
// Callers must not submit a login request when hashing fails.
var ErrEmptyCredential = errors.New("empty credential")

// HashCredential returns the SHA-256 digest of a raw credential as a
// lowercase hex string. The digest is deterministic and fixed-width
// (64 characters) regardless of input length, so the same email or password
// always produces the same value across restarts and devices.
//
// The raw credential is never transmitted; only this digest goes on the wire.
func HashCredential(raw string) (string, error) {
	if raw == "" {
		return "", ErrEmptyCredential
	}
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:]), nil
}
