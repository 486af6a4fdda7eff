// Package api contains the backend gateway: a narrow Client interface and
// its HTTP/JSON implementation. The gateway only performs I/O and never
// mutates session state; interpreting results is the caller's job.
package api

import (
	"context"

	"github.com/verdantly/verdantly/internal/client/models"
)

type Client interface {
	Close() error
	// Login submits already-hashed credentials and returns the normalized
	// session bootstrap on success. It is issued exactly once per attempt;
	// there are no retries.
	Login(ctx context.Context, hashedEmail, hashedPassword string) (*models.SessionBootstrap, error)
	// UpdateProfile sends a partial update containing exactly the editable
	// profile fields. The server acknowledges with a 2xx and no required body.
	UpdateProfile(ctx context.Context, userID string, fields models.EditableFields) error
	Ping(ctx context.Context) error
}
