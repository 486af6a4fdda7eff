// Package services contains application services for the Verdantly client.
// This file defines the authentication service: hashing raw credentials,
// submitting them through the gateway, and populating the session store.
package services

import (
	"context"
	"fmt"

	"github.com/verdantly/verdantly/internal/client/api"
	"github.com/verdantly/verdantly/internal/client/session"
	"github.com/verdantly/verdantly/internal/cryptox"
	"github.com/verdantly/verdantly/internal/logging"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: hash both credentials, authenticate against the backend, and
//     populate the session store from the bootstrap. The store is written
//     only after a successful response; any failure leaves it untouched.
//   - Logout: reset the session store to its logged-out state.
//   - Ping: check backend reachability.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and the
// process-wide session store.
type authService struct {
	client api.Client
	store  *session.Store
	log    logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client and store.
func NewAuthService(client api.Client, store *session.Store, log logging.Logger) AuthService {
	return &authService{client: client, store: store, log: log}
}

// Login hashes the raw email and password (the raw values never go on the
// wire), performs a single login request, and on success populates the
// session store in the fixed slice order. There are no retries; the caller
// surfaces the error and lets the user restart the whole flow.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	hashedEmail, err := cryptox.HashCredential(email)
	if err != nil {
		return fmt.Errorf("hash email: %w", err)
	}
	hashedPassword, err := cryptox.HashCredential(string(password))
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	bootstrap, err := a.client.Login(ctx, hashedEmail, hashedPassword)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	a.store.ApplyBootstrap(bootstrap)
	a.log.Info(ctx, "login succeeded", "user_id", bootstrap.User.ID, "account_type", bootstrap.AccountType)
	return nil
}

// Logout resets the session store. Local device state (the asset catalog)
// is not session state and stays in place.
func (a *authService) Logout(ctx context.Context) error {
	a.store.Reset()
	a.log.Info(ctx, "logged out")
	return nil
}

// Ping proxies a reachability check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
