package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/verdantly/verdantly/internal/client/api"
	"github.com/verdantly/verdantly/internal/common"
)

// Login prompts for email and password, hashes and submits them through the
// auth service, and reports the outcome. A server rejection is shown with
// the server's own message; the user retries the whole flow by running
// login again. The raw password is wiped once the attempt finishes.
func (a *App) Login(ctx context.Context) error {

	email, err := GetSimpleText(a.reader, "-Enter email", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	defer common.WipeByteArray(password)

	err = a.authService.Login(ctx, email, password)
	if err != nil {
		var authErr *api.AuthError
		switch {
		case errors.As(err, &authErr):
			log.Printf("Login Error: %s", authErr.Message)
			log.Printf("Try again")
		case errors.Is(err, api.ErrUnavailable):
			log.Printf("Server unavailable, try again later")
		default:
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	log.Printf("Login successful")
	return nil
}

// Logout resets the session and returns the REPL to its logged-out command set.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	log.Printf("Logged out")
	return nil
}
