package auth

import (
	"context"

	"splitledger/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// passkeys, OAuth, etc.) without changing the handler code.
type Authenticator interface {
	// Register creates a new user account. Login, email, and password are
	// validated independently; every failing field contributes a message to
	// the returned validate.FieldErrors. No user is created unless all
	// three fields pass.
	Register(ctx context.Context, login, email, password string) (*models.User, error)

	// Authenticate verifies the login and credential and returns the user
	// if successful.
	Authenticate(ctx context.Context, login, credential string) (*models.User, error)
}
