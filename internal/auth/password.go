package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"splitledger/internal/models"
	"splitledger/internal/storage"
	"splitledger/internal/validate"
)

var (
	// ErrLoginNotFound is returned when no account exists for the login.
	ErrLoginNotFound = errors.New("this login does not exist")

	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("incorrect login or password")
)

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	store storage.Store
}

// NewPasswordAuthenticator creates a new password-based authenticator backed
// by the given store.
func NewPasswordAuthenticator(store storage.Store) *PasswordAuthenticator {
	return &PasswordAuthenticator{store: store}
}

// Register validates all three fields independently, accumulating every
// failure, and creates the user only when the whole form is valid.
func (a *PasswordAuthenticator) Register(ctx context.Context, login, email, password string) (*models.User, error) {
	var fieldErrs validate.FieldErrors

	switch {
	case login == "":
		fieldErrs.Add("Login is missing.")
	case len(login) < validate.MinLoginLen || len(login) > validate.MaxLoginLen:
		fieldErrs.Add(fmt.Sprintf("Login must be between %d and %d characters long.",
			validate.MinLoginLen, validate.MaxLoginLen))
	default:
		existing, err := a.store.GetUserByLogin(ctx, login)
		if err != nil {
			return nil, fmt.Errorf("failed to check login: %w", err)
		}
		if existing != nil {
			fieldErrs.Add("Login is already taken.")
		}
	}

	switch {
	case email == "":
		fieldErrs.Add("E-mail is missing.")
	case !validate.IsEmailValid(email):
		fieldErrs.Add("E-mail is invalid.")
	default:
		existing, err := a.store.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if existing != nil {
			fieldErrs.Add("E-mail is already taken.")
		}
	}

	switch {
	case password == "":
		fieldErrs.Add("Password is missing.")
	case !validate.IsPasswordStrong(password):
		fieldErrs.Add("Password is not safe enough.")
	}

	if err := fieldErrs.Err(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Login:        login,
		Email:        email,
		PasswordHash: string(hashed),
	}

	// A concurrent registration can still win the race between the
	// pre-checks and this insert; the store surfaces it as ErrConflict.
	if err := a.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the login and password, returning the user if valid.
// An empty or unknown login yields ErrLoginNotFound; an empty or mismatching
// password yields ErrInvalidCredentials.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, login, credential string) (*models.User, error) {
	if login == "" {
		return nil, ErrLoginNotFound
	}

	user, err := a.store.GetUserByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrLoginNotFound
	}

	if credential == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
