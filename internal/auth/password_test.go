package auth

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"splitledger/internal/storage/sqlite"
	"splitledger/internal/validate"
)

func newAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-auth-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return NewPasswordAuthenticator(store)
}

func TestRegister_AccumulatesAllFieldErrors(t *testing.T) {
	a := newAuthenticator(t)

	_, err := a.Register(context.Background(), "", "", "")
	if err == nil {
		t.Fatal("expected error for empty form")
	}

	var fieldErrs validate.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors, got %T: %v", err, err)
	}
	if len(fieldErrs) != 3 {
		t.Errorf("expected 3 accumulated errors (login, email, password), got %d: %v",
			len(fieldErrs), fieldErrs)
	}
}

func TestRegister_LoginLengthBounds(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	for _, login := range []string{"abc", "loginthatismuchtoolong"} {
		_, err := a.Register(ctx, login, "a@example.com", "Passw0rdOk")
		var fieldErrs validate.FieldErrors
		if !errors.As(err, &fieldErrs) {
			t.Fatalf("login %q: expected FieldErrors, got %v", login, err)
		}
	}

	user, err := a.Register(ctx, "abcd", "a@example.com", "Passw0rdOk")
	if err != nil {
		t.Fatalf("expected 4-char login to register: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected assigned user ID")
	}
	if user.PasswordHash == "Passw0rdOk" {
		t.Error("password must not be stored in the clear")
	}
}

func TestRegister_UniqueLoginAndEmail(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	if _, err := a.Register(ctx, "alice", "alice@example.com", "Passw0rdOk"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	// Same email rejected regardless of the other fields being valid.
	_, err := a.Register(ctx, "bobby", "alice@example.com", "Passw0rdOk")
	var fieldErrs validate.FieldErrors
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors for duplicate email, got %v", err)
	}

	_, err = a.Register(ctx, "alice", "fresh@example.com", "Passw0rdOk")
	if !errors.As(err, &fieldErrs) {
		t.Fatalf("expected FieldErrors for duplicate login, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	registered, err := a.Register(ctx, "alice", "alice@example.com", "Passw0rdOk")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := a.Authenticate(ctx, "alice", "Passw0rdOk")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.ID != registered.ID {
			t.Errorf("expected user %d, got %d", registered.ID, user.ID)
		}
	})

	t.Run("empty login", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "", "Passw0rdOk")
		if !errors.Is(err, ErrLoginNotFound) {
			t.Errorf("expected ErrLoginNotFound, got %v", err)
		}
	})

	t.Run("unknown login", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "nobody", "Passw0rdOk")
		if !errors.Is(err, ErrLoginNotFound) {
			t.Errorf("expected ErrLoginNotFound, got %v", err)
		}
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice", "")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice", "WrongPass1")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
