package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"splitledger/internal/models"
	"splitledger/internal/storage"
	"splitledger/internal/storage/sqlite"
)

// newTestStore creates a temp-file SQLite store shared by the service tests.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-service-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func seedUser(t *testing.T, store storage.Store, login string) *models.User {
	t.Helper()

	user := &models.User{
		Login:        login,
		Email:        login + "@example.com",
		PasswordHash: "x",
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", login, err)
	}
	return user
}
