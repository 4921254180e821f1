// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"splitledger/internal/models"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness constraint,
	// e.g. a duplicate login or email slipping past the pre-check.
	ErrConflict = errors.New("already exists")
)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user and populates user.ID.
	// Returns ErrConflict if the login or email is already taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves a user by ID. Returns (nil, nil) if no user exists.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// GetUserByLogin retrieves a user by login. Returns (nil, nil) if no user exists.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) if no user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// CreateGroup persists a new group and populates group.ID. The owner is
	// inserted into the participant set in the same transaction.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID. Returns ErrNotFound if it does not exist.
	GetGroup(ctx context.Context, id int64) (*models.Group, error)

	// ListGroupsByOwner retrieves the groups a user owns.
	ListGroupsByOwner(ctx context.Context, ownerID int64) ([]*models.Group, error)

	// ListGroupsByParticipant retrieves the groups a user participates in,
	// including groups they own.
	ListGroupsByParticipant(ctx context.Context, userID int64) ([]*models.Group, error)

	// AddParticipant adds a user to a group's participant set. Adding an
	// existing participant is a no-op.
	AddParticipant(ctx context.Context, groupID, userID int64) error

	// ListParticipants retrieves a group's participants ordered by login.
	ListParticipants(ctx context.Context, groupID int64) ([]*models.User, error)

	// IsParticipant reports whether the user belongs to the group's participant set.
	IsParticipant(ctx context.Context, groupID, userID int64) (bool, error)

	// CreateExpense persists a new expense together with all its debtor rows
	// in one transaction and populates expense.ID. A failure attaching any
	// debtor leaves nothing written.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByGroup retrieves a group's expenses, newest first, with
	// debtor IDs populated.
	ListExpensesByGroup(ctx context.Context, groupID int64) ([]*models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
