package models

// User represents a registered user account.
//
// Login and email are globally unique and never change after registration.
// Other entities reference users by ID only; a user's groups and expenses are
// found through storage lookups.
type User struct {
	// ID is the store-assigned numeric identifier.
	ID int64

	// Login is the unique login name (4-20 characters).
	Login string

	// Email is the user's unique email address.
	Email string

	// PasswordHash is the bcrypt digest of the user's password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
