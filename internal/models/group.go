package models

// Group represents a named pool of participants sharing expenses.
//
// The owner is always a participant: creation inserts the owner into the
// participant set in the same transaction as the group row. The participant
// set itself lives in the storage layer's join table and is read through
// Store.ListParticipants, not through a field here.
type Group struct {
	// ID is the store-assigned numeric identifier.
	ID int64

	// Name is the display name of the group (at most 200 characters).
	// Names are unique per owner, not globally.
	Name string

	// Currency the group's expenses are denominated in.
	Currency Currency

	// Closed marks a group as no longer active. It is persisted and
	// returned but referenced by no operation.
	Closed bool

	// OwnerID references the user who created the group.
	OwnerID int64

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}
