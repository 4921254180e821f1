package models

// Expense represents a single recorded charge within a group.
//
// An expense has exactly one payer and a non-empty set of debtors, all of
// whom belong to the owning group's participant set. Expenses are recorded
// raw: no share computation or settlement happens here.
type Expense struct {
	// ID is the store-assigned numeric identifier.
	ID int64

	// Name describes the expense (at most 200 characters).
	Name string

	// Amount is the charge in whole currency units.
	Amount int64

	// GroupID references the group the expense belongs to.
	GroupID int64

	// PayerID references the user who paid.
	PayerID int64

	// DebtorIDs references the users who owe a share. The expense row and
	// all debtor rows are written in one transaction.
	DebtorIDs []int64

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}
