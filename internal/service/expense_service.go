package service

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"splitledger/internal/models"
	"splitledger/internal/storage"
	"splitledger/internal/validate"
)

// ExpenseService implements expense recording for groups.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// validateExpenseFields checks name and amount together so the caller gets
// every failing field in one response.
func validateExpenseFields(name, amount string) (int64, error) {
	var fieldErrs validate.FieldErrors
	switch {
	case name == "":
		fieldErrs.Add("Expense name is missing.")
	case utf8.RuneCountInString(name) > validate.MaxNameLen:
		fieldErrs.Add("Expense name is too long.")
	}

	var parsed int64
	if amount == "" {
		fieldErrs.Add("Expense amount is missing.")
	} else {
		var err error
		parsed, err = validate.ParseAmount(amount)
		if err != nil {
			fieldErrs.Add("Expense amount must be a positive whole number.")
		}
	}

	if err := fieldErrs.Err(); err != nil {
		return 0, err
	}
	return parsed, nil
}

// participantSet loads a group's participants as an id set.
func (s *ExpenseService) participantSet(ctx context.Context, groupID int64) (map[int64]bool, []*models.User, error) {
	participants, err := s.store.ListParticipants(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list participants: %w", err)
	}
	set := make(map[int64]bool, len(participants))
	for _, p := range participants {
		set[p.ID] = true
	}
	return set, participants, nil
}

// AddEqualSplit records an expense paid by the acting user and split across
// every current participant of the group, payer included.
func (s *ExpenseService) AddEqualSplit(ctx context.Context, actorID, groupID int64, name, amount string) (*models.Expense, error) {
	parsed, err := validateExpenseFields(name, amount)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	set, participants, err := s.participantSet(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !set[actorID] {
		return nil, ErrForbidden
	}

	debtorIDs := make([]int64, len(participants))
	for i, p := range participants {
		debtorIDs[i] = p.ID
	}

	expense := &models.Expense{
		Name:      name,
		Amount:    parsed,
		GroupID:   groupID,
		PayerID:   actorID,
		DebtorIDs: debtorIDs,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	slog.Info("Expense recorded", "expense_id", expense.ID, "group_id", groupID,
		"payer_id", actorID, "debtors", len(debtorIDs), "split", "equal")
	return expense, nil
}

// AddCustomSplit records an expense with an explicit payer and debtor set.
// Every debtor id must resolve to an existing user and, like the payer,
// must belong to the group's participant set; otherwise nothing is written.
func (s *ExpenseService) AddCustomSplit(ctx context.Context, actorID, groupID int64, name, amount string, payerID int64, debtorIDs []int64) (*models.Expense, error) {
	parsed, err := validateExpenseFields(name, amount)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	set, _, err := s.participantSet(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !set[actorID] {
		return nil, ErrForbidden
	}

	if len(debtorIDs) == 0 {
		var fieldErrs validate.FieldErrors
		fieldErrs.Add("At least one debtor is required.")
		return nil, fieldErrs.Err()
	}

	if !set[payerID] {
		var fieldErrs validate.FieldErrors
		fieldErrs.Add("Payer must be a participant of the group.")
		return nil, fieldErrs.Err()
	}

	// Resolve every debtor up front: one unknown id fails the whole
	// operation before anything is written.
	seen := make(map[int64]bool, len(debtorIDs))
	debtors := make([]int64, 0, len(debtorIDs))
	for _, id := range debtorIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		user, err := s.store.GetUserByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve debtor %d: %w", id, err)
		}
		if user == nil {
			return nil, fmt.Errorf("debtor %d: %w", id, storage.ErrNotFound)
		}
		if !set[id] {
			var fieldErrs validate.FieldErrors
			fieldErrs.Add("All debtors must be participants of the group.")
			return nil, fieldErrs.Err()
		}
		debtors = append(debtors, id)
	}

	expense := &models.Expense{
		Name:      name,
		Amount:    parsed,
		GroupID:   groupID,
		PayerID:   payerID,
		DebtorIDs: debtors,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	slog.Info("Expense recorded", "expense_id", expense.ID, "group_id", groupID,
		"payer_id", payerID, "debtors", len(debtors), "split", "custom")
	return expense, nil
}

// List retrieves a group's expenses, newest first. Only participants may
// view them.
func (s *ExpenseService) List(ctx context.Context, actorID, groupID int64) ([]*models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	ok, err := s.store.IsParticipant(ctx, groupID, actorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check participant: %w", err)
	}
	if !ok {
		return nil, ErrForbidden
	}

	return s.store.ListExpensesByGroup(ctx, groupID)
}
