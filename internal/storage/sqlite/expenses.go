package sqlite

import (
	"context"
	"fmt"
	"time"

	"splitledger/internal/models"
)

// CreateExpense inserts a new expense together with all its debtor rows in
// one transaction. If any debtor row fails (e.g. the user does not exist),
// the whole write rolls back and nothing is persisted.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO expenses (name, amount, group_id, payer_id, created_at) VALUES (?, ?, ?, ?, ?)",
		expense.Name, expense.Amount, expense.GroupID, expense.PayerID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read expense id: %w", err)
	}

	for _, debtorID := range expense.DebtorIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO debtors (expense_id, user_id) VALUES (?, ?)",
			id, debtorID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert debtor %d: %w", debtorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	expense.ID = id

	return nil
}

// ListExpensesByGroup retrieves a group's expenses, newest first, with debtor
// IDs populated.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID int64) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, amount, group_id, payer_id, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id DESC`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.Name, &expense.Amount,
			&expense.GroupID, &expense.PayerID, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		debtorRows, err := s.db.QueryContext(ctx,
			"SELECT user_id FROM debtors WHERE expense_id = ? ORDER BY user_id", expense.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get debtors: %w", err)
		}

		for debtorRows.Next() {
			var userID int64
			if err := debtorRows.Scan(&userID); err != nil {
				debtorRows.Close()
				return nil, fmt.Errorf("failed to scan debtor: %w", err)
			}
			expense.DebtorIDs = append(expense.DebtorIDs, userID)
		}
		if err := debtorRows.Err(); err != nil {
			debtorRows.Close()
			return nil, fmt.Errorf("failed to iterate debtors: %w", err)
		}
		debtorRows.Close()
	}

	return expenses, nil
}
