package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// CreateGroup inserts a new group and its owner as the sole initial
// participant in one transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	if group.Currency == "" {
		group.Currency = models.CurrencyPLN
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO groups (name, currency, closed, owner_id, created_at) VALUES (?, ?, ?, ?, ?)",
		group.Name, string(group.Currency), group.Closed, group.OwnerID, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read group id: %w", err)
	}
	group.ID = id

	// Owner is always a participant
	_, err = tx.ExecContext(ctx,
		"INSERT INTO participants (group_id, user_id) VALUES (?, ?)",
		group.ID, group.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert owner participant: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

const groupColumns = "id, name, currency, closed, owner_id, created_at"

func scanGroup(row interface{ Scan(...interface{}) error }) (*models.Group, error) {
	group := &models.Group{}
	var currency string
	if err := row.Scan(&group.ID, &group.Name, &currency, &group.Closed, &group.OwnerID, &group.CreatedAt); err != nil {
		return nil, err
	}
	group.Currency = models.Currency(currency)
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	group, err := scanGroup(s.db.QueryRowContext(ctx,
		"SELECT "+groupColumns+" FROM groups WHERE id = ?", id,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %d: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

func (s *SQLiteStore) listGroups(ctx context.Context, query string, arg interface{}) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}

// ListGroupsByOwner retrieves the groups a user owns.
func (s *SQLiteStore) ListGroupsByOwner(ctx context.Context, ownerID int64) ([]*models.Group, error) {
	return s.listGroups(ctx,
		"SELECT "+groupColumns+" FROM groups WHERE owner_id = ? ORDER BY id", ownerID)
}

// ListGroupsByParticipant retrieves the groups a user participates in.
func (s *SQLiteStore) ListGroupsByParticipant(ctx context.Context, userID int64) ([]*models.Group, error) {
	return s.listGroups(ctx,
		`SELECT g.id, g.name, g.currency, g.closed, g.owner_id, g.created_at
		 FROM groups g
		 JOIN participants p ON p.group_id = g.id
		 WHERE p.user_id = ? ORDER BY g.id`, userID)
}

// AddParticipant adds a user to a group's participant set.
// Re-adding an existing participant is a no-op.
func (s *SQLiteStore) AddParticipant(ctx context.Context, groupID, userID int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO participants (group_id, user_id) VALUES (?, ?)",
		groupID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}
	return nil
}

// ListParticipants retrieves a group's participants ordered by login.
func (s *SQLiteStore) ListParticipants(ctx context.Context, groupID int64) ([]*models.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.login, u.email, u.password_hash, u.created_at
		 FROM users u
		 JOIN participants p ON p.user_id = u.id
		 WHERE p.group_id = ? ORDER BY u.login`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Login, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return users, nil
}

// IsParticipant reports whether the user belongs to the group's participant set.
func (s *SQLiteStore) IsParticipant(ctx context.Context, groupID, userID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM participants WHERE group_id = ? AND user_id = ?",
		groupID, userID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check participant: %w", err)
	}
	return true, nil
}
