// Package service implements the access and validation layer that mediates
// every write into the membership and ledger stores.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"splitledger/internal/models"
	"splitledger/internal/storage"
	"splitledger/internal/validate"
)

// ErrForbidden is returned when the acting user may not view or mutate the
// target entity.
var ErrForbidden = errors.New("you must be a participant of this group")

// GroupService implements group creation and membership operations.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// Create creates a new group owned by ownerID, with the owner as the sole
// initial participant. Group names are unique per owner, compared as exact
// case-sensitive strings against the owner's existing group names.
// An empty or unrecognized currency defaults to PLN.
func (s *GroupService) Create(ctx context.Context, ownerID int64, name, currency string) (*models.Group, error) {
	var fieldErrs validate.FieldErrors
	switch {
	case name == "":
		fieldErrs.Add("Group name is missing.")
	case utf8.RuneCountInString(name) > validate.MaxNameLen:
		fieldErrs.Add("This group name is too long.")
	}
	if err := fieldErrs.Err(); err != nil {
		return nil, err
	}

	owned, err := s.store.ListGroupsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned groups: %w", err)
	}
	for _, g := range owned {
		if g.Name == name {
			fieldErrs.Add(fmt.Sprintf("You already own a group named %s.", name))
			return nil, fieldErrs.Err()
		}
	}

	group := &models.Group{
		Name:     name,
		Currency: models.ParseCurrency(currency),
		OwnerID:  ownerID,
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	slog.Info("Group created", "group_id", group.ID, "owner_id", ownerID, "currency", group.Currency)
	return group, nil
}

// Get retrieves a group and its participants. Only participants may view a
// group; everyone else gets ErrForbidden.
func (s *GroupService) Get(ctx context.Context, actorID, groupID int64) (*models.Group, []*models.User, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}

	ok, err := s.store.IsParticipant(ctx, groupID, actorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check participant: %w", err)
	}
	if !ok {
		return nil, nil, ErrForbidden
	}

	participants, err := s.store.ListParticipants(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list participants: %w", err)
	}

	return group, participants, nil
}

// ListForUser retrieves the groups a user owns and the groups shared with
// them (groups they participate in but do not own).
func (s *GroupService) ListForUser(ctx context.Context, userID int64) (owned, shared []*models.Group, err error) {
	all, err := s.store.ListGroupsByParticipant(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list groups: %w", err)
	}

	for _, g := range all {
		if g.OwnerID == userID {
			owned = append(owned, g)
		} else {
			shared = append(shared, g)
		}
	}
	return owned, shared, nil
}

// AddParticipant adds an existing user, identified by login or email, to the
// group's participant set. Login takes precedence when both are supplied.
// Adding a user who is already a participant is a no-op.
//
// Any authenticated user who can reach the group may add participants; there
// is no participant-level restriction here.
func (s *GroupService) AddParticipant(ctx context.Context, groupID int64, login, email string) (*models.User, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	var (
		user *models.User
		err  error
	)
	switch {
	case login != "":
		user, err = s.store.GetUserByLogin(ctx, login)
		if err != nil {
			return nil, fmt.Errorf("failed to look up login: %w", err)
		}
		if user == nil {
			return nil, fmt.Errorf("user %q: %w", login, storage.ErrNotFound)
		}
	case email != "":
		user, err = s.store.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to look up email: %w", err)
		}
		if user == nil {
			return nil, fmt.Errorf("user with e-mail %q: %w", email, storage.ErrNotFound)
		}
	default:
		var fieldErrs validate.FieldErrors
		fieldErrs.Add("Participant login or e-mail is missing.")
		return nil, fieldErrs.Err()
	}

	if err := s.store.AddParticipant(ctx, groupID, user.ID); err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	slog.Info("Participant added", "group_id", groupID, "user_id", user.ID)
	return user, nil
}
