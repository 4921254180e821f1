package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func seedUser(t *testing.T, store *SQLiteStore, login string) *models.User {
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

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser assigns ID", func(t *testing.T) {
		user := seedUser(t, store, "alice")
		if user.ID == 0 {
			t.Error("expected non-zero user ID")
		}
		if user.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("duplicate login is a conflict", func(t *testing.T) {
		dup := &models.User{Login: "alice", Email: "other@example.com", PasswordHash: "x"}
		err := store.CreateUser(ctx, dup)
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		dup := &models.User{Login: "alice2", Email: "alice@example.com", PasswordHash: "x"}
		err := store.CreateUser(ctx, dup)
		if !errors.Is(err, storage.ErrConflict) {
			t.Errorf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("lookups by login and email", func(t *testing.T) {
		byLogin, err := store.GetUserByLogin(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUserByLogin failed: %v", err)
		}
		if byLogin == nil || byLogin.Email != "alice@example.com" {
			t.Errorf("unexpected user: %+v", byLogin)
		}

		byEmail, err := store.GetUserByEmail(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if byEmail == nil || byEmail.ID != byLogin.ID {
			t.Errorf("expected same user by email, got %+v", byEmail)
		}
	})

	t.Run("missing user is nil without error", func(t *testing.T) {
		user, err := store.GetUserByLogin(ctx, "nobody")
		if err != nil {
			t.Fatalf("GetUserByLogin failed: %v", err)
		}
		if user != nil {
			t.Errorf("expected nil user, got %+v", user)
		}
	})
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := seedUser(t, store, "owner")
	friend := seedUser(t, store, "friend")

	group := &models.Group{Name: "Trip", Currency: models.CurrencyGBP, OwnerID: owner.ID}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID == 0 {
		t.Error("expected non-zero group ID")
	}

	t.Run("owner is the sole initial participant", func(t *testing.T) {
		participants, err := store.ListParticipants(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListParticipants failed: %v", err)
		}
		if len(participants) != 1 || participants[0].ID != owner.ID {
			t.Errorf("expected exactly the owner, got %+v", participants)
		}
	})

	t.Run("currency round-trips losslessly", func(t *testing.T) {
		reloaded, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if reloaded.Currency != models.CurrencyGBP {
			t.Errorf("currency: expected GBP, got %s", reloaded.Currency)
		}
	})

	t.Run("missing group is ErrNotFound", func(t *testing.T) {
		_, err := store.GetGroup(ctx, 9999)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("AddParticipant is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if err := store.AddParticipant(ctx, group.ID, friend.ID); err != nil {
				t.Fatalf("AddParticipant failed: %v", err)
			}
		}

		participants, err := store.ListParticipants(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListParticipants failed: %v", err)
		}
		if len(participants) != 2 {
			t.Errorf("expected 2 participants after double add, got %d", len(participants))
		}
	})

	t.Run("participant listings split owned and shared", func(t *testing.T) {
		owned, err := store.ListGroupsByOwner(ctx, owner.ID)
		if err != nil {
			t.Fatalf("ListGroupsByOwner failed: %v", err)
		}
		if len(owned) != 1 {
			t.Errorf("expected 1 owned group, got %d", len(owned))
		}

		shared, err := store.ListGroupsByParticipant(ctx, friend.ID)
		if err != nil {
			t.Fatalf("ListGroupsByParticipant failed: %v", err)
		}
		if len(shared) != 1 || shared[0].ID != group.ID {
			t.Errorf("expected friend to see the group, got %+v", shared)
		}
	})

	t.Run("IsParticipant", func(t *testing.T) {
		ok, err := store.IsParticipant(ctx, group.ID, friend.ID)
		if err != nil {
			t.Fatalf("IsParticipant failed: %v", err)
		}
		if !ok {
			t.Error("expected friend to be a participant")
		}

		stranger := seedUser(t, store, "stranger")
		ok, err = store.IsParticipant(ctx, group.ID, stranger.ID)
		if err != nil {
			t.Fatalf("IsParticipant failed: %v", err)
		}
		if ok {
			t.Error("expected stranger not to be a participant")
		}
	})
}

func TestExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payer := seedUser(t, store, "payer")
	debtor := seedUser(t, store, "debtor")

	group := &models.Group{Name: "Dinner Club", OwnerID: payer.ID}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	t.Run("CreateExpense writes expense and debtors together", func(t *testing.T) {
		expense := &models.Expense{
			Name:      "Dinner",
			Amount:    40,
			GroupID:   group.ID,
			PayerID:   payer.ID,
			DebtorIDs: []int64{payer.ID, debtor.ID},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if expense.ID == 0 {
			t.Error("expected non-zero expense ID")
		}

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(expenses))
		}
		if got := expenses[0]; got.Amount != 40 || len(got.DebtorIDs) != 2 {
			t.Errorf("unexpected expense: %+v", got)
		}
	})

	t.Run("an unresolvable debtor rolls back the whole expense", func(t *testing.T) {
		expense := &models.Expense{
			Name:      "Ghost dinner",
			Amount:    10,
			GroupID:   group.ID,
			PayerID:   payer.ID,
			DebtorIDs: []int64{payer.ID, 424242}, // no such user
		}
		if err := store.CreateExpense(ctx, expense); err == nil {
			t.Fatal("expected CreateExpense to fail on unknown debtor")
		}

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Errorf("expected the failed expense to leave no trace, got %d expenses", len(expenses))
		}
	})
}
