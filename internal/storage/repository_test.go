package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"budgetguard/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "budgetguard.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func createTestUser(t *testing.T, repo *SQLiteRepository, username string) int64 {
	t.Helper()
	id, err := repo.CreateUser(context.Background(), username, "hash", "salt")
	if err != nil {
		t.Fatalf("CreateUser(%q): %v", username, err)
	}
	return id
}

func addTx(t *testing.T, repo *SQLiteRepository, userID int64, kind core.Kind, date, category string, cents int64) int64 {
	t.Helper()
	d, err := core.ParseDate(date)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", date, err)
	}
	id, err := repo.InsertTransaction(context.Background(), core.Transaction{
		UserID:   userID,
		Kind:     kind,
		Date:     d,
		Category: category,
		Amount:   core.Money{Cents: cents},
	})
	if err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}
	return id
}

func mustPeriod(t *testing.T, s string) core.Period {
	t.Helper()
	p, err := core.ParsePeriod(s)
	if err != nil {
		t.Fatalf("ParsePeriod(%q): %v", s, err)
	}
	return p
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.CreateUser(ctx, "alice", "hash1", "salt1"); err != nil {
		t.Fatalf("first CreateUser: %v", err)
	}
	_, err := repo.CreateUser(ctx, "alice", "hash2", "salt2")
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("second CreateUser error = %v, want ErrUsernameExists", err)
	}

	// The original row is untouched.
	u, err := repo.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if u.PasswordHash != "hash1" || u.Salt != "salt1" {
		t.Errorf("stored credentials changed: hash=%q salt=%q", u.PasswordHash, u.Salt)
	}
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetUserByUsername(context.Background(), "nobody")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestListTransactions_PeriodRangeAndOrder(t *testing.T) {
	repo := newTestRepo(t)
	user := createTestUser(t, repo, "alice")

	addTx(t, repo, user, core.Expense, "2024-05-31", "Food", 6000)
	addTx(t, repo, user, core.Expense, "2024-06-01", "Food", 7000) // next period
	addTx(t, repo, user, core.Income, "2024-05-01", "Salary", 100000)
	addTx(t, repo, user, core.Expense, "2024-04-30", "Food", 1000) // previous period

	got, err := repo.ListTransactions(context.Background(), user, mustPeriod(t, "2024-05"))
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d transactions, want 2", len(got))
	}
	if got[0].Date.String() != "2024-05-01" || got[1].Date.String() != "2024-05-31" {
		t.Errorf("wrong order: %s, %s", got[0].Date, got[1].Date)
	}
}

func TestListTransactions_OtherUserInvisible(t *testing.T) {
	repo := newTestRepo(t)
	alice := createTestUser(t, repo, "alice")
	bob := createTestUser(t, repo, "bob")

	addTx(t, repo, alice, core.Expense, "2024-05-03", "Food", 5000)

	got, err := repo.ListTransactions(context.Background(), bob, mustPeriod(t, "2024-05"))
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("bob sees %d of alice's transactions", len(got))
	}
}

func TestGetTransaction(t *testing.T) {
	repo := newTestRepo(t)
	user := createTestUser(t, repo, "alice")
	id := addTx(t, repo, user, core.Expense, "2024-05-03", "Food", 5000)

	got, err := repo.GetTransaction(context.Background(), id)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if got.ID != id || got.UserID != user || got.Kind != core.Expense ||
		got.Category != "Food" || got.Amount.Cents != 5000 || got.Date.String() != "2024-05-03" {
		t.Errorf("unexpected transaction: %+v", got)
	}

	if _, err := repo.GetTransaction(context.Background(), id+999); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing transaction error = %v, want ErrNotFound", err)
	}
}

func TestUpsertBudget_LatestLimitWins(t *testing.T) {
	repo := newTestRepo(t)
	user := createTestUser(t, repo, "alice")
	period := mustPeriod(t, "2024-05")
	ctx := context.Background()

	set := func(cents int64) {
		t.Helper()
		err := repo.UpsertBudget(ctx, core.Budget{
			UserID:   user,
			Period:   period,
			Category: "Food",
			Limit:    core.Money{Cents: cents},
		})
		if err != nil {
			t.Fatalf("UpsertBudget: %v", err)
		}
	}

	set(20000)
	set(10000)

	budgets, err := repo.Budgets(ctx, user, period)
	if err != nil {
		t.Fatalf("Budgets: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("got %d budget rows, want 1", len(budgets))
	}
	if budgets["Food"].Cents != 10000 {
		t.Errorf("limit = %d, want 10000 (latest value)", budgets["Food"].Cents)
	}
}

func TestMonthlySummary(t *testing.T) {
	repo := newTestRepo(t)
	user := createTestUser(t, repo, "alice")
	ctx := context.Background()

	t.Run("empty period", func(t *testing.T) {
		s, err := repo.MonthlySummary(ctx, user, mustPeriod(t, "2024-01"))
		if err != nil {
			t.Fatalf("MonthlySummary: %v", err)
		}
		if s.Income.Cents != 0 || s.Expense.Cents != 0 || s.Net.Cents != 0 || len(s.ByCategory) != 0 {
			t.Errorf("expected all zeros, got %+v", s)
		}
	})

	t.Run("aggregates and breakdown", func(t *testing.T) {
		addTx(t, repo, user, core.Expense, "2024-05-03", "Food", 5000)
		addTx(t, repo, user, core.Expense, "2024-05-10", "Food", 6000)
		addTx(t, repo, user, core.Income, "2024-05-01", "Salary", 100000)

		s, err := repo.MonthlySummary(ctx, user, mustPeriod(t, "2024-05"))
		if err != nil {
			t.Fatalf("MonthlySummary: %v", err)
		}
		if s.Income.Cents != 100000 {
			t.Errorf("income = %d, want 100000", s.Income.Cents)
		}
		if s.Expense.Cents != 11000 {
			t.Errorf("expense = %d, want 11000", s.Expense.Cents)
		}
		if s.Net.Cents != 89000 {
			t.Errorf("net = %d, want 89000", s.Net.Cents)
		}
		if len(s.ByCategory) != 1 || s.ByCategory[0].Category != "Food" || s.ByCategory[0].Amount.Cents != 11000 {
			t.Errorf("breakdown = %+v, want [{Food 11000}]", s.ByCategory)
		}
	})

	t.Run("ties break by category name", func(t *testing.T) {
		addTx(t, repo, user, core.Expense, "2024-07-01", "Rent", 5000)
		addTx(t, repo, user, core.Expense, "2024-07-02", "Food", 5000)
		addTx(t, repo, user, core.Expense, "2024-07-03", "Travel", 9000)

		s, err := repo.MonthlySummary(ctx, user, mustPeriod(t, "2024-07"))
		if err != nil {
			t.Fatalf("MonthlySummary: %v", err)
		}
		want := []string{"Travel", "Food", "Rent"}
		if len(s.ByCategory) != len(want) {
			t.Fatalf("breakdown size = %d, want %d", len(s.ByCategory), len(want))
		}
		for i, cat := range want {
			if s.ByCategory[i].Category != cat {
				t.Errorf("breakdown[%d] = %s, want %s", i, s.ByCategory[i].Category, cat)
			}
		}
	})
}

func TestDeleteUser_Cascades(t *testing.T) {
	repo := newTestRepo(t)
	user := createTestUser(t, repo, "alice")
	period := mustPeriod(t, "2024-05")
	ctx := context.Background()

	addTx(t, repo, user, core.Expense, "2024-05-03", "Food", 5000)
	if err := repo.UpsertBudget(ctx, core.Budget{UserID: user, Period: period, Category: "Food", Limit: core.Money{Cents: 10000}}); err != nil {
		t.Fatalf("UpsertBudget: %v", err)
	}

	if err := repo.DeleteUser(ctx, user); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	txs, err := repo.ListTransactions(ctx, user, period)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("%d transactions survived the cascade", len(txs))
	}

	budgets, err := repo.Budgets(ctx, user, period)
	if err != nil {
		t.Fatalf("Budgets: %v", err)
	}
	if len(budgets) != 0 {
		t.Errorf("%d budgets survived the cascade", len(budgets))
	}

	if err := repo.DeleteUser(ctx, user); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteUser error = %v, want ErrNotFound", err)
	}
}
