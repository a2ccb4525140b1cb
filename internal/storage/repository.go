package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"budgetguard/internal/core"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrUsernameExists is returned when the unique username constraint
	// rejects a new user row.
	ErrUsernameExists = errors.New("username already exists")
)

// SQLiteRepository is the single source of truth: users, transactions and
// budgets live in one SQLite file with the constraints enforced by the
// engine (unique username, kind enum, non-negative amounts, FK cascade).
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	// Foreign keys are off by default in SQLite; the cascade from users to
	// transactions and budgets depends on them.
	dsn := "file:" + dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

// CreateUser inserts a new user row and returns its ID. A duplicate
// username surfaces as ErrUsernameExists.
func (r *SQLiteRepository) CreateUser(ctx context.Context, username, passwordHash, salt string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, salt) VALUES (?, ?, ?)`,
		username, passwordHash, salt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("create user %q: %w", username, ErrUsernameExists)
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create user id: %w", err)
	}

	slog.InfoContext(ctx, "User created", "id", id, "username", username)
	return id, nil
}

func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, salt FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Salt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// DeleteUser removes a user row; the engine cascades the delete to the
// user's transactions and budgets.
func (r *SQLiteRepository) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) InsertTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, kind, date, category, amount_cents, note)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.UserID, string(t.Kind), t.Date.String(), t.Category, t.Amount.Cents, t.Note,
	)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"user_id", t.UserID,
		"kind", t.Kind,
		"date", t.Date.String(),
		"category", t.Category,
		"amount_cents", t.Amount.Cents)

	return id, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	var (
		t    core.Transaction
		kind string
		date string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, kind, date, category, amount_cents, note
		 FROM transactions WHERE id = ?`,
		id,
	).Scan(&t.ID, &t.UserID, &kind, &date, &t.Category, &t.Amount.Cents, &t.Note)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("transaction %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}

	t.Kind = core.Kind(kind)
	t.Date, err = core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", date, err)
	}
	return t, nil
}

// ListTransactions returns the user's transactions inside the period,
// ordered by date ascending. The filter is an explicit date range rather
// than a string-prefix match on the stored text.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID int64, period core.Period) ([]core.Transaction, error) {
	start, end := period.Bounds()
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, kind, date, category, amount_cents, note
		 FROM transactions
		 WHERE user_id = ? AND date >= ? AND date < ?
		 ORDER BY date ASC, id ASC`,
		userID, start.String(), end.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t    core.Transaction
			kind string
			date string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &kind, &date, &t.Category, &t.Amount.Cents, &t.Note); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Kind = core.Kind(kind)
		t.Date, err = core.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("parse stored date %q: %w", date, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// UpsertBudget inserts a budget row, or replaces the limit when one already
// exists for the (user, period, category) triple. No limit history is kept.
func (r *SQLiteRepository) UpsertBudget(ctx context.Context, b core.Budget) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, period, category, limit_cents)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, period, category)
		 DO UPDATE SET limit_cents = excluded.limit_cents`,
		b.UserID, b.Period.String(), b.Category, b.Limit.Cents,
	)
	if err != nil {
		return fmt.Errorf("upsert budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget set",
		"user_id", b.UserID,
		"period", b.Period.String(),
		"category", b.Category,
		"limit_cents", b.Limit.Cents)

	return nil
}

// Budgets returns the category -> limit mapping for one user and period.
// Keys are unique by the storage constraint.
func (r *SQLiteRepository) Budgets(ctx context.Context, userID int64, period core.Period) (map[string]core.Money, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, limit_cents FROM budgets WHERE user_id = ? AND period = ?`,
		userID, period.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("get budgets: %w", err)
	}
	defer rows.Close()

	budgets := make(map[string]core.Money)
	for rows.Next() {
		var (
			category string
			cents    int64
		)
		if err := rows.Scan(&category, &cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets[category] = core.Money{Cents: cents}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return budgets, nil
}

// MonthlySummary aggregates the period's transactions: income and expense
// totals, the net, and expense totals grouped by category sorted by total
// descending with category name breaking ties.
func (r *SQLiteRepository) MonthlySummary(ctx context.Context, userID int64, period core.Period) (core.MonthSummary, error) {
	summary := core.MonthSummary{Period: period}
	start, end := period.Bounds()

	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0)
		 FROM transactions
		 WHERE user_id = ? AND date >= ? AND date < ? AND kind = 'income'`,
		userID, start.String(), end.String(),
	).Scan(&summary.Income.Cents)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("sum income: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0)
		 FROM transactions
		 WHERE user_id = ? AND date >= ? AND date < ? AND kind = 'expense'`,
		userID, start.String(), end.String(),
	).Scan(&summary.Expense.Cents)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("sum expense: %w", err)
	}

	summary.Net = core.Money{Cents: summary.Income.Cents - summary.Expense.Cents}

	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COALESCE(SUM(amount_cents), 0) AS total
		 FROM transactions
		 WHERE user_id = ? AND date >= ? AND date < ? AND kind = 'expense'
		 GROUP BY category
		 ORDER BY total DESC, category ASC`,
		userID, start.String(), end.String(),
	)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("sum by category: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ca core.CategoryAmount
		if err := rows.Scan(&ca.Category, &ca.Amount.Cents); err != nil {
			return core.MonthSummary{}, fmt.Errorf("scan category total: %w", err)
		}
		summary.ByCategory = append(summary.ByCategory, ca)
	}
	if err := rows.Err(); err != nil {
		return core.MonthSummary{}, fmt.Errorf("iterate category totals: %w", err)
	}

	return summary, nil
}
