// Package services orchestrates transaction, budget and reporting
// operations over storage, with best-effort event publishing on writes.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"budgetguard/internal/amqp"
	"budgetguard/internal/core"
	"budgetguard/internal/storage"
)

// Tracker is the business-logic front door. Every operation is a stateless
// request/response over storage; events is optional and may be nil.
type Tracker struct {
	storage   *storage.SQLiteRepository
	events    *amqp.Client
	threshold float64
}

func NewTracker(store *storage.SQLiteRepository, events *amqp.Client, threshold float64) *Tracker {
	if threshold <= 0 {
		threshold = core.DefaultAlertThreshold
	}
	return &Tracker{
		storage:   store,
		events:    events,
		threshold: threshold,
	}
}

// AddTransaction validates and inserts one transaction, then publishes a
// transaction.recorded event. SQLite is the source of truth: a failed
// publish is logged and swallowed so the write still succeeds.
func (t *Tracker) AddTransaction(ctx context.Context, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	id, err := t.storage.InsertTransaction(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("add transaction: %w", err)
	}

	if t.events != nil {
		if err := t.events.PublishTransactionRecorded(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to publish transaction recorded message",
				"id", id, "error", err)
		}
	}

	return id, nil
}

// ListTransactions returns the user's transactions for the period, date
// ascending.
func (t *Tracker) ListTransactions(ctx context.Context, userID int64, period core.Period) ([]core.Transaction, error) {
	return t.storage.ListTransactions(ctx, userID, period)
}

// SetBudget upserts the limit for (user, period, category); the latest
// value wins and no history is kept.
func (t *Tracker) SetBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return t.storage.UpsertBudget(ctx, b)
}

// Budgets returns the category -> limit map for the period.
func (t *Tracker) Budgets(ctx context.Context, userID int64, period core.Period) (map[string]core.Money, error) {
	return t.storage.Budgets(ctx, userID, period)
}

// MonthlySummary aggregates income, expense, net and the per-category
// expense breakdown for the period.
func (t *Tracker) MonthlySummary(ctx context.Context, userID int64, period core.Period) (core.MonthSummary, error) {
	return t.storage.MonthlySummary(ctx, userID, period)
}

// BudgetAlerts computes threshold alerts for the period. When the user has
// no budgets at all for the period it returns early without touching the
// transactions table; a non-positive configured limit is skipped inside
// the computation instead. Both behaviors are kept distinct on purpose.
func (t *Tracker) BudgetAlerts(ctx context.Context, userID int64, period core.Period) ([]string, error) {
	budgets, err := t.storage.Budgets(ctx, userID, period)
	if err != nil {
		return nil, fmt.Errorf("budget alerts: %w", err)
	}
	if len(budgets) == 0 {
		return nil, nil
	}

	summary, err := t.storage.MonthlySummary(ctx, userID, period)
	if err != nil {
		return nil, fmt.Errorf("budget alerts: %w", err)
	}

	return core.ComputeAlerts(budgets, summary.SpentByCategory(), t.threshold), nil
}

// Threshold returns the alert threshold in effect.
func (t *Tracker) Threshold() float64 {
	return t.threshold
}

// YearReport fetches the twelve monthly summaries of a year concurrently
// and returns them in calendar order.
func (t *Tracker) YearReport(ctx context.Context, userID int64, year int) ([]core.MonthSummary, error) {
	summaries := make([]core.MonthSummary, 12)

	g, ctx := errgroup.WithContext(ctx)
	for month := time.January; month <= time.December; month++ {
		g.Go(func() error {
			s, err := t.storage.MonthlySummary(ctx, userID, core.Period{Year: year, Month: month})
			if err != nil {
				return fmt.Errorf("summary for %04d-%02d: %w", year, int(month), err)
			}
			summaries[int(month)-1] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// Close releases storage and the event connection.
func (t *Tracker) Close() error {
	var errs []error

	if t.storage != nil {
		if err := t.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if t.events != nil {
		if err := t.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close tracker: %v", errs)
	}
	return nil
}
