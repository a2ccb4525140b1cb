// Package worker mirrors recorded transactions into an external sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"budgetguard/internal/amqp"
	"budgetguard/internal/sheets"
	"budgetguard/internal/storage"
)

// SyncWorker consumes transaction.recorded events, loads the row from
// SQLite and appends it through the configured writer.
type SyncWorker struct {
	storage *storage.SQLiteRepository
	sheet   sheets.TransactionWriter
}

func NewSyncWorker(store *storage.SQLiteRepository, sheet sheets.TransactionWriter) *SyncWorker {
	return &SyncWorker{
		storage: store,
		sheet:   sheet,
	}
}

// HandleRecorded processes a single transaction.recorded message.
func (w *SyncWorker) HandleRecorded(ctx context.Context, msg *amqp.TransactionRecordedMessage) error {
	t, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	ref, err := w.sheet.Append(ctx, t)
	if err != nil {
		return fmt.Errorf("append transaction to sheet: %w", err)
	}

	slog.InfoContext(ctx, "Transaction synced to sheet",
		"id", msg.ID,
		"user_id", t.UserID,
		"ref", ref)

	return nil
}
