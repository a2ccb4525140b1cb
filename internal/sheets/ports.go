// Package sheets defines the export port the sync worker writes through.
package sheets

import (
	"context"

	"budgetguard/internal/core"
)

// TransactionWriter mirrors one transaction row into an external sheet and
// returns a backend-specific row reference.
type TransactionWriter interface {
	Append(ctx context.Context, t core.Transaction) (string, error)
}
