package memory

import (
	"context"
	"testing"

	"budgetguard/internal/core"
)

func validTx(category string) core.Transaction {
	date, _ := core.ParseDate("2024-05-10")
	return core.Transaction{
		UserID:   1,
		Kind:     core.Expense,
		Date:     date,
		Category: category,
		Amount:   core.Money{Cents: 500},
	}
}

func TestAppendAndRows(t *testing.T) {
	s := New()
	ctx := context.Background()

	ref, err := s.Append(ctx, validTx("Food"))
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want mem:1", ref)
	}
	if ref, _ = s.Append(ctx, validTx("Rent")); ref != "mem:2" {
		t.Errorf("second ref = %q, want mem:2", ref)
	}

	rows := s.Rows()
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Category != "Food" || rows[1].Category != "Rent" {
		t.Errorf("unexpected row order: %v", rows)
	}
}

func TestAppendRejectsInvalidTransaction(t *testing.T) {
	s := New()
	tx := validTx("Food")
	tx.Kind = "transfer"
	if _, err := s.Append(context.Background(), tx); err == nil {
		t.Error("expected validation error")
	}
	if len(s.Rows()) != 0 {
		t.Errorf("invalid transaction was stored")
	}
}

func TestRowsReturnsCopy(t *testing.T) {
	s := New()
	if _, err := s.Append(context.Background(), validTx("Food")); err != nil {
		t.Fatalf("Append: %v", err)
	}
	rows := s.Rows()
	rows[0].Category = "mutated"
	if s.Rows()[0].Category != "Food" {
		t.Error("Rows exposed internal slice")
	}
}
