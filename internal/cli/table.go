package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"budgetguard/internal/core"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderTransactions(w io.Writer, period core.Period, txs []core.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintf(w, "No transactions for %s.\n", period)
		return
	}
	fmt.Fprintf(w, "Transactions for %s\n", period)
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tTYPE\tCATEGORY\tAMOUNT\tNOTE")
	for _, t := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.Date, t.Kind, t.Category, t.Amount, t.Note)
	}
	tw.Flush()
}

func renderBudgets(w io.Writer, period core.Period, budgets map[string]core.Money) {
	if len(budgets) == 0 {
		fmt.Fprintf(w, "No budgets for %s.\n", period)
		return
	}
	cats := make([]string, 0, len(budgets))
	for cat := range budgets {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	fmt.Fprintf(w, "Budgets for %s\n", period)
	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tLIMIT")
	for _, cat := range cats {
		fmt.Fprintf(tw, "%s\t%s\n", cat, budgets[cat])
	}
	tw.Flush()
}

func renderSummary(w io.Writer, s core.MonthSummary) {
	fmt.Fprintf(w, "Summary for %s\n", s.Period)
	fmt.Fprintf(w, "  income:  %s\n", s.Income)
	fmt.Fprintf(w, "  expense: %s\n", s.Expense)
	fmt.Fprintf(w, "  net:     %s\n", s.Net)
	if len(s.ByCategory) == 0 {
		return
	}
	fmt.Fprintln(w, "Expenses by category:")
	tw := newTable(w)
	for _, ca := range s.ByCategory {
		fmt.Fprintf(tw, "  %s\t%s\n", ca.Category, ca.Amount)
	}
	tw.Flush()
}

func renderYearReport(w io.Writer, year int, report []core.MonthSummary) {
	fmt.Fprintf(w, "Report for %d\n", year)
	tw := newTable(w)
	fmt.Fprintln(tw, "MONTH\tINCOME\tEXPENSE\tNET")
	var income, expense int64
	for _, s := range report {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Period, s.Income, s.Expense, s.Net)
		income += s.Income.Cents
		expense += s.Expense.Cents
	}
	fmt.Fprintf(tw, "total\t%s\t%s\t%s\n",
		core.Money{Cents: income},
		core.Money{Cents: expense},
		core.Money{Cents: income - expense})
	tw.Flush()
}
