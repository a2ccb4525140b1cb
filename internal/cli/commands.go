package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"

	"budgetguard/internal/auth"
	"budgetguard/internal/core"
)

func (a *App) cmdSignup(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: signup <username> <password>")
	}
	if err := a.auth.Register(ctx, args[0], args[1]); err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			return fmt.Errorf("username %q already exists", args[0])
		}
		return err
	}
	fmt.Fprintln(a.out, "Account created. Now sign in.")
	return nil
}

func (a *App) cmdSignin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: signin <username> <password>")
	}
	userID, err := a.auth.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	a.session = Session{UserID: userID, Username: args[0]}
	fmt.Fprintf(a.out, "Logged in as %s\n", args[0])
	return nil
}

// addFlags is the parsed form of the add command's arguments.
type addFlags struct {
	kind     string
	date     string
	category string
	amount   string
	note     string
}

func parseAddFlags(args []string) (addFlags, error) {
	var f addFlags
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.StringVar(&f.kind, "type", "", "income or expense")
	fs.StringVar(&f.date, "date", "", "YYYY-MM-DD (blank = today)")
	fs.StringVar(&f.category, "category", "", "category name (e.g. Food, Rent)")
	fs.StringVar(&f.amount, "amount", "", "non-negative amount")
	fs.StringVar(&f.note, "note", "", "optional note")
	if err := fs.Parse(args); err != nil {
		return addFlags{}, err
	}
	return f, nil
}

// buildTransaction validates the caller-supplied input up front: the
// services layer only guarantees what the storage constraints catch, so
// kind, date format and amount are checked here.
func buildTransaction(userID int64, f addFlags) (core.Transaction, error) {
	kind := core.Kind(f.kind)
	if err := kind.Validate(); err != nil {
		return core.Transaction{}, errors.New("-type must be 'income' or 'expense'")
	}

	date := core.Today()
	if f.date != "" {
		var err error
		date, err = core.ParseDate(f.date)
		if err != nil {
			return core.Transaction{}, errors.New("-date must be YYYY-MM-DD")
		}
	}

	cents, err := core.ParseDecimalToCents(f.amount)
	if err != nil {
		return core.Transaction{}, errors.New("-amount must be a non-negative number")
	}

	return core.Transaction{
		UserID:   userID,
		Kind:     kind,
		Date:     date,
		Category: f.category,
		Amount:   core.Money{Cents: cents},
		Note:     f.note,
	}, nil
}

func (a *App) cmdAdd(ctx context.Context, args []string) error {
	f, err := parseAddFlags(args)
	if err != nil {
		return err
	}
	tx, err := buildTransaction(a.session.UserID, f)
	if err != nil {
		return err
	}
	if _, err := a.tracker.AddTransaction(ctx, tx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved transaction.")
	return nil
}

func (a *App) cmdShow(ctx context.Context, args []string) error {
	period, err := onePeriodArg("show", args)
	if err != nil {
		return err
	}
	txs, err := a.tracker.ListTransactions(ctx, a.session.UserID, period)
	if err != nil {
		return err
	}
	renderTransactions(a.out, period, txs)
	return nil
}

func (a *App) cmdBudget(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: budget <YYYY-MM> <category> <limit>")
	}
	period, err := core.ParsePeriod(args[0])
	if err != nil {
		return fmt.Errorf("invalid period %q: want YYYY-MM", args[0])
	}
	cents, err := core.ParseDecimalToCents(args[2])
	if err != nil {
		return errors.New("limit must be a non-negative number")
	}
	err = a.tracker.SetBudget(ctx, core.Budget{
		UserID:   a.session.UserID,
		Period:   period,
		Category: args[1],
		Limit:    core.Money{Cents: cents},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Budget set: %s %s = %s\n", period, args[1], core.Money{Cents: cents})
	return nil
}

func (a *App) cmdBudgets(ctx context.Context, args []string) error {
	period, err := onePeriodArg("budgets", args)
	if err != nil {
		return err
	}
	budgets, err := a.tracker.Budgets(ctx, a.session.UserID, period)
	if err != nil {
		return err
	}
	renderBudgets(a.out, period, budgets)
	return nil
}

func (a *App) cmdSummary(ctx context.Context, args []string) error {
	period, err := onePeriodArg("summary", args)
	if err != nil {
		return err
	}
	summary, err := a.tracker.MonthlySummary(ctx, a.session.UserID, period)
	if err != nil {
		return err
	}
	renderSummary(a.out, summary)
	return nil
}

func (a *App) cmdAlerts(ctx context.Context, args []string) error {
	period, err := onePeriodArg("alerts", args)
	if err != nil {
		return err
	}
	alerts, err := a.tracker.BudgetAlerts(ctx, a.session.UserID, period)
	if err != nil {
		return err
	}
	if len(alerts) == 0 {
		fmt.Fprintln(a.out, "No alerts.")
		return nil
	}
	for _, alert := range alerts {
		fmt.Fprintln(a.out, alert)
	}
	return nil
}

func (a *App) cmdReport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: report <YYYY>")
	}
	year, err := strconv.Atoi(args[0])
	if err != nil || year < 1 || year > 9999 {
		return fmt.Errorf("invalid year %q", args[0])
	}
	report, err := a.tracker.YearReport(ctx, a.session.UserID, year)
	if err != nil {
		return err
	}
	renderYearReport(a.out, year, report)
	return nil
}

func onePeriodArg(cmd string, args []string) (core.Period, error) {
	if len(args) != 1 {
		return core.Period{}, fmt.Errorf("usage: %s <YYYY-MM>", cmd)
	}
	period, err := core.ParsePeriod(args[0])
	if err != nil {
		return core.Period{}, fmt.Errorf("invalid period %q: want YYYY-MM", args[0])
	}
	return period, nil
}
