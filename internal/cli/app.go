package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"budgetguard/internal/auth"
	"budgetguard/internal/services"
)

// Session is the process-local identity: unset at start, set on a
// successful sign-in, never cleared. There is no persisted token, so each
// process invocation establishes it anew.
type Session struct {
	UserID   int64
	Username string
}

func (s Session) SignedIn() bool {
	return s.UserID != 0
}

var errSignInRequired = errors.New("you must sign in first")

// App wires the command surface to the tracker and auth services. The
// session travels on the App value handed to every handler instead of
// living in a package global.
type App struct {
	tracker *services.Tracker
	auth    *auth.Service
	session Session
	in      io.Reader
	out     io.Writer
}

func NewApp(tracker *services.Tracker, authSvc *auth.Service, in io.Reader, out io.Writer) *App {
	return &App{
		tracker: tracker,
		auth:    authSvc,
		in:      in,
		out:     out,
	}
}

const usage = `budgetguard - personal expense & budget tracker

Usage:
  budgetguard init                     bootstrap the database
  budgetguard signup <user> <pass>     create a new account
  budgetguard signin <user> <pass>     sign in and open the shell

Shell commands (after signin):
  add -type <income|expense> [-date YYYY-MM-DD] -category <name> -amount <n> [-note <text>]
  show <YYYY-MM>       list the month's transactions
  budget <YYYY-MM> <category> <limit>  set a monthly category limit
  budgets <YYYY-MM>    list the month's budget limits
  summary <YYYY-MM>    income, expense, net and category breakdown
  alerts <YYYY-MM>     budget threshold alerts
  report <YYYY>        twelve-month overview
  quit                 leave the shell
`

// Run executes a single top-level command. A successful signin drops into
// the interactive shell, since the session cannot outlive the process.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return nil
	}
	if err := a.dispatch(ctx, args[0], args[1:]); err != nil {
		return err
	}
	if args[0] == "signin" && a.session.SignedIn() {
		return a.shell(ctx)
	}
	return nil
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		fmt.Fprint(a.out, usage)
		return nil
	case "init":
		// Opening the repository already ran the migrations.
		fmt.Fprintln(a.out, "Database initialized.")
		return nil
	case "signup":
		return a.cmdSignup(ctx, args)
	case "signin":
		return a.cmdSignin(ctx, args)
	case "add":
		return a.requireSession(func() error { return a.cmdAdd(ctx, args) })
	case "show":
		return a.requireSession(func() error { return a.cmdShow(ctx, args) })
	case "budget":
		return a.requireSession(func() error { return a.cmdBudget(ctx, args) })
	case "budgets":
		return a.requireSession(func() error { return a.cmdBudgets(ctx, args) })
	case "summary":
		return a.requireSession(func() error { return a.cmdSummary(ctx, args) })
	case "alerts":
		return a.requireSession(func() error { return a.cmdAlerts(ctx, args) })
	case "report":
		return a.requireSession(func() error { return a.cmdReport(ctx, args) })
	default:
		return fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
}

func (a *App) requireSession(fn func() error) error {
	if !a.session.SignedIn() {
		return errSignInRequired
	}
	return fn()
}

// shell reads commands until EOF or quit. Command failures are printed and
// the loop continues; only the reader stopping ends the session.
func (a *App) shell(ctx context.Context) error {
	scanner := bufio.NewScanner(a.in)
	for {
		fmt.Fprintf(a.out, "%s> ", a.session.Username)
		if !scanner.Scan() {
			fmt.Fprintln(a.out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := a.dispatch(ctx, fields[0], fields[1:]); err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}
