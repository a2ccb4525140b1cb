package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind discriminates money coming in from money going out.
	Kind string

	Date struct {
		time.Time
	}

	User struct {
		ID           int64
		Username     string
		PasswordHash string
		Salt         string
	}

	Transaction struct {
		ID       int64
		UserID   int64
		Kind     Kind
		Date     Date
		Category string
		Amount   Money
		Note     string
	}

	Budget struct {
		ID       int64
		UserID   int64
		Period   Period
		Category string
		Limit    Money
	}
)

var (
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidPeriod = errors.New("invalid period")
	ErrEmptyCategory = errors.New("empty category")
)

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// Today returns the current calendar date, truncated to midnight UTC.
func Today() Date {
	now := time.Now()
	return Date{Time: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (t Transaction) Validate() error {
	if t.UserID <= 0 {
		return errors.New("transaction requires an owning user")
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return t.Amount.Validate()
}

func (b Budget) Validate() error {
	if b.UserID <= 0 {
		return errors.New("budget requires an owning user")
	}
	if b.Period.IsZero() {
		return ErrInvalidPeriod
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	return b.Limit.Validate()
}
