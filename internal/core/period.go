package core

import (
	"fmt"
	"strings"
	"time"
)

// Period is a year-month bucket (YYYY-MM) used to group transactions and
// budgets.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses a period in YYYY-MM form.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// PeriodOf returns the period a date falls in.
func PeriodOf(d Date) Period {
	return Period{Year: d.Time.Year(), Month: d.Time.Month()}
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Next returns the following month, rolling over year boundaries.
func (p Period) Next() Period {
	t := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return Period{Year: t.Year(), Month: t.Month()}
}

// Bounds returns the half-open date range [first of month, first of next
// month) covering the period. Filtering against this range replaces the
// fixed-width string-prefix matching the storage engine could otherwise be
// asked to do.
func (p Period) Bounds() (Date, Date) {
	start := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	return Date{Time: start}, Date{Time: start.AddDate(0, 1, 0)}
}

// Contains reports whether the date falls inside the period.
func (p Period) Contains(d Date) bool {
	start, end := p.Bounds()
	return !d.Before(start.Time) && d.Before(end.Time)
}
