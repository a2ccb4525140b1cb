// Package core holds the domain model shared by storage, services and the CLI.
//
// Money is kept as integer cents everywhere; decimal strings only exist at
// the edges (CLI input, rendered output, spreadsheet rows).
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a non-negative amount in cents, except where it carries a
// computed net that may go below zero.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Float returns the amount in currency units for export layers that expect
// a decimal number. Use cents for arithmetic.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the amount with exactly two decimals, e.g. "110.00".
func (m Money) String() string {
	c := m.Cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Both dot and comma separators are
// accepted; negative values are rejected, zero is allowed (a zero budget
// limit is a valid, if inert, row).
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	const maxInt64 = 1<<63 - 1
	if iv > (maxInt64-fracCents)/100 {
		return 0, ErrInvalidAmount
	}
	return iv*100 + fracCents, nil
}
