package core

import (
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in    string
		year  int
		month time.Month
		ok    bool
	}{
		{"2024-05", 2024, time.May, true},
		{"2024-12", 2024, time.December, true},
		{" 2024-01 ", 2024, time.January, true},
		{"2024-13", 0, 0, false},
		{"2024-5", 0, 0, false},
		{"2024", 0, 0, false},
		{"05-2024", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		got, err := ParsePeriod(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParsePeriod(%q) unexpected error: %v", tc.in, err)
			}
			if got.Year != tc.year || got.Month != tc.month {
				t.Fatalf("ParsePeriod(%q) = %v, want %d-%d", tc.in, got, tc.year, tc.month)
			}
		} else if err == nil {
			t.Fatalf("ParsePeriod(%q) expected error", tc.in)
		}
	}
}

func TestPeriodBounds(t *testing.T) {
	p := Period{Year: 2024, Month: time.December}
	start, end := p.Bounds()
	if start.String() != "2024-12-01" {
		t.Errorf("start = %s, want 2024-12-01", start)
	}
	if end.String() != "2025-01-01" {
		t.Errorf("end = %s, want 2025-01-01 (year rollover)", end)
	}
}

func TestPeriodContains(t *testing.T) {
	p := Period{Year: 2024, Month: time.May}
	cases := []struct {
		date string
		want bool
	}{
		{"2024-05-01", true},
		{"2024-05-31", true},
		{"2024-06-01", false},
		{"2024-04-30", false},
	}
	for _, tc := range cases {
		d, err := ParseDate(tc.date)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tc.date, err)
		}
		if got := p.Contains(d); got != tc.want {
			t.Errorf("Contains(%s) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestPeriodString(t *testing.T) {
	p := Period{Year: 2024, Month: time.May}
	if got := p.String(); got != "2024-05" {
		t.Errorf("String() = %q, want 2024-05", got)
	}
}
