package dates

import (
	"errors"
	"testing"
	"time"
)

func day(t *testing.T, value string) Day {
	t.Helper()
	d, err := ParseDay(value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return d
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2025-01-10")
	if err != nil {
		t.Fatalf("parse iso date: %v", err)
	}
	if d.String() != "2025-01-10" {
		t.Fatalf("expected 2025-01-10, got %s", d)
	}

	d, err = ParseDay("2025-01-10T18:45:00+03:00")
	if err != nil {
		t.Fatalf("parse rfc3339: %v", err)
	}
	if d.String() != "2025-01-10" {
		t.Fatalf("time-of-day and zone must be stripped, got %s", d)
	}

	if _, err := ParseDay("not-a-date"); !errors.Is(err, ErrUnparseable) {
		t.Fatalf("expected ErrUnparseable, got %v", err)
	}
}

func TestDayOfStripsTime(t *testing.T) {
	late := time.Date(2025, 3, 7, 23, 59, 59, 0, time.UTC)
	early := time.Date(2025, 3, 7, 0, 0, 1, 0, time.UTC)
	if !DayOf(late).Equal(DayOf(early)) {
		t.Fatal("same calendar day must compare equal regardless of clock time")
	}
}

func TestWithin(t *testing.T) {
	lo := day(t, "2025-01-01")
	hi := day(t, "2025-01-31")

	cases := []struct {
		name   string
		d      Day
		lo, hi *Day
		want   bool
	}{
		{"inside", day(t, "2025-01-15"), &lo, &hi, true},
		{"on lower bound", lo, &lo, &hi, true},
		{"on upper bound", hi, &lo, &hi, true},
		{"before window", day(t, "2024-12-31"), &lo, &hi, false},
		{"after window", day(t, "2025-02-01"), &lo, &hi, false},
		{"unbounded below", day(t, "2020-01-01"), nil, &hi, true},
		{"unbounded above", day(t, "2030-01-01"), &lo, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.Within(tc.lo, tc.hi); got != tc.want {
				t.Fatalf("Within = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNewStay(t *testing.T) {
	in := day(t, "2025-01-10")
	out := day(t, "2025-01-15")

	r, err := NewStay(in, out)
	if err != nil {
		t.Fatalf("valid stay rejected: %v", err)
	}
	if r.Nights() != 5 {
		t.Fatalf("expected 5 nights, got %d", r.Nights())
	}

	if _, err := NewStay(in, in); !errors.Is(err, ErrInvalidRange) {
		t.Fatal("check-in equal to check-out must be rejected")
	}
	if _, err := NewStay(out, in); !errors.Is(err, ErrInvalidRange) {
		t.Fatal("reversed range must be rejected")
	}
	if _, err := NewStay(Day{}, out); !errors.Is(err, ErrInvalidRange) {
		t.Fatal("zero check-in must be rejected")
	}
}

func TestRangeOverlaps(t *testing.T) {
	booked := Range{Start: day(t, "2025-01-10"), End: day(t, "2025-01-15")}

	cases := []struct {
		name string
		r    Range
		want bool
	}{
		{"shares tail days", Range{Start: day(t, "2025-01-14"), End: day(t, "2025-01-20")}, true},
		{"starts after", Range{Start: day(t, "2025-01-16"), End: day(t, "2025-01-20")}, false},
		{"ends before", Range{Start: day(t, "2025-01-05"), End: day(t, "2025-01-09")}, false},
		{"touches end day", Range{Start: day(t, "2025-01-15"), End: day(t, "2025-01-18")}, true},
		{"touches start day", Range{Start: day(t, "2025-01-08"), End: day(t, "2025-01-10")}, true},
		{"fully inside", Range{Start: day(t, "2025-01-11"), End: day(t, "2025-01-12")}, true},
		{"fully covers", Range{Start: day(t, "2025-01-01"), End: day(t, "2025-01-31")}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Overlaps(booked); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			if got := booked.Overlaps(tc.r); got != tc.want {
				t.Fatalf("Overlaps must be symmetric: %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRangeDays(t *testing.T) {
	r := Range{Start: day(t, "2025-01-10"), End: day(t, "2025-01-12")}
	days := r.Days()
	if len(days) != 3 {
		t.Fatalf("expected 3 days inclusive, got %d", len(days))
	}
	if days[0].String() != "2025-01-10" || days[2].String() != "2025-01-12" {
		t.Fatalf("unexpected enumeration: %v", days)
	}
}
