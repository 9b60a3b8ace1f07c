package availability

import (
	"testing"

	"realty/internal/domain/shared/dates"
)

func day(t *testing.T, value string) dates.Day {
	t.Helper()
	d, err := dates.ParseDay(value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return d
}

func window(t *testing.T, from, to string) Window {
	t.Helper()
	var w Window
	if from != "" {
		d := day(t, from)
		w.From = &d
	}
	if to != "" {
		d := day(t, to)
		w.To = &d
	}
	return w
}

func TestDisabledOutsideWindow(t *testing.T) {
	sched := NewSchedule(window(t, "2025-01-01", "2025-01-31"), nil, nil)
	today := day(t, "2024-06-01")

	if !sched.Disabled(day(t, "2024-12-31"), today) {
		t.Fatal("day before window start must be disabled")
	}
	if !sched.Disabled(day(t, "2025-02-01"), today) {
		t.Fatal("day after window end must be disabled")
	}
	if sched.Disabled(day(t, "2025-01-01"), today) {
		t.Fatal("window start day must be bookable")
	}
	if sched.Disabled(day(t, "2025-01-31"), today) {
		t.Fatal("window end day must be bookable")
	}
}

func TestDisabledPastDates(t *testing.T) {
	sched := NewSchedule(Window{}, nil, nil)
	today := day(t, "2025-06-15")

	if !sched.Disabled(day(t, "2025-06-14"), today) {
		t.Fatal("yesterday must be disabled")
	}
	if sched.Disabled(today, today) {
		t.Fatal("today must be bookable")
	}
}

func TestDisabledBlockedDates(t *testing.T) {
	blocked := []dates.Day{day(t, "2025-01-20")}
	sched := NewSchedule(window(t, "2025-01-01", "2025-01-31"), blocked, nil)
	today := day(t, "2024-06-01")

	if !sched.Disabled(day(t, "2025-01-20"), today) {
		t.Fatal("host-blocked date must be disabled")
	}
	if sched.Disabled(day(t, "2025-01-21"), today) {
		t.Fatal("neighbouring date must stay bookable")
	}
}

func TestDisabledOccupiedClosedInterval(t *testing.T) {
	occupied := []dates.Range{{Start: day(t, "2025-01-10"), End: day(t, "2025-01-15")}}
	sched := NewSchedule(window(t, "2025-01-01", "2025-01-31"), nil, occupied)
	today := day(t, "2024-06-01")

	// Every day of [check-in, check-out] is occupied, endpoints included.
	for d := day(t, "2025-01-10"); !d.After(day(t, "2025-01-15")); d = d.AddDays(1) {
		if !sched.Disabled(d, today) {
			t.Fatalf("%s inside a booked interval must be disabled", d)
		}
	}
	if sched.Disabled(day(t, "2025-01-09"), today) {
		t.Fatal("day before the interval must be bookable")
	}
	if sched.Disabled(day(t, "2025-01-16"), today) {
		t.Fatal("day after the interval must be bookable")
	}
}

func TestDisabledIsDeterministic(t *testing.T) {
	occupied := []dates.Range{{Start: day(t, "2025-01-10"), End: day(t, "2025-01-15")}}
	sched := NewSchedule(window(t, "2025-01-01", "2025-01-31"), []dates.Day{day(t, "2025-01-05")}, occupied)
	today := day(t, "2025-01-02")

	for d := day(t, "2024-12-25"); !d.After(day(t, "2025-02-05")); d = d.AddDays(1) {
		first := sched.Disabled(d, today)
		second := sched.Disabled(d, today)
		if first != second {
			t.Fatalf("predicate must be pure; %s flipped between calls", d)
		}
	}
}

func TestRangeFree(t *testing.T) {
	occupied := []dates.Range{{Start: day(t, "2025-01-10"), End: day(t, "2025-01-15")}}
	sched := NewSchedule(window(t, "2025-01-01", "2025-01-31"), nil, occupied)
	today := day(t, "2024-06-01")

	cases := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"overlaps tail of booking", "2025-01-14", "2025-01-20", false},
		{"starts after booking", "2025-01-16", "2025-01-20", true},
		{"ends on check-in day", "2025-01-05", "2025-01-10", false},
		{"clear of everything", "2025-01-02", "2025-01-08", true},
		{"leaves window", "2025-01-28", "2025-02-03", false},
		{"zero nights", "2025-01-05", "2025-01-05", false},
		{"reversed", "2025-01-08", "2025-01-05", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := dates.Range{Start: day(t, tc.from), End: day(t, tc.to)}
			if got := sched.RangeFree(r, today); got != tc.want {
				t.Fatalf("RangeFree(%s..%s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestRangeFreeBlockedDateInside(t *testing.T) {
	sched := NewSchedule(window(t, "2025-01-01", "2025-01-31"), []dates.Day{day(t, "2025-01-06")}, nil)
	today := day(t, "2024-06-01")

	r := dates.Range{Start: day(t, "2025-01-05"), End: day(t, "2025-01-08")}
	if sched.RangeFree(r, today) {
		t.Fatal("range covering a blocked date must not be free")
	}
}

func TestDisabledDays(t *testing.T) {
	occupied := []dates.Range{{Start: day(t, "2025-01-10"), End: day(t, "2025-01-11")}}
	sched := NewSchedule(window(t, "2025-01-08", "2025-01-14"), []dates.Day{day(t, "2025-01-13")}, occupied)
	today := day(t, "2025-01-09")

	got := sched.DisabledDays(day(t, "2025-01-07"), day(t, "2025-01-15"), today)
	want := []string{"2025-01-07", "2025-01-08", "2025-01-10", "2025-01-11", "2025-01-13", "2025-01-15"}
	if len(got) != len(want) {
		t.Fatalf("expected %d disabled days, got %d (%v)", len(want), len(got), got)
	}
	for i, d := range got {
		if d.String() != want[i] {
			t.Fatalf("disabled[%d] = %s, want %s", i, d, want[i])
		}
	}
}
