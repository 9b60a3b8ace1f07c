package dates

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidRange = errors.New("dates: check-out must follow check-in")
	ErrUnparseable  = errors.New("dates: unparseable date")
)

// Day is a calendar day with no time-of-day or timezone component.
// All availability comparisons happen at day granularity.
type Day struct {
	t time.Time
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) Day {
	u := t.UTC()
	return Day{t: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDay accepts a plain ISO date or a full RFC3339 timestamp.
func ParseDay(value string) (Day, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return DayOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return DayOf(t), nil
	}
	return Day{}, fmt.Errorf("%w: %q", ErrUnparseable, value)
}

func (d Day) IsZero() bool       { return d.t.IsZero() }
func (d Day) Time() time.Time    { return d.t }
func (d Day) String() string     { return d.t.Format("2006-01-02") }
func (d Day) Before(o Day) bool  { return d.t.Before(o.t) }
func (d Day) After(o Day) bool   { return d.t.After(o.t) }
func (d Day) Equal(o Day) bool   { return d.t.Equal(o.t) }
func (d Day) AddDays(n int) Day  { return Day{t: d.t.AddDate(0, 0, n)} }

// Within reports whether d lies inside the inclusive bounds. A nil bound
// leaves that side unbounded.
func (d Day) Within(lo, hi *Day) bool {
	if lo != nil && d.Before(*lo) {
		return false
	}
	if hi != nil && d.After(*hi) {
		return false
	}
	return true
}

// Range is a closed interval of calendar days. Both endpoints count as
// occupied: a stay ending on a day blocks that day for the next guest.
type Range struct {
	Start Day
	End   Day
}

// NewStay builds the range for a requested stay. Check-out must be strictly
// after check-in; a zero-night stay is not a stay.
func NewStay(checkIn, checkOut Day) (Range, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return Range{}, ErrInvalidRange
	}
	if !checkOut.After(checkIn) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: checkIn, End: checkOut}, nil
}

// SingleDay wraps one calendar day as a degenerate closed range.
func SingleDay(d Day) Range {
	return Range{Start: d, End: d}
}

func (r Range) Contains(d Day) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Overlaps is the standard closed-interval test: the ranges share at least
// one calendar day.
func (r Range) Overlaps(o Range) bool {
	return !r.Start.After(o.End) && !r.End.Before(o.Start)
}

func (r Range) Nights() int {
	return int(r.End.t.Sub(r.Start.t).Hours() / 24)
}

// Days enumerates every day in the range, endpoints included.
func (r Range) Days() []Day {
	if r.End.Before(r.Start) {
		return nil
	}
	out := make([]Day, 0, r.Nights()+1)
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}
