package availability

import (
	"realty/internal/domain/booking"
	"realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
)

// Window is the inclusive span a property accepts bookings in. A nil bound
// is unbounded on that side.
type Window struct {
	From *dates.Day
	To   *dates.Day
}

// Schedule answers "is day D bookable?" for one property against a
// snapshot of its blocked dates and active booking intervals. It is a pure
// value: the same schedule backs both the calendar-disabling query and the
// server-side admission check, so the two can never disagree.
type Schedule struct {
	window   Window
	blocked  map[dates.Day]struct{}
	occupied []dates.Range
}

func NewSchedule(window Window, blocked []dates.Day, occupied []dates.Range) Schedule {
	set := make(map[dates.Day]struct{}, len(blocked))
	for _, d := range blocked {
		set[d] = struct{}{}
	}
	return Schedule{
		window:   window,
		blocked:  set,
		occupied: append([]dates.Range(nil), occupied...),
	}
}

// ScheduleFor builds the schedule from a property and its active bookings.
// Cancelled bookings must already be filtered out by the repository query.
func ScheduleFor(p *property.Property, active []*booking.Booking) Schedule {
	occupied := make([]dates.Range, 0, len(active))
	for _, b := range active {
		if b == nil || !b.Active() {
			continue
		}
		r := b.OccupiedRange()
		if r.Start.IsZero() {
			continue
		}
		occupied = append(occupied, r)
	}
	return NewSchedule(Window{From: p.CheckInFrom, To: p.CheckOutBy}, p.BlockedDates, occupied)
}

// Blocked reports host-curated exclusion, matched by calendar day.
func (s Schedule) Blocked(d dates.Day) bool {
	_, ok := s.blocked[d]
	return ok
}

// Occupied reports whether d falls inside any active booking interval.
// Intervals are closed: check-in and check-out days both count, so
// same-day turnover is never offered.
func (s Schedule) Occupied(d dates.Day) bool {
	for _, r := range s.occupied {
		if r.Contains(d) {
			return true
		}
	}
	return false
}

func (s Schedule) anyOverlap(r dates.Range) bool {
	for _, o := range s.occupied {
		if o.Overlaps(r) {
			return true
		}
	}
	return false
}

// Disabled is the date-picker predicate. A day is disabled when it is in
// the past, outside the property window, host-blocked, or occupied.
func (s Schedule) Disabled(d, today dates.Day) bool {
	if d.Before(today) {
		return true
	}
	if !d.Within(s.window.From, s.window.To) {
		return true
	}
	if s.Blocked(d) {
		return true
	}
	return s.Occupied(d)
}

// RangeFree reports whether every day of the closed range is bookable and
// the range shares no day with an existing interval.
func (s Schedule) RangeFree(r dates.Range, today dates.Day) bool {
	if !r.End.After(r.Start) {
		return false
	}
	if s.anyOverlap(r) {
		return false
	}
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		if s.Disabled(d, today) {
			return false
		}
	}
	return true
}

// DisabledDays enumerates the disabled days in [from, to] for the calendar
// UI. The order follows the calendar.
func (s Schedule) DisabledDays(from, to, today dates.Day) []dates.Day {
	if to.Before(from) {
		return nil
	}
	var out []dates.Day
	for d := from; !d.After(to); d = d.AddDays(1) {
		if s.Disabled(d, today) {
			out = append(out, d)
		}
	}
	return out
}
