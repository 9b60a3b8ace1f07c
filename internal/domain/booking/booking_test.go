package booking

import (
	"errors"
	"testing"
	"time"

	"realty/internal/domain/shared/dates"
)

func stay(t *testing.T, from, to string) dates.Range {
	t.Helper()
	lo, err := dates.ParseDay(from)
	if err != nil {
		t.Fatalf("parse %q: %v", from, err)
	}
	hi, err := dates.ParseDay(to)
	if err != nil {
		t.Fatalf("parse %q: %v", to, err)
	}
	r, err := dates.NewStay(lo, hi)
	if err != nil {
		t.Fatalf("stay %s..%s: %v", from, to, err)
	}
	return r
}

func TestNewRequiresExactlyOneShape(t *testing.T) {
	r := stay(t, "2025-01-10", "2025-01-12")
	d := r.Start

	if _, err := New(CreateParams{ID: "b1", PropertyID: "p1", GuestID: "g1"}); !errors.Is(err, ErrDatesRequired) {
		t.Fatalf("no dates: expected ErrDatesRequired, got %v", err)
	}
	if _, err := New(CreateParams{ID: "b1", PropertyID: "p1", GuestID: "g1", Stay: &r, Appointment: &d}); !errors.Is(err, ErrDatesRequired) {
		t.Fatalf("both shapes: expected ErrDatesRequired, got %v", err)
	}
	if _, err := New(CreateParams{ID: "b1", PropertyID: "p1", Stay: &r}); !errors.Is(err, ErrGuestRequired) {
		t.Fatalf("expected ErrGuestRequired, got %v", err)
	}
}

func TestNewStartsPendingAndRecordsEvent(t *testing.T) {
	r := stay(t, "2025-01-10", "2025-01-12")
	b, err := New(CreateParams{ID: "b1", PropertyID: "p1", GuestID: "g1", Stay: &r})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if b.Status != StatusPending {
		t.Fatalf("expected PENDING, got %s", b.Status)
	}
	if b.PaymentStat != PaymentUnpaid {
		t.Fatalf("expected UNPAID, got %s", b.PaymentStat)
	}
	ev := b.Drain()
	if len(ev) != 1 || ev[0].EventName() != "booking.requested" {
		t.Fatalf("expected one booking.requested event, got %v", ev)
	}
}

func TestOccupiedRange(t *testing.T) {
	r := stay(t, "2025-01-10", "2025-01-12")
	b, _ := New(CreateParams{ID: "b1", PropertyID: "p1", GuestID: "g1", Stay: &r})
	if got := b.OccupiedRange(); !got.Start.Equal(r.Start) || !got.End.Equal(r.End) {
		t.Fatalf("stay booking occupies its range, got %v", got)
	}

	d := r.Start
	appt, _ := New(CreateParams{ID: "b2", PropertyID: "p1", GuestID: "g1", Appointment: &d})
	got := appt.OccupiedRange()
	if !got.Start.Equal(d) || !got.End.Equal(d) {
		t.Fatalf("appointment occupies its single day, got %v", got)
	}
}

func TestTransitions(t *testing.T) {
	r := stay(t, "2025-01-10", "2025-01-12")
	now := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)

	b, _ := New(CreateParams{ID: "b1", PropertyID: "p1", GuestID: "g1", Stay: &r})
	if err := b.Confirm(now); err != nil {
		t.Fatalf("confirm pending: %v", err)
	}
	if err := b.Confirm(now); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("double confirm must fail, got %v", err)
	}
	if err := b.Cancel("host declined", now); err != nil {
		t.Fatalf("cancel confirmed: %v", err)
	}
	if b.Active() {
		t.Fatal("cancelled booking must not be active")
	}
	if err := b.Cancel("again", now); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("double cancel must fail, got %v", err)
	}
	if err := b.Confirm(now); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("confirming a cancelled booking must fail, got %v", err)
	}
}

func TestCancelRefundsPaidBooking(t *testing.T) {
	r := stay(t, "2025-01-10", "2025-01-12")
	b, _ := New(CreateParams{ID: "b1", PropertyID: "p1", GuestID: "g1", Stay: &r, Payment: PaymentCard})
	if err := b.RecordPayment("pay-123", time.Time{}); err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if err := b.Cancel("plans changed", time.Time{}); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if b.PaymentStat != PaymentRefunded {
		t.Fatalf("paid booking must be marked refunded on cancel, got %s", b.PaymentStat)
	}
}
