package booking

import (
	"context"
	"testing"
	"time"

	"realty/internal/domain/availability"
	domainbooking "realty/internal/domain/booking"
	domainproperty "realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
	"realty/internal/domain/shared/events"
	"realty/internal/infra/storage/memory"
)

type capturePublisher struct {
	published []events.DomainEvent
}

func (p *capturePublisher) Publish(_ context.Context, event events.DomainEvent) error {
	p.published = append(p.published, event)
	return nil
}

type fixture struct {
	service    *Service
	properties *memory.PropertyRepository
	bookings   *memory.BookingRepository
	publisher  *capturePublisher
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	properties := memory.NewPropertyRepository()
	bookings := memory.NewBookingRepository()
	publisher := &capturePublisher{}
	service := &Service{
		UoW:    memory.Factory{PropertyRepo: properties, BookingRepo: bookings},
		Events: publisher,
		Now: func() time.Time {
			return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		},
	}
	return fixture{service: service, properties: properties, bookings: bookings, publisher: publisher}
}

func (f fixture) addFlexibleRental(t *testing.T, id string) *domainproperty.Property {
	t.Helper()
	p, err := domainproperty.New(domainproperty.CreateParams{
		ID:           domainproperty.ID(id),
		Host:         "host-1",
		Title:        "Canal-side loft",
		Address:      domainproperty.Address{Line1: "Prinsengracht 12", City: "Amsterdam", Country: "NL"},
		PriceCents:   150_00,
		ListingType:  domainproperty.ListingRent,
		RentDuration: domainproperty.DurationFlexible,
	})
	if err != nil {
		t.Fatalf("build property: %v", err)
	}
	if err := p.Publish(time.Time{}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := f.properties.Save(context.Background(), p); err != nil {
		t.Fatalf("save property: %v", err)
	}
	return p
}

func (f fixture) addSaleListing(t *testing.T, id string) *domainproperty.Property {
	t.Helper()
	p, err := domainproperty.New(domainproperty.CreateParams{
		ID:          domainproperty.ID(id),
		Host:        "host-1",
		Title:       "Townhouse for sale",
		Address:     domainproperty.Address{Line1: "Herengracht 4", City: "Amsterdam", Country: "NL"},
		PriceCents:  499_000_00,
		ListingType: domainproperty.ListingSale,
	})
	if err != nil {
		t.Fatalf("build property: %v", err)
	}
	if err := p.Publish(time.Time{}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := f.properties.Save(context.Background(), p); err != nil {
		t.Fatalf("save property: %v", err)
	}
	return p
}

func day(t *testing.T, value string) dates.Day {
	t.Helper()
	d, err := dates.ParseDay(value)
	if err != nil {
		t.Fatalf("parse day %q: %v", value, err)
	}
	return d
}

func TestRequestStayAccepted(t *testing.T) {
	f := newFixture(t)
	f.addFlexibleRental(t, "prop-1")

	result, err := f.service.Request(context.Background(), RequestParams{
		PropertyID: "prop-1",
		GuestID:    "guest-1",
		Payment:    domainbooking.PaymentCard,
		CheckIn:    day(t, "2025-02-10"),
		CheckOut:   day(t, "2025-02-14"),
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if !result.Accepted {
		t.Fatalf("expected acceptance, got reason %s", result.Reason)
	}
	if result.Booking == nil || result.Booking.Status != string(domainbooking.StatusPending) {
		t.Fatalf("expected pending booking in result, got %+v", result.Booking)
	}

	stored, err := f.bookings.ByID(context.Background(), domainbooking.ID(result.Booking.ID))
	if err != nil {
		t.Fatalf("load stored booking: %v", err)
	}
	if stored.Stay == nil || stored.Stay.Start != day(t, "2025-02-10") {
		t.Fatalf("stored stay mismatch: %+v", stored.Stay)
	}

	if len(f.publisher.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(f.publisher.published))
	}
	if name := f.publisher.published[0].EventName(); name != "booking.requested" {
		t.Fatalf("unexpected event %q", name)
	}
}

func TestRequestRejectsConflict(t *testing.T) {
	f := newFixture(t)
	f.addFlexibleRental(t, "prop-1")

	first, err := f.service.Request(context.Background(), RequestParams{
		PropertyID: "prop-1",
		GuestID:    "guest-1",
		CheckIn:    day(t, "2025-02-10"),
		CheckOut:   day(t, "2025-02-14"),
	})
	if err != nil || !first.Accepted {
		t.Fatalf("first request should be accepted: %v %+v", err, first)
	}

	// Checkout day of the first stay is occupied, so a back-to-back
	// booking starting that day is rejected.
	second, err := f.service.Request(context.Background(), RequestParams{
		PropertyID: "prop-1",
		GuestID:    "guest-2",
		CheckIn:    day(t, "2025-02-14"),
		CheckOut:   day(t, "2025-02-16"),
	})
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	if second.Accepted {
		t.Fatal("expected rejection")
	}
	if second.Reason != string(availability.ReasonDateConflict) {
		t.Fatalf("expected DATE_CONFLICT, got %s", second.Reason)
	}
}

func TestRequestRejectsDuplicateGuest(t *testing.T) {
	f := newFixture(t)
	f.addFlexibleRental(t, "prop-1")

	first, err := f.service.Request(context.Background(), RequestParams{
		PropertyID: "prop-1",
		GuestID:    "guest-1",
		CheckIn:    day(t, "2025-02-10"),
		CheckOut:   day(t, "2025-02-14"),
	})
	if err != nil || !first.Accepted {
		t.Fatalf("first request should be accepted: %v %+v", err, first)
	}

	second, err := f.service.Request(context.Background(), RequestParams{
		PropertyID: "prop-1",
		GuestID:    "guest-1",
		CheckIn:    day(t, "2025-03-01"),
		CheckOut:   day(t, "2025-03-05"),
	})
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	if second.Accepted || second.Reason != string(availability.ReasonDuplicateRequest) {
		t.Fatalf("expected DUPLICATE_REQUEST, got %+v", second)
	}
}

func TestRequestAppointmentOnSaleListing(t *testing.T) {
	f := newFixture(t)
	f.addSaleListing(t, "prop-2")

	result, err := f.service.Request(context.Background(), RequestParams{
		PropertyID:  "prop-2",
		GuestID:     "guest-1",
		Appointment: day(t, "2025-02-10"),
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if !result.Accepted {
		t.Fatalf("expected acceptance, got reason %s", result.Reason)
	}
	if result.Booking.Appointment == nil || *result.Booking.Appointment != "2025-02-10" {
		t.Fatalf("appointment missing from summary: %+v", result.Booking)
	}

	missing, err := f.service.Request(context.Background(), RequestParams{
		PropertyID: "prop-2",
		GuestID:    "guest-2",
	})
	if err != nil {
		t.Fatalf("request without date: %v", err)
	}
	if missing.Accepted || missing.Reason != string(availability.ReasonMissingDate) {
		t.Fatalf("expected MISSING_DATE, got %+v", missing)
	}
}

func TestConfirmRequiresHost(t *testing.T) {
	f := newFixture(t)
	f.addFlexibleRental(t, "prop-1")

	result, err := f.service.Request(context.Background(), RequestParams{
		PropertyID: "prop-1",
		GuestID:    "guest-1",
		CheckIn:    day(t, "2025-02-10"),
		CheckOut:   day(t, "2025-02-14"),
	})
	if err != nil || !result.Accepted {
		t.Fatalf("request should be accepted: %v %+v", err, result)
	}

	if _, err := f.service.Confirm(context.Background(), "someone-else", result.Booking.ID); err != ErrNotHost {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}

	summary, err := f.service.Confirm(context.Background(), "host-1", result.Booking.ID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if summary.Status != string(domainbooking.StatusConfirmed) {
		t.Fatalf("expected CONFIRMED, got %s", summary.Status)
	}
}

func TestCancelByGuestFreesDates(t *testing.T) {
	f := newFixture(t)
	f.addFlexibleRental(t, "prop-1")

	result, err := f.service.Request(context.Background(), RequestParams{
		PropertyID: "prop-1",
		GuestID:    "guest-1",
		CheckIn:    day(t, "2025-02-10"),
		CheckOut:   day(t, "2025-02-14"),
	})
	if err != nil || !result.Accepted {
		t.Fatalf("request should be accepted: %v %+v", err, result)
	}

	if _, err := f.service.Cancel(context.Background(), "stranger", result.Booking.ID, "spam"); err != ErrNotOwner {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	summary, err := f.service.Cancel(context.Background(), "guest-1", result.Booking.ID, "change of plans")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if summary.Status != string(domainbooking.StatusCancelled) {
		t.Fatalf("expected CANCELLED, got %s", summary.Status)
	}

	// Cancelled intervals no longer block the calendar.
	retry, err := f.service.Request(context.Background(), RequestParams{
		PropertyID: "prop-1",
		GuestID:    "guest-2",
		CheckIn:    day(t, "2025-02-10"),
		CheckOut:   day(t, "2025-02-14"),
	})
	if err != nil {
		t.Fatalf("retry request: %v", err)
	}
	if !retry.Accepted {
		t.Fatalf("expected acceptance after cancellation, got %s", retry.Reason)
	}
}
