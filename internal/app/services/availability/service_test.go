package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	domainproperty "realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
	"realty/internal/infra/storage/memory"
)

func day(t *testing.T, value string) dates.Day {
	t.Helper()
	d, err := dates.ParseDay(value)
	if err != nil {
		t.Fatalf("parse day %q: %v", value, err)
	}
	return d
}

func newService(t *testing.T) (*Service, *memory.PropertyRepository) {
	t.Helper()
	properties := memory.NewPropertyRepository()
	service := &Service{
		UoW: memory.Factory{PropertyRepo: properties, BookingRepo: memory.NewBookingRepository()},
		Now: func() time.Time {
			return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
		},
	}
	return service, properties
}

func addRental(t *testing.T, properties *memory.PropertyRepository, id string, publish bool) *domainproperty.Property {
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
	if publish {
		if err := p.Publish(time.Time{}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	if err := properties.Save(context.Background(), p); err != nil {
		t.Fatalf("save property: %v", err)
	}
	return p
}

func TestCalendarHidesDrafts(t *testing.T) {
	service, properties := newService(t)
	addRental(t, properties, "prop-1", false)

	_, err := service.Calendar(context.Background(), "prop-1", dates.Day{}, dates.Day{})
	if !errors.Is(err, domainproperty.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a draft, got %v", err)
	}
}

func TestCalendarListsBlockedDays(t *testing.T) {
	service, properties := newService(t)
	p := addRental(t, properties, "prop-1", true)
	if err := p.BlockDate(day(t, "2025-02-10"), time.Time{}); err != nil {
		t.Fatalf("block date: %v", err)
	}
	if err := properties.Save(context.Background(), p); err != nil {
		t.Fatalf("save property: %v", err)
	}

	cal, err := service.Calendar(context.Background(), "prop-1", day(t, "2025-02-09"), day(t, "2025-02-11"))
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if len(cal.Disabled) != 1 || cal.Disabled[0] != "2025-02-10" {
		t.Fatalf("expected only 2025-02-10 disabled, got %v", cal.Disabled)
	}
}
