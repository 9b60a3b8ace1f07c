package property

import (
	"errors"
	"testing"
	"time"

	"realty/internal/domain/shared/dates"
)

func validParams() CreateParams {
	return CreateParams{
		ID:           "p1",
		Host:         "h1",
		Title:        "Garden apartment",
		Address:      Address{Line1: "Main st 1", City: "Utrecht", Country: "NL"},
		PriceCents:   120_00,
		ListingType:  ListingRent,
		RentDuration: DurationFlexible,
	}
}

func day(t *testing.T, value string) dates.Day {
	t.Helper()
	d, err := dates.ParseDay(value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return d
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateParams)
		want   error
	}{
		{"missing title", func(p *CreateParams) { p.Title = " " }, ErrTitleRequired},
		{"missing host", func(p *CreateParams) { p.Host = "" }, ErrHostRequired},
		{"negative price", func(p *CreateParams) { p.PriceCents = -1 }, ErrPriceNegative},
		{"bad listing type", func(p *CreateParams) { p.ListingType = "LEASE" }, ErrInvalidListingType},
		{"bad duration", func(p *CreateParams) { p.RentDuration = "WEEKLY" }, ErrInvalidDuration},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			tc.mutate(&params)
			if _, err := New(params); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSaleUsesFixedAppointments(t *testing.T) {
	params := validParams()
	params.ListingType = ListingSale
	params.RentDuration = "" // irrelevant for sales
	p, err := New(params)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if p.FlexibleStay() {
		t.Fatal("sale listings never accept flexible stays")
	}
	if p.RentDuration != DurationFixed {
		t.Fatalf("expected FIXED, got %s", p.RentDuration)
	}
}

func TestSetWindow(t *testing.T) {
	p, err := New(validParams())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	from := day(t, "2025-02-01")
	to := day(t, "2025-01-01")
	if err := p.SetWindow(&from, &to, time.Time{}); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("reversed window must fail, got %v", err)
	}
	if err := p.SetWindow(&to, &from, time.Time{}); err != nil {
		t.Fatalf("valid window: %v", err)
	}
	if err := p.SetWindow(nil, nil, time.Time{}); err != nil {
		t.Fatalf("unbounded window: %v", err)
	}
}

func TestBlockedDates(t *testing.T) {
	p, _ := New(validParams())
	d := day(t, "2025-01-05")

	if err := p.BlockDate(d, time.Time{}); err != nil {
		t.Fatalf("block: %v", err)
	}
	if err := p.BlockDate(d, time.Time{}); !errors.Is(err, ErrDateBlocked) {
		t.Fatalf("double block must fail, got %v", err)
	}
	if err := p.UnblockDate(d, time.Time{}); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if err := p.UnblockDate(d, time.Time{}); !errors.Is(err, ErrDateNotBlocked) {
		t.Fatalf("unblocking a free date must fail, got %v", err)
	}
}

func TestPublishLifecycle(t *testing.T) {
	p, _ := New(validParams())
	if err := p.MarkRented(time.Time{}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("draft cannot be rented, got %v", err)
	}
	if err := p.Publish(time.Time{}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := p.Publish(time.Time{}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("double publish must fail, got %v", err)
	}
	if err := p.MarkSold(time.Time{}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("rent listing cannot be sold, got %v", err)
	}
	if err := p.MarkRented(time.Time{}); err != nil {
		t.Fatalf("mark rented: %v", err)
	}
}

func TestPublishRequiresAddress(t *testing.T) {
	params := validParams()
	params.Address = Address{}
	p, _ := New(params)
	if err := p.Publish(time.Time{}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("publish without address must fail, got %v", err)
	}
}

func TestAddPhotoSetsThumbnail(t *testing.T) {
	p, _ := New(validParams())
	p.AddPhoto("https://cdn.example/p1/1.jpg", time.Time{})
	p.AddPhoto("https://cdn.example/p1/2.jpg", time.Time{})
	if p.ThumbnailURL != "https://cdn.example/p1/1.jpg" {
		t.Fatalf("first photo becomes thumbnail, got %s", p.ThumbnailURL)
	}
	if len(p.Photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(p.Photos))
	}
}
