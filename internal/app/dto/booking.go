package dto

import (
	"time"

	domainbooking "realty/internal/domain/booking"
	domainproperty "realty/internal/domain/property"
)

type BookingPropertySnapshot struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	City         string `json:"city"`
	Country      string `json:"country"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

type BookingSummary struct {
	ID            string                  `json:"id"`
	Property      BookingPropertySnapshot `json:"property"`
	GuestID       string                  `json:"guest_id"`
	CheckIn       *string                 `json:"check_in,omitempty"`
	CheckOut      *string                 `json:"check_out,omitempty"`
	Appointment   *string                 `json:"appointment_date,omitempty"`
	Status        string                  `json:"status"`
	PaymentMethod string                  `json:"payment_method"`
	PaymentStatus string                  `json:"payment_status"`
	PaymentID     string                  `json:"payment_id,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

type BookingCollection struct {
	Items []BookingSummary `json:"items"`
}

// AdmissionResult is the booking-creation response body. Reason is set on
// rejection only.
type AdmissionResult struct {
	Accepted bool            `json:"accepted"`
	Reason   string          `json:"reason,omitempty"`
	Booking  *BookingSummary `json:"booking,omitempty"`
}

func MapBookingSummary(b *domainbooking.Booking, p *domainproperty.Property) BookingSummary {
	snapshot := BookingPropertySnapshot{ID: string(b.PropertyID)}
	if p != nil {
		snapshot.Title = p.Title
		snapshot.City = p.Address.City
		snapshot.Country = p.Address.Country
		snapshot.ThumbnailURL = p.ThumbnailURL
	}
	out := BookingSummary{
		ID:            string(b.ID),
		Property:      snapshot,
		GuestID:       string(b.GuestID),
		Status:        string(b.Status),
		PaymentMethod: string(b.Payment),
		PaymentStatus: string(b.PaymentStat),
		PaymentID:     b.PaymentID,
		CreatedAt:     b.CreatedAt,
	}
	if b.Stay != nil {
		in := b.Stay.Start.String()
		outDay := b.Stay.End.String()
		out.CheckIn = &in
		out.CheckOut = &outDay
	}
	if b.Appointment != nil {
		d := b.Appointment.String()
		out.Appointment = &d
	}
	return out
}
