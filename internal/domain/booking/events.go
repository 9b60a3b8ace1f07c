package booking

import (
	"time"

	"realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
	"realty/internal/domain/user"
)

type Requested struct {
	BookingID  ID
	PropertyID property.ID
	GuestID    user.ID
	Occupies   dates.Range
	At         time.Time
}

func (e Requested) EventName() string     { return "booking.requested" }
func (e Requested) AggregateID() string   { return string(e.BookingID) }
func (e Requested) OccurredAt() time.Time { return e.At }

type Confirmed struct {
	BookingID  ID
	PropertyID property.ID
	At         time.Time
}

func (e Confirmed) EventName() string     { return "booking.confirmed" }
func (e Confirmed) AggregateID() string   { return string(e.BookingID) }
func (e Confirmed) OccurredAt() time.Time { return e.At }

type Cancelled struct {
	BookingID  ID
	PropertyID property.ID
	Reason     string
	At         time.Time
}

func (e Cancelled) EventName() string     { return "booking.cancelled" }
func (e Cancelled) AggregateID() string   { return string(e.BookingID) }
func (e Cancelled) OccurredAt() time.Time { return e.At }
