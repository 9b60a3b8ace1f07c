package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
	"realty/internal/domain/shared/events"
	"realty/internal/domain/user"
)

var (
	ErrNotFound      = errors.New("booking: not found")
	ErrInvalidState  = errors.New("booking: invalid state transition")
	ErrDatesRequired = errors.New("booking: exactly one of stay or appointment is required")
	ErrGuestRequired = errors.New("booking: guest id is required")
	ErrIDRequired    = errors.New("booking: id is required")
)

type ID string

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// Booking is either a stay request (flexible rent) or a single appointment
// date (sale viewing or fixed-duration rent). Exactly one of Stay and
// Appointment is set.
type Booking struct {
	ID          ID
	PropertyID  property.ID
	GuestID     user.ID
	Stay        *dates.Range
	Appointment *dates.Day
	Status      Status
	Payment     PaymentMethod
	PaymentStat PaymentStatus
	PaymentID   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int64
	events.Recorder
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	// ActiveByProperty returns pending and confirmed bookings only;
	// cancelled intervals never participate in availability.
	ActiveByProperty(ctx context.Context, id property.ID) ([]*Booking, error)
	ActiveByGuestAndProperty(ctx context.Context, guest user.ID, id property.ID) ([]*Booking, error)
	ListByGuest(ctx context.Context, guest user.ID) ([]*Booking, error)
	ListByProperty(ctx context.Context, id property.ID) ([]*Booking, error)
}

type CreateParams struct {
	ID          ID
	PropertyID  property.ID
	GuestID     user.ID
	Stay        *dates.Range
	Appointment *dates.Day
	Payment     PaymentMethod
	CreatedAt   time.Time
}

func New(params CreateParams) (*Booking, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(string(params.GuestID)) == "" {
		return nil, ErrGuestRequired
	}
	if (params.Stay == nil) == (params.Appointment == nil) {
		return nil, ErrDatesRequired
	}
	payment := params.Payment
	if payment == "" {
		payment = PaymentCash
	}
	now := params.CreatedAt
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	b := &Booking{
		ID:          params.ID,
		PropertyID:  params.PropertyID,
		GuestID:     params.GuestID,
		Stay:        params.Stay,
		Appointment: params.Appointment,
		Status:      StatusPending,
		Payment:     payment,
		PaymentStat: PaymentUnpaid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.Record(Requested{BookingID: b.ID, PropertyID: b.PropertyID, GuestID: b.GuestID, Occupies: b.OccupiedRange(), At: now})
	return b, nil
}

// Active bookings hold their dates against the property.
func (b *Booking) Active() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// OccupiedRange is the closed day interval this booking holds. An
// appointment occupies its single day.
func (b *Booking) OccupiedRange() dates.Range {
	if b.Stay != nil {
		return *b.Stay
	}
	if b.Appointment != nil {
		return dates.SingleDay(*b.Appointment)
	}
	return dates.Range{}
}

func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return ErrInvalidState
	}
	b.Status = StatusConfirmed
	b.touch(now)
	b.Record(Confirmed{BookingID: b.ID, PropertyID: b.PropertyID, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.Status == StatusCancelled {
		return ErrInvalidState
	}
	b.Status = StatusCancelled
	if b.PaymentStat == PaymentPaid {
		b.PaymentStat = PaymentRefunded
	}
	b.touch(now)
	b.Record(Cancelled{BookingID: b.ID, PropertyID: b.PropertyID, Reason: reason, At: b.UpdatedAt})
	return nil
}

func (b *Booking) RecordPayment(paymentID string, now time.Time) error {
	if b.Status == StatusCancelled {
		return ErrInvalidState
	}
	b.PaymentID = strings.TrimSpace(paymentID)
	b.PaymentStat = PaymentPaid
	b.touch(now)
	return nil
}

func (b *Booking) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	b.UpdatedAt = now.UTC()
}
