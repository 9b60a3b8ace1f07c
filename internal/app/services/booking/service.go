package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"realty/internal/app/dto"
	"realty/internal/app/uow"
	"realty/internal/domain/availability"
	domainbooking "realty/internal/domain/booking"
	domainproperty "realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
	"realty/internal/domain/shared/events"
	domainuser "realty/internal/domain/user"
)

var (
	ErrNotOwner = errors.New("booking service: caller does not own this booking")
	ErrNotHost  = errors.New("booking service: caller does not host this property")
)

// Publisher pushes committed domain events to the broker. Failures are
// logged, never surfaced to the guest: the booking is already persisted.
type Publisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

type Service struct {
	UoW    uow.Factory
	Events Publisher
	Now    func() time.Time
	Logger *slog.Logger
}

type RequestParams struct {
	PropertyID string
	GuestID    string
	Payment    domainbooking.PaymentMethod

	// Candidate dates, already day-normalized by the transport layer.
	CheckIn     dates.Day
	CheckOut    dates.Day
	Appointment dates.Day
}

// Request runs the admission pipeline: snapshot the property and its
// active bookings, apply the decision rules, and persist a pending booking
// on acceptance. The same schedule that backs the calendar query makes the
// call here, so client-side disabling and server-side admission agree.
func (s *Service) Request(ctx context.Context, params RequestParams) (dto.AdmissionResult, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return dto.AdmissionResult{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	prop, err := unit.Properties().ByID(ctx, domainproperty.ID(params.PropertyID))
	if err != nil {
		return dto.AdmissionResult{}, err
	}

	active, err := unit.Bookings().ActiveByProperty(ctx, prop.ID)
	if err != nil {
		return dto.AdmissionResult{}, err
	}
	outstanding, err := unit.Bookings().ActiveByGuestAndProperty(ctx, domainuser.ID(params.GuestID), prop.ID)
	if err != nil {
		return dto.AdmissionResult{}, err
	}

	now := s.now()
	today := dates.DayOf(now)
	sched := availability.ScheduleFor(prop, active)

	var req availability.Request
	if prop.FlexibleStay() {
		req = availability.StayRequest{CheckIn: params.CheckIn, CheckOut: params.CheckOut}
	} else {
		req = availability.AppointmentRequest{Date: params.Appointment}
	}

	decision := availability.Decide(prop, sched, len(outstanding) > 0, req, today)
	if !decision.Accepted {
		if s.Logger != nil {
			s.Logger.Info("booking rejected",
				"property_id", prop.ID, "guest_id", params.GuestID, "reason", decision.Reason)
		}
		return dto.AdmissionResult{Reason: string(decision.Reason)}, nil
	}

	bk, err := domainbooking.New(domainbooking.CreateParams{
		ID:          domainbooking.ID(uuid.NewString()),
		PropertyID:  prop.ID,
		GuestID:     domainuser.ID(params.GuestID),
		Stay:        decision.Stay,
		Appointment: decision.Appointment,
		Payment:     params.Payment,
		CreatedAt:   now,
	})
	if err != nil {
		return dto.AdmissionResult{}, err
	}
	if err := unit.Bookings().Save(ctx, bk); err != nil {
		return dto.AdmissionResult{}, err
	}
	if err := unit.Commit(ctx); err != nil {
		return dto.AdmissionResult{}, err
	}
	committed = true

	s.publish(ctx, bk)
	if s.Logger != nil {
		s.Logger.Info("booking requested", "booking_id", bk.ID, "property_id", prop.ID, "guest_id", params.GuestID)
	}
	summary := dto.MapBookingSummary(bk, prop)
	return dto.AdmissionResult{Accepted: true, Booking: &summary}, nil
}

// Confirm lets the hosting user accept a pending request.
func (s *Service) Confirm(ctx context.Context, hostID, bookingID string) (dto.BookingSummary, error) {
	return s.transition(ctx, bookingID, func(bk *domainbooking.Booking, prop *domainproperty.Property) error {
		if prop.Host != domainproperty.HostID(hostID) {
			return ErrNotHost
		}
		return bk.Confirm(s.now())
	})
}

// Cancel is allowed for the requesting guest and for the property host.
func (s *Service) Cancel(ctx context.Context, callerID, bookingID, reason string) (dto.BookingSummary, error) {
	return s.transition(ctx, bookingID, func(bk *domainbooking.Booking, prop *domainproperty.Property) error {
		if string(bk.GuestID) != callerID && prop.Host != domainproperty.HostID(callerID) {
			return ErrNotOwner
		}
		return bk.Cancel(reason, s.now())
	})
}

func (s *Service) transition(ctx context.Context, bookingID string, apply func(*domainbooking.Booking, *domainproperty.Property) error) (dto.BookingSummary, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{})
	if err != nil {
		return dto.BookingSummary{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = unit.Rollback(ctx)
		}
	}()

	bk, err := unit.Bookings().ByID(ctx, domainbooking.ID(bookingID))
	if err != nil {
		return dto.BookingSummary{}, err
	}
	prop, err := unit.Properties().ByID(ctx, bk.PropertyID)
	if err != nil {
		return dto.BookingSummary{}, err
	}
	if err := apply(bk, prop); err != nil {
		return dto.BookingSummary{}, err
	}
	if err := unit.Bookings().Save(ctx, bk); err != nil {
		return dto.BookingSummary{}, err
	}
	if err := unit.Commit(ctx); err != nil {
		return dto.BookingSummary{}, err
	}
	committed = true

	s.publish(ctx, bk)
	return dto.MapBookingSummary(bk, prop), nil
}

// GuestBookings lists every booking the guest has made, newest first.
func (s *Service) GuestBookings(ctx context.Context, guestID string) (dto.BookingCollection, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.BookingCollection{}, err
	}
	defer unit.Rollback(ctx)

	items, err := unit.Bookings().ListByGuest(ctx, domainuser.ID(guestID))
	if err != nil {
		return dto.BookingCollection{}, err
	}
	return s.collect(ctx, unit, items)
}

// PropertyBookings lists bookings on one of the host's properties.
func (s *Service) PropertyBookings(ctx context.Context, hostID, propertyID string) (dto.BookingCollection, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.BookingCollection{}, err
	}
	defer unit.Rollback(ctx)

	prop, err := unit.Properties().ByID(ctx, domainproperty.ID(propertyID))
	if err != nil {
		return dto.BookingCollection{}, err
	}
	if prop.Host != domainproperty.HostID(hostID) {
		return dto.BookingCollection{}, ErrNotHost
	}
	items, err := unit.Bookings().ListByProperty(ctx, prop.ID)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	return s.collect(ctx, unit, items)
}

func (s *Service) collect(ctx context.Context, unit uow.UnitOfWork, items []*domainbooking.Booking) (dto.BookingCollection, error) {
	out := dto.BookingCollection{Items: make([]dto.BookingSummary, 0, len(items))}
	propCache := make(map[domainproperty.ID]*domainproperty.Property, len(items))
	for _, bk := range items {
		prop, ok := propCache[bk.PropertyID]
		if !ok {
			var err error
			prop, err = unit.Properties().ByID(ctx, bk.PropertyID)
			if err != nil && !errors.Is(err, domainproperty.ErrNotFound) {
				return dto.BookingCollection{}, err
			}
			propCache[bk.PropertyID] = prop
		}
		out.Items = append(out.Items, dto.MapBookingSummary(bk, prop))
	}
	return out, nil
}

func (s *Service) publish(ctx context.Context, bk *domainbooking.Booking) {
	if s.Events == nil {
		bk.Drain()
		return
	}
	for _, event := range bk.Drain() {
		if err := s.Events.Publish(ctx, event); err != nil && s.Logger != nil {
			s.Logger.Warn("event publish failed", "event", event.EventName(), "booking_id", bk.ID, "error", err)
		}
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
