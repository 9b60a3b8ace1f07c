package availability

import (
	"context"
	"time"

	"realty/internal/app/dto"
	"realty/internal/app/uow"
	domainavailability "realty/internal/domain/availability"
	domainproperty "realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
)

// DefaultHorizonDays bounds the calendar response when the client sends
// no explicit range.
const DefaultHorizonDays = 180

type Service struct {
	UoW uow.Factory
	Now func() time.Time

	// HorizonDays overrides DefaultHorizonDays when positive.
	HorizonDays int
}

// Calendar computes the disabled-date list the date-picker renders. It is
// derived from the same Schedule the admission check uses.
func (s *Service) Calendar(ctx context.Context, propertyID string, from, to dates.Day) (dto.Calendar, error) {
	unit, err := s.UoW.Begin(ctx, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.Calendar{}, err
	}
	defer unit.Rollback(ctx)

	prop, err := unit.Properties().ByID(ctx, domainproperty.ID(propertyID))
	if err != nil {
		return dto.Calendar{}, err
	}
	if prop.Status == domainproperty.StatusDraft {
		// Drafts are invisible on every public read, the calendar included.
		return dto.Calendar{}, domainproperty.ErrNotFound
	}
	active, err := unit.Bookings().ActiveByProperty(ctx, prop.ID)
	if err != nil {
		return dto.Calendar{}, err
	}

	today := dates.DayOf(s.now())
	if from.IsZero() {
		from = today
	}
	if to.IsZero() || to.Before(from) {
		to = from.AddDays(s.horizonDays())
	}

	sched := domainavailability.ScheduleFor(prop, active)
	disabled := sched.DisabledDays(from, to, today)
	return dto.MapCalendar(string(prop.ID), from, to, today, prop.CheckInFrom, prop.CheckOutBy, disabled), nil
}

func (s *Service) horizonDays() int {
	if s.HorizonDays > 0 {
		return s.HorizonDays
	}
	return DefaultHorizonDays
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
