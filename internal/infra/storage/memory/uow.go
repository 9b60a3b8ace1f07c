package memory

import (
	"context"
	"errors"

	"realty/internal/app/uow"
	domainbooking "realty/internal/domain/booking"
	domainproperty "realty/internal/domain/property"
)

var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	PropertyRepo domainproperty.Repository
	BookingRepo  domainbooking.Repository
}

// Begin starts a lightweight transaction boundary. No isolation is
// provided but the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.PropertyRepo == nil || f.BookingRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		properties: f.PropertyRepo,
		bookings:   f.BookingRepo,
	}, nil
}

type Unit struct {
	properties domainproperty.Repository
	bookings   domainbooking.Repository
}

func (u *Unit) Properties() domainproperty.Repository {
	return u.properties
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.bookings
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}
