package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"realty/internal/app/uow"
	domainbooking "realty/internal/domain/booking"
	domainproperty "realty/internal/domain/property"
	domainuser "realty/internal/domain/user"
)

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	PropertyRepo domainproperty.Repository
	BookingRepo  domainbooking.Repository
}

// Begin starts a session and transaction for writable units. The unit's
// repositories rebind every call onto that session, so the whole
// read-check-write runs inside the transaction. Read-only units skip the
// session; their Commit and Rollback are no-ops.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	if opts.ReadOnly {
		return &Unit{properties: f.PropertyRepo, bookings: f.BookingRepo}, nil
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		session:    session,
		properties: sessionPropertyRepository{session: session, inner: f.PropertyRepo},
		bookings:   sessionBookingRepository{session: session, inner: f.BookingRepo},
	}, nil
}

type Unit struct {
	session mongo.Session

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
	if u.session == nil {
		return nil
	}
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	if u.session == nil {
		return nil
	}
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// sessionPropertyRepository forwards each call with a session-bound
// context. A plain request context would make the driver run the
// operation outside the transaction and auto-commit it.
type sessionPropertyRepository struct {
	session mongo.Session
	inner   domainproperty.Repository
}

func (r sessionPropertyRepository) ByID(ctx context.Context, id domainproperty.ID) (*domainproperty.Property, error) {
	return r.inner.ByID(mongo.NewSessionContext(ctx, r.session), id)
}

func (r sessionPropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	return r.inner.Save(mongo.NewSessionContext(ctx, r.session), p)
}

func (r sessionPropertyRepository) Search(ctx context.Context, params domainproperty.SearchParams) (domainproperty.SearchResult, error) {
	return r.inner.Search(mongo.NewSessionContext(ctx, r.session), params)
}

func (r sessionPropertyRepository) ListByHost(ctx context.Context, host domainproperty.HostID) ([]*domainproperty.Property, error) {
	return r.inner.ListByHost(mongo.NewSessionContext(ctx, r.session), host)
}

type sessionBookingRepository struct {
	session mongo.Session
	inner   domainbooking.Repository
}

func (r sessionBookingRepository) ByID(ctx context.Context, id domainbooking.ID) (*domainbooking.Booking, error) {
	return r.inner.ByID(mongo.NewSessionContext(ctx, r.session), id)
}

func (r sessionBookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	return r.inner.Save(mongo.NewSessionContext(ctx, r.session), b)
}

func (r sessionBookingRepository) ActiveByProperty(ctx context.Context, id domainproperty.ID) ([]*domainbooking.Booking, error) {
	return r.inner.ActiveByProperty(mongo.NewSessionContext(ctx, r.session), id)
}

func (r sessionBookingRepository) ActiveByGuestAndProperty(ctx context.Context, guest domainuser.ID, id domainproperty.ID) ([]*domainbooking.Booking, error) {
	return r.inner.ActiveByGuestAndProperty(mongo.NewSessionContext(ctx, r.session), guest, id)
}

func (r sessionBookingRepository) ListByGuest(ctx context.Context, guest domainuser.ID) ([]*domainbooking.Booking, error) {
	return r.inner.ListByGuest(mongo.NewSessionContext(ctx, r.session), guest)
}

func (r sessionBookingRepository) ListByProperty(ctx context.Context, id domainproperty.ID) ([]*domainbooking.Booking, error) {
	return r.inner.ListByProperty(mongo.NewSessionContext(ctx, r.session), id)
}
