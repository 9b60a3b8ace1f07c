package uow

import (
	"context"

	"realty/internal/domain/booking"
	"realty/internal/domain/property"
)

// UnitOfWork scopes the admission read-check-write to one transaction
// boundary. The interval race between two concurrent admissions for the
// same last-free date is re-checked, not transactionally excluded; see
// DESIGN.md.
type UnitOfWork interface {
	Properties() property.Repository
	Bookings() booking.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Factory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

type TxOptions struct {
	ReadOnly bool
}
