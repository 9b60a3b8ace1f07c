package memory

import (
	"context"
	"sort"
	"sync"

	domainbooking "realty/internal/domain/booking"
	domainproperty "realty/internal/domain/property"
	"realty/internal/domain/shared/events"
	domainuser "realty/internal/domain/user"
)

type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.ID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		items: make(map[domainbooking.ID]*domainbooking.Booking),
	}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.ID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	return cloneBooking(b), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.Version++
	r.items[b.ID] = cloneBooking(b)
	return nil
}

func (r *BookingRepository) ActiveByProperty(ctx context.Context, id domainproperty.ID) ([]*domainbooking.Booking, error) {
	return r.filter(func(b *domainbooking.Booking) bool {
		return b.PropertyID == id && b.Active()
	}), nil
}

func (r *BookingRepository) ActiveByGuestAndProperty(ctx context.Context, guest domainuser.ID, id domainproperty.ID) ([]*domainbooking.Booking, error) {
	return r.filter(func(b *domainbooking.Booking) bool {
		return b.PropertyID == id && b.GuestID == guest && b.Active()
	}), nil
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guest domainuser.ID) ([]*domainbooking.Booking, error) {
	return r.filter(func(b *domainbooking.Booking) bool {
		return b.GuestID == guest
	}), nil
}

func (r *BookingRepository) ListByProperty(ctx context.Context, id domainproperty.ID) ([]*domainbooking.Booking, error) {
	return r.filter(func(b *domainbooking.Booking) bool {
		return b.PropertyID == id
	}), nil
}

func (r *BookingRepository) filter(keep func(*domainbooking.Booking) bool) []*domainbooking.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*domainbooking.Booking
	for _, b := range r.items {
		if keep(b) {
			items = append(items, cloneBooking(b))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

func cloneBooking(b *domainbooking.Booking) *domainbooking.Booking {
	out := *b
	if b.Stay != nil {
		v := *b.Stay
		out.Stay = &v
	}
	if b.Appointment != nil {
		v := *b.Appointment
		out.Appointment = &v
	}
	// Stored copies carry no pending events; only the service that
	// recorded them publishes them.
	out.Recorder = events.Recorder{}
	return &out
}
