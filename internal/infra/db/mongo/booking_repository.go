package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainbooking "realty/internal/domain/booking"
	domainproperty "realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
	domainuser "realty/internal/domain/user"
)

var activeStatuses = bson.A{
	string(domainbooking.StatusPending),
	string(domainbooking.StatusConfirmed),
}

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection("agg_booking")}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.ID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	filter := bson.M{"_id": doc.ID, "version": b.Version}
	doc.Version = b.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ActiveByProperty(ctx context.Context, id domainproperty.ID) ([]*domainbooking.Booking, error) {
	return r.find(ctx, bson.M{
		"property_id": string(id),
		"status":      bson.M{"$in": activeStatuses},
	})
}

func (r *BookingRepository) ActiveByGuestAndProperty(ctx context.Context, guest domainuser.ID, id domainproperty.ID) ([]*domainbooking.Booking, error) {
	return r.find(ctx, bson.M{
		"property_id": string(id),
		"guest_id":    string(guest),
		"status":      bson.M{"$in": activeStatuses},
	})
}

func (r *BookingRepository) ListByGuest(ctx context.Context, guest domainuser.ID) ([]*domainbooking.Booking, error) {
	return r.find(ctx, bson.M{"guest_id": string(guest)})
}

func (r *BookingRepository) ListByProperty(ctx context.Context, id domainproperty.ID) ([]*domainbooking.Booking, error) {
	return r.find(ctx, bson.M{"property_id": string(id)})
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M) ([]*domainbooking.Booking, error) {
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*domainbooking.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		agg, err := doc.toAggregate()
		if err != nil {
			return nil, err
		}
		items = append(items, agg)
	}
	return items, cursor.Err()
}

type bookingDocument struct {
	ID          string `bson:"_id"`
	PropertyID  string `bson:"property_id"`
	GuestID     string `bson:"guest_id"`
	CheckIn     string `bson:"check_in,omitempty"`
	CheckOut    string `bson:"check_out,omitempty"`
	Appointment string `bson:"appointment,omitempty"`
	Status      string `bson:"status"`
	Payment     string `bson:"payment"`
	PaymentStat string `bson:"payment_status"`
	PaymentID   string `bson:"payment_id,omitempty"`
	CreatedAt   int64  `bson:"created_at"`
	UpdatedAt   int64  `bson:"updated_at"`
	Version     int64  `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	doc := bookingDocument{
		ID:          string(b.ID),
		PropertyID:  string(b.PropertyID),
		GuestID:     string(b.GuestID),
		Status:      string(b.Status),
		Payment:     string(b.Payment),
		PaymentStat: string(b.PaymentStat),
		PaymentID:   b.PaymentID,
		CreatedAt:   b.CreatedAt.UnixMilli(),
		UpdatedAt:   b.UpdatedAt.UnixMilli(),
		Version:     b.Version,
	}
	if b.Stay != nil {
		doc.CheckIn = b.Stay.Start.String()
		doc.CheckOut = b.Stay.End.String()
	}
	if b.Appointment != nil {
		doc.Appointment = b.Appointment.String()
	}
	return doc
}

func (d bookingDocument) toAggregate() (*domainbooking.Booking, error) {
	agg := &domainbooking.Booking{
		ID:          domainbooking.ID(d.ID),
		PropertyID:  domainproperty.ID(d.PropertyID),
		GuestID:     domainuser.ID(d.GuestID),
		Status:      domainbooking.Status(d.Status),
		Payment:     domainbooking.PaymentMethod(d.Payment),
		PaymentStat: domainbooking.PaymentStatus(d.PaymentStat),
		PaymentID:   d.PaymentID,
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
		Version:     d.Version,
	}
	if d.CheckIn != "" && d.CheckOut != "" {
		start, err := dates.ParseDay(d.CheckIn)
		if err != nil {
			return nil, err
		}
		end, err := dates.ParseDay(d.CheckOut)
		if err != nil {
			return nil, err
		}
		agg.Stay = &dates.Range{Start: start, End: end}
	}
	if d.Appointment != "" {
		day, err := dates.ParseDay(d.Appointment)
		if err != nil {
			return nil, err
		}
		agg.Appointment = &day
	}
	return agg, nil
}
