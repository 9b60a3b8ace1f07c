package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperty "realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
)

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection("agg_property")}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperty.ID) (*domainproperty.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainproperty.ErrNotFound
		}
		return nil, err
	}
	return doc.toAggregate()
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	doc, err := newPropertyDocument(p)
	if err != nil {
		return err
	}
	filter := bson.M{"_id": doc.ID, "version": p.Version}
	doc.Version = p.Version + 1
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
	p.Version = doc.Version
	return nil
}

func (r *PropertyRepository) Search(ctx context.Context, params domainproperty.SearchParams) (domainproperty.SearchResult, error) {
	params = params.Normalized()
	filter := bson.M{}
	if params.OnlyPublished {
		filter["status"] = string(domainproperty.StatusPublished)
	}
	if params.City != "" {
		filter["address.city"] = exactFold(params.City)
	}
	if params.Country != "" {
		filter["address.country"] = exactFold(params.Country)
	}
	if params.ListingType != "" {
		filter["listing_type"] = string(params.ListingType)
	}
	price := bson.M{}
	if params.MinPrice > 0 {
		price["$gte"] = params.MinPrice
	}
	if params.MaxPrice > 0 {
		price["$lte"] = params.MaxPrice
	}
	if len(price) > 0 {
		filter["price_cents"] = price
	}
	if params.MinBedrooms > 0 {
		filter["bedrooms"] = bson.M{"$gte": params.MinBedrooms}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return domainproperty.SearchResult{}, err
	}

	opts := options.Find().
		SetSort(sortSpec(params.Sort)).
		SetSkip(int64(params.Offset)).
		SetLimit(int64(params.Limit))
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return domainproperty.SearchResult{}, err
	}
	defer cursor.Close(ctx)

	result := domainproperty.SearchResult{Total: int(total)}
	for cursor.Next(ctx) {
		var doc propertyDocument
		if err := cursor.Decode(&doc); err != nil {
			return domainproperty.SearchResult{}, err
		}
		agg, err := doc.toAggregate()
		if err != nil {
			return domainproperty.SearchResult{}, err
		}
		result.Items = append(result.Items, agg)
	}
	return result, cursor.Err()
}

func (r *PropertyRepository) ListByHost(ctx context.Context, host domainproperty.HostID) ([]*domainproperty.Property, error) {
	cursor, err := r.col.Find(ctx, bson.M{"host_id": string(host)}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*domainproperty.Property
	for cursor.Next(ctx) {
		var doc propertyDocument
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

// exactFold is a case-insensitive whole-value match. The input is
// user-supplied, so it is escaped before entering the pattern.
func exactFold(value string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(value) + "$", "$options": "i"}
}

func sortSpec(order domainproperty.SortOrder) bson.D {
	switch order {
	case domainproperty.SortPriceAsc:
		return bson.D{{Key: "price_cents", Value: 1}}
	case domainproperty.SortPriceDesc:
		return bson.D{{Key: "price_cents", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

type propertyDocument struct {
	ID           string          `bson:"_id"`
	HostID       string          `bson:"host_id"`
	Title        string          `bson:"title"`
	Description  string          `bson:"description"`
	Address      addressDocument `bson:"address"`
	PriceCents   int64           `bson:"price_cents"`
	ListingType  string          `bson:"listing_type"`
	RentDuration string          `bson:"rent_duration"`
	Status       string          `bson:"status"`
	CheckInFrom  string          `bson:"check_in_from,omitempty"`
	CheckOutBy   string          `bson:"check_out_by,omitempty"`
	BlockedDates []string        `bson:"blocked_dates,omitempty"`
	Bedrooms     int             `bson:"bedrooms"`
	Bathrooms    int             `bson:"bathrooms"`
	AreaSqM      float64         `bson:"area_sq_m"`
	Photos       []string        `bson:"photos,omitempty"`
	ThumbnailURL string          `bson:"thumbnail_url,omitempty"`
	CreatedAt    int64           `bson:"created_at"`
	UpdatedAt    int64           `bson:"updated_at"`
	Version      int64           `bson:"version"`
}

type addressDocument struct {
	Line1   string  `bson:"line1"`
	City    string  `bson:"city"`
	Region  string  `bson:"region,omitempty"`
	Country string  `bson:"country"`
	Lat     float64 `bson:"lat,omitempty"`
	Lon     float64 `bson:"lon,omitempty"`
}

func newPropertyDocument(p *domainproperty.Property) (propertyDocument, error) {
	doc := propertyDocument{
		ID:          string(p.ID),
		HostID:      string(p.Host),
		Title:       p.Title,
		Description: p.Description,
		Address: addressDocument{
			Line1:   p.Address.Line1,
			City:    p.Address.City,
			Region:  p.Address.Region,
			Country: p.Address.Country,
			Lat:     p.Address.Lat,
			Lon:     p.Address.Lon,
		},
		PriceCents:   p.PriceCents,
		ListingType:  string(p.ListingType),
		RentDuration: string(p.RentDuration),
		Status:       string(p.Status),
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		AreaSqM:      p.AreaSquareMeters,
		Photos:       p.Photos,
		ThumbnailURL: p.ThumbnailURL,
		CreatedAt:    p.CreatedAt.UnixMilli(),
		UpdatedAt:    p.UpdatedAt.UnixMilli(),
		Version:      p.Version,
	}
	if p.CheckInFrom != nil {
		doc.CheckInFrom = p.CheckInFrom.String()
	}
	if p.CheckOutBy != nil {
		doc.CheckOutBy = p.CheckOutBy.String()
	}
	for _, d := range p.BlockedDates {
		doc.BlockedDates = append(doc.BlockedDates, d.String())
	}
	return doc, nil
}

func (d propertyDocument) toAggregate() (*domainproperty.Property, error) {
	agg := &domainproperty.Property{
		ID:          domainproperty.ID(d.ID),
		Host:        domainproperty.HostID(d.HostID),
		Title:       d.Title,
		Description: d.Description,
		Address: domainproperty.Address{
			Line1:   d.Address.Line1,
			City:    d.Address.City,
			Region:  d.Address.Region,
			Country: d.Address.Country,
			Lat:     d.Address.Lat,
			Lon:     d.Address.Lon,
		},
		PriceCents:       d.PriceCents,
		ListingType:      domainproperty.ListingType(d.ListingType),
		RentDuration:     domainproperty.RentDuration(d.RentDuration),
		Status:           domainproperty.PublishStatus(d.Status),
		Bedrooms:         d.Bedrooms,
		Bathrooms:        d.Bathrooms,
		AreaSquareMeters: d.AreaSqM,
		Photos:           d.Photos,
		ThumbnailURL:     d.ThumbnailURL,
		CreatedAt:        timestampToTime(d.CreatedAt),
		UpdatedAt:        timestampToTime(d.UpdatedAt),
		Version:          d.Version,
	}
	if d.CheckInFrom != "" {
		day, err := dates.ParseDay(d.CheckInFrom)
		if err != nil {
			return nil, err
		}
		agg.CheckInFrom = &day
	}
	if d.CheckOutBy != "" {
		day, err := dates.ParseDay(d.CheckOutBy)
		if err != nil {
			return nil, err
		}
		agg.CheckOutBy = &day
	}
	for _, raw := range d.BlockedDates {
		day, err := dates.ParseDay(raw)
		if err != nil {
			return nil, err
		}
		agg.BlockedDates = append(agg.BlockedDates, day)
	}
	return agg, nil
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
