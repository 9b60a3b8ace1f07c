package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaincontent "realty/internal/domain/content"
)

// ContentRepositories bundles the five content collections behind the
// domain repository interfaces.
type ContentRepositories struct {
	Banners   *BannerRepository
	Partners  *PartnerRepository
	Locations *LocationRepository
	Posts     *PostRepository
	Contacts  *ContactRepository
}

func NewContentRepositories(db *mongo.Database) ContentRepositories {
	return ContentRepositories{
		Banners:   &BannerRepository{col: db.Collection("content_banners")},
		Partners:  &PartnerRepository{col: db.Collection("content_partners")},
		Locations: &LocationRepository{col: db.Collection("content_locations")},
		Posts:     &PostRepository{col: db.Collection("content_posts")},
		Contacts:  &ContactRepository{col: db.Collection("content_contacts")},
	}
}

type BannerRepository struct {
	col *mongo.Collection
}

func (r *BannerRepository) ByID(ctx context.Context, id string) (*domaincontent.Banner, error) {
	var doc bannerDocument
	if err := decodeOne(r.col.FindOne(ctx, bson.M{"_id": id}), &doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BannerRepository) Save(ctx context.Context, b *domaincontent.Banner) error {
	doc := newBannerDocument(b)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *BannerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domaincontent.ErrNotFound
	}
	return nil
}

func (r *BannerRepository) List(ctx context.Context, onlyActive bool) ([]*domaincontent.Banner, error) {
	filter := bson.M{}
	if onlyActive {
		filter["active"] = true
	}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*domaincontent.Banner
	for cursor.Next(ctx) {
		var doc bannerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc.toAggregate())
	}
	return items, cursor.Err()
}

type PartnerRepository struct {
	col *mongo.Collection
}

func (r *PartnerRepository) ByID(ctx context.Context, id string) (*domaincontent.Partner, error) {
	var doc partnerDocument
	if err := decodeOne(r.col.FindOne(ctx, bson.M{"_id": id}), &doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PartnerRepository) Save(ctx context.Context, p *domaincontent.Partner) error {
	doc := newPartnerDocument(p)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *PartnerRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domaincontent.ErrNotFound
	}
	return nil
}

func (r *PartnerRepository) List(ctx context.Context) ([]*domaincontent.Partner, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*domaincontent.Partner
	for cursor.Next(ctx) {
		var doc partnerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc.toAggregate())
	}
	return items, cursor.Err()
}

type LocationRepository struct {
	col *mongo.Collection
}

func (r *LocationRepository) ByID(ctx context.Context, id string) (*domaincontent.Location, error) {
	var doc locationDocument
	if err := decodeOne(r.col.FindOne(ctx, bson.M{"_id": id}), &doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *LocationRepository) BySlug(ctx context.Context, slug string) (*domaincontent.Location, error) {
	var doc locationDocument
	if err := decodeOne(r.col.FindOne(ctx, bson.M{"slug": slug}), &doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *LocationRepository) Save(ctx context.Context, l *domaincontent.Location) error {
	doc := newLocationDocument(l)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domaincontent.ErrNotFound
	}
	return nil
}

func (r *LocationRepository) List(ctx context.Context) ([]*domaincontent.Location, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*domaincontent.Location
	for cursor.Next(ctx) {
		var doc locationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc.toAggregate())
	}
	return items, cursor.Err()
}

type PostRepository struct {
	col *mongo.Collection
}

func (r *PostRepository) ByID(ctx context.Context, id string) (*domaincontent.Post, error) {
	var doc postDocument
	if err := decodeOne(r.col.FindOne(ctx, bson.M{"_id": id}), &doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PostRepository) BySlug(ctx context.Context, slug string) (*domaincontent.Post, error) {
	var doc postDocument
	if err := decodeOne(r.col.FindOne(ctx, bson.M{"slug": slug}), &doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *PostRepository) Save(ctx context.Context, p *domaincontent.Post) error {
	doc := newPostDocument(p)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domaincontent.ErrNotFound
	}
	return nil
}

func (r *PostRepository) List(ctx context.Context, onlyPublished bool) ([]*domaincontent.Post, error) {
	filter := bson.M{}
	if onlyPublished {
		filter["published"] = true
	}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*domaincontent.Post
	for cursor.Next(ctx) {
		var doc postDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc.toAggregate())
	}
	return items, cursor.Err()
}

type ContactRepository struct {
	col *mongo.Collection
}

func (r *ContactRepository) ByID(ctx context.Context, id string) (*domaincontent.ContactMessage, error) {
	var doc contactDocument
	if err := decodeOne(r.col.FindOne(ctx, bson.M{"_id": id}), &doc); err != nil {
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ContactRepository) Save(ctx context.Context, m *domaincontent.ContactMessage) error {
	doc := newContactDocument(m)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *ContactRepository) List(ctx context.Context, onlyUnhandled bool) ([]*domaincontent.ContactMessage, error) {
	filter := bson.M{}
	if onlyUnhandled {
		filter["handled"] = false
	}
	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []*domaincontent.ContactMessage
	for cursor.Next(ctx) {
		var doc contactDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc.toAggregate())
	}
	return items, cursor.Err()
}

func decodeOne(res *mongo.SingleResult, out interface{}) error {
	if err := res.Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domaincontent.ErrNotFound
		}
		return err
	}
	return nil
}

type bannerDocument struct {
	ID        string `bson:"_id"`
	Title     string `bson:"title"`
	ImageURL  string `bson:"image_url"`
	LinkURL   string `bson:"link_url,omitempty"`
	Position  int    `bson:"position"`
	Active    bool   `bson:"active"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func newBannerDocument(b *domaincontent.Banner) bannerDocument {
	return bannerDocument{
		ID:        b.ID,
		Title:     b.Title,
		ImageURL:  b.ImageURL,
		LinkURL:   b.LinkURL,
		Position:  b.Position,
		Active:    b.Active,
		CreatedAt: b.CreatedAt.UnixMilli(),
		UpdatedAt: b.UpdatedAt.UnixMilli(),
	}
}

func (d bannerDocument) toAggregate() *domaincontent.Banner {
	return &domaincontent.Banner{
		ID:        d.ID,
		Title:     d.Title,
		ImageURL:  d.ImageURL,
		LinkURL:   d.LinkURL,
		Position:  d.Position,
		Active:    d.Active,
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
	}
}

type partnerDocument struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	LogoURL   string `bson:"logo_url,omitempty"`
	Website   string `bson:"website,omitempty"`
	CreatedAt int64  `bson:"created_at"`
}

func newPartnerDocument(p *domaincontent.Partner) partnerDocument {
	return partnerDocument{
		ID:        p.ID,
		Name:      p.Name,
		LogoURL:   p.LogoURL,
		Website:   p.Website,
		CreatedAt: p.CreatedAt.UnixMilli(),
	}
}

func (d partnerDocument) toAggregate() *domaincontent.Partner {
	return &domaincontent.Partner{
		ID:        d.ID,
		Name:      d.Name,
		LogoURL:   d.LogoURL,
		Website:   d.Website,
		CreatedAt: timestampToTime(d.CreatedAt),
	}
}

type locationDocument struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	Slug      string `bson:"slug"`
	ImageURL  string `bson:"image_url,omitempty"`
	CreatedAt int64  `bson:"created_at"`
}

func newLocationDocument(l *domaincontent.Location) locationDocument {
	return locationDocument{
		ID:        l.ID,
		Name:      l.Name,
		Slug:      l.Slug,
		ImageURL:  l.ImageURL,
		CreatedAt: l.CreatedAt.UnixMilli(),
	}
}

func (d locationDocument) toAggregate() *domaincontent.Location {
	return &domaincontent.Location{
		ID:        d.ID,
		Name:      d.Name,
		Slug:      d.Slug,
		ImageURL:  d.ImageURL,
		CreatedAt: timestampToTime(d.CreatedAt),
	}
}

type postDocument struct {
	ID        string `bson:"_id"`
	Title     string `bson:"title"`
	Slug      string `bson:"slug"`
	Body      string `bson:"body"`
	CoverURL  string `bson:"cover_url,omitempty"`
	AuthorID  string `bson:"author_id"`
	Published bool   `bson:"published"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func newPostDocument(p *domaincontent.Post) postDocument {
	return postDocument{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Body:      p.Body,
		CoverURL:  p.CoverURL,
		AuthorID:  p.AuthorID,
		Published: p.Published,
		CreatedAt: p.CreatedAt.UnixMilli(),
		UpdatedAt: p.UpdatedAt.UnixMilli(),
	}
}

func (d postDocument) toAggregate() *domaincontent.Post {
	return &domaincontent.Post{
		ID:        d.ID,
		Title:     d.Title,
		Slug:      d.Slug,
		Body:      d.Body,
		CoverURL:  d.CoverURL,
		AuthorID:  d.AuthorID,
		Published: d.Published,
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
	}
}

type contactDocument struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	Email     string `bson:"email"`
	Subject   string `bson:"subject,omitempty"`
	Body      string `bson:"body"`
	Handled   bool   `bson:"handled"`
	CreatedAt int64  `bson:"created_at"`
}

func newContactDocument(m *domaincontent.ContactMessage) contactDocument {
	return contactDocument{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Body:      m.Body,
		Handled:   m.Handled,
		CreatedAt: m.CreatedAt.UnixMilli(),
	}
}

func (d contactDocument) toAggregate() *domaincontent.ContactMessage {
	return &domaincontent.ContactMessage{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Subject:   d.Subject,
		Body:      d.Body,
		Handled:   d.Handled,
		CreatedAt: timestampToTime(d.CreatedAt),
	}
}
