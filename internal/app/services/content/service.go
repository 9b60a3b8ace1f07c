package content

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"realty/internal/app/dto"
	domaincontent "realty/internal/domain/content"
	domainuser "realty/internal/domain/user"
)

// Service backs the public content pages and the admin dashboard CRUD.
type Service struct {
	Banners   domaincontent.BannerRepository
	Partners  domaincontent.PartnerRepository
	Locations domaincontent.LocationRepository
	Posts     domaincontent.PostRepository
	Contacts  domaincontent.ContactRepository
	Users     domainuser.Repository
	Now       func() time.Time
	Logger    *slog.Logger
}

type BannerParams struct {
	Title    string
	ImageURL string
	LinkURL  string
	Position int
	Active   bool
}

func (s *Service) CreateBanner(ctx context.Context, params BannerParams) (dto.Banner, error) {
	b, err := domaincontent.NewBanner(uuid.NewString(), params.Title, params.ImageURL, params.LinkURL, params.Position, s.now())
	if err != nil {
		return dto.Banner{}, err
	}
	b.Active = params.Active
	if err := s.Banners.Save(ctx, b); err != nil {
		return dto.Banner{}, err
	}
	return dto.MapBanner(b), nil
}

func (s *Service) UpdateBanner(ctx context.Context, id string, params BannerParams) (dto.Banner, error) {
	b, err := s.Banners.ByID(ctx, id)
	if err != nil {
		return dto.Banner{}, err
	}
	if strings.TrimSpace(params.Title) == "" {
		return dto.Banner{}, domaincontent.ErrTitleRequired
	}
	b.Title = strings.TrimSpace(params.Title)
	b.ImageURL = params.ImageURL
	b.LinkURL = params.LinkURL
	b.Position = params.Position
	b.Active = params.Active
	b.UpdatedAt = s.now()
	if err := s.Banners.Save(ctx, b); err != nil {
		return dto.Banner{}, err
	}
	return dto.MapBanner(b), nil
}

func (s *Service) DeleteBanner(ctx context.Context, id string) error {
	return s.Banners.Delete(ctx, id)
}

// PublicBanners returns active banners only, for the storefront.
func (s *Service) PublicBanners(ctx context.Context) ([]dto.Banner, error) {
	items, err := s.Banners.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Banner, 0, len(items))
	for _, b := range items {
		out = append(out, dto.MapBanner(b))
	}
	return out, nil
}

func (s *Service) AllBanners(ctx context.Context) ([]dto.Banner, error) {
	items, err := s.Banners.List(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Banner, 0, len(items))
	for _, b := range items {
		out = append(out, dto.MapBanner(b))
	}
	return out, nil
}

type PartnerParams struct {
	Name    string
	LogoURL string
	Website string
}

func (s *Service) CreatePartner(ctx context.Context, params PartnerParams) (dto.Partner, error) {
	p, err := domaincontent.NewPartner(uuid.NewString(), params.Name, params.LogoURL, params.Website, s.now())
	if err != nil {
		return dto.Partner{}, err
	}
	if err := s.Partners.Save(ctx, p); err != nil {
		return dto.Partner{}, err
	}
	return dto.MapPartner(p), nil
}

func (s *Service) UpdatePartner(ctx context.Context, id string, params PartnerParams) (dto.Partner, error) {
	p, err := s.Partners.ByID(ctx, id)
	if err != nil {
		return dto.Partner{}, err
	}
	if strings.TrimSpace(params.Name) == "" {
		return dto.Partner{}, domaincontent.ErrNameRequired
	}
	p.Name = strings.TrimSpace(params.Name)
	p.LogoURL = params.LogoURL
	p.Website = params.Website
	if err := s.Partners.Save(ctx, p); err != nil {
		return dto.Partner{}, err
	}
	return dto.MapPartner(p), nil
}

func (s *Service) DeletePartner(ctx context.Context, id string) error {
	return s.Partners.Delete(ctx, id)
}

func (s *Service) ListPartners(ctx context.Context) ([]dto.Partner, error) {
	items, err := s.Partners.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Partner, 0, len(items))
	for _, p := range items {
		out = append(out, dto.MapPartner(p))
	}
	return out, nil
}

type LocationParams struct {
	Name     string
	Slug     string
	ImageURL string
}

func (s *Service) CreateLocation(ctx context.Context, params LocationParams) (dto.Location, error) {
	slug := params.Slug
	if strings.TrimSpace(slug) == "" {
		slug = domaincontent.Slugify(params.Name)
	}
	l, err := domaincontent.NewLocation(uuid.NewString(), params.Name, slug, params.ImageURL, s.now())
	if err != nil {
		return dto.Location{}, err
	}
	if err := s.Locations.Save(ctx, l); err != nil {
		return dto.Location{}, err
	}
	return dto.MapLocation(l), nil
}

func (s *Service) UpdateLocation(ctx context.Context, id string, params LocationParams) (dto.Location, error) {
	l, err := s.Locations.ByID(ctx, id)
	if err != nil {
		return dto.Location{}, err
	}
	if strings.TrimSpace(params.Name) == "" {
		return dto.Location{}, domaincontent.ErrNameRequired
	}
	l.Name = strings.TrimSpace(params.Name)
	if strings.TrimSpace(params.Slug) != "" {
		l.Slug = domaincontent.Slugify(params.Slug)
	}
	l.ImageURL = params.ImageURL
	if err := s.Locations.Save(ctx, l); err != nil {
		return dto.Location{}, err
	}
	return dto.MapLocation(l), nil
}

func (s *Service) DeleteLocation(ctx context.Context, id string) error {
	return s.Locations.Delete(ctx, id)
}

func (s *Service) ListLocations(ctx context.Context) ([]dto.Location, error) {
	items, err := s.Locations.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Location, 0, len(items))
	for _, l := range items {
		out = append(out, dto.MapLocation(l))
	}
	return out, nil
}

func (s *Service) LocationBySlug(ctx context.Context, slug string) (dto.Location, error) {
	l, err := s.Locations.BySlug(ctx, slug)
	if err != nil {
		return dto.Location{}, err
	}
	return dto.MapLocation(l), nil
}

type PostParams struct {
	Title     string
	Slug      string
	Body      string
	CoverURL  string
	Published bool
}

func (s *Service) CreatePost(ctx context.Context, authorID string, params PostParams) (dto.Post, error) {
	slug := params.Slug
	if strings.TrimSpace(slug) == "" {
		slug = domaincontent.Slugify(params.Title)
	}
	p, err := domaincontent.NewPost(uuid.NewString(), params.Title, slug, params.Body, params.CoverURL, authorID, s.now())
	if err != nil {
		return dto.Post{}, err
	}
	p.Published = params.Published
	if err := s.Posts.Save(ctx, p); err != nil {
		return dto.Post{}, err
	}
	return dto.MapPost(p, true), nil
}

func (s *Service) UpdatePost(ctx context.Context, id string, params PostParams) (dto.Post, error) {
	p, err := s.Posts.ByID(ctx, id)
	if err != nil {
		return dto.Post{}, err
	}
	if strings.TrimSpace(params.Title) == "" {
		return dto.Post{}, domaincontent.ErrTitleRequired
	}
	if strings.TrimSpace(params.Body) == "" {
		return dto.Post{}, domaincontent.ErrBodyRequired
	}
	p.Title = strings.TrimSpace(params.Title)
	if strings.TrimSpace(params.Slug) != "" {
		p.Slug = domaincontent.Slugify(params.Slug)
	}
	p.Body = params.Body
	p.CoverURL = params.CoverURL
	p.Published = params.Published
	p.UpdatedAt = s.now()
	if err := s.Posts.Save(ctx, p); err != nil {
		return dto.Post{}, err
	}
	return dto.MapPost(p, true), nil
}

func (s *Service) DeletePost(ctx context.Context, id string) error {
	return s.Posts.Delete(ctx, id)
}

// PublicPosts lists published posts without bodies.
func (s *Service) PublicPosts(ctx context.Context) ([]dto.Post, error) {
	items, err := s.Posts.List(ctx, true)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Post, 0, len(items))
	for _, p := range items {
		out = append(out, dto.MapPost(p, false))
	}
	return out, nil
}

func (s *Service) AllPosts(ctx context.Context) ([]dto.Post, error) {
	items, err := s.Posts.List(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Post, 0, len(items))
	for _, p := range items {
		out = append(out, dto.MapPost(p, false))
	}
	return out, nil
}

func (s *Service) PostBySlug(ctx context.Context, slug string) (dto.Post, error) {
	p, err := s.Posts.BySlug(ctx, slug)
	if err != nil {
		return dto.Post{}, err
	}
	if !p.Published {
		return dto.Post{}, domaincontent.ErrNotFound
	}
	return dto.MapPost(p, true), nil
}

type ContactParams struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// SubmitContact records a public contact-form message.
func (s *Service) SubmitContact(ctx context.Context, params ContactParams) (dto.ContactMessage, error) {
	m, err := domaincontent.NewContactMessage(uuid.NewString(), params.Name, params.Email, params.Subject, params.Body, s.now())
	if err != nil {
		return dto.ContactMessage{}, err
	}
	if err := s.Contacts.Save(ctx, m); err != nil {
		return dto.ContactMessage{}, err
	}
	if s.Logger != nil {
		s.Logger.Info("contact message received", "message_id", m.ID)
	}
	return dto.MapContactMessage(m), nil
}

func (s *Service) ListContacts(ctx context.Context, onlyUnhandled bool) ([]dto.ContactMessage, error) {
	items, err := s.Contacts.List(ctx, onlyUnhandled)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContactMessage, 0, len(items))
	for _, m := range items {
		out = append(out, dto.MapContactMessage(m))
	}
	return out, nil
}

func (s *Service) MarkContactHandled(ctx context.Context, id string) (dto.ContactMessage, error) {
	m, err := s.Contacts.ByID(ctx, id)
	if err != nil {
		return dto.ContactMessage{}, err
	}
	m.Handled = true
	if err := s.Contacts.Save(ctx, m); err != nil {
		return dto.ContactMessage{}, err
	}
	return dto.MapContactMessage(m), nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
