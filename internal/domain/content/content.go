package content

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound      = errors.New("content: not found")
	ErrTitleRequired = errors.New("content: title is required")
	ErrNameRequired  = errors.New("content: name is required")
	ErrSlugRequired  = errors.New("content: slug is required")
	ErrEmailRequired = errors.New("content: email is required")
	ErrBodyRequired  = errors.New("content: body is required")
)

// Banner is a homepage carousel entry managed from the admin dashboard.
type Banner struct {
	ID        string
	Title     string
	ImageURL  string
	LinkURL   string
	Position  int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Partner struct {
	ID        string
	Name      string
	LogoURL   string
	Website   string
	CreatedAt time.Time
}

// Location is a curated city/area page used for browse navigation.
type Location struct {
	ID        string
	Name      string
	Slug      string
	ImageURL  string
	CreatedAt time.Time
}

type Post struct {
	ID        string
	Title     string
	Slug      string
	Body      string
	CoverURL  string
	AuthorID  string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactMessage is a public contact-form submission awaiting staff
// follow-up.
type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Body      string
	Handled   bool
	CreatedAt time.Time
}

type BannerRepository interface {
	ByID(ctx context.Context, id string) (*Banner, error)
	Save(ctx context.Context, b *Banner) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, onlyActive bool) ([]*Banner, error)
}

type PartnerRepository interface {
	ByID(ctx context.Context, id string) (*Partner, error)
	Save(ctx context.Context, p *Partner) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Partner, error)
}

type LocationRepository interface {
	ByID(ctx context.Context, id string) (*Location, error)
	BySlug(ctx context.Context, slug string) (*Location, error)
	Save(ctx context.Context, l *Location) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*Location, error)
}

type PostRepository interface {
	ByID(ctx context.Context, id string) (*Post, error)
	BySlug(ctx context.Context, slug string) (*Post, error)
	Save(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, onlyPublished bool) ([]*Post, error)
}

type ContactRepository interface {
	ByID(ctx context.Context, id string) (*ContactMessage, error)
	Save(ctx context.Context, m *ContactMessage) error
	List(ctx context.Context, onlyUnhandled bool) ([]*ContactMessage, error)
}

func NewBanner(id, title, imageURL, linkURL string, position int, now time.Time) (*Banner, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	now = orNow(now)
	return &Banner{
		ID:        id,
		Title:     strings.TrimSpace(title),
		ImageURL:  strings.TrimSpace(imageURL),
		LinkURL:   strings.TrimSpace(linkURL),
		Position:  position,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func NewPartner(id, name, logoURL, website string, now time.Time) (*Partner, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	return &Partner{
		ID:        id,
		Name:      strings.TrimSpace(name),
		LogoURL:   strings.TrimSpace(logoURL),
		Website:   strings.TrimSpace(website),
		CreatedAt: orNow(now),
	}, nil
}

func NewLocation(id, name, slug, imageURL string, now time.Time) (*Location, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	slug = Slugify(slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return nil, ErrSlugRequired
	}
	return &Location{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Slug:      slug,
		ImageURL:  strings.TrimSpace(imageURL),
		CreatedAt: orNow(now),
	}, nil
}

func NewPost(id, title, slug, body, coverURL, authorID string, now time.Time) (*Post, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrBodyRequired
	}
	slug = Slugify(slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return nil, ErrSlugRequired
	}
	now = orNow(now)
	return &Post{
		ID:        id,
		Title:     strings.TrimSpace(title),
		Slug:      slug,
		Body:      body,
		CoverURL:  strings.TrimSpace(coverURL),
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func NewContactMessage(id, name, email, subject, body string, now time.Time) (*ContactMessage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrBodyRequired
	}
	return &ContactMessage{
		ID:        id,
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Subject:   strings.TrimSpace(subject),
		Body:      strings.TrimSpace(body),
		CreatedAt: orNow(now),
	}, nil
}

// Slugify lowercases and dash-joins; anything outside [a-z0-9] becomes a
// separator.
func Slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func orNow(now time.Time) time.Time {
	if now.IsZero() {
		now = time.Now()
	}
	return now.UTC()
}
