package dto

import (
	"time"

	domaincontent "realty/internal/domain/content"
)

type Banner struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url,omitempty"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

type Partner struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
	Website string `json:"website,omitempty"`
}

type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url,omitempty"`
}

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body,omitempty"`
	CoverURL  string    `json:"cover_url,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	Handled   bool      `json:"handled"`
	CreatedAt time.Time `json:"created_at"`
}

func MapBanner(b *domaincontent.Banner) Banner {
	return Banner{ID: b.ID, Title: b.Title, ImageURL: b.ImageURL, LinkURL: b.LinkURL, Position: b.Position, Active: b.Active}
}

func MapPartner(p *domaincontent.Partner) Partner {
	return Partner{ID: p.ID, Name: p.Name, LogoURL: p.LogoURL, Website: p.Website}
}

func MapLocation(l *domaincontent.Location) Location {
	return Location{ID: l.ID, Name: l.Name, Slug: l.Slug, ImageURL: l.ImageURL}
}

func MapPost(p *domaincontent.Post, includeBody bool) Post {
	out := Post{ID: p.ID, Title: p.Title, Slug: p.Slug, CoverURL: p.CoverURL, Published: p.Published, CreatedAt: p.CreatedAt}
	if includeBody {
		out.Body = p.Body
	}
	return out
}

func MapContactMessage(m *domaincontent.ContactMessage) ContactMessage {
	return ContactMessage{ID: m.ID, Name: m.Name, Email: m.Email, Subject: m.Subject, Body: m.Body, Handled: m.Handled, CreatedAt: m.CreatedAt}
}
