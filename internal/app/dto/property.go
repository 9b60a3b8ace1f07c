package dto

import (
	"time"

	domainproperty "realty/internal/domain/property"
)

type Address struct {
	Line1   string  `json:"line1"`
	City    string  `json:"city"`
	Region  string  `json:"region,omitempty"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat,omitempty"`
	Lon     float64 `json:"lon,omitempty"`
}

type PropertySummary struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	City         string  `json:"city"`
	Country      string  `json:"country"`
	PriceCents   int64   `json:"price_cents"`
	ListingType  string  `json:"listing_type"`
	RentDuration string  `json:"rent_duration"`
	Status       string  `json:"status"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	AreaSqM      float64 `json:"area_sq_m"`
	ThumbnailURL string  `json:"thumbnail_url,omitempty"`
}

type PropertyDetail struct {
	PropertySummary
	Description  string    `json:"description"`
	Address      Address   `json:"address"`
	Photos       []string  `json:"photos"`
	CheckInFrom  *string   `json:"checkin_date,omitempty"`
	CheckOutBy   *string   `json:"checkout_date,omitempty"`
	BlockedDates []string  `json:"blocked_dates"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PropertyCatalog struct {
	Items []PropertySummary `json:"items"`
	Total int               `json:"total"`
}

func MapPropertySummary(p *domainproperty.Property) PropertySummary {
	return PropertySummary{
		ID:           string(p.ID),
		Title:        p.Title,
		City:         p.Address.City,
		Country:      p.Address.Country,
		PriceCents:   p.PriceCents,
		ListingType:  string(p.ListingType),
		RentDuration: string(p.RentDuration),
		Status:       string(p.Status),
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		AreaSqM:      p.AreaSquareMeters,
		ThumbnailURL: p.ThumbnailURL,
	}
}

func MapPropertyDetail(p *domainproperty.Property) PropertyDetail {
	detail := PropertyDetail{
		PropertySummary: MapPropertySummary(p),
		Description:     p.Description,
		Address: Address{
			Line1:   p.Address.Line1,
			City:    p.Address.City,
			Region:  p.Address.Region,
			Country: p.Address.Country,
			Lat:     p.Address.Lat,
			Lon:     p.Address.Lon,
		},
		Photos:       append([]string(nil), p.Photos...),
		BlockedDates: make([]string, 0, len(p.BlockedDates)),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.CheckInFrom != nil {
		s := p.CheckInFrom.String()
		detail.CheckInFrom = &s
	}
	if p.CheckOutBy != nil {
		s := p.CheckOutBy.String()
		detail.CheckOutBy = &s
	}
	for _, d := range p.BlockedDates {
		detail.BlockedDates = append(detail.BlockedDates, d.String())
	}
	return detail
}

func MapPropertyCatalog(result domainproperty.SearchResult) PropertyCatalog {
	items := make([]PropertySummary, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, MapPropertySummary(p))
	}
	return PropertyCatalog{Items: items, Total: result.Total}
}
