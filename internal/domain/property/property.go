package property

import (
	"context"
	"errors"
	"strings"
	"time"

	"realty/internal/domain/shared/dates"
)

var (
	ErrTitleRequired      = errors.New("property: title is required")
	ErrHostRequired       = errors.New("property: host is required")
	ErrIDRequired         = errors.New("property: id is required")
	ErrInvalidListingType = errors.New("property: listing type must be RENT or SELL")
	ErrInvalidDuration    = errors.New("property: rent duration must be FLEXIBLE or FIXED")
	ErrPriceNegative      = errors.New("property: price must be non-negative")
	ErrInvalidWindow      = errors.New("property: availability window end precedes start")
	ErrInvalidState       = errors.New("property: invalid publish transition")
	ErrDateBlocked        = errors.New("property: date already blocked")
	ErrDateNotBlocked     = errors.New("property: date is not blocked")
	ErrNotFound           = errors.New("property: not found")
	ErrNotOwned           = errors.New("property: not owned by this host")
)

type ID string
type HostID string

type ListingType string

const (
	ListingRent ListingType = "RENT"
	ListingSale ListingType = "SELL"
)

type RentDuration string

const (
	DurationFlexible RentDuration = "FLEXIBLE"
	DurationFixed    RentDuration = "FIXED"
)

type PublishStatus string

const (
	StatusDraft     PublishStatus = "DRAFT"
	StatusPublished PublishStatus = "PUBLISHED"
	StatusSold      PublishStatus = "SOLD"
	StatusRented    PublishStatus = "RENTED"
)

type Address struct {
	Line1   string
	City    string
	Region  string
	Country string
	Lat     float64
	Lon     float64
}

func (a Address) Valid() bool {
	return strings.TrimSpace(a.Line1) != "" && strings.TrimSpace(a.City) != "" && strings.TrimSpace(a.Country) != ""
}

// Property is a listing offered for rent or sale. The host owns the
// availability window and the blocked-date list.
type Property struct {
	ID           ID
	Host         HostID
	Title        string
	Description  string
	Address      Address
	PriceCents   int64
	ListingType  ListingType
	RentDuration RentDuration
	Status       PublishStatus

	// Inclusive bounds within which any booking must fall. A nil bound
	// leaves that side open.
	CheckInFrom *dates.Day
	CheckOutBy  *dates.Day

	BlockedDates []dates.Day

	Bedrooms         int
	Bathrooms        int
	AreaSquareMeters float64
	Photos           []string
	ThumbnailURL     string

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Property, error)
	Save(ctx context.Context, p *Property) error
	Search(ctx context.Context, params SearchParams) (SearchResult, error)
	ListByHost(ctx context.Context, host HostID) ([]*Property, error)
}

type CreateParams struct {
	ID           ID
	Host         HostID
	Title        string
	Description  string
	Address      Address
	PriceCents   int64
	ListingType  ListingType
	RentDuration RentDuration
	Bedrooms     int
	Bathrooms    int
	AreaSqM      float64
	Now          time.Time
}

func New(params CreateParams) (*Property, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(string(params.Host)) == "" {
		return nil, ErrHostRequired
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.PriceCents < 0 {
		return nil, ErrPriceNegative
	}
	listingType, err := normalizeListingType(params.ListingType)
	if err != nil {
		return nil, err
	}
	duration, err := normalizeDuration(listingType, params.RentDuration)
	if err != nil {
		return nil, err
	}

	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	return &Property{
		ID:               params.ID,
		Host:             params.Host,
		Title:            strings.TrimSpace(params.Title),
		Description:      strings.TrimSpace(params.Description),
		Address:          params.Address,
		PriceCents:       params.PriceCents,
		ListingType:      listingType,
		RentDuration:     duration,
		Status:           StatusDraft,
		Bedrooms:         params.Bedrooms,
		Bathrooms:        params.Bathrooms,
		AreaSquareMeters: params.AreaSqM,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// FlexibleStay reports whether guests choose their own check-in/check-out
// range. Every other shape books a single appointment date.
func (p *Property) FlexibleStay() bool {
	return p.ListingType == ListingRent && p.RentDuration == DurationFlexible
}

func (p *Property) UpdateDetails(title, description string, priceCents int64, now time.Time) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if priceCents < 0 {
		return ErrPriceNegative
	}
	p.Title = strings.TrimSpace(title)
	p.Description = strings.TrimSpace(description)
	p.PriceCents = priceCents
	p.touch(now)
	return nil
}

// SetWindow replaces the availability window. Either bound may be nil.
func (p *Property) SetWindow(checkInFrom, checkOutBy *dates.Day, now time.Time) error {
	if checkInFrom != nil && checkOutBy != nil && checkOutBy.Before(*checkInFrom) {
		return ErrInvalidWindow
	}
	p.CheckInFrom = checkInFrom
	p.CheckOutBy = checkOutBy
	p.touch(now)
	return nil
}

func (p *Property) BlockDate(d dates.Day, now time.Time) error {
	for _, existing := range p.BlockedDates {
		if existing.Equal(d) {
			return ErrDateBlocked
		}
	}
	p.BlockedDates = append(p.BlockedDates, d)
	p.touch(now)
	return nil
}

func (p *Property) UnblockDate(d dates.Day, now time.Time) error {
	for i, existing := range p.BlockedDates {
		if existing.Equal(d) {
			p.BlockedDates = append(p.BlockedDates[:i], p.BlockedDates[i+1:]...)
			p.touch(now)
			return nil
		}
	}
	return ErrDateNotBlocked
}

func (p *Property) Publish(now time.Time) error {
	if p.Status != StatusDraft {
		return ErrInvalidState
	}
	if !p.Address.Valid() {
		return ErrInvalidState
	}
	p.Status = StatusPublished
	p.touch(now)
	return nil
}

func (p *Property) MarkSold(now time.Time) error {
	if p.Status != StatusPublished || p.ListingType != ListingSale {
		return ErrInvalidState
	}
	p.Status = StatusSold
	p.touch(now)
	return nil
}

func (p *Property) MarkRented(now time.Time) error {
	if p.Status != StatusPublished || p.ListingType != ListingRent {
		return ErrInvalidState
	}
	p.Status = StatusRented
	p.touch(now)
	return nil
}

func (p *Property) AddPhoto(url string, now time.Time) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}
	p.Photos = append(p.Photos, url)
	if p.ThumbnailURL == "" {
		p.ThumbnailURL = url
	}
	p.touch(now)
}

func (p *Property) touch(now time.Time) {
	if now.IsZero() {
		now = time.Now()
	}
	p.UpdatedAt = now.UTC()
}

func normalizeListingType(t ListingType) (ListingType, error) {
	switch ListingType(strings.ToUpper(strings.TrimSpace(string(t)))) {
	case ListingRent:
		return ListingRent, nil
	case ListingSale:
		return ListingSale, nil
	default:
		return "", ErrInvalidListingType
	}
}

func normalizeDuration(listing ListingType, d RentDuration) (RentDuration, error) {
	if listing == ListingSale {
		// Sale viewings are always single appointments.
		return DurationFixed, nil
	}
	switch RentDuration(strings.ToUpper(strings.TrimSpace(string(d)))) {
	case DurationFlexible:
		return DurationFlexible, nil
	case DurationFixed, "":
		return DurationFixed, nil
	default:
		return "", ErrInvalidDuration
	}
}
