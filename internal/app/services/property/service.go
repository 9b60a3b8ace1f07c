package property

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"

	"realty/internal/app/dto"
	domainproperty "realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
)

var ErrPhotoUploaderUnavailable = errors.New("property service: photo uploader not configured")

// Uploader stores a photo and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

type Service struct {
	Properties domainproperty.Repository
	Photos     Uploader
	Now        func() time.Time
	Logger     *slog.Logger
}

type CreateParams struct {
	Title        string
	Description  string
	Address      domainproperty.Address
	PriceCents   int64
	ListingType  string
	RentDuration string
	Bedrooms     int
	Bathrooms    int
	AreaSqM      float64
}

func (s *Service) Create(ctx context.Context, hostID string, params CreateParams) (dto.PropertyDetail, error) {
	prop, err := domainproperty.New(domainproperty.CreateParams{
		ID:           domainproperty.ID(uuid.NewString()),
		Host:         domainproperty.HostID(hostID),
		Title:        params.Title,
		Description:  params.Description,
		Address:      params.Address,
		PriceCents:   params.PriceCents,
		ListingType:  domainproperty.ListingType(params.ListingType),
		RentDuration: domainproperty.RentDuration(params.RentDuration),
		Bedrooms:     params.Bedrooms,
		Bathrooms:    params.Bathrooms,
		AreaSqM:      params.AreaSqM,
		Now:          s.now(),
	})
	if err != nil {
		return dto.PropertyDetail{}, err
	}
	if err := s.Properties.Save(ctx, prop); err != nil {
		return dto.PropertyDetail{}, err
	}
	if s.Logger != nil {
		s.Logger.Info("property created", "property_id", prop.ID, "host_id", hostID)
	}
	return dto.MapPropertyDetail(prop), nil
}

type UpdateParams struct {
	Title       string
	Description string
	PriceCents  int64
}

func (s *Service) Update(ctx context.Context, hostID, propertyID string, params UpdateParams) (dto.PropertyDetail, error) {
	return s.mutate(ctx, hostID, propertyID, func(p *domainproperty.Property) error {
		return p.UpdateDetails(params.Title, params.Description, params.PriceCents, s.now())
	})
}

// SetWindow replaces the availability window; nil bounds leave a side
// open.
func (s *Service) SetWindow(ctx context.Context, hostID, propertyID string, checkInFrom, checkOutBy *dates.Day) (dto.PropertyDetail, error) {
	return s.mutate(ctx, hostID, propertyID, func(p *domainproperty.Property) error {
		return p.SetWindow(checkInFrom, checkOutBy, s.now())
	})
}

func (s *Service) BlockDate(ctx context.Context, hostID, propertyID string, d dates.Day) (dto.PropertyDetail, error) {
	return s.mutate(ctx, hostID, propertyID, func(p *domainproperty.Property) error {
		return p.BlockDate(d, s.now())
	})
}

func (s *Service) UnblockDate(ctx context.Context, hostID, propertyID string, d dates.Day) (dto.PropertyDetail, error) {
	return s.mutate(ctx, hostID, propertyID, func(p *domainproperty.Property) error {
		return p.UnblockDate(d, s.now())
	})
}

func (s *Service) Publish(ctx context.Context, hostID, propertyID string) (dto.PropertyDetail, error) {
	return s.mutate(ctx, hostID, propertyID, func(p *domainproperty.Property) error {
		return p.Publish(s.now())
	})
}

func (s *Service) MarkSold(ctx context.Context, hostID, propertyID string) (dto.PropertyDetail, error) {
	return s.mutate(ctx, hostID, propertyID, func(p *domainproperty.Property) error {
		return p.MarkSold(s.now())
	})
}

func (s *Service) MarkRented(ctx context.Context, hostID, propertyID string) (dto.PropertyDetail, error) {
	return s.mutate(ctx, hostID, propertyID, func(p *domainproperty.Property) error {
		return p.MarkRented(s.now())
	})
}

// UploadPhoto stores the image and appends its URL to the listing.
func (s *Service) UploadPhoto(ctx context.Context, hostID, propertyID, filename, contentType string, reader io.Reader) (dto.PropertyDetail, error) {
	if s.Photos == nil {
		return dto.PropertyDetail{}, ErrPhotoUploaderUnavailable
	}
	prop, err := s.owned(ctx, hostID, propertyID)
	if err != nil {
		return dto.PropertyDetail{}, err
	}
	key := fmt.Sprintf("properties/%s/%s%s", propertyID, uuid.NewString(), path.Ext(filename))
	url, err := s.Photos.Upload(ctx, key, reader, contentType)
	if err != nil {
		return dto.PropertyDetail{}, fmt.Errorf("upload photo: %w", err)
	}
	prop.AddPhoto(url, s.now())
	if err := s.Properties.Save(ctx, prop); err != nil {
		return dto.PropertyDetail{}, err
	}
	if s.Logger != nil {
		s.Logger.Info("property photo added", "property_id", prop.ID, "key", key)
	}
	return dto.MapPropertyDetail(prop), nil
}

func (s *Service) HostProperties(ctx context.Context, hostID string) ([]dto.PropertyDetail, error) {
	items, err := s.Properties.ListByHost(ctx, domainproperty.HostID(hostID))
	if err != nil {
		return nil, err
	}
	out := make([]dto.PropertyDetail, 0, len(items))
	for _, p := range items {
		out = append(out, dto.MapPropertyDetail(p))
	}
	return out, nil
}

func (s *Service) HostProperty(ctx context.Context, hostID, propertyID string) (dto.PropertyDetail, error) {
	prop, err := s.owned(ctx, hostID, propertyID)
	if err != nil {
		return dto.PropertyDetail{}, err
	}
	return dto.MapPropertyDetail(prop), nil
}

// Search serves the public catalog: published listings only.
func (s *Service) Search(ctx context.Context, params domainproperty.SearchParams) (dto.PropertyCatalog, error) {
	params.OnlyPublished = true
	result, err := s.Properties.Search(ctx, params)
	if err != nil {
		return dto.PropertyCatalog{}, err
	}
	return dto.MapPropertyCatalog(result), nil
}

func (s *Service) PublicGet(ctx context.Context, propertyID string) (dto.PropertyDetail, error) {
	prop, err := s.Properties.ByID(ctx, domainproperty.ID(propertyID))
	if err != nil {
		return dto.PropertyDetail{}, err
	}
	if prop.Status == domainproperty.StatusDraft {
		return dto.PropertyDetail{}, domainproperty.ErrNotFound
	}
	return dto.MapPropertyDetail(prop), nil
}

func (s *Service) mutate(ctx context.Context, hostID, propertyID string, apply func(*domainproperty.Property) error) (dto.PropertyDetail, error) {
	prop, err := s.owned(ctx, hostID, propertyID)
	if err != nil {
		return dto.PropertyDetail{}, err
	}
	if err := apply(prop); err != nil {
		return dto.PropertyDetail{}, err
	}
	if err := s.Properties.Save(ctx, prop); err != nil {
		return dto.PropertyDetail{}, err
	}
	return dto.MapPropertyDetail(prop), nil
}

func (s *Service) owned(ctx context.Context, hostID, propertyID string) (*domainproperty.Property, error) {
	prop, err := s.Properties.ByID(ctx, domainproperty.ID(propertyID))
	if err != nil {
		return nil, err
	}
	if prop.Host != domainproperty.HostID(hostID) {
		return nil, domainproperty.ErrNotOwned
	}
	return prop, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
