package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainproperty "realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
)

// PropertyRepository is an in-memory implementation for dev and tests.
type PropertyRepository struct {
	mu    sync.RWMutex
	items map[domainproperty.ID]*domainproperty.Property
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{
		items: make(map[domainproperty.ID]*domainproperty.Property),
	}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperty.ID) (*domainproperty.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	prop, ok := r.items[id]
	if !ok {
		return nil, domainproperty.ErrNotFound
	}
	return cloneProperty(prop), nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.Version++
	r.items[p.ID] = cloneProperty(p)
	return nil
}

func (r *PropertyRepository) Search(ctx context.Context, params domainproperty.SearchParams) (domainproperty.SearchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts := params.Normalized()
	matches := make([]*domainproperty.Property, 0, len(r.items))
	for _, prop := range r.items {
		if opts.OnlyPublished && prop.Status != domainproperty.StatusPublished {
			continue
		}
		if opts.City != "" && !strings.EqualFold(prop.Address.City, opts.City) {
			continue
		}
		if opts.Country != "" && !strings.EqualFold(prop.Address.Country, opts.Country) {
			continue
		}
		if opts.ListingType != "" && prop.ListingType != opts.ListingType {
			continue
		}
		if opts.MinPrice > 0 && prop.PriceCents < opts.MinPrice {
			continue
		}
		if opts.MaxPrice > 0 && prop.PriceCents > opts.MaxPrice {
			continue
		}
		if opts.MinBedrooms > 0 && prop.Bedrooms < opts.MinBedrooms {
			continue
		}
		matches = append(matches, prop)
	}

	sort.Slice(matches, func(i, j int) bool {
		switch opts.Sort {
		case domainproperty.SortPriceAsc:
			return matches[i].PriceCents < matches[j].PriceCents
		case domainproperty.SortPriceDesc:
			return matches[i].PriceCents > matches[j].PriceCents
		default:
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
	})

	total := len(matches)
	if opts.Offset >= total {
		return domainproperty.SearchResult{Total: total}, nil
	}
	matches = matches[opts.Offset:]
	if len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	items := make([]*domainproperty.Property, 0, len(matches))
	for _, prop := range matches {
		items = append(items, cloneProperty(prop))
	}
	return domainproperty.SearchResult{Items: items, Total: total}, nil
}

func (r *PropertyRepository) ListByHost(ctx context.Context, host domainproperty.HostID) ([]*domainproperty.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []*domainproperty.Property
	for _, prop := range r.items {
		if prop.Host == host {
			items = append(items, cloneProperty(prop))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func cloneProperty(p *domainproperty.Property) *domainproperty.Property {
	out := *p
	if p.CheckInFrom != nil {
		v := *p.CheckInFrom
		out.CheckInFrom = &v
	}
	if p.CheckOutBy != nil {
		v := *p.CheckOutBy
		out.CheckOutBy = &v
	}
	out.BlockedDates = append([]dates.Day(nil), p.BlockedDates...)
	out.Photos = append([]string(nil), p.Photos...)
	return &out
}
