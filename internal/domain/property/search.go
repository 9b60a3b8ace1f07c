package property

import "strings"

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

type SearchParams struct {
	City        string
	Country     string
	ListingType ListingType
	MinPrice    int64
	MaxPrice    int64
	MinBedrooms int
	Sort        SortOrder
	Limit       int
	Offset      int

	// OnlyPublished is the default for the public catalog; admin queries
	// may clear it.
	OnlyPublished bool
}

type SearchResult struct {
	Items []*Property
	Total int
}

// Normalized clamps paging and lowercases location filters.
func (p SearchParams) Normalized() SearchParams {
	out := p
	out.City = strings.TrimSpace(p.City)
	out.Country = strings.TrimSpace(p.Country)
	if out.Limit <= 0 || out.Limit > 100 {
		out.Limit = 20
	}
	if out.Offset < 0 {
		out.Offset = 0
	}
	switch out.Sort {
	case SortNewest, SortPriceAsc, SortPriceDesc:
	default:
		out.Sort = SortNewest
	}
	return out
}
