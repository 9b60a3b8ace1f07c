package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	propertyservice "realty/internal/app/services/property"
	domainproperty "realty/internal/domain/property"
)

// PropertyHandler serves the public catalog.
type PropertyHandler struct {
	Service *propertyservice.Service
}

func (h PropertyHandler) Catalog(c *gin.Context) {
	params := domainproperty.SearchParams{
		City:        c.Query("city"),
		Country:     c.Query("country"),
		ListingType: domainproperty.ListingType(c.Query("listing_type")),
		Sort:        domainproperty.SortOrder(c.Query("sort")),
		MinPrice:    queryInt64(c, "min_price"),
		MaxPrice:    queryInt64(c, "max_price"),
		MinBedrooms: queryInt(c, "min_bedrooms"),
		Limit:       queryInt(c, "limit"),
		Offset:      queryInt(c, "offset"),
	}
	catalog, err := h.Service.Search(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}

func (h PropertyHandler) Get(c *gin.Context) {
	detail, err := h.Service.PublicGet(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

func queryInt64(c *gin.Context, key string) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
