package ginserver

import (
	"context"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"realty/internal/app/dto"
	propertyservice "realty/internal/app/services/property"
	"realty/internal/domain/availability"
	domainproperty "realty/internal/domain/property"
	"realty/internal/domain/shared/dates"
)

type HostPropertyHandler struct {
	Service *propertyservice.Service
}

type propertyPayload struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description"`
	Line1        string  `json:"line1"`
	City         string  `json:"city"`
	Region       string  `json:"region"`
	Country      string  `json:"country"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	PriceCents   int64   `json:"price_cents"`
	ListingType  string  `json:"listing_type" binding:"required"`
	RentDuration string  `json:"rent_duration"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    int     `json:"bathrooms"`
	AreaSqM      float64 `json:"area_sq_m"`
}

func (h HostPropertyHandler) Create(c *gin.Context) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	var req propertyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	detail, err := h.Service.Create(c.Request.Context(), user.ID, propertyservice.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		Address: domainproperty.Address{
			Line1:   req.Line1,
			City:    req.City,
			Region:  req.Region,
			Country: req.Country,
			Lat:     req.Lat,
			Lon:     req.Lon,
		},
		PriceCents:   req.PriceCents,
		ListingType:  req.ListingType,
		RentDuration: req.RentDuration,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		AreaSqM:      req.AreaSqM,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h HostPropertyHandler) List(c *gin.Context) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	items, err := h.Service.HostProperties(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h HostPropertyHandler) Get(c *gin.Context) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	detail, err := h.Service.HostProperty(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type updatePropertyRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
}

func (h HostPropertyHandler) Update(c *gin.Context) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	var req updatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	detail, err := h.Service.Update(c.Request.Context(), user.ID, c.Param("id"), propertyservice.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		PriceCents:  req.PriceCents,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type windowRequest struct {
	CheckInFrom string `json:"checkin_date"`
	CheckOutBy  string `json:"checkout_date"`
}

// SetWindow accepts empty strings to clear either bound.
func (h HostPropertyHandler) SetWindow(c *gin.Context) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	var req windowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var from, to *dates.Day
	if req.CheckInFrom != "" {
		day, err := dates.ParseDay(req.CheckInFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": string(availability.ReasonMalformedInput)})
			return
		}
		from = &day
	}
	if req.CheckOutBy != "" {
		day, err := dates.ParseDay(req.CheckOutBy)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": string(availability.ReasonMalformedInput)})
			return
		}
		to = &day
	}
	detail, err := h.Service.SetWindow(c.Request.Context(), user.ID, c.Param("id"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

type blockedDateRequest struct {
	Date string `json:"date" binding:"required"`
}

func (h HostPropertyHandler) BlockDate(c *gin.Context) {
	h.toggleDate(c, h.Service.BlockDate)
}

func (h HostPropertyHandler) UnblockDate(c *gin.Context) {
	h.toggleDate(c, h.Service.UnblockDate)
}

func (h HostPropertyHandler) toggleDate(c *gin.Context, apply func(ctx context.Context, hostID, propertyID string, d dates.Day) (dto.PropertyDetail, error)) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	var req blockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	day, err := dates.ParseDay(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "reason": string(availability.ReasonMalformedInput)})
		return
	}
	detail, err := apply(c.Request.Context(), user.ID, c.Param("id"), day)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h HostPropertyHandler) Publish(c *gin.Context) {
	h.transition(c, h.Service.Publish)
}

func (h HostPropertyHandler) MarkSold(c *gin.Context) {
	h.transition(c, h.Service.MarkSold)
}

func (h HostPropertyHandler) MarkRented(c *gin.Context) {
	h.transition(c, h.Service.MarkRented)
}

func (h HostPropertyHandler) transition(c *gin.Context, apply func(ctx context.Context, hostID, propertyID string) (dto.PropertyDetail, error)) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	detail, err := apply(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UploadPhoto accepts a multipart form with a "photo" file field.
func (h HostPropertyHandler) UploadPhoto(c *gin.Context) {
	user, ok := requireRole(c, "host")
	if !ok {
		return
	}
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	detail, err := h.Service.UploadPhoto(c.Request.Context(), user.ID, c.Param("id"), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}
