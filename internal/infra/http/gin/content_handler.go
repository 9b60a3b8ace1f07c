package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	contentservice "realty/internal/app/services/content"
)

// ContentHandler serves the public content pages.
type ContentHandler struct {
	Service *contentservice.Service
}

func (h ContentHandler) Banners(c *gin.Context) {
	items, err := h.Service.PublicBanners(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h ContentHandler) Partners(c *gin.Context) {
	items, err := h.Service.ListPartners(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h ContentHandler) Locations(c *gin.Context) {
	items, err := h.Service.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h ContentHandler) Posts(c *gin.Context) {
	items, err := h.Service.PublicPosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h ContentHandler) PostBySlug(c *gin.Context) {
	post, err := h.Service.PostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

type contactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

func (h ContentHandler) SubmitContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg, err := h.Service.SubmitContact(c.Request.Context(), contentservice.ContactParams{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
