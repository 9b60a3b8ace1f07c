package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	contentservice "realty/internal/app/services/content"
)

// AdminHandler backs the dashboard: content CRUD, contact inbox and user
// management. Every route requires the admin role.
type AdminHandler struct {
	Service *contentservice.Service
}

type bannerPayload struct {
	Title    string `json:"title" binding:"required"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

func (h AdminHandler) CreateBanner(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	var req bannerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	banner, err := h.Service.CreateBanner(c.Request.Context(), contentservice.BannerParams(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, banner)
}

func (h AdminHandler) UpdateBanner(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	var req bannerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	banner, err := h.Service.UpdateBanner(c.Request.Context(), c.Param("id"), contentservice.BannerParams(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, banner)
}

func (h AdminHandler) DeleteBanner(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if err := h.Service.DeleteBanner(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h AdminHandler) ListBanners(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	items, err := h.Service.AllBanners(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type partnerPayload struct {
	Name    string `json:"name" binding:"required"`
	LogoURL string `json:"logo_url"`
	Website string `json:"website"`
}

func (h AdminHandler) CreatePartner(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	var req partnerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	partner, err := h.Service.CreatePartner(c.Request.Context(), contentservice.PartnerParams(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, partner)
}

func (h AdminHandler) UpdatePartner(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	var req partnerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	partner, err := h.Service.UpdatePartner(c.Request.Context(), c.Param("id"), contentservice.PartnerParams(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, partner)
}

func (h AdminHandler) DeletePartner(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if err := h.Service.DeletePartner(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type locationPayload struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug"`
	ImageURL string `json:"image_url"`
}

func (h AdminHandler) CreateLocation(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	var req locationPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	location, err := h.Service.CreateLocation(c.Request.Context(), contentservice.LocationParams(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, location)
}

func (h AdminHandler) UpdateLocation(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	var req locationPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	location, err := h.Service.UpdateLocation(c.Request.Context(), c.Param("id"), contentservice.LocationParams(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, location)
}

func (h AdminHandler) DeleteLocation(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if err := h.Service.DeleteLocation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type postPayload struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug"`
	Body      string `json:"body" binding:"required"`
	CoverURL  string `json:"cover_url"`
	Published bool   `json:"published"`
}

func (h AdminHandler) CreatePost(c *gin.Context) {
	user, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	var req postPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := h.Service.CreatePost(c.Request.Context(), user.ID, contentservice.PostParams(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h AdminHandler) UpdatePost(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	var req postPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post, err := h.Service.UpdatePost(c.Request.Context(), c.Param("id"), contentservice.PostParams(req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h AdminHandler) DeletePost(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	if err := h.Service.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h AdminHandler) ListPosts(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	items, err := h.Service.AllPosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h AdminHandler) ListContacts(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	onlyUnhandled := c.Query("unhandled") == "true"
	items, err := h.Service.ListContacts(c.Request.Context(), onlyUnhandled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h AdminHandler) MarkContactHandled(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	msg, err := h.Service.MarkContactHandled(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h AdminHandler) ListUsers(c *gin.Context) {
	if _, ok := requireRole(c, "admin"); !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	items, err := h.Service.ListUsers(c.Request.Context(), c.Query("role"), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type rolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

func (h AdminHandler) SetUserRoles(c *gin.Context) {
	admin, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	var req rolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := h.Service.SetUserRoles(c.Request.Context(), admin.ID, c.Param("id"), req.Roles)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type blockRequest struct {
	Blocked bool `json:"blocked"`
}

func (h AdminHandler) SetUserBlocked(c *gin.Context) {
	admin, ok := requireRole(c, "admin")
	if !ok {
		return
	}
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := h.Service.SetUserBlocked(c.Request.Context(), admin.ID, c.Param("id"), req.Blocked)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
