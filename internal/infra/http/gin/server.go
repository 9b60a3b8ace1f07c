package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"realty/internal/infra/config"
	"realty/internal/infra/obs"
)

type Handlers struct {
	Auth         AuthHandler
	Booking      BookingHandler
	Availability AvailabilityHandler
	Property     PropertyHandler
	HostProperty HostPropertyHandler
	Content      ContentHandler
	Admin        AdminHandler

	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/verify", h.Auth.Verify)
	api.POST("/auth/resend", h.Auth.Resend)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/auth/me", h.Auth.Me)

	api.GET("/properties", h.Property.Catalog)
	api.GET("/properties/:id", h.Property.Get)
	api.GET("/properties/:id/calendar", h.Availability.Calendar)

	api.POST("/bookings", h.Booking.Create)
	api.POST("/bookings/:id/cancel", h.Booking.Cancel)
	api.GET("/me/bookings", h.Booking.MyBookings)

	api.GET("/banners", h.Content.Banners)
	api.GET("/partners", h.Content.Partners)
	api.GET("/locations", h.Content.Locations)
	api.GET("/posts", h.Content.Posts)
	api.GET("/posts/:slug", h.Content.PostBySlug)
	api.POST("/contact", h.Content.SubmitContact)

	host := api.Group("/host")
	host.GET("/properties", h.HostProperty.List)
	host.POST("/properties", h.HostProperty.Create)
	host.GET("/properties/:id", h.HostProperty.Get)
	host.PUT("/properties/:id", h.HostProperty.Update)
	host.PUT("/properties/:id/window", h.HostProperty.SetWindow)
	host.POST("/properties/:id/blocked-dates", h.HostProperty.BlockDate)
	host.DELETE("/properties/:id/blocked-dates", h.HostProperty.UnblockDate)
	host.POST("/properties/:id/publish", h.HostProperty.Publish)
	host.POST("/properties/:id/sold", h.HostProperty.MarkSold)
	host.POST("/properties/:id/rented", h.HostProperty.MarkRented)
	host.POST("/properties/:id/photos", h.HostProperty.UploadPhoto)
	host.GET("/properties/:id/bookings", h.Booking.PropertyBookings)
	host.POST("/bookings/:id/confirm", h.Booking.Confirm)

	admin := api.Group("/admin")
	admin.GET("/banners", h.Admin.ListBanners)
	admin.POST("/banners", h.Admin.CreateBanner)
	admin.PUT("/banners/:id", h.Admin.UpdateBanner)
	admin.DELETE("/banners/:id", h.Admin.DeleteBanner)
	admin.POST("/partners", h.Admin.CreatePartner)
	admin.PUT("/partners/:id", h.Admin.UpdatePartner)
	admin.DELETE("/partners/:id", h.Admin.DeletePartner)
	admin.POST("/locations", h.Admin.CreateLocation)
	admin.PUT("/locations/:id", h.Admin.UpdateLocation)
	admin.DELETE("/locations/:id", h.Admin.DeleteLocation)
	admin.GET("/posts", h.Admin.ListPosts)
	admin.POST("/posts", h.Admin.CreatePost)
	admin.PUT("/posts/:id", h.Admin.UpdatePost)
	admin.DELETE("/posts/:id", h.Admin.DeletePost)
	admin.GET("/contact", h.Admin.ListContacts)
	admin.POST("/contact/:id/handled", h.Admin.MarkContactHandled)
	admin.GET("/users", h.Admin.ListUsers)
	admin.PUT("/users/:id/roles", h.Admin.SetUserRoles)
	admin.PUT("/users/:id/blocked", h.Admin.SetUserBlocked)

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
