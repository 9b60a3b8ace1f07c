package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realty/internal/app/services/auth"
	availabilityservice "realty/internal/app/services/availability"
	bookingservice "realty/internal/app/services/booking"
	contentservice "realty/internal/app/services/content"
	propertyservice "realty/internal/app/services/property"
	"realty/internal/app/uow"
	domainbooking "realty/internal/domain/booking"
	domaincontent "realty/internal/domain/content"
	domainproperty "realty/internal/domain/property"
	"realty/internal/domain/shared/events"
	domainuser "realty/internal/domain/user"
	"realty/internal/infra/broker/kafka"
	rediscache "realty/internal/infra/cache/redis"
	"realty/internal/infra/config"
	mongodb "realty/internal/infra/db/mongo"
	ginserver "realty/internal/infra/http/gin"
	"realty/internal/infra/notify"
	"realty/internal/infra/obs"
	"realty/internal/infra/security"
	"realty/internal/infra/storage/memory"
	"realty/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.JWTSecret = getenv("JWT_SECRET", "dev-secret-change-me")
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	app, cleanup := buildApplication(ctx, cfg, logger)
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Checks: app.readiness,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers  ginserver.Handlers
	readiness map[string]obs.ReadinessCheck
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, func()) {
	readiness := map[string]obs.ReadinessCheck{}
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var (
		properties domainproperty.Repository
		bookings   domainbooking.Repository
		users      domainuser.Repository
		uowFactory uow.Factory
		banners    domaincontent.BannerRepository
		partners   domaincontent.PartnerRepository
		locations  domaincontent.LocationRepository
		posts      domaincontent.PostRepository
		contacts   domaincontent.ContactRepository
	)

	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			logger.Error("mongo connect failed, falling back to memory stores", "error", err)
		} else {
			propertyRepo := mongodb.NewPropertyRepository(client.DB)
			bookingRepo := mongodb.NewBookingRepository(client.DB)
			userRepo := mongodb.NewUserRepository(client.DB)
			if err := userRepo.EnsureIndexes(ctx); err != nil {
				logger.Warn("mongo index creation failed", "error", err)
			}
			content := mongodb.NewContentRepositories(client.DB)

			properties = propertyRepo
			bookings = bookingRepo
			users = userRepo
			banners = content.Banners
			partners = content.Partners
			locations = content.Locations
			posts = content.Posts
			contacts = content.Contacts
			uowFactory = mongodb.Factory{DB: client.DB, PropertyRepo: propertyRepo, BookingRepo: bookingRepo}
			readiness["mongo"] = client.Ping
			cleanups = append(cleanups, func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				_ = client.Close(closeCtx)
			})
		}
	}
	if properties == nil {
		logger.Info("using in-memory repositories")
		propertyRepo := memory.NewPropertyRepository()
		bookingRepo := memory.NewBookingRepository()
		contentStore := memory.NewContentStore()

		properties = propertyRepo
		bookings = bookingRepo
		users = memory.NewUserRepository()
		banners = memory.BannerStore{ContentStore: contentStore}
		partners = memory.PartnerStore{ContentStore: contentStore}
		locations = memory.LocationStore{ContentStore: contentStore}
		posts = memory.PostStore{ContentStore: contentStore}
		contacts = memory.ContactStore{ContentStore: contentStore}
		uowFactory = memory.Factory{PropertyRepo: propertyRepo, BookingRepo: bookingRepo}
	}
	_ = bookings

	var refreshStore auth.RefreshStore
	var codeStore auth.CodeStore
	if cfg.RedisAddr != "" {
		redisClient := rediscache.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		refreshStore = rediscache.RefreshStore{Client: redisClient}
		codeStore = rediscache.CodeStore{Client: redisClient}
		readiness["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		cleanups = append(cleanups, func() { _ = redisClient.Close() })
	} else {
		logger.Info("redis not configured, using in-memory token stores")
		refreshStore = memory.NewKVStore()
		codeStore = memory.NewKVStore()
	}

	var publisher bookingservice.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicPrefix, logger)
		if err != nil {
			logger.Error("kafka producer init failed, events will be logged only", "error", err)
		} else {
			publisher = producer
			cleanups = append(cleanups, func() { _ = producer.Close() })
		}
	}
	if publisher == nil {
		publisher = logPublisher{logger: logger}
	}

	var uploader propertyservice.Uploader
	if s3Client, err := s3.NewClient(s3.Options{
		Endpoint:       cfg.S3Endpoint,
		PublicEndpoint: cfg.S3PublicEndpoint,
		AccessKey:      cfg.S3AccessKey,
		SecretKey:      cfg.S3SecretKey,
		Bucket:         cfg.S3Bucket,
		UseSSL:         cfg.S3UseSSL,
	}, logger); err != nil {
		logger.Warn("s3 uploader unavailable", "error", err)
	} else {
		uploader = s3Client
	}

	var mailer auth.Mailer
	if cfg.SMTPHost != "" {
		mailer = notify.SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		}
	} else {
		mailer = notify.LogMailer{Logger: logger}
	}

	authService := &auth.Service{
		Users:     users,
		Passwords: security.BcryptHasher{},
		Tokens: security.JWTIssuer{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  cfg.AccessTTL,
			RefreshTTL: cfg.RefreshTTL,
		},
		Refresh:    refreshStore,
		Codes:      codeStore,
		CodeGen:    security.DigitCodeGenerator{},
		Mail:       mailer,
		RefreshTTL: cfg.RefreshTTL,
		OTPTTL:     cfg.OTPTTL,
		Logger:     logger,
	}
	bookingService := &bookingservice.Service{
		UoW:    uowFactory,
		Events: publisher,
		Logger: logger,
	}
	availabilityService := &availabilityservice.Service{
		UoW:         uowFactory,
		HorizonDays: cfg.BookingHorizon,
	}
	propertyService := &propertyservice.Service{
		Properties: properties,
		Photos:     uploader,
		Logger:     logger,
	}
	contentService := &contentservice.Service{
		Banners:   banners,
		Partners:  partners,
		Locations: locations,
		Posts:     posts,
		Contacts:  contacts,
		Users:     users,
		Logger:    logger,
	}

	return application{
		handlers: ginserver.Handlers{
			Auth:           ginserver.AuthHandler{Service: authService},
			Booking:        ginserver.BookingHandler{Service: bookingService},
			Availability:   ginserver.AvailabilityHandler{Service: availabilityService},
			Property:       ginserver.PropertyHandler{Service: propertyService},
			HostProperty:   ginserver.HostPropertyHandler{Service: propertyService},
			Content:        ginserver.ContentHandler{Service: contentService},
			Admin:          ginserver.AdminHandler{Service: contentService},
			AuthMiddleware: ginserver.AuthMiddleware{Service: authService, Logger: logger}.Handle,
		},
		readiness: readiness,
	}, cleanup
}

// logPublisher stands in for kafka in dev: events go to the log.
type logPublisher struct {
	logger *slog.Logger
}

func (p logPublisher) Publish(_ context.Context, event events.DomainEvent) error {
	if p.logger != nil {
		p.logger.Info("event", "name", event.EventName(), "aggregate_id", event.AggregateID())
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
