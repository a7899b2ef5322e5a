package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stkrfx/digitaloffices-1/internal/account"
	"github.com/stkrfx/digitaloffices-1/internal/api"
	"github.com/stkrfx/digitaloffices-1/internal/auth"
	"github.com/stkrfx/digitaloffices-1/internal/availability"
	"github.com/stkrfx/digitaloffices-1/internal/booking"
	"github.com/stkrfx/digitaloffices-1/internal/cache"
	"github.com/stkrfx/digitaloffices-1/internal/catalog"
	"github.com/stkrfx/digitaloffices-1/internal/db"
	"github.com/stkrfx/digitaloffices-1/internal/observability/metrics"
	"github.com/stkrfx/digitaloffices-1/internal/review"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction    bool
	ProdOrigins     string
	DBPool          *pgxpool.Pool
	Redis           *redis.Client
	Logger          *logrus.Logger
	Registry        *prometheus.Registry
	ProfileCacheTTL time.Duration
	JWTSecret       string
	JWTTTL          time.Duration
	BcryptCost      int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher, err := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	txManager := db.NewTxManager(cfg.DBPool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	bookingMetrics := metrics.NewBookingMetrics(cfg.Registry)
	httpMetrics := metrics.NewHTTPMetrics(cfg.Registry)

	// Account Module
	profileCache := cache.NewJSONCache(cfg.Redis, "profile", cfg.ProfileCacheTTL)
	accountService := account.NewService(
		account.NewPgxRepositories(cfg.DBPool),
		passwordHasher,
		profileCache,
		cfg.Logger.WithField("module", "account"),
	)

	// Catalog Module
	catalogRepo := catalog.NewPgxRepository(cfg.DBPool)
	catalogService := catalog.NewCatalog(catalogRepo, txManager, cfg.Logger.WithField("module", "catalog"))

	// Availability Module
	availabilityRepo := availability.NewPgxRepository(cfg.DBPool)
	availabilityService := availability.NewService(
		availabilityRepo, txManager, cfg.Logger.WithField("module", "availability"), bookingMetrics,
	)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(
		bookingRepo, txManager, catalogService, availabilityService,
		cfg.Logger.WithField("module", "booking"), bookingMetrics,
	)

	// Review Module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo, bookingService, cfg.Logger.WithField("module", "review"))

	// Router
	router, err := api.NewRouter(api.Config{
		IsProduction: cfg.IsProduction,
		ProdOrigins:  cfg.ProdOrigins,
		Logger:       cfg.Logger,
		Gatherer:     cfg.Registry,
		HTTPMetrics:  httpMetrics,
		HealthChecks: map[string]api.Pinger{
			"postgres": cfg.DBPool,
			"redis": api.PingerFunc(func(ctx context.Context) error {
				return cfg.Redis.Ping(ctx).Err()
			}),
		},
		AccountService:      accountService,
		CatalogService:      catalogService,
		AvailabilityService: availabilityService,
		BookingService:      bookingService,
		ReviewService:       reviewService,
		JWTManager:          jwtManager,
	})
	if err != nil {
		return nil, err
	}

	return &Container{Router: router}, nil
}
