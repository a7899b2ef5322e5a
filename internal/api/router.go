package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/stkrfx/digitaloffices-1/internal/account"
	accountHttp "github.com/stkrfx/digitaloffices-1/internal/account/http"
	"github.com/stkrfx/digitaloffices-1/internal/auth"
	"github.com/stkrfx/digitaloffices-1/internal/availability"
	availabilityHttp "github.com/stkrfx/digitaloffices-1/internal/availability/http"
	"github.com/stkrfx/digitaloffices-1/internal/booking"
	bookingHttp "github.com/stkrfx/digitaloffices-1/internal/booking/http"
	"github.com/stkrfx/digitaloffices-1/internal/catalog"
	catalogHttp "github.com/stkrfx/digitaloffices-1/internal/catalog/http"
	"github.com/stkrfx/digitaloffices-1/internal/logging"
	"github.com/stkrfx/digitaloffices-1/internal/observability/metrics"
	"github.com/stkrfx/digitaloffices-1/internal/pkg/request"
	"github.com/stkrfx/digitaloffices-1/internal/review"
	reviewHttp "github.com/stkrfx/digitaloffices-1/internal/review/http"
)

// Config holds everything the router needs to register routes.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	Logger       *logrus.Logger
	Gatherer     prometheus.Gatherer
	HTTPMetrics  *metrics.HTTPMetrics
	HealthChecks map[string]Pinger

	AccountService      account.Service
	CatalogService      catalog.Catalog
	AvailabilityService availability.Service
	BookingService      booking.Service
	ReviewService       review.Service
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Metrics, Auth) and registering routes for various modules.
func NewRouter(cfg Config) (*gin.Engine, error) {
	if err := request.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// Global Middleware:
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	// - RequestLogger: One structured log line per request.
	r.Use(gin.Recovery(), logging.RequestLogger(cfg.Logger), cfg.HTTPMetrics.Middleware())
	r.Use(corsMiddleware(cfg.IsProduction, cfg.ProdOrigins))

	r.GET("/healthz", healthHandler(cfg.HealthChecks))
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	accountHandler := accountHttp.NewHandler(cfg.AccountService, cfg.JWTManager)
	catalogHandler := catalogHttp.NewHandler(cfg.CatalogService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		accountHttp.RegisterRoutes(v1, accountHandler, authMiddleware)
		catalogHttp.RegisterRoutes(v1, catalogHandler, authMiddleware)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		reviewHttp.RegisterRoutes(v1, reviewHandler, authMiddleware)
	}

	return r, nil
}
