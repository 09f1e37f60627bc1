package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yatra/internal/analytics"
	"yatra/internal/auth"
	"yatra/internal/bookings"
	"yatra/internal/documents"
	"yatra/internal/notifications"
	"yatra/internal/packages"
	"yatra/internal/policy"
	"yatra/internal/refunds"
	"yatra/internal/shared/config"
	"yatra/internal/shared/database"
	"yatra/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer notifications.Producer

	// Services shared across route groups
	cacheService    cache.Service
	packageService  packages.Service
	policyService   policy.Service
	documentService documents.Service
}

// NewRouter creates a new router instance. producer may be nil when Kafka is
// disabled.
func NewRouter(cfg *config.Config, db *database.DB, producer notifications.Producer) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	if r.db.Redis != nil {
		r.cacheService = cache.NewService(r.db.GetRedisClient())
	}

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupPackageRoutes(api)
		r.setupPolicyRoutes(api)
		r.setupDocumentRoutes(api)
		r.setupBookingRoutes(api)
		r.setupRefundRoutes(api)
		r.setupAnalyticsRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "yatra-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "yatra-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)

	auth.SetupAuthRoutes(rg, authController)
}

func (r *Router) setupPackageRoutes(rg *gin.RouterGroup) {
	packageRepo := packages.NewRepository(r.db.GetPostgreSQL())
	r.packageService = packages.NewService(packageRepo, r.cacheService)
	packageController := packages.NewController(r.packageService)

	packages.SetupPackageRoutes(rg, packageController)
}

func (r *Router) setupPolicyRoutes(rg *gin.RouterGroup) {
	policyRepo := policy.NewRepository(r.db.GetPostgreSQL())
	r.policyService = policy.NewService(policyRepo, r.cacheService)
	policyController := policy.NewController(r.policyService)

	policy.SetupPolicyRoutes(rg, policyController)
}

func (r *Router) setupDocumentRoutes(rg *gin.RouterGroup) {
	documentRepo := documents.NewRepository(r.db.GetPostgreSQL())
	r.documentService = documents.NewService(documentRepo)
	documentController := documents.NewController(r.documentService)

	documents.SetupDocumentRoutes(rg, documentController)
}

// setupBookingRoutes wires the booking core against the package catalog, the
// policy engine and the document readiness provider.
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, r.packageService, r.policyService, r.documentService, r.producer)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

func (r *Router) setupRefundRoutes(rg *gin.RouterGroup) {
	refundRepo := refunds.NewRepository(r.db.GetPostgreSQL())
	refundService := refunds.NewService(refundRepo, r.producer)
	refundController := refunds.NewController(refundService)

	refunds.SetupRefundRoutes(rg, refundController)
}

func (r *Router) setupAnalyticsRoutes(rg *gin.RouterGroup) {
	analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
	analyticsService := analytics.NewService(analyticsRepo, r.cacheService)
	analyticsController := analytics.NewController(analyticsService)

	analytics.SetupAnalyticsRoutes(rg, analyticsController)
}
