package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"driftwood/internal/auth"
	"driftwood/internal/availability"
	"driftwood/internal/notifications"
	"driftwood/internal/pricing"
	"driftwood/internal/properties"
	"driftwood/internal/refunds"
	"driftwood/internal/reservations"
	"driftwood/internal/shared/config"
	"driftwood/internal/shared/database"
	"driftwood/pkg/cache"
	"driftwood/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config          *config.Config
	db              *database.DB
	notifier        notifications.Service
	propertyService properties.Service
	log             *logger.Logger

	// Built during SetupRoutes; main starts the completion job against it.
	reservationService reservations.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier notifications.Service,
	propertyService properties.Service, log *logger.Logger) *Router {
	return &Router{
		config:          cfg,
		db:              db,
		notifier:        notifier,
		propertyService: propertyService,
		log:             log,
	}
}

// ReservationService exposes the wired reservation service so main can run
// the background completion job against the same instance the routes use.
func (r *Router) ReservationService() reservations.Service {
	return r.reservationService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	// Swagger documentation
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Shared services; pricing feeds both availability and reservations.
		var cacheService cache.Service
		if r.db.Redis != nil {
			cacheService = cache.NewService(r.db.GetRedis())
		}

		pricingRepo := pricing.NewRepository(r.db.GetPostgreSQL(), cacheService)
		pricingService := pricing.NewService(pricingRepo)

		var holdStore availability.HoldStore
		if r.db.Redis != nil {
			holdStore = availability.NewAtomicRedisOperations(r.db.GetRedis())
		}
		availabilityRepo := availability.NewRepository(r.db.GetPostgreSQL())
		availabilityService := availability.NewService(availabilityRepo, holdStore, pricingService)

		r.setupAuthRoutes(api)
		r.setupPropertyRoutes(api)
		r.setupPricingRoutes(api, pricingService)
		r.setupAvailabilityRoutes(api, availabilityService)
		r.setupReservationRoutes(api, availabilityService, pricingService)
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
				"service":   "driftwood-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "driftwood-backend",
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

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupPropertyRoutes configures property content routes
func (r *Router) setupPropertyRoutes(rg *gin.RouterGroup) {
	propertyController := properties.NewController(r.propertyService)
	propertyRouter := properties.NewRouter(propertyController)

	propertyRouter.SetupRoutes(rg)
}

// setupPricingRoutes configures pricing routes
func (r *Router) setupPricingRoutes(rg *gin.RouterGroup, pricingService pricing.Service) {
	pricingController := pricing.NewController(pricingService)
	pricing.SetupPricingRoutes(rg, pricingController)
}

// setupAvailabilityRoutes configures availability routes
func (r *Router) setupAvailabilityRoutes(rg *gin.RouterGroup, availabilityService availability.Service) {
	availabilityController := availability.NewController(availabilityService)
	availability.SetupAvailabilityRoutes(rg, availabilityController)
}

// setupReservationRoutes configures reservation lifecycle routes
func (r *Router) setupReservationRoutes(rg *gin.RouterGroup,
	availabilityService availability.Service, pricingService pricing.Service) {

	reservationRepo := reservations.NewRepository(r.db.GetPostgreSQL())
	refundService := refunds.NewService()

	reservationService := reservations.NewService(
		reservationRepo,
		availabilityService,
		pricingService,
		refundService,
		r.notifier,
		reservations.Config{
			HoldTTL:                 r.config.Redis.DayHoldTTL,
			MaxAlternativeShiftDays: r.config.Booking.MaxAlternativeShiftDays,
			MaxOccupancy:            r.propertyService.MaxOccupancy(),
		},
		r.log,
	)
	r.reservationService = reservationService

	reservationController := reservations.NewController(reservationService)
	reservationRouter := reservations.NewRouter(reservationController, r.config)

	reservationRouter.SetupRoutes(rg)
}
