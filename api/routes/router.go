// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"tessera/internal/auth"
	"tessera/internal/checkout"
	"tessera/internal/events"
	"tessera/internal/notifications"
	"tessera/internal/payments"
	"tessera/internal/sales"
	"tessera/internal/seats"
	"tessera/internal/shared/config"
	"tessera/internal/shared/database"
	"tessera/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	saleProducer notifications.SaleProducer

	seatService    seats.Service
	paymentService payments.Service
	salesService   sales.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config: cfg,
		db:     db,
	}
}

// SetSaleProducer wires sale notifications into the purchase flow
func (r *Router) SetSaleProducer(producer notifications.SaleProducer) {
	r.saleProducer = producer
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	if r.db.GetRedis() != nil {
		r.cacheService = cache.NewService(r.db.GetRedis())
	}

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupEventRoutes(api)
		r.setupSeatRoutes(api)
		r.setupPaymentRoutes(api)
		r.setupSalesRoutes(api)
		r.setupCheckoutRoutes(api)
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
				"service":   "tessera-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tessera-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupEventRoutes configures event routes
func (r *Router) setupEventRoutes(rg *gin.RouterGroup) {
	eventRepo := events.NewRepository(r.db.GetPostgreSQL())
	eventService := events.NewService(eventRepo)
	if r.cacheService != nil {
		eventService.SetCacheService(r.cacheService)
	}
	eventController := events.NewController(eventService)
	eventRouter := events.NewRouter(eventController, r.config)

	eventRouter.SetupRoutes(rg)
}

// setupSeatRoutes configures seat map and reserve/release routes
func (r *Router) setupSeatRoutes(rg *gin.RouterGroup) {
	seatRepo := seats.NewRepository(r.db.GetPostgreSQL())
	atomic := seats.NewAtomicRedisOperations(r.db.GetRedis())
	seatService := seats.NewService(seatRepo, atomic, r.config.Redis.SeatHoldTTL)
	if r.cacheService != nil {
		seatService.SetCacheService(r.cacheService)
	}
	r.seatService = seatService

	seatController := seats.NewController(seatService)
	seatRouter := seats.NewRouter(seatController, r.config)

	seatRouter.SetupRoutes(rg)
}

// setupPaymentRoutes configures payment intent routes
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	processor := payments.NewMockProcessor(r.config.Payment.DeclineCards)
	paymentService := payments.NewService(paymentRepo, processor, r.config.Payment.IntentTTL)
	r.paymentService = paymentService

	paymentController := payments.NewController(paymentService, r.seatService, r.config.Payment.Currency)
	paymentRouter := payments.NewRouter(paymentController, r.config)

	paymentRouter.SetupRoutes(rg)
}

// setupSalesRoutes configures purchase completion routes
func (r *Router) setupSalesRoutes(rg *gin.RouterGroup) {
	salesRepo := sales.NewRepository(r.db.GetPostgreSQL())
	salesService := sales.NewService(salesRepo, r.paymentService, r.seatService)
	if r.saleProducer != nil {
		salesService.SetNotifier(r.saleProducer)
	}
	r.salesService = salesService

	salesController := sales.NewController(salesService)
	salesRouter := sales.NewRouter(salesController, r.config)

	salesRouter.SetupRoutes(rg)
}

// setupCheckoutRoutes configures the single-request checkout route
func (r *Router) setupCheckoutRoutes(rg *gin.RouterGroup) {
	checkoutController := checkout.NewController(r.seatService, r.paymentService, r.salesService, r.config.Payment.Currency)
	checkoutRouter := checkout.NewRouter(checkoutController, r.config)

	checkoutRouter.SetupRoutes(rg)
}
