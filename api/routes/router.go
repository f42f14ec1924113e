// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/bookings"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/configuration"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/explorers"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/listings"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/notifications"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/payments"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/settlements"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/config"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/shared/database"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/vendors"
	"github.com/HarmonyGroup/harmony-bookme-sub002/internal/webhooks"
	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/logger"
	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/paystack"
)

// Router holds all route dependencies
type Router struct {
	config     *config.Config
	db         *database.DB
	dispatcher notifications.Dispatcher

	// services shared across route groups
	paymentService payments.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, dispatcher notifications.Dispatcher) *Router {
	return &Router{
		config:     cfg,
		db:         db,
		dispatcher: dispatcher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupBookingRoutes(api)

		// Payments before webhooks: the webhook processor confirms
		// charges through the payment service.
		r.setupPaymentRoutes(api)
		r.setupSettlementAndWebhookRoutes(api)
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
				"service":   "bookme-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "bookme-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}

// setupBookingRoutes configures the booking ledger routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	listingRepo := listings.NewRepository(r.db.GetPostgreSQL())
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	bookingService := bookings.NewService(bookingRepo, listingRepo, r.dispatcher, r.config.Platform.ServiceFee)
	bookingController := bookings.NewController(bookingService)

	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupPaymentRoutes configures payment initiation routes
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup) {
	gateway := paystack.NewClient(r.config.Gateway.BaseURL, r.config.Gateway.SecretKey, r.config.Gateway.Timeout)

	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
	vendorRepo := vendors.NewRepository(r.db.GetPostgreSQL())
	explorerRepo := explorers.NewRepository(r.db.GetPostgreSQL())
	configRepo := configuration.NewRepository(r.db.GetPostgreSQL())

	r.paymentService = payments.NewService(
		paymentRepo, bookingRepo, vendorRepo, explorerRepo, configRepo,
		gateway, r.config, logger.GetDefault(),
	)
	paymentController := payments.NewController(r.paymentService)

	payments.SetupPaymentRoutes(rg, paymentController)
}

// setupSettlementAndWebhookRoutes configures the gateway callback and
// the vendor settlement views
func (r *Router) setupSettlementAndWebhookRoutes(rg *gin.RouterGroup) {
	appLogger := logger.GetDefault()

	settlementRepo := settlements.NewRepository(r.db.GetPostgreSQL())
	vendorRepo := vendors.NewRepository(r.db.GetPostgreSQL())
	settlementService := settlements.NewService(settlementRepo, vendorRepo, appLogger)
	settlementController := settlements.NewController(settlementService)
	settlements.SetupSettlementRoutes(rg, settlementController)

	markers := webhooks.NewMarkers(r.db.GetRedisClient(), r.config.Redis.WebhookMarkerTTL)
	webhookService := webhooks.NewService(
		r.config.Gateway.SecretKey,
		r.paymentService,
		settlementService,
		r.dispatcher,
		markers,
		appLogger,
	)
	webhookController := webhooks.NewController(webhookService, appLogger)
	webhooks.SetupWebhookRoutes(rg, webhookController)
}
