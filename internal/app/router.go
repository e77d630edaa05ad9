package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"zapshift/internal/auth"
	"zapshift/internal/handler"
	"zapshift/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler    *handler.UserHandler
	ParcelHandler  *handler.ParcelHandler
	PaymentHandler *handler.PaymentHandler
	Verifier       auth.Verifier
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// User routes.
	router.POST("/users", deps.UserHandler.Create)

	// Parcel routes.
	router.GET("/parcels", deps.ParcelHandler.List)
	router.POST("/parcels", deps.ParcelHandler.Create)
	router.GET("/parcels/:id", deps.ParcelHandler.Get)
	router.DELETE("/parcels/:id", deps.ParcelHandler.Delete)

	// Payment routes.
	router.POST("/payment-checkout-system", deps.PaymentHandler.CreateCheckout)
	router.POST("/payment-checkout", deps.PaymentHandler.CreateCheckoutLegacy)
	router.PATCH("/payment-success", deps.PaymentHandler.ConfirmPayment)
	router.GET("/payments", middleware.RequireAuth(deps.Verifier), deps.PaymentHandler.History)

	return router
}
