package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellweave/pos-api/internal/config"
	domainRepo "github.com/sellweave/pos-api/internal/domain/repository"
	"github.com/sellweave/pos-api/internal/presentation/http/handler"
	"github.com/sellweave/pos-api/internal/presentation/http/middleware"
	"github.com/sellweave/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth           *handler.AuthHandler
	Register       *handler.RegisterHandler
	HeldSale       *handler.HeldSaleHandler
	Sale           *handler.SaleHandler
	DiscountScheme *handler.DiscountSchemeHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/profile", h.Auth.Profile)

	// Register sessions
	registerRegisterRoutes(protected, h)

	// Held sales
	registerHoldRoutes(protected, h)

	// Sales
	registerSaleRoutes(protected, h, deps)

	// Shelf price lookup
	protected.GET("/products/:id/price", h.Sale.PriceCheck)

	// Discount schemes
	registerSchemeRoutes(protected, h)
}

func registerRegisterRoutes(protected *gin.RouterGroup, h *Handlers) {
	registers := protected.Group("/registers")
	{
		registers.POST("/open", h.Register.Open)
		registers.GET("/current", h.Register.Current)
		registers.GET("/:id", h.Register.Get)
		registers.POST("/:id/movements", h.Register.RecordMovement)
		registers.GET("/:id/movements", h.Register.ListMovements)
		registers.POST("/:id/close", h.Register.Close)
	}
}

func registerHoldRoutes(protected *gin.RouterGroup, h *Handlers) {
	holds := protected.Group("/holds")
	{
		holds.POST("", h.HeldSale.Hold)
		holds.GET("", h.HeldSale.ListActive)
		holds.POST("/:hold_id/recall", h.HeldSale.Recall)
		holds.DELETE("/:hold_id", h.HeldSale.Delete)
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := protected.Group("/sales")
	{
		// Finalize must be retry-safe: the client may resend after a
		// timeout without double-charging.
		sales.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Finalize)
		sales.GET("", h.Sale.List)
		sales.GET("/:id", h.Sale.Get)
	}
}

func registerSchemeRoutes(protected *gin.RouterGroup, h *Handlers) {
	schemes := protected.Group("/discount-schemes")
	{
		schemes.GET("/active", h.DiscountScheme.ListActive)
		schemes.GET("", h.DiscountScheme.List)
		schemes.GET("/:id", h.DiscountScheme.Get)

		// Scheme administration is admin only
		admin := schemes.Group("")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.POST("", h.DiscountScheme.Create)
			admin.PUT("/:id", h.DiscountScheme.Update)
			admin.DELETE("/:id", h.DiscountScheme.Delete)
		}
	}
}
