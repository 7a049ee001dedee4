package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellweave/pos-api/internal/application/service"
	"github.com/sellweave/pos-api/internal/config"
	"github.com/sellweave/pos-api/internal/infrastructure/database"
	"github.com/sellweave/pos-api/internal/infrastructure/repository"
	"github.com/sellweave/pos-api/internal/presentation/http/handler"
	"github.com/sellweave/pos-api/internal/presentation/http/routes"
	"github.com/sellweave/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	registerRepo := repository.NewRegisterRepository(db)
	heldSaleRepo := repository.NewHeldSaleRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	schemeRepo := repository.NewDiscountSchemeRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Purge expired idempotency keys at boot, then hourly
	go func() {
		for {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: Failed to purge expired idempotency keys: %v", err)
			}
			time.Sleep(time.Hour)
		}
	}()

	// Initialize gateways
	catalog := repository.NewProductCatalog(db)
	customers := repository.NewCustomerDirectory(db)
	schemes := repository.NewSchemeSource(schemeRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	registerService := service.NewRegisterService(registerRepo)
	heldSaleService := service.NewHeldSaleService(heldSaleRepo, cfg.POS.HoldDuration)
	saleService := service.NewSaleService(saleRepo, catalog, customers, schemes)
	schemeService := service.NewDiscountSchemeService(schemeRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:           handler.NewAuthHandler(authService),
		Register:       handler.NewRegisterHandler(registerService),
		HeldSale:       handler.NewHeldSaleHandler(heldSaleService),
		Sale:           handler.NewSaleHandler(saleService),
		DiscountScheme: handler.NewDiscountSchemeHandler(schemeService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
