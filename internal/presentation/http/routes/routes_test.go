package routes

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellweave/pos-api/internal/config"
	"github.com/sellweave/pos-api/internal/presentation/http/handler"
	"github.com/sellweave/pos-api/pkg/utils"
)

func testDeps() *Deps {
	return &Deps{
		JWTManager: utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour),
		Cfg: &config.Config{
			App:       config.AppConfig{Name: "pos-api"},
			RateLimit: config.RateLimitConfig{Requests: 100, Duration: 60},
		},
	}
}

func TestSetupRegistersEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := Setup(&Handlers{
		Auth:           &handler.AuthHandler{},
		Register:       &handler.RegisterHandler{},
		HeldSale:       &handler.HeldSaleHandler{},
		Sale:           &handler.SaleHandler{},
		DiscountScheme: &handler.DiscountSchemeHandler{},
	}, testDeps())

	registered := make(map[string]bool)
	for _, r := range router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /health",
		"POST /api/v1/auth/login",
		"POST /api/v1/auth/refresh",
		"GET /api/v1/profile",
		"POST /api/v1/registers/open",
		"GET /api/v1/registers/current",
		"GET /api/v1/registers/:id",
		"POST /api/v1/registers/:id/movements",
		"GET /api/v1/registers/:id/movements",
		"POST /api/v1/registers/:id/close",
		"POST /api/v1/holds",
		"GET /api/v1/holds",
		"POST /api/v1/holds/:hold_id/recall",
		"DELETE /api/v1/holds/:hold_id",
		"GET /api/v1/products/:id/price",
		"POST /api/v1/sales",
		"GET /api/v1/sales",
		"GET /api/v1/sales/:id",
		"GET /api/v1/discount-schemes/active",
		"GET /api/v1/discount-schemes",
		"GET /api/v1/discount-schemes/:id",
		"POST /api/v1/discount-schemes",
		"PUT /api/v1/discount-schemes/:id",
		"DELETE /api/v1/discount-schemes/:id",
	}
	for _, route := range want {
		if !registered[route] {
			t.Errorf("route %s not registered", route)
		}
	}

	// Sessions open at a dedicated action path, not by posting the collection
	if registered["POST /api/v1/registers"] {
		t.Error("POST /api/v1/registers should not be registered")
	}
}
