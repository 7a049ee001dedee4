// Package gateway declares the interfaces through which the transaction core
// consumes its external collaborators. The catalog, customer directory and
// scheme administration are owned elsewhere; the core sees read contracts
// only.
package gateway

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
)

// ProductCatalog is the product catalog service contract
type ProductCatalog interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetProducts(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
}

// CustomerDirectory is the customer directory service contract
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
}

// SchemeSource exposes the discount schemes applicable at a point in time
type SchemeSource interface {
	ListActiveSchemes(ctx context.Context, asOf time.Time) ([]entity.DiscountScheme, error)
}
