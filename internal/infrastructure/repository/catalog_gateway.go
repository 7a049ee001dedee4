package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/internal/domain/gateway"
	domainRepo "github.com/sellweave/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productCatalog struct {
	db *gorm.DB
}

// NewProductCatalog creates a catalog gateway backed by the local database
func NewProductCatalog(db *gorm.DB) gateway.ProductCatalog {
	return &productCatalog{db: db}
}

func (c *productCatalog) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := c.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, wrapStorage(err)
}

func (c *productCatalog) GetProducts(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []entity.Product
	err := c.db.WithContext(ctx).Preload("Category").
		Where("id IN ?", ids).
		Find(&products).Error
	return products, wrapStorage(err)
}

type customerDirectory struct {
	db *gorm.DB
}

// NewCustomerDirectory creates a customer directory gateway backed by the
// local database
func NewCustomerDirectory(db *gorm.DB) gateway.CustomerDirectory {
	return &customerDirectory{db: db}
}

func (d *customerDirectory) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := d.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, wrapStorage(err)
}

type schemeSource struct {
	repo domainRepo.DiscountSchemeRepository
}

// NewSchemeSource adapts the scheme repository to the read contract the sale
// pipeline consumes
func NewSchemeSource(repo domainRepo.DiscountSchemeRepository) gateway.SchemeSource {
	return &schemeSource{repo: repo}
}

func (s *schemeSource) ListActiveSchemes(ctx context.Context, asOf time.Time) ([]entity.DiscountScheme, error) {
	return s.repo.ListActive(ctx, asOf)
}
