package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/application/pricing"
	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/sellweave/pos-api/internal/domain/gateway"
	"github.com/sellweave/pos-api/internal/domain/repository"
	"github.com/sellweave/pos-api/pkg/apperror"
	"github.com/sellweave/pos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SaleService is the transaction orchestrator: the only component that
// writes beyond in-memory computation. It prices the cart with the pure
// pricing package and hands the result to the sale repository, which commits
// the sale, the invoice number and the session totals in one transaction.
type SaleService struct {
	saleRepo  repository.SaleRepository
	catalog   gateway.ProductCatalog
	customers gateway.CustomerDirectory
	schemes   gateway.SchemeSource
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	catalog gateway.ProductCatalog,
	customers gateway.CustomerDirectory,
	schemes gateway.SchemeSource,
) *SaleService {
	return &SaleService{
		saleRepo:  saleRepo,
		catalog:   catalog,
		customers: customers,
		schemes:   schemes,
	}
}

// SaleLineInput represents a cart line in a finalize request
type SaleLineInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

// PaymentInput represents how the sale is settled
type PaymentInput struct {
	Type       enum.PaymentType
	Amount     decimal.Decimal
	CustomerID *uuid.UUID
}

// FinalizeSaleInput represents the finalize sale input
type FinalizeSaleInput struct {
	TerminalID     string
	UserID         uuid.UUID
	SaleType       enum.SaleType
	Items          []SaleLineInput
	TaxRatePercent decimal.Decimal
	BillDiscount   decimal.Decimal
	Shipping       decimal.Decimal
	Payment        PaymentInput
}

// FinalizeSale prices the cart and persists the sale against the terminal's
// open register session. Everything up to the repository call is pure or
// query-only; the repository commits atomically or not at all, so a rejected
// sale leaves no partial writes.
func (s *SaleService) FinalizeSale(ctx context.Context, input *FinalizeSaleInput) (*entity.Sale, error) {
	if input.TerminalID == "" {
		return nil, apperror.NewValidationError("Terminal id is required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("Cannot finalize a sale with no line items")
	}
	for _, item := range input.Items {
		if !item.Quantity.IsPositive() {
			return nil, apperror.NewValidationError("Line quantity must be greater than zero")
		}
	}

	customerID, err := s.checkPayment(ctx, &input.Payment)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	schemes, err := s.schemes.ListActiveSchemes(ctx, now)
	if err != nil {
		return nil, err
	}

	products, err := s.fetchProducts(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.BillLine, 0, len(input.Items))
	saleItems := make([]entity.SaleItem, 0, len(input.Items))
	totalQty := decimal.Zero

	for _, item := range input.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}

		res := pricing.Resolve(pricing.LineInput{
			ProductName:    product.Name,
			CategoryName:   product.CategoryName(),
			SalesPrice:     product.SalesPrice,
			WholesalePrice: product.WholesalePrice,
		}, input.SaleType, schemes, now)

		base := baseUnitPrice(product, input.SaleType)
		// Scheme discount over the full line, re-derived from quantity
		specialDiscount := base.Sub(res.UnitPrice).Mul(item.Quantity)

		line := pricing.BillLine{
			ProductID:       product.ID,
			ProductName:     product.Name,
			SchemeName:      res.SchemeName,
			Quantity:        item.Quantity,
			MRP:             product.MRP,
			BaseUnitPrice:   base,
			SpecialDiscount: specialDiscount,
		}
		lines = append(lines, line)
		totalQty = totalQty.Add(item.Quantity)

		saleItems = append(saleItems, entity.SaleItem{
			ProductID:       product.ID,
			ProductName:     product.Name,
			Quantity:        item.Quantity,
			MRP:             product.MRP,
			UnitPrice:       res.UnitPrice,
			SchemeName:      res.SchemeName,
			SpecialDiscount: specialDiscount,
			LineTotal:       line.LineTotal(),
		})
	}

	totals, err := pricing.Calculate(lines, pricing.Adjustments{
		TaxRatePercent: input.TaxRatePercent,
		BillDiscount:   input.BillDiscount,
		Shipping:       input.Shipping,
	})
	if err != nil {
		return nil, err
	}

	if totals.FinalTotal.IsNegative() && input.SaleType != enum.SaleTypeReturn {
		return nil, apperror.NewValidationError("Sale total cannot be negative")
	}

	sale := &entity.Sale{
		TerminalID:       input.TerminalID,
		UserID:           input.UserID,
		CustomerID:       customerID,
		SaleType:         input.SaleType,
		SubtotalAtMRP:    totals.SubtotalAtMRP,
		ItemDiscounts:    totals.TotalItemDiscounts,
		SpecialDiscounts: totals.TotalSpecialDiscounts,
		BillDiscount:     totals.TotalBillDiscount,
		TaxRatePercent:   input.TaxRatePercent,
		TaxAmount:        totals.TaxAmount,
		ShippingAmount:   input.Shipping,
		NetItemTotal:     totals.NetItemTotal,
		FinalTotal:       totals.FinalTotal,
		PaymentType:      input.Payment.Type,
		PaidAmount:       input.Payment.Amount,
	}

	if err := s.saleRepo.Finalize(ctx, sale, saleItems); err != nil {
		return nil, err
	}

	return s.saleRepo.GetWithItems(ctx, sale.ID)
}

// PriceCheckResult is the resolved shelf price for a single product
type PriceCheckResult struct {
	ProductID   uuid.UUID
	ProductName string
	SaleType    enum.SaleType
	MRP         decimal.Decimal
	UnitPrice   decimal.Decimal
	SchemeName  *string
}

// PriceCheck resolves the effective unit price of one product under the
// currently active schemes, for shelf price lookups at the terminal.
func (s *SaleService) PriceCheck(ctx context.Context, productID uuid.UUID, saleType enum.SaleType) (*PriceCheckResult, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	now := time.Now()
	schemes, err := s.schemes.ListActiveSchemes(ctx, now)
	if err != nil {
		return nil, err
	}

	res := pricing.Resolve(pricing.LineInput{
		ProductName:    product.Name,
		CategoryName:   product.CategoryName(),
		SalesPrice:     product.SalesPrice,
		WholesalePrice: product.WholesalePrice,
	}, saleType, schemes, now)

	return &PriceCheckResult{
		ProductID:   product.ID,
		ProductName: product.Name,
		SaleType:    saleType,
		MRP:         product.MRP,
		UnitPrice:   res.UnitPrice,
		SchemeName:  res.SchemeName,
	}, nil
}

// checkPayment validates the payment block; credit sales require an existing,
// credit-eligible customer.
func (s *SaleService) checkPayment(ctx context.Context, payment *PaymentInput) (*uuid.UUID, error) {
	if payment.Amount.IsNegative() {
		return nil, apperror.NewValidationError("Paid amount cannot be negative")
	}
	if payment.Type != enum.PaymentTypeCredit {
		return payment.CustomerID, nil
	}
	if payment.CustomerID == nil {
		return nil, apperror.NewValidationError("Credit sales require a customer")
	}
	customer, err := s.customers.GetCustomer(ctx, *payment.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	if !customer.IsCreditEligible {
		return nil, apperror.NewValidationError("Customer is not eligible for credit sales")
	}
	return payment.CustomerID, nil
}

// fetchProducts batch fetches all cart products in one query
func (s *SaleService) fetchProducts(ctx context.Context, items []SaleLineInput) (map[uuid.UUID]*entity.Product, error) {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	products, err := s.catalog.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}
	return productMap, nil
}

// baseUnitPrice mirrors the resolver's base price selection so the special
// discount is measured against the same starting point
func baseUnitPrice(p *entity.Product, saleType enum.SaleType) decimal.Decimal {
	if saleType == enum.SaleTypeWholesale && p.WholesalePrice.IsPositive() {
		return p.WholesalePrice
	}
	return p.SalesPrice
}

// GetSale retrieves a finalized sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists finalized sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}
