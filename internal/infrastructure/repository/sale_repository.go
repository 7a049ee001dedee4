package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/internal/domain/enum"
	domainRepo "github.com/sellweave/pos-api/internal/domain/repository"
	"github.com/sellweave/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Finalize is the single side-effecting write boundary of the transaction
// core. The open-session check, the invoice allocation, the sale and item
// inserts and the session total increments all commit together; the session
// row lock serializes this against a concurrent close so a sale finalized
// while the register closes either lands in the totals or fails with an
// invalid-state error, never disappears.
func (r *saleRepository) Finalize(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session entity.RegisterSession
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&session, "terminal_id = ? AND status = ?", sale.TerminalID, enum.RegisterStatusOpen).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewInvalidStateError("Register is closed for terminal " + sale.TerminalID)
		}
		if err != nil {
			return err
		}

		seq, err := nextCounterValue(tx, entity.CounterInvoiceNo)
		if err != nil {
			return err
		}
		sale.InvoiceNo = formatSequence("INV", seq)
		sale.RegisterSessionID = session.ID

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		totalQty := decimal.Zero
		for i := range items {
			items[i].SaleID = sale.ID
			totalQty = totalQty.Add(items[i].Quantity)
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		return tx.Model(&session).Updates(map[string]interface{}{
			"total_sales":     session.TotalSales.Add(sale.FinalTotal),
			"total_sales_qty": session.TotalSalesQty.Add(totalQty),
		}).Error
	})
	return wrapStorage(err)
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, wrapStorage(err)
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.TerminalID != "" {
		query = query.Where("terminal_id = ?", params.TerminalID)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapStorage(err)
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, wrapStorage(err)
}
