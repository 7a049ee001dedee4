package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/pkg/pagination"
)

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	TerminalID string
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}

// SaleRepository defines the interface for finalized-sale persistence.
type SaleRepository interface {
	// Finalize persists the sale and its items in one transaction: it
	// locks the open session for the sale's terminal (failing with an
	// invalid-state error when the register is closed, including a close
	// racing this call), allocates the invoice number from a
	// transactional sequence, writes sale and items, and increments the
	// session's sales totals. Either everything commits or nothing does.
	Finalize(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) error
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}
