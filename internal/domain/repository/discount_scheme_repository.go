package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/pkg/pagination"
)

// DiscountSchemeRepository defines the interface for discount scheme data
// operations. CRUD serves the admin surface; the transaction core only reads.
type DiscountSchemeRepository interface {
	Create(ctx context.Context, scheme *entity.DiscountScheme) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DiscountScheme, error)
	Update(ctx context.Context, scheme *entity.DiscountScheme) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.DiscountScheme, int64, error)
	// ListActive returns schemes that are active and within their date
	// window as of the given time.
	ListActive(ctx context.Context, asOf time.Time) ([]entity.DiscountScheme, error)
}
