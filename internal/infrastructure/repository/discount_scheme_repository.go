package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
	domainRepo "github.com/sellweave/pos-api/internal/domain/repository"
	"github.com/sellweave/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type discountSchemeRepository struct {
	db *gorm.DB
}

// NewDiscountSchemeRepository creates a new discount scheme repository
func NewDiscountSchemeRepository(db *gorm.DB) domainRepo.DiscountSchemeRepository {
	return &discountSchemeRepository{db: db}
}

func (r *discountSchemeRepository) Create(ctx context.Context, scheme *entity.DiscountScheme) error {
	return wrapStorage(r.db.WithContext(ctx).Create(scheme).Error)
}

func (r *discountSchemeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DiscountScheme, error) {
	var scheme entity.DiscountScheme
	err := r.db.WithContext(ctx).First(&scheme, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &scheme, wrapStorage(err)
}

func (r *discountSchemeRepository) Update(ctx context.Context, scheme *entity.DiscountScheme) error {
	return wrapStorage(r.db.WithContext(ctx).Save(scheme).Error)
}

func (r *discountSchemeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return wrapStorage(r.db.WithContext(ctx).Delete(&entity.DiscountScheme{}, "id = ?", id).Error)
}

func (r *discountSchemeRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.DiscountScheme, int64, error) {
	var schemes []entity.DiscountScheme
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DiscountScheme{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, wrapStorage(err)
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&schemes).Error

	return schemes, total, wrapStorage(err)
}

// ListActive filters on the flag and date bounds in SQL; a null bound is
// unbounded on that side.
func (r *discountSchemeRepository) ListActive(ctx context.Context, asOf time.Time) ([]entity.DiscountScheme, error) {
	var schemes []entity.DiscountScheme
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Where("start_date IS NULL OR start_date <= ?", asOf).
		Where("end_date IS NULL OR end_date >= ?", asOf.Truncate(24*time.Hour)).
		Order("created_at ASC").
		Find(&schemes).Error
	return schemes, wrapStorage(err)
}
