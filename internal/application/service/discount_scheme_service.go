package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/sellweave/pos-api/internal/domain/repository"
	"github.com/sellweave/pos-api/pkg/apperror"
	"github.com/sellweave/pos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// DiscountSchemeService handles the administrator-facing scheme lifecycle.
// The transaction core reads schemes through the gateway, never through this
// service.
type DiscountSchemeService struct {
	schemeRepo repository.DiscountSchemeRepository
}

// NewDiscountSchemeService creates a new discount scheme service
func NewDiscountSchemeService(schemeRepo repository.DiscountSchemeRepository) *DiscountSchemeService {
	return &DiscountSchemeService{schemeRepo: schemeRepo}
}

// SchemeInput represents the create/update scheme input
type SchemeInput struct {
	Name      string
	Type      enum.DiscountType
	Value     decimal.Decimal
	AppliesTo enum.DiscountTarget
	Target    string
	StartDate *time.Time
	EndDate   *time.Time
	Active    bool
}

func (in *SchemeInput) validate() error {
	if in.Name == "" {
		return apperror.NewValidationError("Scheme name is required")
	}
	if in.Target == "" {
		return apperror.NewValidationError("Scheme target is required")
	}
	if in.Value.IsNegative() {
		return apperror.NewValidationError("Scheme value cannot be negative")
	}
	if in.Type == enum.DiscountTypePercentage && in.Value.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.NewValidationError("Percentage discount cannot exceed 100")
	}
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		return apperror.NewValidationError("Scheme end date cannot precede its start date")
	}
	return nil
}

// CreateScheme creates a new discount scheme
func (s *DiscountSchemeService) CreateScheme(ctx context.Context, input *SchemeInput) (*entity.DiscountScheme, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	scheme := &entity.DiscountScheme{
		Name:      input.Name,
		Type:      input.Type,
		Value:     input.Value,
		AppliesTo: input.AppliesTo,
		Target:    input.Target,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Active:    input.Active,
	}

	if err := s.schemeRepo.Create(ctx, scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

// GetScheme retrieves a scheme by ID
func (s *DiscountSchemeService) GetScheme(ctx context.Context, id uuid.UUID) (*entity.DiscountScheme, error) {
	scheme, err := s.schemeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scheme == nil {
		return nil, apperror.NewNotFoundError("Discount scheme")
	}
	return scheme, nil
}

// UpdateScheme replaces a scheme's definition
func (s *DiscountSchemeService) UpdateScheme(ctx context.Context, id uuid.UUID, input *SchemeInput) (*entity.DiscountScheme, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	scheme, err := s.GetScheme(ctx, id)
	if err != nil {
		return nil, err
	}

	scheme.Name = input.Name
	scheme.Type = input.Type
	scheme.Value = input.Value
	scheme.AppliesTo = input.AppliesTo
	scheme.Target = input.Target
	scheme.StartDate = input.StartDate
	scheme.EndDate = input.EndDate
	scheme.Active = input.Active

	if err := s.schemeRepo.Update(ctx, scheme); err != nil {
		return nil, err
	}
	return scheme, nil
}

// DeleteScheme removes a scheme
func (s *DiscountSchemeService) DeleteScheme(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetScheme(ctx, id); err != nil {
		return err
	}
	return s.schemeRepo.Delete(ctx, id)
}

// ListSchemes lists schemes with pagination
func (s *DiscountSchemeService) ListSchemes(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.DiscountScheme], error) {
	schemes, total, err := s.schemeRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(schemes, pag), nil
}

// ListActiveSchemes returns the schemes applicable right now
func (s *DiscountSchemeService) ListActiveSchemes(ctx context.Context) ([]entity.DiscountScheme, error) {
	return s.schemeRepo.ListActive(ctx, time.Now())
}
