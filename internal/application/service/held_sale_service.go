package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/sellweave/pos-api/internal/domain/repository"
	"github.com/sellweave/pos-api/pkg/apperror"
)

// DefaultHoldDuration is how long a parked sale stays recallable when no
// duration is configured
const DefaultHoldDuration = 72 * time.Hour

// HeldSaleService manages the hold / recall / expiry lifecycle of parked
// carts. Holding needs no open register; only finalizing does.
type HeldSaleService struct {
	heldSaleRepo repository.HeldSaleRepository
	holdDuration time.Duration
}

// NewHeldSaleService creates a new held sale service
func NewHeldSaleService(heldSaleRepo repository.HeldSaleRepository, holdDuration time.Duration) *HeldSaleService {
	if holdDuration <= 0 {
		holdDuration = DefaultHoldDuration
	}
	return &HeldSaleService{
		heldSaleRepo: heldSaleRepo,
		holdDuration: holdDuration,
	}
}

// HoldInput represents the hold sale input. Cart is stored verbatim and
// returned verbatim on recall; the core only inspects it enough to reject an
// empty cart.
type HoldInput struct {
	TerminalID string
	UserID     uuid.UUID
	Cart       json.RawMessage
	Notes      string
}

// cartProbe is the minimal shape needed to validate a snapshot
type cartProbe struct {
	Items []json.RawMessage `json:"items"`
}

// Hold parks a cart snapshot for later recall
func (s *HeldSaleService) Hold(ctx context.Context, input *HoldInput) (*entity.HeldSale, error) {
	if input.TerminalID == "" {
		return nil, apperror.NewValidationError("Terminal id is required")
	}
	if len(input.Cart) == 0 {
		return nil, apperror.NewValidationError("Cart snapshot is required")
	}

	var probe cartProbe
	if err := json.Unmarshal(input.Cart, &probe); err != nil {
		return nil, apperror.NewValidationError("Cart snapshot is not valid JSON")
	}
	if len(probe.Items) == 0 {
		return nil, apperror.NewValidationError("Cannot hold a sale with no line items")
	}

	hold := &entity.HeldSale{
		TerminalID: input.TerminalID,
		UserID:     input.UserID,
		SaleData:   input.Cart,
		Status:     enum.HeldSaleStatusHeld,
		Notes:      input.Notes,
		ExpiresAt:  time.Now().Add(s.holdDuration),
	}

	if err := s.heldSaleRepo.Create(ctx, hold); err != nil {
		return nil, err
	}
	return hold, nil
}

// ListActive returns the recallable holds for a terminal, oldest first
func (s *HeldSaleService) ListActive(ctx context.Context, terminalID string) ([]entity.HeldSale, error) {
	if terminalID == "" {
		return nil, apperror.NewValidationError("Terminal id is required")
	}
	return s.heldSaleRepo.ListActive(ctx, terminalID)
}

// Recall retrieves the snapshot of an active hold and marks it recalled.
// A second recall of the same hold, or a recall after expiry, fails with a
// not-found error since the hold is no longer active.
func (s *HeldSaleService) Recall(ctx context.Context, holdID string) (json.RawMessage, error) {
	hold, err := s.heldSaleRepo.Recall(ctx, holdID)
	if err != nil {
		return nil, err
	}
	return hold.SaleData, nil
}

// Delete permanently removes a hold regardless of its state. Deleting an
// unknown hold id fails with a not-found error.
func (s *HeldSaleService) Delete(ctx context.Context, holdID string) error {
	return s.heldSaleRepo.Delete(ctx, holdID)
}
