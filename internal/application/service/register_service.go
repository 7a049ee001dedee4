package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/sellweave/pos-api/internal/domain/repository"
	"github.com/sellweave/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// RegisterService governs the register session lifecycle and the cash
// movement ledger
type RegisterService struct {
	registerRepo repository.RegisterRepository
}

// NewRegisterService creates a new register service
func NewRegisterService(registerRepo repository.RegisterRepository) *RegisterService {
	return &RegisterService{registerRepo: registerRepo}
}

// OpenRegisterInput represents the open register input
type OpenRegisterInput struct {
	TerminalID     string
	UserID         uuid.UUID
	OpeningBalance decimal.Decimal
}

// OpenRegister opens a session for a terminal. The one-open-session-per-
// terminal invariant is enforced by the repository's atomic insert; a
// concurrent double open fails loudly with a conflict error rather than
// merging.
func (s *RegisterService) OpenRegister(ctx context.Context, input *OpenRegisterInput) (*entity.RegisterSession, error) {
	if input.TerminalID == "" {
		return nil, apperror.NewValidationError("Terminal id is required")
	}
	if input.OpeningBalance.IsNegative() {
		return nil, apperror.NewValidationError("Opening balance cannot be negative")
	}

	session := &entity.RegisterSession{
		TerminalID:     input.TerminalID,
		UserID:         input.UserID,
		Status:         enum.RegisterStatusOpen,
		OpeningBalance: input.OpeningBalance,
		TotalSales:     decimal.Zero,
		TotalSalesQty:  decimal.Zero,
		OpenedAt:       time.Now(),
	}

	if err := s.registerRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// RecordMovementInput represents the record cash movement input
type RecordMovementInput struct {
	SessionID uuid.UUID
	Type      enum.MovementType
	Amount    decimal.Decimal
	Reason    string
}

// RecordMovement appends a cash in/out entry to an open session's ledger.
// Balances are not mutated here; they are derived at close time from the
// ledger plus the sales total.
func (s *RegisterService) RecordMovement(ctx context.Context, input *RecordMovementInput) (*entity.CashMovement, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewValidationError("Movement type must be in or out")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewValidationError("Movement amount must be greater than zero")
	}
	if input.Reason == "" {
		return nil, apperror.NewValidationError("Movement reason is required")
	}

	movement := &entity.CashMovement{
		RegisterSessionID: input.SessionID,
		Type:              input.Type,
		Amount:            input.Amount,
		Reason:            input.Reason,
	}

	if err := s.registerRepo.AppendMovement(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// CloseRegisterInput represents the close register input
type CloseRegisterInput struct {
	SessionID   uuid.UUID
	ActualCash  decimal.Decimal
	OtherAmount decimal.NullDecimal
}

// CloseRegister closes a session. The closing balance is computed from the
// opening balance, finalized sales and the movement ledger; the counted cash
// may differ from it, the variance is reported rather than rejected.
func (s *RegisterService) CloseRegister(ctx context.Context, input *CloseRegisterInput) (*entity.RegisterSession, error) {
	if input.ActualCash.IsNegative() {
		return nil, apperror.NewValidationError("Counted cash cannot be negative")
	}
	return s.registerRepo.Close(ctx, input.SessionID, input.ActualCash, input.OtherAmount)
}

// GetSession retrieves a session by ID
func (s *RegisterService) GetSession(ctx context.Context, id uuid.UUID) (*entity.RegisterSession, error) {
	session, err := s.registerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Register session")
	}
	return session, nil
}

// ListMovements returns the cash ledger of a session in insertion order
func (s *RegisterService) ListMovements(ctx context.Context, sessionID uuid.UUID) ([]entity.CashMovement, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.registerRepo.ListMovements(ctx, sessionID)
}

// CurrentSession returns the open session for a terminal, or a not-found
// error when the register is closed
func (s *RegisterService) CurrentSession(ctx context.Context, terminalID string) (*entity.RegisterSession, error) {
	session, err := s.registerRepo.GetOpenByTerminal(ctx, terminalID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Open register session")
	}
	return session, nil
}

// IsOpenFor reports whether a terminal currently has an open session. It is
// a precondition gate for the UI; finalize re-checks inside its own
// transaction, so this result going stale cannot drop sales.
func (s *RegisterService) IsOpenFor(ctx context.Context, terminalID string) (bool, error) {
	session, err := s.registerRepo.GetOpenByTerminal(ctx, terminalID)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}
