package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RegisterRepository defines the interface for register session data
// operations. The concurrency-sensitive operations (Create's one-open-per-
// terminal guarantee, AppendMovement's open check, Close) are each atomic:
// implementations enforce them inside a single transaction, not with
// read-then-write checks.
type RegisterRepository interface {
	// Create inserts a new open session. A session already open for the
	// same terminal surfaces as a conflict error.
	Create(ctx context.Context, session *entity.RegisterSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.RegisterSession, error)
	// GetOpenByTerminal returns the open session for a terminal, nil when
	// the register is closed.
	GetOpenByTerminal(ctx context.Context, terminalID string) (*entity.RegisterSession, error)
	// AppendMovement inserts a cash movement while holding a lock on the
	// owning session; it fails with an invalid-state error if the session
	// is not open.
	AppendMovement(ctx context.Context, movement *entity.CashMovement) error
	ListMovements(ctx context.Context, sessionID uuid.UUID) ([]entity.CashMovement, error)
	// Close locks the session, derives the closing balance from the
	// opening balance, sales total and movement ledger, records the
	// counted cash and marks the session closed. Closing a closed session
	// fails with an invalid-state error.
	Close(ctx context.Context, sessionID uuid.UUID, actualCash decimal.Decimal, otherAmount decimal.NullDecimal) (*entity.RegisterSession, error)
}
