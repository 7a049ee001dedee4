package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/internal/domain/enum"
	domainRepo "github.com/sellweave/pos-api/internal/domain/repository"
	"github.com/sellweave/pos-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type registerRepository struct {
	db *gorm.DB
}

// NewRegisterRepository creates a new register repository
func NewRegisterRepository(db *gorm.DB) domainRepo.RegisterRepository {
	return &registerRepository{db: db}
}

// Create inserts a new session. The partial unique index on
// (terminal_id) WHERE status = open makes a concurrent double open lose at
// commit time instead of at a racy read-then-write check.
func (r *registerRepository) Create(ctx context.Context, session *entity.RegisterSession) error {
	err := r.db.WithContext(ctx).Create(session).Error
	if isDuplicate(err) {
		return apperror.NewConflictError("A register session is already open for terminal " + session.TerminalID)
	}
	return wrapStorage(err)
}

func (r *registerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.RegisterSession, error) {
	var session entity.RegisterSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, wrapStorage(err)
}

func (r *registerRepository) GetOpenByTerminal(ctx context.Context, terminalID string) (*entity.RegisterSession, error) {
	var session entity.RegisterSession
	err := r.db.WithContext(ctx).
		First(&session, "terminal_id = ? AND status = ?", terminalID, enum.RegisterStatusOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, wrapStorage(err)
}

// AppendMovement holds a row lock on the owning session for the duration of
// the insert so a concurrent close cannot slip between the open check and
// the write.
func (r *registerRepository) AppendMovement(ctx context.Context, movement *entity.CashMovement) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var session entity.RegisterSession
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&session, "id = ?", movement.RegisterSessionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFoundError("Register session")
		}
		if err != nil {
			return err
		}
		if !session.IsOpen() {
			return apperror.NewInvalidStateError("Cannot record a cash movement against a closed register session")
		}
		return tx.Create(movement).Error
	})
	return wrapStorage(err)
}

// ListMovements returns the ledger in insertion order. Order is defined by
// commit order, not by client-supplied timestamps.
func (r *registerRepository) ListMovements(ctx context.Context, sessionID uuid.UUID) ([]entity.CashMovement, error) {
	var movements []entity.CashMovement
	err := r.db.WithContext(ctx).
		Where("register_session_id = ?", sessionID).
		Order("created_at ASC, id ASC").
		Find(&movements).Error
	return movements, wrapStorage(err)
}

// Close locks the session, derives the closing balance from the ledger and
// the sales total, and marks it closed. The same lock serializes close
// against finalize, so a sale can never vanish from the totals.
func (r *registerRepository) Close(ctx context.Context, sessionID uuid.UUID, actualCash decimal.Decimal, otherAmount decimal.NullDecimal) (*entity.RegisterSession, error) {
	var session entity.RegisterSession
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&session, "id = ?", sessionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFoundError("Register session")
		}
		if err != nil {
			return err
		}
		if !session.IsOpen() {
			return apperror.NewInvalidStateError("Register session is already closed")
		}

		var movements []entity.CashMovement
		if err := tx.Where("register_session_id = ?", session.ID).Find(&movements).Error; err != nil {
			return err
		}

		now := time.Now()
		session.Status = enum.RegisterStatusClosed
		session.ClosingBalance = decimal.NewNullDecimal(session.ExpectedClosingBalance(movements))
		session.ActualCash = decimal.NewNullDecimal(actualCash)
		session.OtherAmount = otherAmount
		session.ClosedAt = &now

		return tx.Save(&session).Error
	})
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &session, nil
}
