package repository

import (
	"context"
	"errors"
	"time"

	"github.com/sellweave/pos-api/internal/domain/entity"
	"github.com/sellweave/pos-api/internal/domain/enum"
	domainRepo "github.com/sellweave/pos-api/internal/domain/repository"
	"github.com/sellweave/pos-api/pkg/apperror"
	"gorm.io/gorm"
)

type heldSaleRepository struct {
	db *gorm.DB
}

// NewHeldSaleRepository creates a new held sale repository
func NewHeldSaleRepository(db *gorm.DB) domainRepo.HeldSaleRepository {
	return &heldSaleRepository{db: db}
}

// Create inserts the hold, drawing its hold id from the transactional
// sequence in the same transaction as the insert.
func (r *heldSaleRepository) Create(ctx context.Context, hold *entity.HeldSale) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextCounterValue(tx, entity.CounterHoldID)
		if err != nil {
			return err
		}
		hold.HoldID = formatSequence("HLD", seq)
		return tx.Create(hold).Error
	})
	return wrapStorage(err)
}

func (r *heldSaleRepository) GetByHoldID(ctx context.Context, holdID string) (*entity.HeldSale, error) {
	var hold entity.HeldSale
	err := r.db.WithContext(ctx).First(&hold, "hold_id = ?", holdID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &hold, wrapStorage(err)
}

func (r *heldSaleRepository) ListActive(ctx context.Context, terminalID string) ([]entity.HeldSale, error) {
	var holds []entity.HeldSale
	err := r.db.WithContext(ctx).
		Where("terminal_id = ? AND status = ? AND expires_at > ?",
			terminalID, enum.HeldSaleStatusHeld, time.Now()).
		Order("created_at ASC").
		Find(&holds).Error
	return holds, wrapStorage(err)
}

// Recall flips held to recalled with a conditional update scoped to the
// active predicate, so of two concurrent recalls exactly one sees a row
// affected and wins; the other, like any recall of an expired or already
// recalled hold, gets not found.
func (r *heldSaleRepository) Recall(ctx context.Context, holdID string) (*entity.HeldSale, error) {
	var hold entity.HeldSale
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.HeldSale{}).
			Where("hold_id = ? AND status = ? AND expires_at > ?",
				holdID, enum.HeldSaleStatusHeld, time.Now()).
			Update("status", enum.HeldSaleStatusRecalled)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NewNotFoundError("Active held sale")
		}
		return tx.First(&hold, "hold_id = ?", holdID).Error
	})
	if err != nil {
		return nil, wrapStorage(err)
	}
	return &hold, nil
}

// Delete removes a hold permanently. Unknown ids fail with not found; the
// service contract documents this over the silent no-op alternative.
func (r *heldSaleRepository) Delete(ctx context.Context, holdID string) error {
	result := r.db.WithContext(ctx).Delete(&entity.HeldSale{}, "hold_id = ?", holdID)
	if result.Error != nil {
		return wrapStorage(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NewNotFoundError("Held sale")
	}
	return nil
}
