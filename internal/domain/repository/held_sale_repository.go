package repository

import (
	"context"

	"github.com/sellweave/pos-api/internal/domain/entity"
)

// HeldSaleRepository defines the interface for parked-cart persistence.
// "Active" everywhere means status=held and expires_at in the future; expiry
// is a read-time predicate, there is no background sweep.
type HeldSaleRepository interface {
	// Create inserts the hold and allocates its human-readable hold id
	// from a transactional sequence in the same transaction.
	Create(ctx context.Context, hold *entity.HeldSale) error
	GetByHoldID(ctx context.Context, holdID string) (*entity.HeldSale, error)
	// ListActive returns active holds for a terminal ordered by creation
	// time.
	ListActive(ctx context.Context, terminalID string) ([]entity.HeldSale, error)
	// Recall flips an active hold to recalled and returns it. Exactly one
	// caller can win a concurrent recall; losers get a not-found error,
	// as does any recall of an expired or already recalled hold.
	Recall(ctx context.Context, holdID string) (*entity.HeldSale, error)
	// Delete permanently removes a hold. Deleting an unknown hold id
	// fails with a not-found error.
	Delete(ctx context.Context, holdID string) error
}
