package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// HeldSale is a cart snapshot parked for later recall. It has no relation to
// register sessions: a sale may be held while no register is open, it just
// cannot be finalized. Expiry is derived from expires_at at read time rather
// than flipped by a background sweep.
type HeldSale struct {
	ID         uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	HoldID     string              `gorm:"size:50;unique;not null" json:"hold_id"`
	TerminalID string              `gorm:"size:100;not null;index" json:"terminal_id"`
	UserID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	SaleData   json.RawMessage     `gorm:"type:jsonb;not null" json:"sale_data"`
	Status     enum.HeldSaleStatus `gorm:"not null;default:0" json:"status"`
	Notes      string              `gorm:"size:255" json:"notes"`
	ExpiresAt  time.Time           `gorm:"not null;index" json:"expires_at"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new held sale
func (h *HeldSale) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the HeldSale model
func (HeldSale) TableName() string {
	return "held_sales"
}

// IsActiveAt reports whether the hold can still be recalled at the given time
func (h *HeldSale) IsActiveAt(now time.Time) bool {
	return h.Status == enum.HeldSaleStatusHeld && h.ExpiresAt.After(now)
}

// EffectiveStatus returns the status a reader should see: a stored "held"
// whose expiry has passed reads as "expired" even though no write occurred.
func (h *HeldSale) EffectiveStatus(now time.Time) enum.HeldSaleStatus {
	if h.Status == enum.HeldSaleStatusHeld && !h.ExpiresAt.After(now) {
		return enum.HeldSaleStatusExpired
	}
	return h.Status
}

// MarshalJSON adds the derived activity fields to API responses
func (h HeldSale) MarshalJSON() ([]byte, error) {
	type Alias HeldSale
	now := time.Now()
	return json.Marshal(&struct {
		Alias
		Status   enum.HeldSaleStatus `json:"status"`
		IsActive bool                `json:"is_active"`
	}{
		Alias:    Alias(h),
		Status:   h.EffectiveStatus(now),
		IsActive: h.IsActiveAt(now),
	})
}
