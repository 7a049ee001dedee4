package request

import (
	"time"

	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SchemeRequest represents a discount scheme create/update request
type SchemeRequest struct {
	Name      string              `json:"name" binding:"required,min=2,max=255"`
	Type      enum.DiscountType   `json:"type"`
	Value     decimal.Decimal     `json:"value"`
	AppliesTo enum.DiscountTarget `json:"applies_to"`
	Target    string              `json:"target" binding:"required,max=255"`
	StartDate *time.Time          `json:"start_date"`
	EndDate   *time.Time          `json:"end_date"`
	Active    bool                `json:"active"`
}
