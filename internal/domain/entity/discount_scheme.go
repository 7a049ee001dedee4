package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountScheme is an administrator-defined promotional rule. The
// transaction core only ever reads schemes; CRUD lives on the admin surface.
type DiscountScheme struct {
	ID        uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	Name      string              `gorm:"size:255;not null" json:"name"`
	Type      enum.DiscountType   `gorm:"not null;default:0" json:"type"`
	Value     decimal.Decimal     `gorm:"type:decimal(14,4);not null" json:"value"`
	AppliesTo enum.DiscountTarget `gorm:"not null;default:0" json:"applies_to"`
	Target    string              `gorm:"size:255;not null" json:"target"`
	StartDate *time.Time          `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *time.Time          `gorm:"type:date" json:"end_date,omitempty"`
	Active    bool                `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	DeletedAt gorm.DeletedAt      `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new scheme
func (d *DiscountScheme) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DiscountScheme model
func (DiscountScheme) TableName() string {
	return "discount_schemes"
}

// AppliesOn reports whether the scheme is active and within its date window.
// A nil bound is unbounded on that side; both bounds are inclusive.
func (d *DiscountScheme) AppliesOn(asOf time.Time) bool {
	if !d.Active {
		return false
	}
	if d.StartDate != nil && asOf.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && asOf.After(endOfDay(*d.EndDate)) {
		return false
	}
	return true
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
