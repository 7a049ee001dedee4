package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegisterSession is the open/closed window during which a terminal may
// finalize sales. Sessions are never deleted; they form the cash audit trail.
// At most one session per terminal may be open at a time, enforced by a
// partial unique index on (terminal_id) WHERE status = open.
type RegisterSession struct {
	ID             uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	TerminalID     string               `gorm:"size:100;not null;index" json:"terminal_id"`
	UserID         uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	Status         enum.RegisterStatus  `gorm:"not null;default:0" json:"status"`
	OpeningBalance decimal.Decimal      `gorm:"type:decimal(14,4);not null" json:"opening_balance"`
	ClosingBalance decimal.NullDecimal  `gorm:"type:decimal(14,4)" json:"closing_balance"`
	ActualCash     decimal.NullDecimal  `gorm:"type:decimal(14,4)" json:"actual_cash"`
	OtherAmount    decimal.NullDecimal  `gorm:"type:decimal(14,4)" json:"other_amount"`
	TotalSales     decimal.Decimal      `gorm:"type:decimal(14,4);not null;default:0" json:"total_sales"`
	TotalSalesQty  decimal.Decimal      `gorm:"type:decimal(14,4);not null;default:0" json:"total_sales_qty"`
	OpenedAt       time.Time            `gorm:"not null" json:"opened_at"`
	ClosedAt       *time.Time           `json:"closed_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`

	// Relationships
	Movements []CashMovement `gorm:"foreignKey:RegisterSessionID" json:"movements,omitempty"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *RegisterSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RegisterSession model
func (RegisterSession) TableName() string {
	return "register_sessions"
}

// MarshalJSON rounds monetary amounts to two fractional digits
func (s RegisterSession) MarshalJSON() ([]byte, error) {
	type Alias RegisterSession
	return json.Marshal(&struct {
		Alias
		OpeningBalance string  `json:"opening_balance"`
		ClosingBalance *string `json:"closing_balance"`
		ActualCash     *string `json:"actual_cash"`
		OtherAmount    *string `json:"other_amount"`
		TotalSales     string  `json:"total_sales"`
	}{
		Alias:          Alias(s),
		OpeningBalance: money(s.OpeningBalance),
		ClosingBalance: nullMoney(s.ClosingBalance),
		ActualCash:     nullMoney(s.ActualCash),
		OtherAmount:    nullMoney(s.OtherAmount),
		TotalSales:     money(s.TotalSales),
	})
}

// IsOpen reports whether the session can still accept movements and sales
func (s *RegisterSession) IsOpen() bool {
	return s.Status == enum.RegisterStatusOpen
}

// ExpectedClosingBalance derives the cash the drawer should contain at close:
// opening balance plus finalized sales plus manual ins minus manual outs.
func (s *RegisterSession) ExpectedClosingBalance(movements []CashMovement) decimal.Decimal {
	balance := s.OpeningBalance.Add(s.TotalSales)
	for _, m := range movements {
		if m.Type == enum.MovementTypeOut {
			balance = balance.Sub(m.Amount)
		} else {
			balance = balance.Add(m.Amount)
		}
	}
	return balance
}

// CashVariance is the difference between the physically counted cash and the
// computed closing balance. Nil until the session is closed.
func (s *RegisterSession) CashVariance() *decimal.Decimal {
	if !s.ActualCash.Valid || !s.ClosingBalance.Valid {
		return nil
	}
	v := s.ActualCash.Decimal.Sub(s.ClosingBalance.Decimal)
	return &v
}

// CashMovement is an append-only ledger entry against an open register
// session. Movements are never updated or deleted; corrections are recorded
// as inverse entries.
type CashMovement struct {
	ID                uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	RegisterSessionID uuid.UUID         `gorm:"type:uuid;not null;index" json:"register_session_id"`
	Type              enum.MovementType `gorm:"not null" json:"type"`
	Amount            decimal.Decimal   `gorm:"type:decimal(14,4);not null" json:"amount"`
	Reason            string            `gorm:"size:255;not null" json:"reason"`
	CreatedAt         time.Time         `json:"created_at"`

	// Relationships
	Session RegisterSession `gorm:"foreignKey:RegisterSessionID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new movement
func (m *CashMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CashMovement model
func (CashMovement) TableName() string {
	return "cash_movements"
}

// MarshalJSON rounds the amount to two fractional digits
func (m CashMovement) MarshalJSON() ([]byte, error) {
	type Alias CashMovement
	return json.Marshal(&struct {
		Alias
		Amount string `json:"amount"`
	}{
		Alias:  Alias(m),
		Amount: money(m.Amount),
	})
}
