package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sellweave/pos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is a finalized transaction persisted against an open register session
type Sale struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo         string           `gorm:"size:50;unique;not null" json:"invoice_no"`
	RegisterSessionID uuid.UUID        `gorm:"type:uuid;not null;index" json:"register_session_id"`
	TerminalID        string           `gorm:"size:100;not null;index" json:"terminal_id"`
	UserID            uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID        *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	SaleType          enum.SaleType    `gorm:"not null;default:0" json:"sale_type"`
	SubtotalAtMRP     decimal.Decimal  `gorm:"type:decimal(14,4);not null" json:"subtotal_at_mrp"`
	ItemDiscounts     decimal.Decimal  `gorm:"type:decimal(14,4);not null" json:"total_item_discounts"`
	SpecialDiscounts  decimal.Decimal  `gorm:"type:decimal(14,4);not null" json:"total_special_discounts"`
	BillDiscount      decimal.Decimal  `gorm:"type:decimal(14,4);not null" json:"total_bill_discount"`
	TaxRatePercent    decimal.Decimal  `gorm:"type:decimal(7,4);not null" json:"tax_rate_percent"`
	TaxAmount         decimal.Decimal  `gorm:"type:decimal(14,4);not null" json:"tax_amount"`
	ShippingAmount    decimal.Decimal  `gorm:"type:decimal(14,4);not null" json:"shipping_amount"`
	NetItemTotal      decimal.Decimal  `gorm:"type:decimal(14,4);not null" json:"net_item_total"`
	FinalTotal        decimal.Decimal  `gorm:"type:decimal(14,4);not null" json:"final_total"`
	PaymentType       enum.PaymentType `gorm:"not null;default:0" json:"payment_type"`
	PaidAmount        decimal.Decimal  `gorm:"type:decimal(14,4);not null" json:"paid_amount"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`

	// Relationships
	Session  RegisterSession `gorm:"foreignKey:RegisterSessionID" json:"-"`
	Customer *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem      `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// MarshalJSON rounds monetary amounts to two fractional digits
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubtotalAtMRP    string `json:"subtotal_at_mrp"`
		ItemDiscounts    string `json:"total_item_discounts"`
		SpecialDiscounts string `json:"total_special_discounts"`
		BillDiscount     string `json:"total_bill_discount"`
		TaxAmount        string `json:"tax_amount"`
		ShippingAmount   string `json:"shipping_amount"`
		NetItemTotal     string `json:"net_item_total"`
		FinalTotal       string `json:"final_total"`
		PaidAmount       string `json:"paid_amount"`
	}{
		Alias:            Alias(s),
		SubtotalAtMRP:    money(s.SubtotalAtMRP),
		ItemDiscounts:    money(s.ItemDiscounts),
		SpecialDiscounts: money(s.SpecialDiscounts),
		BillDiscount:     money(s.BillDiscount),
		TaxAmount:        money(s.TaxAmount),
		ShippingAmount:   money(s.ShippingAmount),
		NetItemTotal:     money(s.NetItemTotal),
		FinalTotal:       money(s.FinalTotal),
		PaidAmount:       money(s.PaidAmount),
	})
}

// SaleItem is a persisted line item of a finalized sale. Product attributes
// are denormalized at finalize time so receipts survive catalog edits.
type SaleItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName     string          `gorm:"size:255;not null" json:"product_name"`
	Quantity        decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"quantity"`
	MRP             decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"mrp"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"unit_price"`
	SchemeName      *string         `gorm:"size:255" json:"scheme_name,omitempty"`
	SpecialDiscount decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"special_discount"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(14,4);not null" json:"line_total"`
	CreatedAt       time.Time       `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// MarshalJSON rounds monetary amounts to two fractional digits
func (i SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		MRP             string `json:"mrp"`
		UnitPrice       string `json:"unit_price"`
		SpecialDiscount string `json:"special_discount"`
		LineTotal       string `json:"line_total"`
	}{
		Alias:           Alias(i),
		MRP:             money(i.MRP),
		UnitPrice:       money(i.UnitPrice),
		SpecialDiscount: money(i.SpecialDiscount),
		LineTotal:       money(i.LineTotal),
	})
}
