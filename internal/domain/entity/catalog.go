package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the slim, read-side view of the catalog the transaction core
// consumes. Catalog administration lives in a separate service; only the
// pricing attributes the resolver needs are modeled here.
type Product struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID     *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name           string          `gorm:"size:255;not null;index" json:"name"`
	Code           string          `gorm:"size:100;unique;not null" json:"code"`
	SalesPrice     decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0" json:"sales_price"`
	WholesalePrice decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0" json:"wholesale_price"`
	MRP            decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0" json:"mrp"`
	Stock          decimal.Decimal `gorm:"type:decimal(14,4);not null;default:0" json:"stock"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// CategoryName returns the preloaded category name, empty when uncategorized
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// Category groups products for category-targeted discount schemes
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null;unique" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Customer is the read-side view of the customer directory
type Customer struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name             string         `gorm:"size:255;not null" json:"name"`
	Phone            *string        `gorm:"size:50" json:"phone,omitempty"`
	Group            string         `gorm:"size:100" json:"group"`
	IsCreditEligible bool           `gorm:"not null;default:false" json:"is_credit_eligible"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
