package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale is a committed checkout. Totals are denormalized onto the row so a
// later price change never rewrites history. All amounts are in cents.
type Sale struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	Number      string           `gorm:"size:100;unique;not null" json:"number"`
	Status      enum.SaleStatus  `gorm:"size:50;default:'completed'" json:"status"`
	PaymentType enum.PaymentType `gorm:"size:50;not null" json:"payment_type"`
	Subtotal    int64            `gorm:"default:0" json:"-"`
	VATRate     float64          `gorm:"default:0" json:"vat_rate"`
	VATAmount   int64            `gorm:"default:0" json:"-"`
	Discount    int64            `gorm:"default:0" json:"-"`
	Total       int64            `gorm:"default:0" json:"-"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	User     User       `gorm:"foreignKey:UserID" json:"-"`
	Customer Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
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

// MarshalJSON converts Sale to JSON with decimal amounts
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		Subtotal  float64 `json:"subtotal"`
		VATAmount float64 `json:"vat_amount"`
		Discount  float64 `json:"discount"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(s),
		Subtotal:  float64(s.Subtotal) / 100,
		VATAmount: float64(s.VATAmount) / 100,
		Discount:  float64(s.Discount) / 100,
		Total:     float64(s.Total) / 100,
	})
}

// SaleItem is one line of a sale. The product name and unit price are
// copied at sale time so receipts reprint faithfully.
type SaleItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string    `gorm:"size:255;not null" json:"product_name"`
	IsBundle    bool      `gorm:"default:false" json:"is_bundle"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   int64     `gorm:"not null" json:"-"`
	LineTotal   int64     `gorm:"not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Sale    Sale    `gorm:"foreignKey:SaleID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// MarshalJSON converts SaleItem to JSON with decimal amounts
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(si),
		UnitPrice: float64(si.UnitPrice) / 100,
		LineTotal: float64(si.LineTotal) / 100,
	})
}
