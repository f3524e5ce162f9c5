package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a sellable item: either a plain product carrying its
// own stock, or a bundle whose effective stock is derived from its
// components. The two kinds are discriminated by IsBundle, never by the
// shape of the identifier.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CategoryID  *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Number      string         `gorm:"size:100;unique;not null" json:"number"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Price       int64          `gorm:"default:0" json:"-"` // Stored in cents
	Stock       int            `gorm:"default:0" json:"stock"`
	StockAlert  int            `gorm:"default:0" json:"stock_alert"`
	IsBundle    bool           `gorm:"default:false" json:"is_bundle"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User       User              `gorm:"foreignKey:UserID" json:"-"`
	Category   *Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Components []BundleComponent `gorm:"foreignKey:BundleID" json:"components,omitempty"`
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

// GetPriceDecimal returns the selling price as a decimal (for display)
func (p *Product) GetPriceDecimal() float64 {
	return float64(p.Price) / 100
}

// SetPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = int64(price * 100)
}

// EffectiveStock returns the sellable stock. For a plain product this is
// its own stock. For a bundle it is the largest number of bundles the
// component stocks can still assemble; a bundle with no loaded components
// is treated as unsellable.
func (p *Product) EffectiveStock() int {
	if !p.IsBundle {
		return p.Stock
	}
	if len(p.Components) == 0 {
		return 0
	}
	stock := -1
	for _, c := range p.Components {
		if c.Quantity <= 0 {
			continue
		}
		available := c.Component.Stock / c.Quantity
		if stock < 0 || available < stock {
			stock = available
		}
	}
	if stock < 0 {
		return 0
	}
	return stock
}

// MarshalJSON converts Product to JSON with a decimal price
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
	}{
		Alias: Alias(p),
		Price: p.GetPriceDecimal(),
	})
}

// BundleComponent ties a bundle product to one of its underlying products.
type BundleComponent struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BundleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"bundle_id"`
	ComponentID uuid.UUID `gorm:"type:uuid;not null;index" json:"component_id"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Bundle    Product `gorm:"foreignKey:BundleID" json:"-"`
	Component Product `gorm:"foreignKey:ComponentID" json:"component,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bundle component
func (bc *BundleComponent) BeforeCreate(tx *gorm.DB) error {
	if bc.ID == uuid.Nil {
		bc.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BundleComponent model
func (BundleComponent) TableName() string {
	return "bundle_components"
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
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
