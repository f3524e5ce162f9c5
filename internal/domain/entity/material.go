package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material is a raw input purchased from a supplier.
type Material struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	SupplierID *uuid.UUID     `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Quantity   int            `gorm:"default:0" json:"quantity"`
	Cost       int64          `gorm:"default:0" json:"-"` // Stored in cents
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

// BeforeCreate generates a UUID before creating a new material
func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Material model
func (Material) TableName() string {
	return "materials"
}

// GetCostDecimal returns the unit cost as a decimal (for display)
func (m *Material) GetCostDecimal() float64 {
	return float64(m.Cost) / 100
}

// SetCostFromDecimal sets the unit cost from a decimal value
func (m *Material) SetCostFromDecimal(cost float64) {
	m.Cost = int64(cost * 100)
}

// MarshalJSON converts Material to JSON with a decimal cost
func (m Material) MarshalJSON() ([]byte, error) {
	type Alias Material
	return json.Marshal(&struct {
		Alias
		Cost float64 `json:"cost"`
	}{
		Alias: Alias(m),
		Cost:  m.GetCostDecimal(),
	})
}
