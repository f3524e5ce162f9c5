package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense is a business expense recorded against the shop.
type Expense struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Amount      int64          `gorm:"default:0" json:"-"` // Stored in cents
	IncurredAt  time.Time      `json:"incurred_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}

// GetAmountDecimal returns the amount as a decimal (for display)
func (e *Expense) GetAmountDecimal() float64 {
	return float64(e.Amount) / 100
}

// SetAmountFromDecimal sets the amount from a decimal value
func (e *Expense) SetAmountFromDecimal(amount float64) {
	e.Amount = int64(amount * 100)
}

// MarshalJSON converts Expense to JSON with a decimal amount
func (e Expense) MarshalJSON() ([]byte, error) {
	type Alias Expense
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(e),
		Amount: e.GetAmountDecimal(),
	})
}
