package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a shop operator. The company fields double as the
// merchant identity printed on receipts.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	FirstName      string         `gorm:"size:255;not null" json:"first_name"`
	LastName       string         `gorm:"size:255;not null" json:"last_name"`
	Email          string         `gorm:"size:255;unique;not null" json:"email"`
	Password       string         `gorm:"size:255" json:"-"`
	Company        *string        `gorm:"size:255" json:"company,omitempty"`
	CompanyPhone   *string        `gorm:"size:50" json:"company_phone,omitempty"`
	CompanyAddress *string        `gorm:"type:text" json:"company_address,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products  []Product  `gorm:"foreignKey:UserID" json:"-"`
	Sales     []Sale     `gorm:"foreignKey:UserID" json:"-"`
	Customers []Customer `gorm:"foreignKey:UserID" json:"-"`
	Suppliers []Supplier `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
