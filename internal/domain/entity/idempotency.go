package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey records a processed request key so a retried checkout
// returns the stored response instead of committing a second sale.
type IdempotencyKey struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Key        string    `gorm:"size:255;uniqueIndex:idx_idempotency_user_key;not null" json:"key"`
	Response   []byte    `gorm:"type:jsonb" json:"-"`
	StatusCode int       `gorm:"not null" json:"status_code"`
	ExpiresAt  time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new idempotency key
func (ik *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if ik.ID == uuid.Nil {
		ik.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the IdempotencyKey model
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired reports whether the key has passed its retention window.
func (ik *IdempotencyKey) IsExpired() bool {
	return time.Now().After(ik.ExpiresAt)
}
