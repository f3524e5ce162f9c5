package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	Get(ctx context.Context, userID uuid.UUID, key string) (*entity.IdempotencyKey, error)
	Save(ctx context.Context, record *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
