package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/pkg/pagination"
)

// MaterialRepository defines the interface for material data operations
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Material, int64, error)
}

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Expense, int64, error)
	// SumAmounts returns the summed expense amount (in cents) for the user
	// within the given window.
	SumAmounts(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error)
}
