package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByNumber(ctx context.Context, number string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *ProductFilterParams) ([]entity.Product, int64, error)
	// ListSellable returns all products with bundle components preloaded,
	// for building the register's catalog snapshot.
	ListSellable(ctx context.Context, userID uuid.UUID) ([]entity.Product, error)
	GetLowStock(ctx context.Context, userID uuid.UUID) ([]entity.Product, error)
	// AtomicDecrementBatch atomically decrements stock for multiple products.
	// Returns product IDs that failed (insufficient stock) and any error.
	// If any product fails, the entire transaction is rolled back.
	AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) (failedIDs []uuid.UUID, err error)
	// AtomicIncrementBatch atomically increments stock for multiple products (for cancellations/restores).
	AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CategoryID *uuid.UUID
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error)
}
