package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/internal/domain/enum"
	"github.com/peakers/pos-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// CreateWithItems persists the sale and its line items in one transaction.
	CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// GetWithItems retrieves a sale with items and customer preloaded.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, userID uuid.UUID, params *SaleFilterParams) ([]entity.Sale, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error
	// SumTotals returns the number of sales and the summed total (in cents)
	// for the user within the given window.
	SumTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, int64, error)
	// NextNumber allocates the next sequential sale number for the user.
	NextNumber(ctx context.Context, userID uuid.UUID) (int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination  *pagination.PaginationParams
	Status      *enum.SaleStatus
	PaymentType *enum.PaymentType
	CustomerID  *uuid.UUID
	From        *time.Time
	To          *time.Time
}
