package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/internal/domain/repository"
)

// DashboardService aggregates shop figures for the overview screen
type DashboardService struct {
	saleRepo     repository.SaleRepository
	expenseRepo  repository.ExpenseRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	saleRepo repository.SaleRepository,
	expenseRepo repository.ExpenseRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *DashboardService {
	return &DashboardService{
		saleRepo:     saleRepo,
		expenseRepo:  expenseRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// Summary is the dashboard aggregate. Money amounts are decimals for
// direct display.
type Summary struct {
	SalesCount    int64            `json:"sales_count"`
	Revenue       float64          `json:"revenue"`
	Expenses      float64          `json:"expenses"`
	Net           float64          `json:"net"`
	CustomerCount int64            `json:"customer_count"`
	LowStock      []entity.Product `json:"low_stock"`
}

// GetSummary builds the dashboard aggregate for the given window.
func (s *DashboardService) GetSummary(ctx context.Context, userID uuid.UUID, from, to time.Time) (*Summary, error) {
	salesCount, revenue, err := s.saleRepo.SumTotals(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.SumAmounts(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	customerCount, err := s.customerRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.GetLowStock(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		SalesCount:    salesCount,
		Revenue:       float64(revenue) / 100,
		Expenses:      float64(expenses) / 100,
		Net:           float64(revenue-expenses) / 100,
		CustomerCount: customerCount,
		LowStock:      lowStock,
	}, nil
}
