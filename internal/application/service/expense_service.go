package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/internal/domain/repository"
	"github.com/peakers/pos-api/pkg/apperror"
	"github.com/peakers/pos-api/pkg/pagination"
)

// ExpenseService handles expense operations
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	UserID      uuid.UUID
	Name        string
	Description *string
	Amount      float64
	IncurredAt  *time.Time
}

// CreateExpense records an expense. IncurredAt defaults to now.
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewBadRequestError("Expense name is required")
	}
	if input.Amount < 0 {
		return nil, apperror.NewBadRequestError("Expense amount cannot be negative")
	}

	incurredAt := time.Now()
	if input.IncurredAt != nil {
		incurredAt = *input.IncurredAt
	}

	expense := &entity.Expense{
		UserID:      input.UserID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		IncurredAt:  incurredAt,
	}
	expense.SetAmountFromDecimal(input.Amount)

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// DeleteExpense soft-deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}
	return s.expenseRepo.Delete(ctx, id)
}

// ListExpenses returns a paginated expense list
func (s *ExpenseService) ListExpenses(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Expense, *pagination.Pagination, error) {
	expenses, total, err := s.expenseRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, nil, err
	}
	return expenses, pagination.NewPagination(params.Page, params.PerPage, total), nil
}
