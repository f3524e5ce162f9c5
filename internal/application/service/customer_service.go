package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/internal/domain/repository"
	"github.com/peakers/pos-api/pkg/apperror"
	"github.com/peakers/pos-api/pkg/pagination"
)

// CustomerService handles customer operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input. Only Name is
// required; blank optional fields are stored as NULL.
type CreateCustomerInput struct {
	UserID  uuid.UUID
	Name    string
	Phone   *string
	Email   *string
	Address *string
}

// CreateCustomer creates a customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	customer := &entity.Customer{
		UserID:  input.UserID,
		Name:    strings.TrimSpace(input.Name),
		Phone:   normalizeOptional(input.Phone),
		Email:   normalizeOptional(input.Email),
		Address: normalizeOptional(input.Address),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperror.NewBadRequestError("Customer name is required")
		}
		customer.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		customer.Phone = normalizeOptional(input.Phone)
	}
	if input.Email != nil {
		customer.Email = normalizeOptional(input.Email)
	}
	if input.Address != nil {
		customer.Address = normalizeOptional(input.Address)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers returns a paginated customer list
func (s *CustomerService) ListCustomers(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Customer, *pagination.Pagination, error) {
	customers, total, err := s.customerRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, nil, err
	}
	return customers, pagination.NewPagination(params.Page, params.PerPage, total), nil
}

// normalizeOptional trims an optional field and returns nil for blanks.
func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
