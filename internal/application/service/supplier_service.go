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

// SupplierService handles supplier operations
type SupplierService struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo repository.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// CreateSupplierInput represents the create supplier input
type CreateSupplierInput struct {
	UserID  uuid.UUID
	Name    string
	Phone   *string
	Email   *string
	Address *string
}

// CreateSupplier creates a supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewBadRequestError("Supplier name is required")
	}

	supplier := &entity.Supplier{
		UserID:  input.UserID,
		Name:    strings.TrimSpace(input.Name),
		Phone:   normalizeOptional(input.Phone),
		Email:   normalizeOptional(input.Email),
		Address: normalizeOptional(input.Address),
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// UpdateSupplierInput represents the update supplier input
type UpdateSupplierInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// UpdateSupplier updates a supplier
func (s *SupplierService) UpdateSupplier(ctx context.Context, id uuid.UUID, input *UpdateSupplierInput) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, apperror.NewBadRequestError("Supplier name is required")
		}
		supplier.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		supplier.Phone = normalizeOptional(input.Phone)
	}
	if input.Email != nil {
		supplier.Email = normalizeOptional(input.Email)
	}
	if input.Address != nil {
		supplier.Address = normalizeOptional(input.Address)
	}

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// DeleteSupplier soft-deletes a supplier
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Supplier")
	}
	return s.supplierRepo.Delete(ctx, id)
}

// ListSuppliers returns a paginated supplier list
func (s *SupplierService) ListSuppliers(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Supplier, *pagination.Pagination, error) {
	suppliers, total, err := s.supplierRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, nil, err
	}
	return suppliers, pagination.NewPagination(params.Page, params.PerPage, total), nil
}
