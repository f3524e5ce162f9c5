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

// MaterialService handles raw material operations
type MaterialService struct {
	materialRepo repository.MaterialRepository
	supplierRepo repository.SupplierRepository
}

// NewMaterialService creates a new material service
func NewMaterialService(materialRepo repository.MaterialRepository, supplierRepo repository.SupplierRepository) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		supplierRepo: supplierRepo,
	}
}

// CreateMaterialInput represents the create material input
type CreateMaterialInput struct {
	UserID     uuid.UUID
	SupplierID *uuid.UUID
	Name       string
	Quantity   int
	Cost       float64
}

// CreateMaterial creates a material
func (s *MaterialService) CreateMaterial(ctx context.Context, input *CreateMaterialInput) (*entity.Material, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.NewBadRequestError("Material name is required")
	}

	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Supplier")
		}
	}

	material := &entity.Material{
		UserID:     input.UserID,
		SupplierID: input.SupplierID,
		Name:       strings.TrimSpace(input.Name),
		Quantity:   input.Quantity,
	}
	material.SetCostFromDecimal(input.Cost)

	if err := s.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}

	return material, nil
}

// GetMaterial retrieves a material by ID
func (s *MaterialService) GetMaterial(ctx context.Context, id uuid.UUID) (*entity.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, apperror.NewNotFoundError("Material")
	}
	return material, nil
}

// UpdateMaterialInput represents the update material input
type UpdateMaterialInput struct {
	SupplierID *uuid.UUID
	Name       *string
	Quantity   *int
	Cost       *float64
}

// UpdateMaterial updates a material
func (s *MaterialService) UpdateMaterial(ctx context.Context, id uuid.UUID, input *UpdateMaterialInput) (*entity.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, apperror.NewNotFoundError("Material")
	}

	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Supplier")
		}
		material.SupplierID = input.SupplierID
	}
	if input.Name != nil {
		material.Name = strings.TrimSpace(*input.Name)
	}
	if input.Quantity != nil {
		material.Quantity = *input.Quantity
	}
	if input.Cost != nil {
		material.SetCostFromDecimal(*input.Cost)
	}

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}

	return material, nil
}

// AdjustQuantity applies a signed delta to a material's on-hand
// quantity, rejecting adjustments that would take it below zero.
func (s *MaterialService) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) (*entity.Material, error) {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, apperror.NewNotFoundError("Material")
	}

	adjusted := material.Quantity + delta
	if adjusted < 0 {
		return nil, apperror.NewConflictError("Adjustment would make the material quantity negative")
	}
	material.Quantity = adjusted

	if err := s.materialRepo.Update(ctx, material); err != nil {
		return nil, err
	}

	return material, nil
}

// DeleteMaterial soft-deletes a material
func (s *MaterialService) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	material, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if material == nil {
		return apperror.NewNotFoundError("Material")
	}
	return s.materialRepo.Delete(ctx, id)
}

// ListMaterials returns a paginated material list
func (s *MaterialService) ListMaterials(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Material, *pagination.Pagination, error) {
	materials, total, err := s.materialRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, nil, err
	}
	return materials, pagination.NewPagination(params.Page, params.PerPage, total), nil
}
