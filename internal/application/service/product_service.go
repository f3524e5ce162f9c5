package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/internal/domain/repository"
	"github.com/peakers/pos-api/pkg/apperror"
	"github.com/peakers/pos-api/pkg/pagination"
)

// ProductService handles product and category operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// BundleComponentInput is one component line of a bundle definition
type BundleComponentInput struct {
	ComponentID uuid.UUID
	Quantity    int
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID      uuid.UUID
	CategoryID  *uuid.UUID
	Number      string
	Name        string
	Description *string
	Price       float64
	Stock       int
	StockAlert  int
	IsBundle    bool
	Components  []BundleComponentInput
}

// CreateProduct creates a product. Bundles must list at least one
// component referencing an existing non-bundle product; a bundle's own
// stock column stays zero since its stock is derived.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	existing, err := s.productRepo.GetByNumber(ctx, input.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product number already in use")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	product := &entity.Product{
		UserID:      input.UserID,
		CategoryID:  input.CategoryID,
		Number:      input.Number,
		Name:        input.Name,
		Description: input.Description,
		Stock:       input.Stock,
		StockAlert:  input.StockAlert,
		IsBundle:    input.IsBundle,
	}
	product.SetPriceFromDecimal(input.Price)

	if input.IsBundle {
		if len(input.Components) == 0 {
			return nil, apperror.NewBadRequestError("A bundle needs at least one component")
		}
		product.Stock = 0

		componentIDs := make([]uuid.UUID, len(input.Components))
		for i, c := range input.Components {
			componentIDs[i] = c.ComponentID
		}
		components, err := s.productRepo.GetByIDs(ctx, componentIDs)
		if err != nil {
			return nil, err
		}
		componentMap := make(map[uuid.UUID]*entity.Product, len(components))
		for i := range components {
			componentMap[components[i].ID] = &components[i]
		}

		for _, c := range input.Components {
			component, exists := componentMap[c.ComponentID]
			if !exists {
				return nil, apperror.NewNotFoundError(fmt.Sprintf("Component product %s", c.ComponentID))
			}
			if component.IsBundle {
				return nil, apperror.NewBadRequestError("A bundle cannot contain another bundle")
			}
			if c.Quantity < 1 {
				return nil, apperror.NewBadRequestError("Component quantity must be at least 1")
			}
			product.Components = append(product.Components, entity.BundleComponent{
				ComponentID: c.ComponentID,
				Quantity:    c.Quantity,
			})
		}
	} else if len(input.Components) > 0 {
		return nil, apperror.NewBadRequestError("Only bundles can have components")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	CategoryID  *uuid.UUID
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	StockAlert  *int
}

// UpdateProduct updates a product's mutable fields. Bundle composition is
// fixed at creation; stock updates on a bundle are rejected.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.Price != nil {
		product.SetPriceFromDecimal(*input.Price)
	}
	if input.Stock != nil {
		if product.IsBundle {
			return nil, apperror.NewBadRequestError("Bundle stock is derived from components")
		}
		product.Stock = *input.Stock
	}
	if input.StockAlert != nil {
		product.StockAlert = *input.StockAlert
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts returns a paginated product list
func (s *ProductService) ListProducts(ctx context.Context, userID uuid.UUID, params *repository.ProductFilterParams) ([]entity.Product, *pagination.Pagination, error) {
	products, total, err := s.productRepo.List(ctx, userID, params)
	if err != nil {
		return nil, nil, err
	}
	return products, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total), nil
}

// SellableItems returns every product with its effective sellable stock,
// bundles included. This feeds the register's catalog snapshot.
func (s *ProductService) SellableItems(ctx context.Context, userID uuid.UUID) ([]entity.Product, error) {
	return s.productRepo.ListSellable(ctx, userID)
}

// GetLowStock returns non-bundle products at or below their alert level
func (s *ProductService) GetLowStock(ctx context.Context, userID uuid.UUID) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, userID)
}

// CreateCategory creates a product category
func (s *ProductService) CreateCategory(ctx context.Context, userID uuid.UUID, name string) (*entity.Category, error) {
	category := &entity.Category{
		UserID: userID,
		Name:   name,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns a paginated category list
func (s *ProductService) ListCategories(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Category, *pagination.Pagination, error) {
	categories, total, err := s.categoryRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, nil, err
	}
	return categories, pagination.NewPagination(params.Page, params.PerPage, total), nil
}

// DeleteCategory soft-deletes a category
func (s *ProductService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}
