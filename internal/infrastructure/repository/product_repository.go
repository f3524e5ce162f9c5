package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	domainRepo "github.com/peakers/pos-api/internal/domain/repository"
	"github.com/peakers/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// productSortColumns are the columns List accepts in ORDER BY. The sort
// key comes from the query string, so anything else falls back to
// created_at instead of being interpolated into the SQL.
var productSortColumns = map[string]bool{
	"name":       true,
	"number":     true,
	"price":      true,
	"stock":      true,
	"created_at": true,
	"updated_at": true,
}

func productSortColumn(requested string) string {
	if productSortColumns[requested] {
		return requested
	}
	return "created_at"
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Components.Component").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Preload("Components.Component").
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetByNumber(ctx context.Context, number string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{}).Where("user_id = ?", userID)

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR number ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}

	if params.LowStock {
		query = query.Where("is_bundle = false AND stock <= stock_alert")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := productSortColumn(params.SortBy)
	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Category").Preload("Components.Component").
		Order(sortBy + " " + sortOrder).
		Find(&products).Error

	return products, total, err
}

// ListSellable returns every product for the user with components loaded,
// ordered by name for a stable register display.
func (r *productRepository) ListSellable(ctx context.Context, userID uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Components.Component").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetLowStock(ctx context.Context, userID uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_bundle = false AND stock <= stock_alert", userID).
		Preload("Category").
		Find(&products).Error
	return products, err
}

// AtomicDecrementBatch atomically decrements stock for multiple products in a single transaction.
// If any product has insufficient stock, the entire transaction is rolled back.
func (r *productRepository) AtomicDecrementBatch(ctx context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	if len(decrements) == 0 {
		return nil, nil
	}

	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range decrements {
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND stock >= ?", id, amount).
				Update("stock", gorm.Expr("stock - ?", amount))

			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}

		// If any products failed, rollback entire transaction
		if len(failedIDs) > 0 {
			return gorm.ErrInvalidTransaction
		}

		return nil
	})

	// Rolled back on insufficient stock: report the failed IDs, not the sentinel
	if err == gorm.ErrInvalidTransaction && len(failedIDs) > 0 {
		return failedIDs, nil
	}

	return failedIDs, err
}

// AtomicIncrementBatch atomically increments stock for multiple products (for cancellations/restores).
func (r *productRepository) AtomicIncrementBatch(ctx context.Context, increments map[uuid.UUID]int) error {
	if len(increments) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range increments {
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", id).
				Update("stock", gorm.Expr("stock + ?", amount)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	var categories []entity.Category
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Category{}).Where("user_id = ?", userID)

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&categories).Error

	return categories, total, err
}
