package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/internal/domain/enum"
	domainRepo "github.com/peakers/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

// CreateWithItems persists the sale header and its line items in a single
// transaction so a partial write never survives.
func (r *saleRepository) CreateWithItems(ctx context.Context, sale *entity.Sale, items []entity.SaleItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].SaleID = sale.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Customer").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{}).Where("user_id = ?", userID)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.PaymentType != nil {
		query = query.Where("payment_type = ?", *params.PaymentType)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.From != nil {
		query = query.Where("created_at >= ?", *params.From)
	}

	if params.To != nil {
		query = query.Where("created_at < ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").Preload("Customer").
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *saleRepository) SumTotals(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, int64, error) {
	var row struct {
		Count int64
		Sum   int64
	}
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Select("COUNT(*) as count, COALESCE(SUM(total), 0) as sum").
		Where("user_id = ? AND status = ? AND created_at >= ? AND created_at < ?",
			userID, enum.SaleStatusCompleted, from, to).
		Scan(&row).Error
	return row.Count, row.Sum, err
}

// NextNumber allocates the next sale number by counting existing rows,
// including soft-deleted ones so numbers are never reused.
func (r *saleRepository) NextNumber(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Sale{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count + 1, err
}
