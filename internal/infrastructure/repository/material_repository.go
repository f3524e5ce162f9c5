package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	domainRepo "github.com/peakers/pos-api/internal/domain/repository"
	"github.com/peakers/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *gorm.DB) domainRepo.MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *entity.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Material, error) {
	var material entity.Material
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		First(&material, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &material, err
}

func (r *materialRepository) Update(ctx context.Context, material *entity.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *materialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Material{}, "id = ?", id).Error
}

func (r *materialRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Material, int64, error) {
	var materials []entity.Material
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Material{}).Where("user_id = ?", userID)

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Supplier").
		Order("name ASC").
		Find(&materials).Error

	return materials, total, err
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Expense{}).Where("user_id = ?", userID)

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("incurred_at DESC").
		Find(&expenses).Error

	return expenses, total, err
}

func (r *expenseRepository) SumAmounts(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND incurred_at >= ? AND incurred_at < ?", userID, from, to).
		Scan(&sum).Error
	return sum, err
}
