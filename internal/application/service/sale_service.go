package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/internal/domain/enum"
	"github.com/peakers/pos-api/internal/domain/repository"
	"github.com/peakers/pos-api/pkg/apperror"
	"github.com/peakers/pos-api/pkg/pagination"
)

// StockConflictError reports the products whose live stock could not
// cover a sale. It unwraps to a 409 apperror so HTTP handlers render
// the conflict directly, while callers that need the offending products
// (the register gateway adapter) read them structurally.
type StockConflictError struct {
	FailedIDs   []uuid.UUID
	FailedNames []string

	app *apperror.AppError
}

func newStockConflictError(ids []uuid.UUID, names []string) *StockConflictError {
	return &StockConflictError{
		FailedIDs:   ids,
		FailedNames: names,
		app:         apperror.NewStockConflictError(fmt.Sprintf("Insufficient stock for: %v", names)),
	}
}

func (e *StockConflictError) Error() string {
	return e.app.Message
}

func (e *StockConflictError) Unwrap() error {
	return e.app
}

// SaleService handles sale processing and history
type SaleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// SaleLineInput is one line of a sale submission. Amounts are in cents.
type SaleLineInput struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice int64
	LineTotal int64
	IsBundle  bool
}

// ProcessSaleInput represents the sale submission. Amounts are in cents.
type ProcessSaleInput struct {
	UserID      uuid.UUID
	CustomerID  uuid.UUID
	PaymentType enum.PaymentType
	Lines       []SaleLineInput
	Subtotal    int64
	VATRate     float64
	VATAmount   int64
	Discount    int64
	Total       int64
}

// ProcessSale commits a sale: validates the customer, atomically
// decrements stock (expanding bundle lines into their component
// decrements) and persists the sale with its items. If persistence fails
// after the decrement, the stock is restored before the error returns.
func (s *SaleService) ProcessSale(ctx context.Context, input *ProcessSaleInput) (*entity.Sale, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("A sale needs at least one item")
	}
	if !input.PaymentType.IsValid() {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown payment type %q", input.PaymentType))
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Lines))
	for i, line := range input.Lines {
		productIDs[i] = line.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Build the decrement set. Bundle lines decrement their components,
	// never the bundle row itself.
	stockDecrements := make(map[uuid.UUID]int)
	items := make([]entity.SaleItem, 0, len(input.Lines))
	nameByID := make(map[uuid.UUID]string)

	for _, line := range input.Lines {
		product, exists := productMap[line.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", line.ProductID))
		}
		if line.Quantity < 1 {
			return nil, apperror.NewBadRequestError("Line quantity must be at least 1")
		}
		nameByID[product.ID] = product.Name

		if product.IsBundle {
			if len(product.Components) == 0 {
				return nil, apperror.NewBadRequestError(fmt.Sprintf("Bundle %s has no components", product.Name))
			}
			for _, c := range product.Components {
				stockDecrements[c.ComponentID] += c.Quantity * line.Quantity
				nameByID[c.ComponentID] = c.Component.Name
			}
		} else {
			stockDecrements[product.ID] += line.Quantity
		}

		items = append(items, entity.SaleItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			IsBundle:    line.IsBundle,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		})
	}

	// Atomically decrement stock; the whole batch rolls back if any
	// product cannot cover its decrement.
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}

	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if name, exists := nameByID[id]; exists {
				failedNames = append(failedNames, name)
			} else {
				failedNames = append(failedNames, id.String())
			}
		}
		return nil, newStockConflictError(failedIDs, failedNames)
	}

	number, err := s.saleRepo.NextNumber(ctx, input.UserID)
	if err != nil {
		s.restoreStock(ctx, stockDecrements)
		return nil, err
	}

	sale := &entity.Sale{
		UserID:      input.UserID,
		CustomerID:  input.CustomerID,
		Number:      fmt.Sprintf("SALE-%05d", number),
		Status:      enum.SaleStatusCompleted,
		PaymentType: input.PaymentType,
		Subtotal:    input.Subtotal,
		VATRate:     input.VATRate,
		VATAmount:   input.VATAmount,
		Discount:    input.Discount,
		Total:       input.Total,
	}

	if err := s.saleRepo.CreateWithItems(ctx, sale, items); err != nil {
		s.restoreStock(ctx, stockDecrements)
		return nil, err
	}

	sale.Items = items
	sale.Customer = *customer
	return sale, nil
}

// restoreStock puts decremented stock back after a failed persist. A
// restore failure is swallowed; the original error matters more to the
// caller.
func (s *SaleService) restoreStock(ctx context.Context, decrements map[uuid.UUID]int) {
	_ = s.productRepo.AtomicIncrementBatch(ctx, decrements)
}

// GetSale retrieves a sale with items and customer
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales returns a paginated sale list
func (s *SaleService) ListSales(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) ([]entity.Sale, *pagination.Pagination, error) {
	sales, total, err := s.saleRepo.List(ctx, userID, params)
	if err != nil {
		return nil, nil, err
	}
	return sales, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total), nil
}

// UpdateSaleStatus moves a sale to a new status. Cancelling goes
// through CancelSale so the consumed stock is restored; un-cancelling
// is not supported because the stock has already been put back.
func (s *SaleService) UpdateSaleStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) (*entity.Sale, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unknown sale status %q", status))
	}
	if status == enum.SaleStatusCancelled {
		return s.CancelSale(ctx, id)
	}

	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusCancelled {
		return nil, apperror.NewConflictError("A cancelled sale cannot change status")
	}

	if sale.Status != status {
		if err := s.saleRepo.UpdateStatus(ctx, id, status); err != nil {
			return nil, err
		}
		sale.Status = status
	}
	return sale, nil
}

// CancelSale marks a completed sale cancelled and restores the stock its
// lines consumed, expanding bundles into components the same way the
// original decrement did.
func (s *SaleService) CancelSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status == enum.SaleStatusCancelled {
		return nil, apperror.NewConflictError("Sale is already cancelled")
	}

	productIDs := make([]uuid.UUID, len(sale.Items))
	for i, item := range sale.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	increments := make(map[uuid.UUID]int)
	for _, item := range sale.Items {
		product, exists := productMap[item.ProductID]
		if exists && product.IsBundle {
			for _, c := range product.Components {
				increments[c.ComponentID] += c.Quantity * item.Quantity
			}
		} else {
			increments[item.ProductID] += item.Quantity
		}
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
		return nil, err
	}

	if err := s.saleRepo.UpdateStatus(ctx, id, enum.SaleStatusCancelled); err != nil {
		return nil, err
	}

	sale.Status = enum.SaleStatusCancelled
	return sale, nil
}
