package pos

import (
	"context"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/enum"
)

// Item is a sellable catalog entry as the register sees it. Stock is the
// effective sellable stock: a bundle's stock is derived from its
// components by the catalog provider.
type Item struct {
	ID       uuid.UUID
	Name     string
	Price    int64 // cents
	Stock    int
	IsBundle bool
}

// CustomerRecord is a customer as the register sees it.
type CustomerRecord struct {
	ID    uuid.UUID
	Name  string
	Phone *string
	Email *string
}

// NewCustomer carries the fields for creating a customer from the
// register. Only Name is required.
type NewCustomer struct {
	Name    string
	Phone   *string
	Email   *string
	Address *string
}

// Company is the merchant identity printed on receipt headers.
type Company struct {
	Name    string
	Phone   string
	Address string
}

// SaleLine is one line of a sale submission, captured at checkout time.
type SaleLine struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice int64
	LineTotal int64
	IsBundle  bool
}

// SaleRequest is the immutable snapshot submitted to the sale gateway.
// It is built under the session lock and never mutated afterwards.
type SaleRequest struct {
	OperatorID     uuid.UUID
	CustomerID     uuid.UUID
	PaymentType    enum.PaymentType
	Lines          []SaleLine
	Totals         Totals
	IdempotencyKey string
}

// SaleResult is what the gateway reports back for a committed sale.
type SaleResult struct {
	SaleID uuid.UUID
	Number string
}

// CatalogService provides the sellable items for an operator.
type CatalogService interface {
	SellableItems(ctx context.Context, operatorID uuid.UUID) ([]Item, error)
}

// CustomerDirectory provides customer lookup and creation.
type CustomerDirectory interface {
	Customers(ctx context.Context, operatorID uuid.UUID) ([]CustomerRecord, error)
	CreateCustomer(ctx context.Context, operatorID uuid.UUID, c NewCustomer) (*CustomerRecord, error)
}

// SaleGateway commits a sale: stock decrement and persistence happen
// behind this boundary, atomically.
type SaleGateway interface {
	ProcessSale(ctx context.Context, req *SaleRequest) (*SaleResult, error)
}

// CompanyInfo provides the merchant details for receipt headers.
type CompanyInfo interface {
	Company(ctx context.Context, operatorID uuid.UUID) (*Company, error)
}
