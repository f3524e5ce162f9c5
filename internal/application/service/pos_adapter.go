package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/pos"
	"github.com/peakers/pos-api/pkg/pagination"
)

// The register core talks to the rest of the system through the ports in
// the pos package. These adapters implement them over the application
// services so the core never sees entities or repositories.

// CatalogAdapter implements pos.CatalogService over ProductService.
type CatalogAdapter struct {
	products *ProductService
}

// NewCatalogAdapter creates a catalog adapter
func NewCatalogAdapter(products *ProductService) *CatalogAdapter {
	return &CatalogAdapter{products: products}
}

// SellableItems maps products to register items, deriving bundle stock
// from component availability.
func (a *CatalogAdapter) SellableItems(ctx context.Context, operatorID uuid.UUID) ([]pos.Item, error) {
	products, err := a.products.SellableItems(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	items := make([]pos.Item, len(products))
	for i, p := range products {
		items[i] = pos.Item{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Stock:    p.EffectiveStock(),
			IsBundle: p.IsBundle,
		}
	}
	return items, nil
}

// CustomerAdapter implements pos.CustomerDirectory over CustomerService.
type CustomerAdapter struct {
	customers *CustomerService
}

// NewCustomerAdapter creates a customer directory adapter
func NewCustomerAdapter(customers *CustomerService) *CustomerAdapter {
	return &CustomerAdapter{customers: customers}
}

func (a *CustomerAdapter) Customers(ctx context.Context, operatorID uuid.UUID) ([]pos.CustomerRecord, error) {
	// The picker shows every customer; page through until exhausted.
	var records []pos.CustomerRecord
	page := 1
	for {
		params := &pagination.PaginationParams{Page: page, PerPage: 100}
		customers, pg, err := a.customers.ListCustomers(ctx, operatorID, params, "")
		if err != nil {
			return nil, err
		}
		for _, c := range customers {
			records = append(records, pos.CustomerRecord{
				ID:    c.ID,
				Name:  c.Name,
				Phone: c.Phone,
				Email: c.Email,
			})
		}
		if !pg.HasNext {
			return records, nil
		}
		page++
	}
}

func (a *CustomerAdapter) CreateCustomer(ctx context.Context, operatorID uuid.UUID, c pos.NewCustomer) (*pos.CustomerRecord, error) {
	customer, err := a.customers.CreateCustomer(ctx, &CreateCustomerInput{
		UserID:  operatorID,
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
	})
	if err != nil {
		return nil, err
	}
	return &pos.CustomerRecord{
		ID:    customer.ID,
		Name:  customer.Name,
		Phone: customer.Phone,
		Email: customer.Email,
	}, nil
}

// SaleAdapter implements pos.SaleGateway over SaleService.
type SaleAdapter struct {
	sales *SaleService
}

// NewSaleAdapter creates a sale gateway adapter
func NewSaleAdapter(sales *SaleService) *SaleAdapter {
	return &SaleAdapter{sales: sales}
}

func (a *SaleAdapter) ProcessSale(ctx context.Context, req *pos.SaleRequest) (*pos.SaleResult, error) {
	lines := make([]SaleLineInput, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = SaleLineInput{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
			IsBundle:  l.IsBundle,
		}
	}

	sale, err := a.sales.ProcessSale(ctx, &ProcessSaleInput{
		UserID:      req.OperatorID,
		CustomerID:  req.CustomerID,
		PaymentType: req.PaymentType,
		Lines:       lines,
		Subtotal:    req.Totals.Subtotal,
		VATRate:     req.Totals.VATRate,
		VATAmount:   req.Totals.VATAmount,
		Discount:    req.Totals.Discount,
		Total:       req.Totals.GrandTotal,
	})
	if err != nil {
		// A stock race surfaces as the register's own typed error so the
		// session can distinguish it from a generic processing failure.
		var conflict *StockConflictError
		if errors.As(err, &conflict) {
			insufficient := &pos.InsufficientStockError{
				Name: strings.Join(conflict.FailedNames, ", "),
			}
			if len(conflict.FailedIDs) > 0 {
				insufficient.ItemID = conflict.FailedIDs[0]
			}
			return nil, insufficient
		}
		return nil, err
	}

	return &pos.SaleResult{SaleID: sale.ID, Number: sale.Number}, nil
}

// CompanyAdapter implements pos.CompanyInfo over CompanyService.
type CompanyAdapter struct {
	company *CompanyService
}

// NewCompanyAdapter creates a company info adapter
func NewCompanyAdapter(company *CompanyService) *CompanyAdapter {
	return &CompanyAdapter{company: company}
}

func (a *CompanyAdapter) Company(ctx context.Context, operatorID uuid.UUID) (*pos.Company, error) {
	details, err := a.company.GetCompany(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	return &pos.Company{
		Name:    details.Name,
		Phone:   details.Phone,
		Address: details.Address,
	}, nil
}
