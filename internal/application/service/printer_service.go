package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/pos"
	"github.com/peakers/pos-api/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer        printer.Printer
	saleService    *SaleService
	companyService *CompanyService
	printerType    string
	width          int
	currency       string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	saleService *SaleService,
	companyService *CompanyService,
	printerType string,
	width int,
	currency string,
) *PrinterService {
	return &PrinterService{
		printer:        p,
		saleService:    saleService,
		companyService: companyService,
		printerType:    printerType,
		width:          width,
		currency:       currency,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a test receipt to the printer. The rendered receipt
// comes back either way so the handler can show it when the printer is
// disabled.
func (s *PrinterService) TestPrint() (*pos.Receipt, error) {
	receipt := &pos.Receipt{
		Company: pos.Company{
			Name:  "PRINTER TEST",
			Phone: "+254 000 000 000",
		},
		CustomerName: "System",
		SaleNumber:   "TEST-001",
		Lines: []pos.ReceiptLine{
			{Name: "Test Item 1", Quantity: 1, LineTotal: 1000},
			{Name: "Test Item 2", Quantity: 2, LineTotal: 1000},
		},
		Totals: pos.Totals{
			Subtotal:   2000,
			VATRate:    0,
			VATAmount:  0,
			GrandTotal: 2000,
		},
		Currency: s.currency,
		IssuedAt: time.Now(),
	}

	if err := s.printer.Print(receipt.ToDocument(s.width).Bytes()); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}

	return receipt, nil
}

// PrintSaleReceipt rebuilds a stored sale's receipt and prints it. The
// totals come from the denormalized amounts on the sale row, so a
// reprint matches the original even if prices changed since.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, userID, saleID uuid.UUID) (*pos.Receipt, error) {
	sale, err := s.saleService.GetSale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	company, err := s.companyService.GetCompany(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]pos.ReceiptLine, len(sale.Items))
	for i, item := range sale.Items {
		lines[i] = pos.ReceiptLine{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
			IsBundle:  item.IsBundle,
		}
	}

	receipt := &pos.Receipt{
		Company: pos.Company{
			Name:    company.Name,
			Phone:   company.Phone,
			Address: company.Address,
		},
		CustomerName: sale.Customer.Name,
		SaleNumber:   sale.Number,
		Lines:        lines,
		Totals: pos.Totals{
			Subtotal:   sale.Subtotal,
			VATRate:    sale.VATRate,
			VATAmount:  sale.VATAmount,
			Discount:   sale.Discount,
			GrandTotal: sale.Total,
		},
		PaymentType: sale.PaymentType,
		Currency:    s.currency,
		IssuedAt:    sale.CreatedAt,
	}

	if err := s.printer.Print(receipt.ToDocument(s.width).Bytes()); err != nil {
		return receipt, fmt.Errorf("receipt print failed: %w", err)
	}

	return receipt, nil
}
