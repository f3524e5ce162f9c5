package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/application/service"
	"github.com/peakers/pos-api/internal/domain/enum"
	"github.com/peakers/pos-api/internal/domain/repository"
	"github.com/peakers/pos-api/internal/presentation/http/dto/response"
	"github.com/peakers/pos-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// saleLineRequest is one submitted line. Amounts are decimals and are
// converted to cents at this boundary.
type saleLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	UnitPrice float64   `json:"unit_price" binding:"gte=0"`
	IsBundle  bool      `json:"is_bundle"`
}

// Create handles a direct sale submission
func (h *SaleHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		CustomerID  uuid.UUID         `json:"customer_id" binding:"required"`
		PaymentType string            `json:"payment_type" binding:"required"`
		VATRate     float64           `json:"vat_rate" binding:"gte=0"`
		Discount    float64           `json:"discount" binding:"gte=0"`
		Lines       []saleLineRequest `json:"lines" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	lines := make([]service.SaleLineInput, len(req.Lines))
	var subtotal int64
	for i, l := range req.Lines {
		unitPrice := int64(l.UnitPrice * 100)
		lineTotal := unitPrice * int64(l.Quantity)
		subtotal += lineTotal
		lines[i] = service.SaleLineInput{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
			IsBundle:  l.IsBundle,
		}
	}

	vatAmount := int64(float64(subtotal)*req.VATRate + 0.5)
	discount := int64(req.Discount * 100)

	sale, err := h.saleService.ProcessSale(c.Request.Context(), &service.ProcessSaleInput{
		UserID:      *userID,
		CustomerID:  req.CustomerID,
		PaymentType: enum.PaymentType(req.PaymentType),
		Lines:       lines,
		Subtotal:    subtotal,
		VATRate:     req.VATRate,
		VATAmount:   vatAmount,
		Discount:    discount,
		Total:       subtotal + vatAmount - discount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale processed successfully", sale)
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: PaginationFromQuery(c),
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.SaleStatus(statusStr)
		params.Status = &status
	}
	if paymentStr := c.Query("payment_type"); paymentStr != "" {
		payment := enum.PaymentType(paymentStr)
		params.PaymentType = &payment
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}
	if fromStr := c.Query("from"); fromStr != "" {
		if from, err := time.Parse(time.RFC3339, fromStr); err == nil {
			params.From = &from
		}
	}
	if toStr := c.Query("to"); toStr != "" {
		if to, err := time.Parse(time.RFC3339, toStr); err == nil {
			params.To = &to
		}
	}

	sales, pg, err := h.saleService.ListSales(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully",
		pagination.NewPaginatedResult(sales, pg))
}

// Get handles retrieving a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// UpdateStatus handles moving a sale to a new status
func (h *SaleHandler) UpdateStatus(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.UpdateSaleStatus(c.Request.Context(), id, enum.SaleStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale status updated successfully", sale)
}

// Cancel handles cancelling a sale and restoring its stock
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.CancelSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled successfully", sale)
}
