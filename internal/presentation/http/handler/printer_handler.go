package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/peakers/pos-api/internal/application/service"
	"github.com/peakers/pos-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// Status returns the current printer connection status.
func (h *PrinterHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// Test sends a test receipt to the printer.
func (h *PrinterHandler) Test(c *gin.Context) {
	receipt, err := h.printerService.TestPrint()
	if err != nil {
		// Return the rendered receipt anyway; useful when the printer
		// type is "none".
		response.OK(c, "Test receipt generated but printing failed", gin.H{
			"receipt": receipt.Render(),
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test receipt sent to printer", gin.H{
		"receipt": receipt.Render(),
	})
}

// PrintReceipt reprints the receipt of a stored sale.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	saleID, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	receipt, err := h.printerService.PrintSaleReceipt(c.Request.Context(), *userID, saleID)
	if err != nil {
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt.Render(),
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", gin.H{
		"sale_number": receipt.SaleNumber,
		"receipt":     receipt.Render(),
	})
}
