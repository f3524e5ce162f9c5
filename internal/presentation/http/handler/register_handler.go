package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peakers/pos-api/internal/domain/enum"
	"github.com/peakers/pos-api/internal/pos"
	"github.com/peakers/pos-api/internal/presentation/http/dto/request"
	"github.com/peakers/pos-api/internal/presentation/http/dto/response"
	"github.com/peakers/pos-api/pkg/apperror"
	"github.com/peakers/pos-api/pkg/printer"
)

// RegisterHandler drives the sales register sessions over HTTP. Each
// authenticated user gets their own session from the manager.
type RegisterHandler struct {
	manager      *pos.Manager
	printer      printer.Printer
	printerWidth int
}

// NewRegisterHandler creates a new register handler
func NewRegisterHandler(manager *pos.Manager, p printer.Printer, printerWidth int) *RegisterHandler {
	return &RegisterHandler{
		manager:      manager,
		printer:      p,
		printerWidth: printerWidth,
	}
}

// itemView is a catalog item with a decimal price for display
type itemView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	IsBundle bool    `json:"is_bundle"`
}

// lineView is a cart line with decimal amounts
type lineView struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
	IsBundle  bool    `json:"is_bundle"`
}

// totalsView is the priced cart breakdown with decimal amounts
type totalsView struct {
	Subtotal   float64 `json:"subtotal"`
	VATRate    float64 `json:"vat_rate"`
	VATAmount  float64 `json:"vat_amount"`
	Discount   float64 `json:"discount"`
	GrandTotal float64 `json:"grand_total"`
}

func toTotalsView(t pos.Totals) totalsView {
	return totalsView{
		Subtotal:   float64(t.Subtotal) / 100,
		VATRate:    t.VATRate,
		VATAmount:  float64(t.VATAmount) / 100,
		Discount:   float64(t.Discount) / 100,
		GrandTotal: float64(t.GrandTotal) / 100,
	}
}

func toCartView(s *pos.Session) gin.H {
	lines := s.CartLines()
	views := make([]lineView, len(lines))
	for i, l := range lines {
		views[i] = lineView{
			ItemID:    l.Item.ID.String(),
			Name:      l.Item.Name,
			UnitPrice: float64(l.Item.Price) / 100,
			Quantity:  l.Quantity,
			LineTotal: float64(l.LineTotal()) / 100,
			IsBundle:  l.Item.IsBundle,
		}
	}

	var customer gin.H
	if c := s.Customer(); c != nil {
		customer = gin.H{"id": c.ID.String(), "name": c.Name}
	}

	return gin.H{
		"lines":    views,
		"totals":   toTotalsView(s.Totals()),
		"customer": customer,
		"state":    s.State(),
	}
}

// registerError maps register engine errors onto API error codes
func registerError(c *gin.Context, err error) {
	var outOfStock *pos.OutOfStockError
	var insufficient *pos.InsufficientStockError
	var processing *pos.SaleProcessingError
	var load *pos.LoadError

	switch {
	case errors.Is(err, pos.ErrEmptyCart),
		errors.Is(err, pos.ErrNoCustomerSelected),
		errors.Is(err, pos.ErrInvalidPaymentType),
		errors.Is(err, pos.ErrNegativeDiscount),
		errors.Is(err, pos.ErrInvalidVATRate),
		errors.Is(err, pos.ErrItemNotInCatalog):
		response.Error(c, apperror.NewBadRequestError(err.Error()))
	case errors.As(err, &outOfStock), errors.As(err, &insufficient),
		errors.Is(err, pos.ErrCheckoutInFlight):
		response.Error(c, apperror.NewConflictError(err.Error()))
	case errors.As(err, &processing):
		// Surface the underlying failure's code when the gateway
		// reported a structured error (e.g. an unknown customer).
		if apperror.IsAppError(processing.Err) {
			response.Error(c, processing.Err)
			return
		}
		response.Error(c, apperror.NewAppError(http.StatusBadGateway, err.Error()))
	case errors.As(err, &load):
		response.Error(c, apperror.NewAppError(http.StatusServiceUnavailable, err.Error()))
	default:
		response.Error(c, err)
	}
}

// Catalog refreshes and returns the session's catalog snapshot. A load
// failure degrades to an empty catalog so the register keeps working.
func (h *RegisterHandler) Catalog(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	session := h.manager.Session(*userID)

	message := "Catalog retrieved successfully"
	if err := session.RefreshCatalog(c.Request.Context()); err != nil {
		log.Printf("catalog refresh failed for %s: %v", userID, err)
		message = "Catalog unavailable, showing empty list"
	}

	items := session.Items()
	views := make([]itemView, len(items))
	for i, it := range items {
		views[i] = itemView{
			ID:       it.ID.String(),
			Name:     it.Name,
			Price:    float64(it.Price) / 100,
			Stock:    it.Stock,
			IsBundle: it.IsBundle,
		}
	}

	response.OK(c, message, views)
}

// Cart returns the session's cart with totals
func (h *RegisterHandler) Cart(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	response.OK(c, "Cart retrieved successfully", toCartView(h.manager.Session(*userID)))
}

// AddItem adds one unit of a catalog item to the cart
func (h *RegisterHandler) AddItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session := h.manager.Session(*userID)
	if err := session.AddToCart(req.ItemID); err != nil {
		registerError(c, err)
		return
	}

	response.OK(c, "Item added to cart", toCartView(session))
}

// RemoveItem removes an item's line from the cart
func (h *RegisterHandler) RemoveItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	itemID, ok := ParseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	session := h.manager.Session(*userID)
	session.RemoveFromCart(itemID)

	response.OK(c, "Item removed from cart", toCartView(session))
}

// ClearCart empties the cart
func (h *RegisterHandler) ClearCart(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	session := h.manager.Session(*userID)
	session.ClearCart()

	response.OK(c, "Cart cleared", toCartView(session))
}

// SetVATRate overrides the session VAT rate
func (h *RegisterHandler) SetVATRate(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SetVATRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session := h.manager.Session(*userID)
	if err := session.SetVATRate(req.Rate); err != nil {
		registerError(c, err)
		return
	}

	response.OK(c, "VAT rate updated", toCartView(session))
}

// SetDiscount sets the session's flat discount
func (h *RegisterHandler) SetDiscount(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SetDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session := h.manager.Session(*userID)
	if err := session.SetDiscount(int64(req.Amount * 100)); err != nil {
		registerError(c, err)
		return
	}

	response.OK(c, "Discount updated", toCartView(session))
}

// Customers lists the directory for the customer picker
func (h *RegisterHandler) Customers(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	session := h.manager.Session(*userID)
	records, err := session.Customers(c.Request.Context())
	if err != nil {
		log.Printf("customer load failed for %s: %v", userID, err)
		response.OK(c, "Customers unavailable, showing empty list", []pos.CustomerRecord{})
		return
	}

	response.OK(c, "Customers retrieved successfully", records)
}

// CreateCustomer adds a customer from the register and selects them
func (h *RegisterHandler) CreateCustomer(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateSalesCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session := h.manager.Session(*userID)
	record, err := session.CreateCustomer(c.Request.Context(), pos.NewCustomer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created and selected", record)
}

// SelectCustomer attaches an existing customer to the session
func (h *RegisterHandler) SelectCustomer(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SelectCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session := h.manager.Session(*userID)
	records, err := session.Customers(c.Request.Context())
	if err != nil {
		registerError(c, err)
		return
	}

	for _, record := range records {
		if record.ID == req.CustomerID {
			session.SelectCustomer(record)
			response.OK(c, "Customer selected", toCartView(session))
			return
		}
	}

	response.Error(c, apperror.NewNotFoundError("Customer"))
}

// ClearCustomer detaches the selected customer
func (h *RegisterHandler) ClearCustomer(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	session := h.manager.Session(*userID)
	session.ClearCustomer()

	response.OK(c, "Customer selection cleared", toCartView(session))
}

// Checkout finalizes the sale, prints the receipt and resets the session
func (h *RegisterHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	session := h.manager.Session(*userID)
	idempotencyKey := c.GetHeader("Idempotency-Key")

	receipt, err := session.Checkout(c.Request.Context(), enum.PaymentType(req.PaymentType), idempotencyKey)
	if err != nil {
		registerError(c, err)
		return
	}

	// Printing is best effort; the sale is already committed.
	if h.printer != nil && h.printer.IsConnected() {
		if err := h.printer.Print(receipt.ToDocument(h.printerWidth).Bytes()); err != nil {
			log.Printf("receipt print failed for sale %s: %v", receipt.SaleNumber, err)
		}
	}

	response.Created(c, "Sale completed successfully", gin.H{
		"sale_number":  receipt.SaleNumber,
		"customer":     receipt.CustomerName,
		"payment_type": receipt.PaymentType,
		"totals":       toTotalsView(receipt.Totals),
		"receipt":      receipt.Render(),
		"issued_at":    receipt.IssuedAt,
	})
}
