package request

import "github.com/google/uuid"

// AddToCartRequest is the payload for adding an item to the session cart
type AddToCartRequest struct {
	ItemID uuid.UUID `json:"item_id" binding:"required"`
}

// SetVATRateRequest overrides the session VAT rate
type SetVATRateRequest struct {
	Rate float64 `json:"rate"`
}

// SetDiscountRequest sets the session's flat discount as a decimal amount
type SetDiscountRequest struct {
	Amount float64 `json:"amount"`
}

// SelectCustomerRequest attaches a customer to the session
type SelectCustomerRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
}

// CreateSalesCustomerRequest creates a customer from the register. Only
// the name is required.
type CreateSalesCustomerRequest struct {
	Name    string  `json:"name" binding:"required"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// CheckoutRequest finalizes the session's sale
type CheckoutRequest struct {
	PaymentType string `json:"payment_type" binding:"required"`
}
