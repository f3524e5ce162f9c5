package pos

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Checkout precondition and lifecycle errors.
var (
	// ErrEmptyCart is returned when checkout is triggered with no lines in
	// the cart. It is checked before any other precondition.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoCustomerSelected is returned when checkout is triggered without
	// a selected customer. Guest sales are not supported.
	ErrNoCustomerSelected = errors.New("no customer selected")

	// ErrCheckoutInFlight is returned when checkout is triggered while a
	// previous submission for the same session has not finished.
	ErrCheckoutInFlight = errors.New("checkout already in progress")

	// ErrInvalidPaymentType is returned when the payment label is not one
	// the register accepts.
	ErrInvalidPaymentType = errors.New("invalid payment type")

	// ErrNegativeDiscount is returned when a discount below zero is set.
	ErrNegativeDiscount = errors.New("discount cannot be negative")

	// ErrInvalidVATRate is returned when a VAT rate outside [0, 1] is set.
	ErrInvalidVATRate = errors.New("vat rate must be between 0 and 1")

	// ErrItemNotInCatalog is returned when an item is added to the cart
	// that is not in the current catalog snapshot.
	ErrItemNotInCatalog = errors.New("item not found in catalog")
)

// OutOfStockError is returned when an item with zero sellable stock is
// added to the cart.
type OutOfStockError struct {
	ItemID uuid.UUID
	Name   string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s is out of stock", e.Name)
}

// InsufficientStockError is returned when the authoritative stock check
// rejects a sale because live stock no longer covers a requested line.
// Name carries the offending product, or a comma-joined list when more
// than one line failed.
type InsufficientStockError struct {
	ItemID uuid.UUID
	Name   string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Name)
}

// SaleProcessingError wraps a failure reported by the sale gateway. The
// session state is rolled back so the cashier can retry or amend the cart.
type SaleProcessingError struct {
	Err error
}

func (e *SaleProcessingError) Error() string {
	return fmt.Sprintf("sale processing failed: %v", e.Err)
}

func (e *SaleProcessingError) Unwrap() error {
	return e.Err
}

// LoadError wraps a failure to load register data (catalog, customers,
// company details). The register degrades to an empty view rather than
// blocking the session.
type LoadError struct {
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
