package pos

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/enum"
)

// State is the session's checkout lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
)

// Session is one operator's register: the catalog snapshot, the cart, the
// selected customer and the pricing inputs. A session is safe for
// concurrent use; the lock is released during the gateway call so a slow
// network round trip never blocks cart reads.
type Session struct {
	mu sync.Mutex

	operatorID uuid.UUID
	catalog    *Catalog
	cart       *Cart
	customer   *CustomerRecord
	vatRate    float64
	discount   int64
	state      State

	catalogSvc CatalogService
	directory  CustomerDirectory
	gateway    SaleGateway
	company    CompanyInfo

	currency       string
	defaultVATRate float64
}

// NewSession creates a session for the operator with an empty cart and
// the default VAT rate applied.
func NewSession(
	operatorID uuid.UUID,
	catalogSvc CatalogService,
	directory CustomerDirectory,
	gateway SaleGateway,
	company CompanyInfo,
	currency string,
	defaultVATRate float64,
) *Session {
	return &Session{
		operatorID:     operatorID,
		catalog:        NewCatalog(),
		cart:           NewCart(),
		vatRate:        defaultVATRate,
		state:          StateIdle,
		catalogSvc:     catalogSvc,
		directory:      directory,
		gateway:        gateway,
		company:        company,
		currency:       currency,
		defaultVATRate: defaultVATRate,
	}
}

// OperatorID returns the owning operator.
func (s *Session) OperatorID() uuid.UUID {
	return s.operatorID
}

// State returns the current checkout state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RefreshCatalog reloads the catalog snapshot. On failure the snapshot
// degrades to empty and the LoadError is returned for display.
func (s *Session) RefreshCatalog(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Refresh(ctx, s.catalogSvc, s.operatorID)
}

// Items returns the current catalog snapshot.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Items()
}

// AddToCart adds one unit of the catalog item to the cart.
func (s *Session) AddToCart(itemID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.catalog.Get(itemID)
	if !ok {
		return ErrItemNotInCatalog
	}
	return s.cart.Add(item)
}

// RemoveFromCart drops the item's line from the cart.
func (s *Session) RemoveFromCart(itemID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Remove(itemID)
}

// ClearCart empties the cart without touching customer or pricing inputs.
func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// CartLines returns the cart lines in insertion order.
func (s *Session) CartLines() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// SetVATRate overrides the session VAT rate. Rates are fractions, so
// anything outside [0, 1] is rejected.
func (s *Session) SetVATRate(rate float64) error {
	if rate < 0 || rate > 1 {
		return ErrInvalidVATRate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vatRate = rate
	return nil
}

// SetDiscount sets the flat discount in cents.
func (s *Session) SetDiscount(cents int64) error {
	if cents < 0 {
		return ErrNegativeDiscount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discount = cents
	return nil
}

// SelectCustomer attaches the customer to the session.
func (s *Session) SelectCustomer(c CustomerRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = &c
}

// ClearCustomer detaches the selected customer.
func (s *Session) ClearCustomer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = nil
}

// Customer returns the selected customer, or nil.
func (s *Session) Customer() *CustomerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customer
}

// Customers lists the directory for the customer picker. A load failure
// degrades to an empty list with the LoadError returned alongside.
func (s *Session) Customers(ctx context.Context) ([]CustomerRecord, error) {
	records, err := s.directory.Customers(ctx, s.operatorID)
	if err != nil {
		return nil, &LoadError{Resource: "customers", Err: err}
	}
	return records, nil
}

// CreateCustomer adds a customer through the directory and selects them
// for the in-progress sale. Directory failures pass through unwrapped so
// the caller sees the validation detail.
func (s *Session) CreateCustomer(ctx context.Context, c NewCustomer) (*CustomerRecord, error) {
	record, err := s.directory.CreateCustomer(ctx, s.operatorID, c)
	if err != nil {
		return nil, err
	}
	s.SelectCustomer(*record)
	return record, nil
}

// Totals prices the current cart with the session's VAT rate and discount.
func (s *Session) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeTotals(s.cart.Subtotal(), s.vatRate, s.discount)
}

// Checkout validates the session, submits the sale and, on success,
// returns the receipt built from the pre-reset snapshot before resetting
// the cart, customer, VAT rate and discount for the next sale.
//
// Preconditions are checked in order: an empty cart is reported before a
// missing customer. A second checkout while one is in flight returns
// ErrCheckoutInFlight. On gateway failure the session is left exactly as
// it was so the cashier can retry.
func (s *Session) Checkout(ctx context.Context, payment enum.PaymentType, idempotencyKey string) (*Receipt, error) {
	s.mu.Lock()

	if s.state == StateSubmitting {
		s.mu.Unlock()
		return nil, ErrCheckoutInFlight
	}
	s.state = StateValidating

	if s.cart.IsEmpty() {
		s.state = StateIdle
		s.mu.Unlock()
		return nil, ErrEmptyCart
	}
	if s.customer == nil {
		s.state = StateIdle
		s.mu.Unlock()
		return nil, ErrNoCustomerSelected
	}
	if !payment.IsValid() {
		s.state = StateIdle
		s.mu.Unlock()
		return nil, ErrInvalidPaymentType
	}

	// Snapshot everything the submission and receipt need while holding
	// the lock. The request is immutable from here on.
	cartLines := s.cart.Lines()
	lines := make([]SaleLine, len(cartLines))
	receiptLines := make([]ReceiptLine, len(cartLines))
	for i, l := range cartLines {
		lines[i] = SaleLine{
			ProductID: l.Item.ID,
			Name:      l.Item.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.Item.Price,
			LineTotal: l.LineTotal(),
			IsBundle:  l.Item.IsBundle,
		}
		receiptLines[i] = ReceiptLine{
			Name:      l.Item.Name,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
			IsBundle:  l.Item.IsBundle,
		}
	}
	totals := ComputeTotals(s.cart.Subtotal(), s.vatRate, s.discount)
	req := &SaleRequest{
		OperatorID:     s.operatorID,
		CustomerID:     s.customer.ID,
		PaymentType:    payment,
		Lines:          lines,
		Totals:         totals,
		IdempotencyKey: idempotencyKey,
	}
	customerName := s.customer.Name

	s.state = StateSubmitting
	s.mu.Unlock()

	result, err := s.gateway.ProcessSale(ctx, req)

	var company Company
	if err == nil {
		if info, cerr := s.company.Company(ctx, s.operatorID); cerr == nil && info != nil {
			company = *info
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateIdle
		// A stock rejection keeps its own type; everything else is a
		// generic processing failure.
		var insufficient *InsufficientStockError
		if errors.As(err, &insufficient) {
			return nil, insufficient
		}
		return nil, &SaleProcessingError{Err: err}
	}

	receipt := &Receipt{
		Company:      company,
		CustomerName: customerName,
		SaleNumber:   result.Number,
		Lines:        receiptLines,
		Totals:       totals,
		PaymentType:  payment,
		Currency:     s.currency,
		IssuedAt:     time.Now(),
	}

	// Reset for the next sale. Order matters for observers polling the
	// session: cart first, then customer, then pricing inputs.
	s.cart.Clear()
	s.customer = nil
	s.vatRate = s.defaultVATRate
	s.discount = 0
	s.state = StateIdle

	return receipt, nil
}
