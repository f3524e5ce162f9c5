package pos

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct {
	items []Item
	err   error
}

func (m *mockCatalog) SellableItems(context.Context, uuid.UUID) ([]Item, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

type mockDirectory struct {
	records   []CustomerRecord
	listErr   error
	createErr error
	created   []NewCustomer
}

func (m *mockDirectory) Customers(context.Context, uuid.UUID) ([]CustomerRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

func (m *mockDirectory) CreateCustomer(_ context.Context, _ uuid.UUID, c NewCustomer) (*CustomerRecord, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, c)
	return &CustomerRecord{ID: uuid.New(), Name: c.Name}, nil
}

type mockGateway struct {
	mu       sync.Mutex
	requests []*SaleRequest
	result   *SaleResult
	err      error

	// entered is closed when ProcessSale starts; release blocks it until
	// closed. Both are optional.
	entered chan struct{}
	release chan struct{}
}

func (m *mockGateway) ProcessSale(_ context.Context, req *SaleRequest) (*SaleResult, error) {
	if m.entered != nil {
		close(m.entered)
	}
	if m.release != nil {
		<-m.release
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockCompany struct {
	company *Company
	err     error
}

func (m *mockCompany) Company(context.Context, uuid.UUID) (*Company, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.company, nil
}

type sessionFixture struct {
	session   *Session
	catalog   *mockCatalog
	directory *mockDirectory
	gateway   *mockGateway
	company   *mockCompany
	items     []Item
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	items := []Item{
		{ID: uuid.New(), Name: "Widget", Price: 1000, Stock: 10},
		{ID: uuid.New(), Name: "Starter Pack", Price: 5000, Stock: 3, IsBundle: true},
	}
	f := &sessionFixture{
		catalog:   &mockCatalog{items: items},
		directory: &mockDirectory{},
		gateway:   &mockGateway{result: &SaleResult{SaleID: uuid.New(), Number: "SALE-00001"}},
		company:   &mockCompany{company: &Company{Name: "Peakers Traders", Phone: "0712345678"}},
		items:     items,
	}
	f.session = NewSession(uuid.New(), f.catalog, f.directory, f.gateway, f.company, "Ksh", DefaultVATRate)
	require.NoError(t, f.session.RefreshCatalog(context.Background()))
	return f
}

func (f *sessionFixture) selectCustomer() CustomerRecord {
	record := CustomerRecord{ID: uuid.New(), Name: "Jane Wanjiku"}
	f.session.SelectCustomer(record)
	return record
}

func TestSessionAddToCartRequiresCatalogItem(t *testing.T) {
	f := newSessionFixture(t)

	err := f.session.AddToCart(uuid.New())
	assert.ErrorIs(t, err, ErrItemNotInCatalog)

	require.NoError(t, f.session.AddToCart(f.items[0].ID))
	require.Len(t, f.session.CartLines(), 1)
}

func TestSessionCatalogLoadFailureDegradesToEmpty(t *testing.T) {
	f := newSessionFixture(t)
	require.NotEmpty(t, f.session.Items())

	f.catalog.err = errors.New("db down")
	err := f.session.RefreshCatalog(context.Background())

	var load *LoadError
	require.ErrorAs(t, err, &load)
	assert.Equal(t, "catalog", load.Resource)
	assert.Empty(t, f.session.Items())
}

func TestSessionTotalsUseVATRateAndDiscount(t *testing.T) {
	f := newSessionFixture(t)
	require.NoError(t, f.session.AddToCart(f.items[0].ID))
	require.NoError(t, f.session.AddToCart(f.items[0].ID))

	totals := f.session.Totals()
	assert.Equal(t, int64(2000), totals.Subtotal)
	assert.Equal(t, int64(320), totals.VATAmount)
	assert.Equal(t, int64(2320), totals.GrandTotal)

	require.NoError(t, f.session.SetVATRate(0))
	require.NoError(t, f.session.SetDiscount(500))

	totals = f.session.Totals()
	assert.Equal(t, int64(0), totals.VATAmount)
	assert.Equal(t, int64(1500), totals.GrandTotal)
}

func TestSessionRejectsInvalidPricingInputs(t *testing.T) {
	f := newSessionFixture(t)

	assert.ErrorIs(t, f.session.SetVATRate(-0.1), ErrInvalidVATRate)
	assert.ErrorIs(t, f.session.SetVATRate(1.5), ErrInvalidVATRate)
	assert.ErrorIs(t, f.session.SetDiscount(-1), ErrNegativeDiscount)

	// The full range of sensible rates is accepted, bounds included
	assert.NoError(t, f.session.SetVATRate(0))
	assert.NoError(t, f.session.SetVATRate(1))
}

func TestCheckoutEmptyCartReportedBeforeMissingCustomer(t *testing.T) {
	f := newSessionFixture(t)

	// Neither cart nor customer: the empty cart wins
	_, err := f.session.Checkout(context.Background(), enum.PaymentTypeCash, "key-1")
	assert.ErrorIs(t, err, ErrEmptyCart)

	require.NoError(t, f.session.AddToCart(f.items[0].ID))
	_, err = f.session.Checkout(context.Background(), enum.PaymentTypeCash, "key-1")
	assert.ErrorIs(t, err, ErrNoCustomerSelected)

	f.selectCustomer()
	_, err = f.session.Checkout(context.Background(), "Barter", "key-1")
	assert.ErrorIs(t, err, ErrInvalidPaymentType)

	// Failed validation leaves the session idle and the cart intact
	assert.Equal(t, StateIdle, f.session.State())
	assert.Len(t, f.session.CartLines(), 1)
}

func TestCheckoutSuccessResetsSession(t *testing.T) {
	f := newSessionFixture(t)
	require.NoError(t, f.session.AddToCart(f.items[0].ID))
	require.NoError(t, f.session.AddToCart(f.items[0].ID))
	require.NoError(t, f.session.AddToCart(f.items[1].ID))
	require.NoError(t, f.session.SetDiscount(700))
	require.NoError(t, f.session.SetVATRate(0.08))
	f.selectCustomer()

	receipt, err := f.session.Checkout(context.Background(), enum.PaymentTypeMpesa, "key-1")
	require.NoError(t, err)

	// Receipt reflects the pre-reset snapshot
	assert.Equal(t, "SALE-00001", receipt.SaleNumber)
	assert.Equal(t, "Jane Wanjiku", receipt.CustomerName)
	assert.Equal(t, "Peakers Traders", receipt.Company.Name)
	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, 2, receipt.Lines[0].Quantity)
	assert.True(t, receipt.Lines[1].IsBundle)
	assert.Equal(t, int64(7000), receipt.Totals.Subtotal)
	assert.Equal(t, int64(560), receipt.Totals.VATAmount)
	assert.Equal(t, int64(6860), receipt.Totals.GrandTotal)

	// Session reset: empty cart, no customer, defaults restored
	assert.Empty(t, f.session.CartLines())
	assert.Nil(t, f.session.Customer())
	assert.Equal(t, StateIdle, f.session.State())
	totals := f.session.Totals()
	assert.Equal(t, DefaultVATRate, totals.VATRate)
	assert.Equal(t, int64(0), totals.Discount)

	// The gateway saw the idempotency key and the snapshot lines
	require.Len(t, f.gateway.requests, 1)
	req := f.gateway.requests[0]
	assert.Equal(t, "key-1", req.IdempotencyKey)
	assert.Equal(t, enum.PaymentTypeMpesa, req.PaymentType)
	require.Len(t, req.Lines, 2)
	assert.Equal(t, int64(2000), req.Lines[0].LineTotal)
}

func TestCheckoutGatewayFailureLeavesSessionUntouched(t *testing.T) {
	f := newSessionFixture(t)
	require.NoError(t, f.session.AddToCart(f.items[0].ID))
	require.NoError(t, f.session.SetDiscount(100))
	customer := f.selectCustomer()

	f.gateway.err = errors.New("stock conflict")

	_, err := f.session.Checkout(context.Background(), enum.PaymentTypeCash, "key-1")

	var processing *SaleProcessingError
	require.ErrorAs(t, err, &processing)
	assert.ErrorIs(t, processing, f.gateway.err)

	// Everything stays so the cashier can retry
	assert.Equal(t, StateIdle, f.session.State())
	require.Len(t, f.session.CartLines(), 1)
	require.NotNil(t, f.session.Customer())
	assert.Equal(t, customer.ID, f.session.Customer().ID)
	assert.Equal(t, int64(100), f.session.Totals().Discount)
}

func TestCheckoutStockConflictKeepsItsType(t *testing.T) {
	f := newSessionFixture(t)
	require.NoError(t, f.session.AddToCart(f.items[0].ID))
	f.selectCustomer()

	f.gateway.err = &InsufficientStockError{ItemID: f.items[0].ID, Name: "Widget"}

	_, err := f.session.Checkout(context.Background(), enum.PaymentTypeCash, "key-1")

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Widget", insufficient.Name)

	var processing *SaleProcessingError
	assert.False(t, errors.As(err, &processing))

	// The rejection leaves the cart intact for a retry
	assert.Equal(t, StateIdle, f.session.State())
	require.Len(t, f.session.CartLines(), 1)
	require.NotNil(t, f.session.Customer())
}

func TestCheckoutInFlightRejectsSecondCheckout(t *testing.T) {
	f := newSessionFixture(t)
	require.NoError(t, f.session.AddToCart(f.items[0].ID))
	f.selectCustomer()

	f.gateway.entered = make(chan struct{})
	f.gateway.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		_, err := f.session.Checkout(context.Background(), enum.PaymentTypeCash, "key-1")
		done <- err
	}()

	<-f.gateway.entered
	assert.Equal(t, StateSubmitting, f.session.State())

	_, err := f.session.Checkout(context.Background(), enum.PaymentTypeCash, "key-2")
	assert.ErrorIs(t, err, ErrCheckoutInFlight)

	close(f.gateway.release)
	require.NoError(t, <-done)
	assert.Equal(t, StateIdle, f.session.State())
}

func TestCheckoutSucceedsWithoutCompanyInfo(t *testing.T) {
	f := newSessionFixture(t)
	require.NoError(t, f.session.AddToCart(f.items[0].ID))
	f.selectCustomer()

	f.company.err = errors.New("profile unavailable")

	receipt, err := f.session.Checkout(context.Background(), enum.PaymentTypeCash, "key-1")
	require.NoError(t, err)
	assert.Empty(t, receipt.Company.Name)
	assert.Contains(t, receipt.Render(), "Company Name\n")
}

func TestSessionCustomersWrapsLoadFailure(t *testing.T) {
	f := newSessionFixture(t)
	f.directory.listErr = errors.New("db down")

	_, err := f.session.Customers(context.Background())

	var load *LoadError
	require.ErrorAs(t, err, &load)
	assert.Equal(t, "customers", load.Resource)
}

func TestSessionCreateCustomerSelectsNewRecord(t *testing.T) {
	f := newSessionFixture(t)

	record, err := f.session.CreateCustomer(context.Background(), NewCustomer{Name: "Otieno"})
	require.NoError(t, err)
	require.NotNil(t, f.session.Customer())
	assert.Equal(t, record.ID, f.session.Customer().ID)
}

func TestSessionCreateCustomerFailurePassesThrough(t *testing.T) {
	f := newSessionFixture(t)
	f.directory.createErr = errors.New("name is required")

	_, err := f.session.CreateCustomer(context.Background(), NewCustomer{})
	assert.ErrorIs(t, err, f.directory.createErr)
	assert.Nil(t, f.session.Customer())
}

func TestManagerHandsOutOneSessionPerOperator(t *testing.T) {
	f := newSessionFixture(t)
	m := NewManager(f.catalog, f.directory, f.gateway, f.company, "Ksh", DefaultVATRate)

	alice := uuid.New()
	bob := uuid.New()

	assert.Same(t, m.Session(alice), m.Session(alice))
	assert.NotSame(t, m.Session(alice), m.Session(bob))

	old := m.Session(alice)
	m.Drop(alice)
	assert.NotSame(t, old, m.Session(alice))
}
