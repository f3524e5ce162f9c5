package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/internal/domain/enum"
	"github.com/peakers/pos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type saleFixture struct {
	service  *SaleService
	products *mockProductRepo
	sales    *mockSaleRepo
	userID   uuid.UUID
	customer *entity.Customer
}

func newSaleFixture(t *testing.T, products ...*entity.Product) *saleFixture {
	t.Helper()

	customer := &entity.Customer{ID: uuid.New(), Name: "Jane Wanjiku"}
	productRepo := newMockProductRepo(products...)
	saleRepo := newMockSaleRepo()

	return &saleFixture{
		service:  NewSaleService(saleRepo, productRepo, newMockCustomerRepo(customer)),
		products: productRepo,
		sales:    saleRepo,
		userID:   uuid.New(),
		customer: customer,
	}
}

func plainProduct(name string, price int64, stock int) *entity.Product {
	return &entity.Product{ID: uuid.New(), Name: name, Price: price, Stock: stock}
}

func bundleOf(name string, price int64, parts map[*entity.Product]int) *entity.Product {
	bundle := &entity.Product{ID: uuid.New(), Name: name, Price: price, IsBundle: true}
	for component, qty := range parts {
		bundle.Components = append(bundle.Components, entity.BundleComponent{
			BundleID:    bundle.ID,
			ComponentID: component.ID,
			Quantity:    qty,
			Component:   *component,
		})
	}
	return bundle
}

func saleInput(f *saleFixture, lines ...SaleLineInput) *ProcessSaleInput {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.LineTotal
	}
	vat := int64(float64(subtotal)*0.16 + 0.5)
	return &ProcessSaleInput{
		UserID:      f.userID,
		CustomerID:  f.customer.ID,
		PaymentType: enum.PaymentTypeCash,
		Lines:       lines,
		Subtotal:    subtotal,
		VATRate:     0.16,
		VATAmount:   vat,
		Total:       subtotal + vat,
	}
}

func lineFor(p *entity.Product, qty int) SaleLineInput {
	return SaleLineInput{
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  qty,
		UnitPrice: p.Price,
		LineTotal: p.Price * int64(qty),
		IsBundle:  p.IsBundle,
	}
}

func TestUpdateSaleStatusMovesCompletedToPending(t *testing.T) {
	widget := plainProduct("Widget", 1000, 10)
	f := newSaleFixture(t, widget)

	sale, err := f.service.ProcessSale(context.Background(), saleInput(f, lineFor(widget, 2)))
	require.NoError(t, err)

	updated, err := f.service.UpdateSaleStatus(context.Background(), sale.ID, enum.SaleStatusPending)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusPending, updated.Status)

	// The pending sale keeps its stock reserved
	assert.Equal(t, 8, widget.Stock)
}

func TestUpdateSaleStatusCancellingRestoresStock(t *testing.T) {
	widget := plainProduct("Widget", 1000, 10)
	f := newSaleFixture(t, widget)

	sale, err := f.service.ProcessSale(context.Background(), saleInput(f, lineFor(widget, 2)))
	require.NoError(t, err)
	assert.Equal(t, 8, widget.Stock)

	updated, err := f.service.UpdateSaleStatus(context.Background(), sale.ID, enum.SaleStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCancelled, updated.Status)
	assert.Equal(t, 10, widget.Stock)
}

func TestUpdateSaleStatusRejectsUnknownStatus(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.service.UpdateSaleStatus(context.Background(), uuid.New(), enum.SaleStatus("shipped"))

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestUpdateSaleStatusRejectsCancelledSale(t *testing.T) {
	widget := plainProduct("Widget", 1000, 10)
	f := newSaleFixture(t, widget)

	sale, err := f.service.ProcessSale(context.Background(), saleInput(f, lineFor(widget, 1)))
	require.NoError(t, err)

	_, err = f.service.CancelSale(context.Background(), sale.ID)
	require.NoError(t, err)

	_, err = f.service.UpdateSaleStatus(context.Background(), sale.ID, enum.SaleStatusCompleted)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestProcessSaleDecrementsStockAndPersists(t *testing.T) {
	widget := plainProduct("Widget", 1000, 10)
	f := newSaleFixture(t, widget)

	sale, err := f.service.ProcessSale(context.Background(), saleInput(f, lineFor(widget, 3)))
	require.NoError(t, err)

	assert.Equal(t, "SALE-00001", sale.Number)
	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assert.Equal(t, int64(3000), sale.Subtotal)
	assert.Equal(t, "Jane Wanjiku", sale.Customer.Name)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 3, sale.Items[0].Quantity)

	assert.Equal(t, 7, widget.Stock)

	// Subsequent sales keep counting up
	sale2, err := f.service.ProcessSale(context.Background(), saleInput(f, lineFor(widget, 1)))
	require.NoError(t, err)
	assert.Equal(t, "SALE-00002", sale2.Number)
}

func TestProcessSaleExpandsBundleIntoComponentDecrements(t *testing.T) {
	bolt := plainProduct("Bolt", 100, 100)
	nut := plainProduct("Nut", 50, 100)
	kit := bundleOf("Fastener Kit", 500, map[*entity.Product]int{bolt: 4, nut: 2})
	f := newSaleFixture(t, bolt, nut, kit)

	_, err := f.service.ProcessSale(context.Background(), saleInput(f, lineFor(kit, 3)))
	require.NoError(t, err)

	require.Len(t, f.products.decrements, 1)
	decrements := f.products.decrements[0]
	assert.Equal(t, 12, decrements[bolt.ID])
	assert.Equal(t, 6, decrements[nut.ID])

	// The bundle row itself is never decremented
	_, touched := decrements[kit.ID]
	assert.False(t, touched)
}

func TestProcessSaleStockConflictNamesTheProduct(t *testing.T) {
	widget := plainProduct("Widget", 1000, 1)
	f := newSaleFixture(t, widget)
	f.products.failDecrement = []uuid.UUID{widget.ID}

	_, err := f.service.ProcessSale(context.Background(), saleInput(f, lineFor(widget, 5)))

	var conflict *StockConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []uuid.UUID{widget.ID}, conflict.FailedIDs)
	assert.Equal(t, []string{"Widget"}, conflict.FailedNames)

	// The HTTP layer still sees a 409 through the unwrap chain
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Contains(t, appErr.Message, "Widget")
	assert.Empty(t, f.sales.sales)
}

func TestProcessSaleRestoresStockWhenPersistFails(t *testing.T) {
	widget := plainProduct("Widget", 1000, 10)
	f := newSaleFixture(t, widget)
	f.sales.createErr = errors.New("db down")

	_, err := f.service.ProcessSale(context.Background(), saleInput(f, lineFor(widget, 4)))
	require.Error(t, err)

	require.Len(t, f.products.increments, 1)
	assert.Equal(t, 4, f.products.increments[0][widget.ID])
	assert.Equal(t, 10, widget.Stock)
}

func TestProcessSaleRejectsUnknownCustomer(t *testing.T) {
	widget := plainProduct("Widget", 1000, 10)
	f := newSaleFixture(t, widget)

	input := saleInput(f, lineFor(widget, 1))
	input.CustomerID = uuid.New()

	_, err := f.service.ProcessSale(context.Background(), input)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Empty(t, f.products.decrements)
}

func TestProcessSaleRejectsEmptyAndInvalidInput(t *testing.T) {
	widget := plainProduct("Widget", 1000, 10)
	f := newSaleFixture(t, widget)

	_, err := f.service.ProcessSale(context.Background(), saleInput(f))
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	input := saleInput(f, lineFor(widget, 1))
	input.PaymentType = "Barter"
	_, err = f.service.ProcessSale(context.Background(), input)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)

	input = saleInput(f, lineFor(widget, 0))
	input.Lines[0].Quantity = 0
	_, err = f.service.ProcessSale(context.Background(), input)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestCancelSaleRestoresComponentStock(t *testing.T) {
	bolt := plainProduct("Bolt", 100, 100)
	kit := bundleOf("Fastener Kit", 500, map[*entity.Product]int{bolt: 4})
	f := newSaleFixture(t, bolt, kit)

	sale, err := f.service.ProcessSale(context.Background(), saleInput(f, lineFor(kit, 2)))
	require.NoError(t, err)
	assert.Equal(t, 92, bolt.Stock)

	cancelled, err := f.service.CancelSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusCancelled, cancelled.Status)
	assert.Equal(t, 100, bolt.Stock)

	// Cancelling twice is a conflict
	_, err = f.service.CancelSale(context.Background(), sale.ID)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.Code)
}

func TestGetSaleNotFound(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.service.GetSale(context.Background(), uuid.New())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}
