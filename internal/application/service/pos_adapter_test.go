package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/peakers/pos-api/internal/domain/entity"
	"github.com/peakers/pos-api/internal/domain/enum"
	"github.com/peakers/pos-api/internal/pos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAdapterDerivesBundleStock(t *testing.T) {
	bolt := plainProduct("Bolt", 100, 10)
	kit := bundleOf("Fastener Kit", 500, map[*entity.Product]int{bolt: 4})
	svc, _ := newProductService(bolt, kit)
	adapter := NewCatalogAdapter(svc)

	items, err := adapter.SellableItems(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := make(map[uuid.UUID]pos.Item)
	for _, it := range items {
		byID[it.ID] = it
	}

	assert.Equal(t, 10, byID[bolt.ID].Stock)
	assert.False(t, byID[bolt.ID].IsBundle)

	// 10 bolts at 4 per kit assemble 2 kits
	assert.Equal(t, 2, byID[kit.ID].Stock)
	assert.True(t, byID[kit.ID].IsBundle)
	assert.Equal(t, int64(500), byID[kit.ID].Price)
}

func TestSaleAdapterMapsRequestToSubmission(t *testing.T) {
	widget := plainProduct("Widget", 1000, 10)
	f := newSaleFixture(t, widget)
	adapter := NewSaleAdapter(f.service)

	result, err := adapter.ProcessSale(context.Background(), &pos.SaleRequest{
		OperatorID:  f.userID,
		CustomerID:  f.customer.ID,
		PaymentType: enum.PaymentTypeMpesa,
		Lines: []pos.SaleLine{{
			ProductID: widget.ID,
			Name:      widget.Name,
			Quantity:  2,
			UnitPrice: 1000,
			LineTotal: 2000,
		}},
		Totals: pos.ComputeTotals(2000, 0.16, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, "SALE-00001", result.Number)
	assert.NotEqual(t, uuid.Nil, result.SaleID)

	stored := f.sales.sales[result.SaleID]
	require.NotNil(t, stored)
	assert.Equal(t, enum.PaymentTypeMpesa, stored.PaymentType)
	assert.Equal(t, int64(2000), stored.Subtotal)
	assert.Equal(t, int64(320), stored.VATAmount)
	assert.Equal(t, int64(2320), stored.Total)
	assert.Equal(t, 8, widget.Stock)
}

func TestSaleAdapterTranslatesStockConflict(t *testing.T) {
	widget := plainProduct("Widget", 1000, 1)
	f := newSaleFixture(t, widget)
	f.products.failDecrement = []uuid.UUID{widget.ID}
	adapter := NewSaleAdapter(f.service)

	_, err := adapter.ProcessSale(context.Background(), &pos.SaleRequest{
		OperatorID:  f.userID,
		CustomerID:  f.customer.ID,
		PaymentType: enum.PaymentTypeCash,
		Lines: []pos.SaleLine{{
			ProductID: widget.ID,
			Name:      widget.Name,
			Quantity:  5,
			UnitPrice: 1000,
			LineTotal: 5000,
		}},
		Totals: pos.ComputeTotals(5000, 0.16, 0),
	})

	var insufficient *pos.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Widget", insufficient.Name)
	assert.Equal(t, widget.ID, insufficient.ItemID)
}

func TestCustomerAdapterCreateMapsRecord(t *testing.T) {
	repo := newMockCustomerRepo()
	adapter := NewCustomerAdapter(NewCustomerService(repo))

	phone := "0712345678"
	record, err := adapter.CreateCustomer(context.Background(), uuid.New(), pos.NewCustomer{
		Name:  "Otieno",
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "Otieno", record.Name)
	require.NotNil(t, record.Phone)
	assert.Equal(t, phone, *record.Phone)

	records, err := adapter.Customers(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
}
