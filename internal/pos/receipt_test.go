package pos

import (
	"strings"
	"testing"
	"time"

	"github.com/peakers/pos-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func sampleReceipt() *Receipt {
	return &Receipt{
		Company:      Company{Name: "Peakers Traders", Phone: "0712345678"},
		CustomerName: "Jane Wanjiku",
		SaleNumber:   "SALE-00042",
		Lines: []ReceiptLine{
			{Name: "Widget", Quantity: 2, LineTotal: 2000},
			{Name: "Starter Pack", Quantity: 1, LineTotal: 5000, IsBundle: true},
		},
		Totals:      ComputeTotals(7000, 0.16, 500),
		PaymentType: enum.PaymentTypeMpesa,
		Currency:    "Ksh",
		IssuedAt:    time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestReceiptRender(t *testing.T) {
	text := sampleReceipt().Render()

	assert.Contains(t, text, "Peakers Traders\n")
	assert.Contains(t, text, "Tel: 0712345678\n")
	assert.Contains(t, text, "Customer: Jane Wanjiku\n")
	assert.Contains(t, text, "Sale #: SALE-00042\n")
	assert.Contains(t, text, "2 x Widget = Ksh 20.00\n")
	assert.Contains(t, text, "1 x Starter Pack (Bundle) = Ksh 50.00\n")
	assert.Contains(t, text, "Subtotal: Ksh 70.00\n")
	assert.Contains(t, text, "VAT (16%): Ksh 11.20\n")
	assert.Contains(t, text, "Discount: Ksh 5.00\n")
	assert.Contains(t, text, "Total: Ksh 76.20\n")
	assert.Contains(t, text, "Paid via: Mpesa\n")
	assert.Contains(t, text, "Thank you for your business!")
}

func TestReceiptRenderFallsBackToPlaceholders(t *testing.T) {
	r := sampleReceipt()
	r.Company = Company{}
	r.CustomerName = ""

	text := r.Render()

	assert.Contains(t, text, "Company Name\n")
	assert.Contains(t, text, "Tel: N/A\n")
	assert.Contains(t, text, "Customer: Guest\n")
}

func TestReceiptRenderOmitsZeroDiscount(t *testing.T) {
	r := sampleReceipt()
	r.Totals = ComputeTotals(7000, 0.16, 0)

	text := r.Render()

	assert.NotContains(t, text, "Discount:")
	assert.Contains(t, text, "Total: Ksh 81.20\n")
}

func TestReceiptRenderFractionalVATRate(t *testing.T) {
	r := sampleReceipt()
	r.Totals = ComputeTotals(10000, 0.125, 0)

	text := r.Render()

	assert.Contains(t, text, "VAT (12.5%): Ksh 12.50\n")
}

func TestReceiptToDocument(t *testing.T) {
	doc := sampleReceipt().ToDocument(32)
	raw := string(doc.Bytes())

	assert.Contains(t, raw, "Peakers Traders")
	assert.Contains(t, raw, "Starter Pack (Bundle)")
	assert.Contains(t, raw, "Thank you for your business!")
	assert.Contains(t, raw, strings.Repeat("-", 32))
}
