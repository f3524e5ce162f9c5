package pos

import "math"

// DefaultVATRate is the rate applied to every new session until the
// cashier overrides it.
const DefaultVATRate = 0.16

// Totals is the priced breakdown of a cart. All amounts are in cents.
// GrandTotal is not clamped: a discount larger than subtotal plus VAT
// yields a negative total, which the cashier can see and correct.
type Totals struct {
	Subtotal   int64   `json:"subtotal"`
	VATRate    float64 `json:"vat_rate"`
	VATAmount  int64   `json:"vat_amount"`
	Discount   int64   `json:"discount"`
	GrandTotal int64   `json:"grand_total"`
}

// ComputeTotals prices a cart subtotal with the given VAT rate and flat
// discount. VAT is rounded to the nearest cent, half away from zero.
func ComputeTotals(subtotal int64, vatRate float64, discount int64) Totals {
	vat := int64(math.Round(float64(subtotal) * vatRate))
	return Totals{
		Subtotal:   subtotal,
		VATRate:    vatRate,
		VATAmount:  vat,
		Discount:   discount,
		GrandTotal: subtotal + vat - discount,
	}
}
