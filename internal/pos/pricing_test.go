package pos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		vatRate  float64
		discount int64
		want     Totals
	}{
		{
			name:     "standard rate with discount",
			subtotal: 100000,
			vatRate:  0.16,
			discount: 5000,
			want: Totals{
				Subtotal:   100000,
				VATRate:    0.16,
				VATAmount:  16000,
				Discount:   5000,
				GrandTotal: 111000,
			},
		},
		{
			name:     "zero rate",
			subtotal: 25000,
			vatRate:  0,
			discount: 0,
			want: Totals{
				Subtotal:   25000,
				VATAmount:  0,
				GrandTotal: 25000,
			},
		},
		{
			name:     "discount exceeding total stays negative",
			subtotal: 10000,
			vatRate:  0,
			discount: 15000,
			want: Totals{
				Subtotal:   10000,
				Discount:   15000,
				GrandTotal: -5000,
			},
		},
		{
			name:     "vat rounds to nearest cent",
			subtotal: 333,
			vatRate:  0.16,
			discount: 0,
			want: Totals{
				Subtotal:   333,
				VATRate:    0.16,
				VATAmount:  53,
				GrandTotal: 386,
			},
		},
		{
			name:     "empty cart",
			subtotal: 0,
			vatRate:  0.16,
			discount: 0,
			want: Totals{
				VATRate: 0.16,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.subtotal, tt.vatRate, tt.discount)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1110.00", FormatAmount(111000))
	assert.Equal(t, "0.05", FormatAmount(5))
	assert.Equal(t, "-50.00", FormatAmount(-5000))
}
