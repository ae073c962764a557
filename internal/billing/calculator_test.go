package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/meridianfirm/firmdesk/internal/model"
)

func line(qty, price string) model.InvoiceLine {
	return model.InvoiceLine{
		Description: "Professional Services",
		Quantity:    decimal.RequireFromString(qty),
		UnitPrice:   decimal.RequireFromString(price),
	}
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		taxRate      string
		wantSubtotal string
		wantTax      string
		wantTotal    string
		lines        []model.InvoiceLine
	}{
		{
			name:         "two lines with ten percent tax",
			lines:        []model.InvoiceLine{line("2", "100"), line("1", "50")},
			taxRate:      "10",
			wantSubtotal: "250",
			wantTax:      "25",
			wantTotal:    "275",
		},
		{
			name:         "no lines",
			lines:        nil,
			taxRate:      "10",
			wantSubtotal: "0",
			wantTax:      "0",
			wantTotal:    "0",
		},
		{
			name:         "zero tax rate",
			lines:        []model.InvoiceLine{line("3", "19.99")},
			taxRate:      "0",
			wantSubtotal: "59.97",
			wantTax:      "0",
			wantTotal:    "59.97",
		},
		{
			name:         "fractional quantity",
			lines:        []model.InvoiceLine{line("1.5", "200")},
			taxRate:      "7.25",
			wantSubtotal: "300",
			wantTax:      "21.75",
			wantTotal:    "321.75",
		},
		{
			name:         "no float drift on cents",
			lines:        []model.InvoiceLine{line("3", "0.10")},
			taxRate:      "0",
			wantSubtotal: "0.30",
			wantTax:      "0",
			wantTotal:    "0.30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.lines, decimal.RequireFromString(tt.taxRate))
			assert.True(t, got.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)),
				"subtotal = %s, want %s", got.Subtotal, tt.wantSubtotal)
			assert.True(t, got.TaxAmount.Equal(decimal.RequireFromString(tt.wantTax)),
				"tax = %s, want %s", got.TaxAmount, tt.wantTax)
			assert.True(t, got.GrandTotal.Equal(decimal.RequireFromString(tt.wantTotal)),
				"total = %s, want %s", got.GrandTotal, tt.wantTotal)
		})
	}
}

func TestCompute_IgnoresStaleAmounts(t *testing.T) {
	// A stale cached Amount must not leak into the subtotal; totals are
	// always re-derived from quantity and unit price.
	stale := line("2", "100")
	stale.Amount = decimal.RequireFromString("999")

	got := Compute([]model.InvoiceLine{stale}, decimal.Zero)
	assert.True(t, got.Subtotal.Equal(decimal.RequireFromString("200")))
}

func TestRecalculate(t *testing.T) {
	lines := []model.InvoiceLine{line("2", "100"), line("1", "50")}

	out, totals := Recalculate(lines, decimal.RequireFromString("10"))

	assert.True(t, out[0].Amount.Equal(decimal.RequireFromString("200")))
	assert.True(t, out[1].Amount.Equal(decimal.RequireFromString("50")))
	assert.True(t, totals.GrandTotal.Equal(decimal.RequireFromString("275")))

	// Input slice is not mutated.
	assert.True(t, lines[0].Amount.IsZero())
}
