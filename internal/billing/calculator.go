// Package billing computes the live invoice total preview shown while a user
// composes line items. The figures are presentation-only: the backend
// recomputes all totals authoritatively on save, and the saved values are
// what gets redisplayed afterwards.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/meridianfirm/firmdesk/internal/model"
)

// Totals is the derived summary for a set of line items.
type Totals struct {
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	GrandTotal decimal.Decimal
}

// LineAmount returns quantity × unit price for a single line. Exact decimal
// arithmetic, so re-deriving from the same inputs always gives the same
// preview regardless of entry order.
func LineAmount(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// Compute derives subtotal, tax and grand total from raw line inputs and a
// percentage tax rate. Line Amount fields are ignored; amounts are always
// re-derived from quantity and unit price.
func Compute(lines []model.InvoiceLine, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(LineAmount(line.Quantity, line.UnitPrice))
	}

	tax := subtotal.Mul(taxRate).Div(decimal.NewFromInt(100))

	return Totals{
		Subtotal:   subtotal,
		TaxAmount:  tax,
		GrandTotal: subtotal.Add(tax),
	}
}

// Recalculate fills in the Amount field of every line and returns the totals.
// Used when preparing a create payload so the submitted lines carry the same
// amounts the preview displayed.
func Recalculate(lines []model.InvoiceLine, taxRate decimal.Decimal) ([]model.InvoiceLine, Totals) {
	out := make([]model.InvoiceLine, len(lines))
	for i, line := range lines {
		line.Amount = LineAmount(line.Quantity, line.UnitPrice)
		out[i] = line
	}
	return out, Compute(out, taxRate)
}
