package model

import "github.com/shopspring/decimal"

// Invoice statuses.
const (
	InvoiceDraft   = "DRAFT"
	InvoiceSent    = "SENT"
	InvoicePaid    = "PAID"
	InvoiceOverdue = "OVERDUE"
	InvoiceVoid    = "VOID"
)

// Invoice is an accounts-receivable invoice. Subtotal, TaxAmount and Total
// are computed server-side on save; the local preview in the billing package
// exists only for display while composing lines.
type Invoice struct {
	ID            int             `json:"id"`
	Client        int             `json:"client"`
	ClientName    string          `json:"client_name,omitempty"`
	Engagement    *int            `json:"engagement,omitempty"`
	InvoiceNumber string          `json:"invoices_number"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	Notes         string          `json:"notes,omitempty"`
	Lines         []InvoiceLine   `json:"lines,omitempty"`
}

// IsOutstanding reports whether the invoice still counts toward accounts
// receivable (unpaid and not voided).
func (i Invoice) IsOutstanding() bool {
	return i.Status != InvoicePaid && i.Status != InvoiceVoid
}

// InvoiceLine is one billed line item. Amount is the cached
// quantity × unit price product, recomputed authoritatively server-side.
type InvoiceLine struct {
	ID          int             `json:"id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}
