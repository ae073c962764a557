package model

import "github.com/shopspring/decimal"

// Bill statuses.
const (
	BillDraft    = "DRAFT"
	BillApproved = "APPROVED"
	BillPaid     = "PAID"
	BillVoid     = "VOID"
)

// Bill is an accounts-payable vendor bill.
type Bill struct {
	ID          int             `json:"id"`
	Vendor      int             `json:"vendor"`
	VendorName  string          `json:"vendor_name,omitempty"`
	BillNumber  string          `json:"bill_number"`
	IssueDate   string          `json:"issue_date"`
	DueDate     string          `json:"due_date,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
}

// IsOutstanding reports whether the bill still counts toward accounts
// payable (unpaid and not voided).
func (b Bill) IsOutstanding() bool {
	return b.Status != BillPaid && b.Status != BillVoid
}

// Vendor is a supplier the firm owes money to.
type Vendor struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
	PaymentTerms string `json:"payment_terms,omitempty"`
	Currency     string `json:"currency,omitempty"`
}
