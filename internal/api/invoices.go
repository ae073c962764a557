package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/meridianfirm/firmdesk/internal/model"
)

// CreateInvoiceRequest is the payload for creating a draft invoice. The
// preview totals computed while composing lines are submitted for display
// parity, but the backend recomputes all of them authoritatively on save.
type CreateInvoiceRequest struct {
	Client        int                 `json:"client" validate:"required"`
	Engagement    *int                `json:"engagement,omitempty"`
	InvoiceNumber string              `json:"invoices_number" validate:"required"`
	IssueDate     string              `json:"issue_date" validate:"required"`
	DueDate       string              `json:"due_date" validate:"required"`
	TaxAmount     decimal.Decimal     `json:"tax_amount"`
	Notes         string              `json:"notes,omitempty"`
	Lines         []model.InvoiceLine `json:"lines" validate:"required,min=1"`
}

// ListInvoices fetches all invoices, newest first.
func (c *Client) ListInvoices(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := c.get(ctx, "invoices/", nil, &invoices); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// GetInvoice fetches one invoice with its lines and authoritative totals.
func (c *Client) GetInvoice(ctx context.Context, id int) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := c.get(ctx, "invoices/"+strconv.Itoa(id)+"/", nil, &invoice); err != nil {
		return nil, fmt.Errorf("failed to get invoice %d: %w", id, err)
	}
	return &invoice, nil
}

// CreateInvoice creates a draft invoice.
func (c *Client) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := c.post(ctx, "invoices/", req, &invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return &invoice, nil
}

// FinalizeInvoice locks a draft invoice, marks it sent, and posts it to the
// general ledger. Only drafts can be finalized; the server enforces that.
func (c *Client) FinalizeInvoice(ctx context.Context, id int) (*ActionResult, error) {
	var result ActionResult
	if err := c.post(ctx, "invoices/"+strconv.Itoa(id)+"/finalize_and_send/", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteInvoice removes an invoice.
func (c *Client) DeleteInvoice(ctx context.Context, id int) error {
	if err := c.delete(ctx, "invoices/"+strconv.Itoa(id)+"/"); err != nil {
		return fmt.Errorf("failed to delete invoice %d: %w", id, err)
	}
	return nil
}
