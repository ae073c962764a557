package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/meridianfirm/firmdesk/internal/model"
)

// CreateBillRequest is the payload for recording a vendor bill.
type CreateBillRequest struct {
	Vendor      int             `json:"vendor" validate:"required"`
	BillNumber  string          `json:"bill_number" validate:"required"`
	IssueDate   string          `json:"issue_date" validate:"required"`
	DueDate     string          `json:"due_date,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// CreateVendorRequest is the payload for adding a vendor.
type CreateVendorRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	TaxID        string `json:"tax_id,omitempty"`
	PaymentTerms string `json:"payment_terms,omitempty"`
	Currency     string `json:"currency,omitempty" validate:"omitempty,len=3"`
}

// ListBills fetches all vendor bills.
func (c *Client) ListBills(ctx context.Context) ([]model.Bill, error) {
	var bills []model.Bill
	if err := c.get(ctx, "bills/", nil, &bills); err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// CreateBill records a vendor bill.
func (c *Client) CreateBill(ctx context.Context, req CreateBillRequest) (*model.Bill, error) {
	var bill model.Bill
	if err := c.post(ctx, "bills/", req, &bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	return &bill, nil
}

// DeleteBill removes a bill.
func (c *Client) DeleteBill(ctx context.Context, id int) error {
	if err := c.delete(ctx, "bills/"+strconv.Itoa(id)+"/"); err != nil {
		return fmt.Errorf("failed to delete bill %d: %w", id, err)
	}
	return nil
}

// ListVendors fetches all vendors.
func (c *Client) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	var vendors []model.Vendor
	if err := c.get(ctx, "vendors/", nil, &vendors); err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	return vendors, nil
}

// CreateVendor adds a vendor.
func (c *Client) CreateVendor(ctx context.Context, req CreateVendorRequest) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := c.post(ctx, "vendors/", req, &vendor); err != nil {
		return nil, fmt.Errorf("failed to create vendor: %w", err)
	}
	return &vendor, nil
}
