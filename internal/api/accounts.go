package api

import (
	"context"
	"fmt"

	"github.com/meridianfirm/firmdesk/internal/model"
)

// CreateAccountRequest is the payload for adding a ledger account.
type CreateAccountRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	AccountType string `json:"account_type" validate:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Description string `json:"description,omitempty"`
	Parent      *int   `json:"parent,omitempty"`
}

// ListAccounts fetches the chart of accounts ordered by code.
func (c *Client) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := c.get(ctx, "accounts/", nil, &accounts); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// CreateAccount adds a ledger account.
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) (*model.Account, error) {
	var account model.Account
	if err := c.post(ctx, "accounts/", req, &account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &account, nil
}

// SeedAccounts asks the backend to create its standard chart of accounts.
// Already-existing codes are left untouched server-side.
func (c *Client) SeedAccounts(ctx context.Context) (*ActionResult, error) {
	var result ActionResult
	if err := c.post(ctx, "accounts/seed/", nil, &result); err != nil {
		return nil, fmt.Errorf("failed to seed accounts: %w", err)
	}
	return &result, nil
}

// FinancialStatements fetches the server-generated P&L and balance sheet.
func (c *Client) FinancialStatements(ctx context.Context) (*model.FinancialStatements, error) {
	var statements model.FinancialStatements
	if err := c.get(ctx, "accounts/financial_statements/", nil, &statements); err != nil {
		return nil, fmt.Errorf("failed to get financial statements: %w", err)
	}
	return &statements, nil
}
