package model

import "github.com/shopspring/decimal"

// Account types in the chart of accounts.
const (
	AccountAsset     = "ASSET"
	AccountLiability = "LIABILITY"
	AccountEquity    = "EQUITY"
	AccountIncome    = "INCOME"
	AccountExpense   = "EXPENSE"
)

// Account is one ledger account in the chart of accounts. Balance is derived
// server-side from posted journal entries.
type Account struct {
	ID          int              `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	AccountType string           `json:"account_type"`
	Description string           `json:"description,omitempty"`
	Parent      *int             `json:"parent,omitempty"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	IsActive    bool             `json:"is_active"`
}

// StatementLine is one account row in a financial statement section.
type StatementLine struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// ProfitAndLoss is the P&L half of the financial statements response.
type ProfitAndLoss struct {
	Data      map[string][]StatementLine `json:"data"`
	Totals    map[string]decimal.Decimal `json:"totals"`
	NetIncome decimal.Decimal            `json:"net_income"`
}

// BalanceSheet is the balance-sheet half of the financial statements
// response. Check is assets − (liabilities + equity); zero when balanced.
type BalanceSheet struct {
	Data   map[string][]StatementLine `json:"data"`
	Totals map[string]decimal.Decimal `json:"totals"`
	Check  decimal.Decimal            `json:"check"`
}

// FinancialStatements bundles the server-generated P&L and balance sheet.
// All figures are authoritative server output and are only redisplayed.
type FinancialStatements struct {
	ProfitAndLoss ProfitAndLoss `json:"pl"`
	BalanceSheet  BalanceSheet  `json:"bs"`
}
