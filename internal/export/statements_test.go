package export

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/meridianfirm/firmdesk/internal/model"
)

func TestWriteStatements(t *testing.T) {
	statements := &model.FinancialStatements{
		ProfitAndLoss: model.ProfitAndLoss{
			Data: map[string][]model.StatementLine{
				model.AccountIncome: {
					{Code: "4000", Name: "Professional Fees", Balance: decimal.NewFromInt(5000)},
				},
				model.AccountExpense: {
					{Code: "6000", Name: "Salaries", Balance: decimal.NewFromInt(3000)},
				},
			},
			Totals: map[string]decimal.Decimal{
				model.AccountIncome:  decimal.NewFromInt(5000),
				model.AccountExpense: decimal.NewFromInt(3000),
			},
			NetIncome: decimal.NewFromInt(2000),
		},
		BalanceSheet: model.BalanceSheet{
			Data: map[string][]model.StatementLine{
				model.AccountAsset: {
					{Code: "1000", Name: "Operating Cash", Balance: decimal.NewFromInt(9000)},
				},
				model.AccountLiability: {
					{Code: "2000", Name: "Accounts Payable", Balance: decimal.NewFromInt(4000)},
				},
				model.AccountEquity: {
					{Code: "3000", Name: "Retained Earnings", Balance: decimal.NewFromInt(5000)},
				},
			},
			Totals: map[string]decimal.Decimal{
				model.AccountAsset:     decimal.NewFromInt(9000),
				model.AccountLiability: decimal.NewFromInt(4000),
				model.AccountEquity:    decimal.NewFromInt(5000),
			},
			Check: decimal.Zero,
		},
	}

	path := filepath.Join(t.TempDir(), "statements.xlsx")
	require.NoError(t, WriteStatements(statements, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, sheetProfitAndLoss)
	assert.Contains(t, sheets, sheetBalanceSheet)
	assert.NotContains(t, sheets, "Sheet1")

	rows, err := f.GetRows(sheetProfitAndLoss)
	require.NoError(t, err)

	assert.Equal(t, "Profit & Loss", rows[0][0])
	assert.True(t, containsRow(rows, "4000", "Professional Fees"))
	assert.True(t, containsRow(rows, "6000", "Salaries"))
	assert.True(t, containsRow(rows, "", "Net Income"))

	rows, err = f.GetRows(sheetBalanceSheet)
	require.NoError(t, err)
	assert.True(t, containsRow(rows, "1000", "Operating Cash"))
	assert.True(t, containsRow(rows, "3000", "Retained Earnings"))
}

func containsRow(rows [][]string, code, name string) bool {
	for _, row := range rows {
		if len(row) >= 2 && row[0] == code && row[1] == name {
			return true
		}
	}
	return false
}
