// Package export writes server-generated financial statements to an Excel
// workbook for distribution outside the application.
package export

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/meridianfirm/firmdesk/internal/model"
)

const (
	sheetProfitAndLoss = "Profit & Loss"
	sheetBalanceSheet  = "Balance Sheet"
)

// WriteStatements writes the statements to path as a two-sheet workbook.
// The figures are written exactly as the server returned them.
func WriteStatements(statements *model.FinancialStatements, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := writeProfitAndLoss(f, statements.ProfitAndLoss); err != nil {
		return err
	}
	if err := writeBalanceSheet(f, statements.BalanceSheet); err != nil {
		return err
	}

	// Drop the default sheet so the workbook opens on the P&L.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeProfitAndLoss(f *excelize.File, pl model.ProfitAndLoss) error {
	if _, err := f.NewSheet(sheetProfitAndLoss); err != nil {
		return fmt.Errorf("failed to create P&L sheet: %w", err)
	}

	row := 1
	setRow(f, sheetProfitAndLoss, row, "Profit & Loss", "", "")
	row++
	setRow(f, sheetProfitAndLoss, row, "Generated", time.Now().Format("2006-01-02"), "")
	row += 2

	for _, section := range []string{model.AccountIncome, model.AccountExpense} {
		setRow(f, sheetProfitAndLoss, row, sectionLabel(section), "", "")
		row++
		for _, line := range pl.Data[section] {
			setAmountRow(f, sheetProfitAndLoss, row, line.Code, line.Name, line.Balance)
			row++
		}
		setAmountRow(f, sheetProfitAndLoss, row, "", "Total "+sectionLabel(section), pl.Totals[section])
		row += 2
	}

	setAmountRow(f, sheetProfitAndLoss, row, "", "Net Income", pl.NetIncome)
	return nil
}

func writeBalanceSheet(f *excelize.File, bs model.BalanceSheet) error {
	if _, err := f.NewSheet(sheetBalanceSheet); err != nil {
		return fmt.Errorf("failed to create balance sheet: %w", err)
	}

	row := 1
	setRow(f, sheetBalanceSheet, row, "Balance Sheet", "", "")
	row += 2

	for _, section := range []string{model.AccountAsset, model.AccountLiability, model.AccountEquity} {
		setRow(f, sheetBalanceSheet, row, sectionLabel(section), "", "")
		row++
		for _, line := range bs.Data[section] {
			setAmountRow(f, sheetBalanceSheet, row, line.Code, line.Name, line.Balance)
			row++
		}
		setAmountRow(f, sheetBalanceSheet, row, "", "Total "+sectionLabel(section), bs.Totals[section])
		row += 2
	}

	setAmountRow(f, sheetBalanceSheet, row, "", "Check (A − L − E)", bs.Check)
	return nil
}

func sectionLabel(accountType string) string {
	switch accountType {
	case model.AccountIncome:
		return "Income"
	case model.AccountExpense:
		return "Expenses"
	case model.AccountAsset:
		return "Assets"
	case model.AccountLiability:
		return "Liabilities"
	case model.AccountEquity:
		return "Equity"
	default:
		return accountType
	}
}

func setRow(f *excelize.File, sheet string, row int, a, b, c string) {
	cell, _ := excelize.CoordinatesToCellName(1, row)
	_ = f.SetSheetRow(sheet, cell, &[]any{a, b, c})
}

func setAmountRow(f *excelize.File, sheet string, row int, code, name string, amount decimal.Decimal) {
	value, _ := amount.Round(2).Float64()
	cell, _ := excelize.CoordinatesToCellName(1, row)
	_ = f.SetSheetRow(sheet, cell, &[]any{code, name, value})
}
