package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridianfirm/firmdesk/internal/api"
	"github.com/meridianfirm/firmdesk/internal/cli"
	"github.com/meridianfirm/firmdesk/internal/export"
	"github.com/meridianfirm/firmdesk/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage the chart of accounts and financial statements",
	}

	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsAddCmd())
	cmd.AddCommand(accountsSeedCmd())
	cmd.AddCommand(accountsStatementsCmd())

	return cmd
}

func accountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the chart of accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			accounts, err := client.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			if len(accounts) == 0 {
				fmt.Println(cli.InfoStyle.Render("Chart of accounts is empty. Run 'firmdesk accounts seed' to create the standard chart."))
				return nil
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "Code", "Name", "Type", "Balance")
			for _, a := range accounts {
				balance := "-"
				if a.Balance != nil {
					balance = "$" + a.Balance.StringFixed(2)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.Code, a.Name, a.AccountType, balance)
			}
			return nil
		},
	}
}

func accountsAddCmd() *cobra.Command {
	var req api.CreateAccountRequest
	var parent int

	cmd := &cobra.Command{
		Use:   "add <code> <name>",
		Short: "Add a ledger account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			req.Code = args[0]
			req.Name = args[1]
			if parent > 0 {
				req.Parent = &parent
			}

			account, err := client.CreateAccount(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added account %s %q", account.Code, account.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.AccountType, "type", "", "account type: ASSET, LIABILITY, EQUITY, INCOME, EXPENSE (required)")
	cmd.Flags().StringVar(&req.Description, "description", "", "account description")
	cmd.Flags().IntVar(&parent, "parent", 0, "parent account id")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func accountsSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the standard chart of accounts",
		Long:  `Asks the backend to create its standard chart. Account codes that already exist are left untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			result, err := client.SeedAccounts(cmd.Context())
			if err != nil {
				return err
			}

			msg := result.Status
			if result.Message != "" {
				msg = result.Message
			}
			fmt.Println(cli.FormatSuccess("Chart seeded: " + msg))
			return nil
		},
	}
}

func accountsStatementsCmd() *cobra.Command {
	var exportPath string

	cmd := &cobra.Command{
		Use:   "statements",
		Short: "Show the P&L and balance sheet",
		Long: `Fetches the server-generated profit & loss and balance sheet. All figures
are computed from posted journal entries server-side and displayed as-is.
Use --export to write them to an Excel workbook instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			statements, err := client.FinancialStatements(cmd.Context())
			if err != nil {
				return err
			}

			if exportPath != "" {
				if err := export.WriteStatements(statements, exportPath); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess("Wrote statements to " + exportPath))
				return nil
			}

			printProfitAndLoss(statements.ProfitAndLoss)
			fmt.Println()
			printBalanceSheet(statements.BalanceSheet)
			return nil
		},
	}

	cmd.Flags().StringVar(&exportPath, "export", "", "write an .xlsx workbook to this path instead of printing")

	return cmd
}

func printProfitAndLoss(pl model.ProfitAndLoss) {
	fmt.Println(cli.FormatTitle("Profit & Loss"))

	w := newTable()
	for _, section := range []string{model.AccountIncome, model.AccountExpense} {
		fmt.Fprintf(w, "%s\t\n", cli.HeaderStyle.Render(section))
		for _, line := range pl.Data[section] {
			fmt.Fprintf(w, "  %s %s\t$%s\n", line.Code, line.Name, line.Balance.StringFixed(2))
		}
		fmt.Fprintf(w, "  Total\t$%s\n", pl.Totals[section].StringFixed(2))
	}
	w.Flush()

	fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("Net income: $%s", pl.NetIncome.StringFixed(2))))
}

func printBalanceSheet(bs model.BalanceSheet) {
	fmt.Println(cli.FormatTitle("Balance Sheet"))

	w := newTable()
	for _, section := range []string{model.AccountAsset, model.AccountLiability, model.AccountEquity} {
		fmt.Fprintf(w, "%s\t\n", cli.HeaderStyle.Render(section))
		for _, line := range bs.Data[section] {
			fmt.Fprintf(w, "  %s %s\t$%s\n", line.Code, line.Name, line.Balance.StringFixed(2))
		}
		fmt.Fprintf(w, "  Total\t$%s\n", bs.Totals[section].StringFixed(2))
	}
	w.Flush()

	check := fmt.Sprintf("Check: $%s", bs.Check.StringFixed(2))
	if bs.Check.IsZero() {
		fmt.Println(cli.SuccessStyle.Render(check + " (balanced)"))
	} else {
		fmt.Println(cli.ErrorStyle.Render(check + " (out of balance)"))
	}
}
