package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meridianfirm/firmdesk/internal/api"
	"github.com/meridianfirm/firmdesk/internal/cli"
	"github.com/meridianfirm/firmdesk/internal/common"
)

func billsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bills",
		Short: "Manage accounts-payable vendor bills",
	}

	cmd.AddCommand(billsListCmd())
	cmd.AddCommand(billsAddCmd())
	cmd.AddCommand(billsDeleteCmd())

	return cmd
}

func billsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vendor bills",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			bills, err := client.ListBills(cmd.Context())
			if err != nil {
				return err
			}

			if len(bills) == 0 {
				fmt.Println(cli.InfoStyle.Render("No bills found."))
				return nil
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "ID", "Number", "Vendor", "Issued", "Due", "Amount", "Status")
			for _, b := range bills {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t$%s\t%s\n",
					b.ID, b.BillNumber, orDash(b.VendorName), b.IssueDate,
					orDash(b.DueDate), b.TotalAmount.StringFixed(2), b.Status)
			}
			return nil
		},
	}
}

func billsAddCmd() *cobra.Command {
	var req api.CreateBillRequest
	var amount string

	cmd := &cobra.Command{
		Use:   "add <number>",
		Short: "Record a vendor bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			req.BillNumber = args[0]
			req.TotalAmount, err = decimal.NewFromString(amount)
			if err != nil {
				return common.NewUserError(fmt.Sprintf("invalid amount %q", amount), err)
			}

			bill, err := client.CreateBill(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded bill %s (id %d)", bill.BillNumber, bill.ID)))
			return nil
		},
	}

	cmd.Flags().IntVar(&req.Vendor, "vendor", 0, "vendor id (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "total amount (required)")
	cmd.Flags().StringVar(&req.IssueDate, "issue", "", "issue date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&req.DueDate, "due", "", "due date YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("vendor")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("issue")

	return cmd
}

func billsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a bill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := authedClient()
			if err != nil {
				return err
			}

			if !force {
				ok, confirmErr := cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					fmt.Sprintf("Delete bill %d?", id))
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Println(cli.InfoStyle.Render("Aborted."))
					return nil
				}
			}

			if err := client.DeleteBill(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted bill %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}

func vendorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Manage vendors",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List vendors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			vendors, err := client.ListVendors(cmd.Context())
			if err != nil {
				return err
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "ID", "Name", "Email", "Terms", "Currency")
			for _, v := range vendors {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					v.ID, v.Name, orDash(v.Email), orDash(v.PaymentTerms), orDash(v.Currency))
			}
			return nil
		},
	}

	var addReq api.CreateVendorRequest
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			addReq.Name = args[0]
			vendor, err := client.CreateVendor(cmd.Context(), addReq)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added vendor %q (id %d)", vendor.Name, vendor.ID)))
			return nil
		},
	}
	addCmd.Flags().StringVar(&addReq.Email, "email", "", "vendor email")
	addCmd.Flags().StringVar(&addReq.TaxID, "tax-id", "", "vendor tax id")
	addCmd.Flags().StringVar(&addReq.PaymentTerms, "terms", "", "payment terms, e.g. NET30")
	addCmd.Flags().StringVar(&addReq.Currency, "currency", "", "currency (ISO 4217)")

	cmd.AddCommand(listCmd, addCmd)
	return cmd
}
