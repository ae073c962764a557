package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meridianfirm/firmdesk/internal/api"
	"github.com/meridianfirm/firmdesk/internal/billing"
	"github.com/meridianfirm/firmdesk/internal/cli"
	"github.com/meridianfirm/firmdesk/internal/common"
	"github.com/meridianfirm/firmdesk/internal/model"
)

func invoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "Manage accounts-receivable invoices",
	}

	cmd.AddCommand(invoicesListCmd())
	cmd.AddCommand(invoicesShowCmd())
	cmd.AddCommand(invoicesCreateCmd())
	cmd.AddCommand(invoicesFinalizeCmd())
	cmd.AddCommand(invoicesDeleteCmd())

	return cmd
}

// parseLineFlag parses one --line value of the form "description:qty:price".
// The description may itself contain colons; the last two segments are the
// numbers.
func parseLineFlag(raw string) (model.InvoiceLine, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 {
		return model.InvoiceLine{}, common.NewUserError(
			fmt.Sprintf("invalid --line %q; expected description:quantity:unit-price", raw), nil)
	}

	description := strings.Join(parts[:len(parts)-2], ":")
	if strings.TrimSpace(description) == "" {
		return model.InvoiceLine{}, common.NewUserError(
			fmt.Sprintf("invalid --line %q; description is empty", raw), nil)
	}

	quantity, err := decimal.NewFromString(parts[len(parts)-2])
	if err != nil {
		return model.InvoiceLine{}, common.NewUserError(
			fmt.Sprintf("invalid quantity in --line %q", raw), err)
	}
	unitPrice, err := decimal.NewFromString(parts[len(parts)-1])
	if err != nil {
		return model.InvoiceLine{}, common.NewUserError(
			fmt.Sprintf("invalid unit price in --line %q", raw), err)
	}

	return model.InvoiceLine{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}, nil
}

func invoiceStatusLabel(status string) string {
	switch status {
	case model.InvoicePaid:
		return cli.SuccessStyle.Render(status)
	case model.InvoiceOverdue:
		return cli.ErrorStyle.Render(status)
	case model.InvoiceVoid:
		return cli.SubtleStyle.Render(status)
	default:
		return status
	}
}

func invoicesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List invoices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			invoices, err := client.ListInvoices(cmd.Context())
			if err != nil {
				return err
			}

			if len(invoices) == 0 {
				fmt.Println(cli.InfoStyle.Render("No invoices found."))
				return nil
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "ID", "Number", "Client", "Issued", "Due", "Total", "Status")
			for _, inv := range invoices {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t$%s\t%s\n",
					inv.ID, inv.InvoiceNumber, orDash(inv.ClientName),
					inv.IssueDate, inv.DueDate, inv.Total.StringFixed(2),
					invoiceStatusLabel(inv.Status))
			}
			return nil
		},
	}
}

func invoicesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show an invoice with its lines",
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

			inv, err := client.GetInvoice(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Invoice " + inv.InvoiceNumber))
			fmt.Printf("Client: %s  Status: %s  Issued: %s  Due: %s\n\n",
				orDash(inv.ClientName), invoiceStatusLabel(inv.Status), inv.IssueDate, inv.DueDate)

			w := newTable()
			printTableHeader(w, "Description", "Qty", "Unit", "Amount")
			for _, line := range inv.Lines {
				fmt.Fprintf(w, "%s\t%s\t$%s\t$%s\n",
					line.Description, line.Quantity.String(),
					line.UnitPrice.StringFixed(2), line.Amount.StringFixed(2))
			}
			w.Flush()

			fmt.Printf("\nSubtotal: $%s\n", inv.Subtotal.StringFixed(2))
			fmt.Printf("Tax:      $%s\n", inv.TaxAmount.StringFixed(2))
			fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("Total:    $%s", inv.Total.StringFixed(2))))
			return nil
		},
	}
}

func invoicesCreateCmd() *cobra.Command {
	var (
		req          api.CreateInvoiceRequest
		engagementID int
		taxRate      string
		rawLines     []string
		yes          bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft invoice",
		Long: `Compose a draft invoice from line items, preview the computed totals, and
submit it. Each --line is "description:quantity:unit-price", e.g.

  firmdesk invoices create --client 4 --number INV-0042 \
      --issue 2026-03-01 --due 2026-03-31 --tax-rate 10 \
      --line "Audit fieldwork:10:25.00" --line "Partner review:2:50.00"

The preview is for display only; the backend recomputes all totals on save.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			lines := make([]model.InvoiceLine, 0, len(rawLines))
			for _, raw := range rawLines {
				line, parseErr := parseLineFlag(raw)
				if parseErr != nil {
					return parseErr
				}
				lines = append(lines, line)
			}

			rate := decimal.Zero
			if taxRate != "" {
				rate, err = decimal.NewFromString(taxRate)
				if err != nil {
					return common.NewUserError(fmt.Sprintf("invalid tax rate %q", taxRate), err)
				}
			}

			var totals billing.Totals
			req.Lines, totals = billing.Recalculate(lines, rate)
			req.TaxAmount = totals.TaxAmount
			if engagementID > 0 {
				req.Engagement = &engagementID
			}

			w := newTable()
			printTableHeader(w, "Description", "Qty", "Unit", "Amount")
			for _, line := range req.Lines {
				fmt.Fprintf(w, "%s\t%s\t$%s\t$%s\n",
					line.Description, line.Quantity.String(),
					line.UnitPrice.StringFixed(2), line.Amount.StringFixed(2))
			}
			w.Flush()
			fmt.Printf("\nSubtotal: $%s\n", totals.Subtotal.StringFixed(2))
			fmt.Printf("Tax:      $%s\n", totals.TaxAmount.StringFixed(2))
			fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("Total:    $%s", totals.GrandTotal.StringFixed(2))))

			if !yes {
				ok, confirmErr := cli.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Create this draft invoice?")
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Println(cli.InfoStyle.Render("Aborted."))
					return nil
				}
			}

			created, err := client.CreateInvoice(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created draft invoice %s (id %d)", created.InvoiceNumber, created.ID)))
			fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("Run 'firmdesk invoices finalize %d' to send it.", created.ID)))
			return nil
		},
	}

	cmd.Flags().IntVar(&req.Client, "client", 0, "client id (required)")
	cmd.Flags().IntVar(&engagementID, "engagement", 0, "engagement id")
	cmd.Flags().StringVar(&req.InvoiceNumber, "number", "", "invoice number (required)")
	cmd.Flags().StringVar(&req.IssueDate, "issue", "", "issue date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&req.DueDate, "due", "", "due date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&taxRate, "tax-rate", "", "tax rate percentage, e.g. 10")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "notes shown on the invoice")
	cmd.Flags().StringArrayVar(&rawLines, "line", nil, `line item "description:quantity:unit-price" (repeatable, required)`)
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the preview confirmation")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("number")
	_ = cmd.MarkFlagRequired("issue")
	_ = cmd.MarkFlagRequired("due")
	_ = cmd.MarkFlagRequired("line")

	return cmd
}

func invoicesFinalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "finalize <id>",
		Short: "Finalize and send a draft invoice",
		Long:  `Locks the draft, marks it SENT, and posts it to the general ledger. Only drafts can be finalized.`,
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

			result, err := client.FinalizeInvoice(cmd.Context(), id)
			if err != nil {
				return err
			}

			msg := result.Status
			if result.Message != "" {
				msg = result.Message
			}
			fmt.Println(cli.FormatSuccess("Invoice finalized: " + msg))
			return nil
		},
	}
}

func invoicesDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an invoice",
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
					fmt.Sprintf("Delete invoice %d?", id))
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Println(cli.InfoStyle.Render("Aborted."))
					return nil
				}
			}

			if err := client.DeleteInvoice(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted invoice %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}
