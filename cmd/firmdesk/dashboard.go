package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/meridianfirm/firmdesk/internal/cli"
	"github.com/meridianfirm/firmdesk/internal/model"
	"github.com/meridianfirm/firmdesk/internal/stats"
	"github.com/meridianfirm/firmdesk/internal/tui"
)

func dashboardCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the firm overview",
		Long: `Aggregates clients, engagements, invoices, and bills into the firm summary:
client and high-risk counts, active engagements with average completion, and
outstanding receivables and payables.

With --watch the dashboard stays open and refreshes periodically.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			if watch {
				return tui.Run(client)
			}

			ctx := cmd.Context()

			// A failed collection fetch degrades that figure to zero rather
			// than blanking the whole screen.
			clients, err := client.ListClients(ctx, "")
			if err != nil {
				slog.Warn("failed to load clients", "error", err)
			}
			engagements, err := client.ListEngagements(ctx, 0)
			if err != nil {
				slog.Warn("failed to load engagements", "error", err)
			}
			invoices, err := client.ListInvoices(ctx)
			if err != nil {
				slog.Warn("failed to load invoices", "error", err)
			}
			bills, err := client.ListBills(ctx)
			if err != nil {
				slog.Warn("failed to load bills", "error", err)
			}

			printSummary(stats.Summarize(clients, engagements, invoices, bills), engagements)
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "stay open and refresh periodically")

	return cmd
}

func printSummary(summary stats.FirmSummary, engagements []model.Engagement) {
	fmt.Println(cli.FormatTitle("Firm Overview"))

	w := newTable()
	fmt.Fprintf(w, "Clients\t%d\n", summary.TotalClients)
	highRisk := fmt.Sprintf("%d", summary.HighRisk)
	if summary.HighRisk > 0 {
		highRisk = cli.ErrorStyle.Render(highRisk)
	}
	fmt.Fprintf(w, "High-risk clients\t%s\n", highRisk)
	fmt.Fprintf(w, "Active engagements\t%d\n", summary.Engagements.Active)
	fmt.Fprintf(w, "Completed engagements\t%d\n", summary.Engagements.Completed)
	fmt.Fprintf(w, "Average completion\t%d%%\n", summary.Engagements.AverageCompletion)
	fmt.Fprintf(w, "Outstanding receivables\t$%s\n", summary.Receivables.StringFixed(2))
	fmt.Fprintf(w, "Outstanding payables\t$%s\n", summary.Payables.StringFixed(2))
	w.Flush()

	// Surface engagements closest to their deadline.
	var upcoming []model.Engagement
	for _, e := range engagements {
		if e.IsActive() && e.Deadline != "" {
			upcoming = append(upcoming, e)
		}
	}
	if len(upcoming) == 0 {
		return
	}

	fmt.Println()
	fmt.Println(cli.BoldStyle.Render("Active deadlines:"))
	w = newTable()
	defer w.Flush()
	for _, e := range upcoming {
		fmt.Fprintf(w, "  %s\t%s\t%d%%\t%s\n", e.Name, e.Deadline, e.CompletionPercentage, engagementStatusLabel(e))
	}
}
