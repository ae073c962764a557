package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/meridianfirm/firmdesk/internal/api"
	"github.com/meridianfirm/firmdesk/internal/cli"
	"github.com/meridianfirm/firmdesk/internal/model"
)

func engagementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "engagements",
		Aliases: []string{"eng"},
		Short:   "Manage audit, tax, and advisory engagements",
	}

	cmd.AddCommand(engagementsListCmd())
	cmd.AddCommand(engagementsShowCmd())
	cmd.AddCommand(engagementsCreateCmd())
	cmd.AddCommand(engagementsFromTemplateCmd())
	cmd.AddCommand(engagementsUpdateCmd())
	cmd.AddCommand(engagementsDeleteCmd())
	cmd.AddCommand(engagementsHistoryCmd())

	return cmd
}

// engagementStatusLabel renders the status with completion color cues.
func engagementStatusLabel(e model.Engagement) string {
	switch e.Status {
	case model.EngagementCompleted:
		return cli.SuccessStyle.Render(e.Status)
	case model.EngagementArchived:
		return cli.SubtleStyle.Render(e.Status)
	default:
		return e.Status
	}
}

func engagementsListCmd() *cobra.Command {
	var clientID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List engagements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			engagements, err := client.ListEngagements(cmd.Context(), clientID)
			if err != nil {
				return err
			}

			if len(engagements) == 0 {
				fmt.Println(cli.InfoStyle.Render("No engagements found."))
				return nil
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "ID", "Client", "Name", "Type", "Year", "Status", "Done")
			for _, e := range engagements {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%d%%\n",
					e.ID, orDash(e.ClientName), e.Name, e.EngagementType, e.Year,
					engagementStatusLabel(e), e.CompletionPercentage)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&clientID, "client", 0, "filter by client id")

	return cmd
}

func engagementsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one engagement",
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

			e, err := client.GetEngagement(cmd.Context(), id)
			if err != nil {
				return err
			}

			fee := "-"
			if e.Fee != nil {
				fee = "$" + e.Fee.StringFixed(2)
			}
			lines := []string{
				fmt.Sprintf("Client:       %s", orDash(e.ClientName)),
				fmt.Sprintf("Type:         %s", e.EngagementType),
				fmt.Sprintf("Year:         %d", e.Year),
				fmt.Sprintf("Status:       %s", engagementStatusLabel(*e)),
				fmt.Sprintf("Completion:   %d%%", e.CompletionPercentage),
				fmt.Sprintf("Fee:          %s", fee),
				fmt.Sprintf("Deadline:     %s", orDash(e.Deadline)),
				fmt.Sprintf("Lead auditor: %s", orDash(e.LeadAuditorName)),
			}
			fmt.Println(cli.RenderBox(e.Name, strings.Join(lines, "\n")))
			return nil
		},
	}
}

func engagementsCreateCmd() *cobra.Command {
	var req api.CreateEngagementRequest
	var fee string
	var lead int

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Open a new engagement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			req.Name = args[0]
			if fee != "" {
				amount, parseErr := decimal.NewFromString(fee)
				if parseErr != nil {
					return fmt.Errorf("invalid fee %q: %w", fee, parseErr)
				}
				req.Fee = &amount
			}
			if lead > 0 {
				req.LeadAuditor = &lead
			}

			created, err := client.CreateEngagement(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Opened engagement %q (id %d)", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().IntVar(&req.Client, "client", 0, "client id (required)")
	cmd.Flags().StringVar(&req.EngagementType, "type", "", "engagement type: AUDIT, TAX, ADVISORY (required)")
	cmd.Flags().IntVar(&req.Year, "year", 0, "fiscal year (required)")
	cmd.Flags().StringVar(&fee, "fee", "", "engagement fee")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Deadline, "deadline", "", "deadline (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Methodology, "methodology", "", "audit methodology")
	cmd.Flags().IntVar(&lead, "lead", 0, "lead auditor staff id")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func engagementsFromTemplateCmd() *cobra.Command {
	var req api.CreateFromTemplateRequest

	cmd := &cobra.Command{
		Use:   "from-template <name>",
		Short: "Open an engagement pre-filled with the standard program",
		Long:  `Creates the engagement and its task checklist from the standard audit program for the given type.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			req.Name = args[0]
			created, err := client.CreateEngagementFromTemplate(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Opened templated engagement %q (id %d)", created.Name, created.ID)))
			fmt.Println(cli.InfoStyle.Render(fmt.Sprintf("Run 'firmdesk tasks list --engagement %d' to see the program.", created.ID)))
			return nil
		},
	}

	cmd.Flags().IntVar(&req.Client, "client", 0, "client id (required)")
	cmd.Flags().StringVar(&req.EngagementType, "type", "", "engagement type: AUDIT, TAX, ADVISORY (required)")
	cmd.Flags().IntVar(&req.Year, "year", 0, "fiscal year (required)")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func engagementsUpdateCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields on an engagement",
		Long:  `Patch individual fields, e.g. firmdesk engagements update 7 --set status=FIELDWORK`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			fields, err := parseSetFlags(sets)
			if err != nil {
				return err
			}
			client, err := authedClient()
			if err != nil {
				return err
			}

			updated, err := client.UpdateEngagement(cmd.Context(), id, fields)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated engagement %q", updated.Name)))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field to set, key=value (repeatable)")

	return cmd
}

func engagementsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an engagement",
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
					fmt.Sprintf("Delete engagement %d and its tasks?", id))
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Println(cli.InfoStyle.Render("Aborted."))
					return nil
				}
			}

			if err := client.DeleteEngagement(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted engagement %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}

func engagementsHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show the unified change history",
		Long:  `Shows the merged feed of engagement, task, and workpaper changes, newest first.`,
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

			events, err := client.UnifiedHistory(cmd.Context(), id)
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Println(cli.InfoStyle.Render("No history recorded."))
				return nil
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "Date", "Actor", "Action", "Detail")
			for _, ev := range events {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ev.Date, orDash(ev.Actor), ev.Action, orDash(ev.Detail))
			}
			return nil
		},
	}
}
