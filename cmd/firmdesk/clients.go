package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meridianfirm/firmdesk/internal/api"
	"github.com/meridianfirm/firmdesk/internal/cli"
)

func clientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage firm clients",
		Long:  `List, inspect, create, update, and delete client records, plus their contacts and note threads.`,
	}

	cmd.AddCommand(clientsListCmd())
	cmd.AddCommand(clientsShowCmd())
	cmd.AddCommand(clientsAddCmd())
	cmd.AddCommand(clientsUpdateCmd())
	cmd.AddCommand(clientsDeleteCmd())
	cmd.AddCommand(clientsPartnersCmd())
	cmd.AddCommand(contactsCmd())
	cmd.AddCommand(notesCmd())

	return cmd
}

func clientsListCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			clients, err := client.ListClients(cmd.Context(), search)
			if err != nil {
				return err
			}

			if len(clients) == 0 {
				fmt.Println(cli.InfoStyle.Render("No clients found."))
				return nil
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "ID", "Name", "Entity", "Risk", "Partner")
			for _, c := range clients {
				partner := "-"
				if c.Partner != nil {
					partner = c.Partner.Username
				}
				risk := c.RiskRating
				if risk == "HIGH" {
					risk = cli.ErrorStyle.Render(risk)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.EntityType, risk, partner)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "server-side search term")

	return cmd
}

func clientsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one client in detail",
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

			c, err := client.GetClient(cmd.Context(), id)
			if err != nil {
				return err
			}

			lines := []string{
				fmt.Sprintf("Tax ID:       %s", orDash(c.TaxIDNumber)),
				fmt.Sprintf("Entity type:  %s", c.EntityType),
				fmt.Sprintf("Industry:     %s", orDash(c.Industry)),
				fmt.Sprintf("Risk rating:  %s", c.RiskRating),
				fmt.Sprintf("Fiscal YE:    %s", orDash(c.FiscalYearEnd)),
				fmt.Sprintf("Currency:     %s", orDash(c.PrimaryCurrency)),
				fmt.Sprintf("Last audit:   %s", orDash(c.LastAuditDate)),
			}
			if c.Partner != nil {
				lines = append(lines, fmt.Sprintf("Partner:      %s", c.Partner.Username))
			}
			if len(c.Contacts) > 0 {
				lines = append(lines, "", cli.BoldStyle.Render("Contacts:"))
				for _, contact := range c.Contacts {
					marker := " "
					if contact.IsPrimary {
						marker = "*"
					}
					lines = append(lines, fmt.Sprintf("  %s %s <%s>", marker, contact.Name, contact.Email))
				}
			}

			fmt.Println(cli.RenderBox(c.Name, strings.Join(lines, "\n")))
			return nil
		},
	}
}

func clientsAddCmd() *cobra.Command {
	var req api.CreateClientRequest
	var partner int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a client record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			req.Name = args[0]
			if partner > 0 {
				req.AssignedPartner = &partner
			}

			created, err := client.CreateClient(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created client %q (id %d)", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.TaxIDNumber, "tax-id", "", "tax identification number (required)")
	cmd.Flags().StringVar(&req.EntityType, "entity", "", "entity type: INDIVIDUAL, LLC, CORP, PARTNERSHIP, NGO (required)")
	cmd.Flags().StringVar(&req.Industry, "industry", "", "industry")
	cmd.Flags().StringVar(&req.RiskRating, "risk", "", "risk rating: LOW, MED, HIGH")
	cmd.Flags().StringVar(&req.FiscalYearEnd, "fiscal-year-end", "", "fiscal year end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.BillingAddress, "billing-address", "", "billing address")
	cmd.Flags().StringVar(&req.PrimaryCurrency, "currency", "", "primary currency (ISO 4217)")
	cmd.Flags().StringVar(&req.Website, "website", "", "website URL")
	cmd.Flags().IntVar(&partner, "partner", 0, "assigned partner staff id")
	_ = cmd.MarkFlagRequired("tax-id")
	_ = cmd.MarkFlagRequired("entity")

	return cmd
}

func clientsUpdateCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields on a client",
		Long:  `Patch individual fields, e.g. firmdesk clients update 4 --set risk_rating=HIGH --set industry=Energy`,
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

			updated, err := client.UpdateClient(cmd.Context(), id, fields)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated client %q", updated.Name)))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field to set, key=value (repeatable)")

	return cmd
}

func clientsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a client record",
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
					fmt.Sprintf("Delete client %d and all of its engagements?", id))
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Println(cli.InfoStyle.Render("Aborted."))
					return nil
				}
			}

			if err := client.DeleteClient(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted client %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}

func clientsPartnersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "partners",
		Short: "List staff eligible for client assignment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			partners, err := client.ListPartners(cmd.Context())
			if err != nil {
				return err
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "ID", "Name", "Email")
			for _, p := range partners {
				fmt.Fprintf(w, "%d\t%s\t%s\n", p.ID, p.DisplayName(), p.Email)
			}
			return nil
		},
	}
}

func contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage client contacts",
	}

	listCmd := &cobra.Command{
		Use:   "list <client-id>",
		Short: "List contacts for a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := authedClient()
			if err != nil {
				return err
			}

			contacts, err := client.ListContacts(cmd.Context(), clientID)
			if err != nil {
				return err
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "ID", "Name", "Email", "Phone", "Primary")
			for _, c := range contacts {
				primary := ""
				if c.IsPrimary {
					primary = cli.SuccessIcon
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, orDash(c.Phone), primary)
			}
			return nil
		},
	}

	var addReq api.CreateContactRequest
	addCmd := &cobra.Command{
		Use:   "add <client-id> <name>",
		Short: "Add a contact to a client",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := authedClient()
			if err != nil {
				return err
			}

			addReq.Client = clientID
			addReq.Name = args[1]
			contact, err := client.CreateContact(cmd.Context(), addReq)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added contact %q (id %d)", contact.Name, contact.ID)))
			return nil
		},
	}
	addCmd.Flags().StringVar(&addReq.Email, "email", "", "contact email (required)")
	addCmd.Flags().StringVar(&addReq.Phone, "phone", "", "phone number")
	addCmd.Flags().BoolVar(&addReq.IsPrimary, "primary", false, "mark as the primary contact")
	_ = addCmd.MarkFlagRequired("email")

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact",
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
			if err := client.DeleteContact(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted contact %d", id)))
			return nil
		},
	}

	cmd.AddCommand(listCmd, addCmd, deleteCmd)
	return cmd
}

func notesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage client note threads",
	}

	listCmd := &cobra.Command{
		Use:   "list <client-id>",
		Short: "Show the note thread for a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := authedClient()
			if err != nil {
				return err
			}

			notes, err := client.ListNotes(cmd.Context(), clientID)
			if err != nil {
				return err
			}

			if len(notes) == 0 {
				fmt.Println(cli.InfoStyle.Render("No notes on this client."))
				return nil
			}

			for _, n := range notes {
				indent := ""
				if n.Parent != nil {
					indent = "    ↳ "
				}
				status := ""
				if n.IsResolved {
					status = " " + cli.SuccessStyle.Render("[resolved]")
				}
				author := orDash(n.AuthorName)
				fmt.Printf("%s%s %s%s\n", indent, cli.BoldStyle.Render(fmt.Sprintf("#%d %s:", n.ID, author)), n.Content, status)
			}
			return nil
		},
	}

	var parent int
	addCmd := &cobra.Command{
		Use:   "add <client-id> <content>",
		Short: "Add a note or reply",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientID, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := authedClient()
			if err != nil {
				return err
			}

			req := api.CreateNoteRequest{Client: clientID, Content: args[1]}
			if parent > 0 {
				req.Parent = &parent
			}

			note, err := client.CreateNote(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added note #%d", note.ID)))
			return nil
		},
	}
	addCmd.Flags().IntVar(&parent, "reply-to", 0, "parent note id to reply to")

	resolveCmd := &cobra.Command{
		Use:   "resolve <id>",
		Short: "Mark a note thread resolved",
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
			if err := client.ResolveNote(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Resolved note #%d", id)))
			return nil
		},
	}

	cmd.AddCommand(listCmd, addCmd, resolveCmd)
	return cmd
}
