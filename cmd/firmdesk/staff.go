package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridianfirm/firmdesk/internal/api"
	"github.com/meridianfirm/firmdesk/internal/cli"
)

func staffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Manage firm staff",
	}

	cmd.AddCommand(staffListCmd())
	cmd.AddCommand(staffShowCmd())
	cmd.AddCommand(staffAddCmd())
	cmd.AddCommand(staffUpdateCmd())
	cmd.AddCommand(staffDeactivateCmd())

	return cmd
}

func staffListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List firm staff",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			staff, err := client.ListStaff(cmd.Context())
			if err != nil {
				return err
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "ID", "Name", "Email", "Role", "Active")
			for _, s := range staff {
				active := cli.SuccessStyle.Render(cli.SuccessIcon)
				if !s.IsActive {
					active = cli.SubtleStyle.Render("inactive")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.DisplayName(), s.Email, orDash(s.Role), active)
			}
			return nil
		},
	}
}

func staffShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one staff member",
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

			s, err := client.GetStaff(cmd.Context(), id)
			if err != nil {
				return err
			}

			fmt.Printf("%s <%s>\n", cli.BoldStyle.Render(s.DisplayName()), s.Email)
			fmt.Printf("Username: %s\n", s.Username)
			fmt.Printf("Role:     %s\n", orDash(s.Role))
			if !s.IsActive {
				fmt.Println(cli.SubtleStyle.Render("Deactivated"))
			}
			return nil
		},
	}
}

func staffAddCmd() *cobra.Command {
	var req api.CreateStaffRequest

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Add a staff member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			req.Username = args[0]
			member, err := client.CreateStaff(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s (%s)", member.DisplayName(), member.Role)))
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "email (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password, min 8 chars (required)")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&req.Role, "role", "", "role: PARTNER, MANAGER, ASSOCIATE (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func staffUpdateCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields on a staff member",
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

			member, err := client.UpdateStaff(cmd.Context(), id, fields)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated %s", member.DisplayName())))
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "field to set, key=value (repeatable)")

	return cmd
}

func staffDeactivateCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate a staff member",
		Long:  `Deactivation is a soft delete: the record stays listed as inactive and can be reactivated server-side.`,
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
					fmt.Sprintf("Deactivate staff member %d?", id))
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Println(cli.InfoStyle.Render("Aborted."))
					return nil
				}
			}

			if err := client.DeactivateStaff(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deactivated staff member %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}
