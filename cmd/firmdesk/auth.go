package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meridianfirm/firmdesk/internal/api"
	"github.com/meridianfirm/firmdesk/internal/cli"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in and out of the backend",
	}

	cmd.AddCommand(authLoginCmd())
	cmd.AddCommand(authLogoutCmd())
	cmd.AddCommand(authWhoamiCmd())

	return cmd
}

func authLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Long: `Exchange your email and password for an API session.

The session is stored locally and reused by every other command until it
expires or you log out. Credentials themselves are never stored.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := newAPIClient()
			if err != nil {
				return err
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			if email == "" {
				fmt.Print("Email: ")
				line, readErr := reader.ReadString('\n')
				if readErr != nil {
					return fmt.Errorf("failed to read email: %w", readErr)
				}
				email = strings.TrimSpace(line)
			}
			if password == "" {
				password = os.Getenv("FIRMDESK_PASSWORD")
			}
			if password == "" {
				fmt.Print("Password: ")
				line, readErr := reader.ReadString('\n')
				if readErr != nil {
					return fmt.Errorf("failed to read password: %w", readErr)
				}
				password = strings.TrimSpace(line)
			}

			creds := api.Credentials{Email: email, Password: password}
			if err := client.Login(cmd.Context(), creds); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Logged in as " + email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "password (prefer FIRMDESK_PASSWORD or the prompt)")

	return cmd
}

func authLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(_ *cobra.Command, _ []string) error {
			client, _, err := newAPIClient()
			if err != nil {
				return err
			}
			if err := client.Logout(); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func authWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			me, err := client.Me(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("%s <%s>\n", cli.BoldStyle.Render(me.DisplayName()), me.Email)
			if me.Role != "" {
				fmt.Println(cli.SubtleStyle.Render("Role: " + me.Role))
			}
			return nil
		},
	}
}
