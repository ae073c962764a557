package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meridianfirm/firmdesk/internal/cli"
	"github.com/meridianfirm/firmdesk/internal/model"
)

func portalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portal",
		Short: "Client portal: document requests",
		Long:  `Commands for client-portal users to view and fulfill the audit team's document requests.`,
	}

	cmd.AddCommand(portalRequestsCmd())
	cmd.AddCommand(portalUploadCmd())

	return cmd
}

func pbcStatusLabel(status string) string {
	switch status {
	case model.PBCAccepted:
		return cli.SuccessStyle.Render(status)
	case model.PBCRejected:
		return cli.ErrorStyle.Render(status)
	case model.PBCSubmitted:
		return cli.InfoStyle.Render(status)
	default:
		return status
	}
}

func portalRequestsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "requests",
		Short: "List your open document requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			requests, err := client.ListPBCRequests(cmd.Context())
			if err != nil {
				return err
			}

			if len(requests) == 0 {
				fmt.Println(cli.InfoStyle.Render("Nothing requested of you right now."))
				return nil
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "ID", "Title", "Status", "Requested")
			for _, r := range requests {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Title, pbcStatusLabel(r.Status), orDash(r.RequestedAt))
			}
			return nil
		},
	}
}

func portalUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <request-id> <file>",
		Short: "Fulfill a document request",
		Long:  `Uploads the file against the request; the backend marks the request SUBMITTED.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			client, err := authedClient()
			if err != nil {
				return err
			}

			file, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[1], err)
			}
			defer func() {
				_ = file.Close()
			}()

			result, err := client.FulfillPBCRequest(cmd.Context(), id, filepath.Base(args[1]), file)
			if err != nil {
				return err
			}

			msg := result.Status
			if result.Message != "" {
				msg = result.Message
			}
			fmt.Println(cli.FormatSuccess("Uploaded: " + msg))
			return nil
		},
	}
}
