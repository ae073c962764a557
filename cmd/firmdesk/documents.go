package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/meridianfirm/firmdesk/internal/api"
	"github.com/meridianfirm/firmdesk/internal/cli"
)

func documentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "documents",
		Aliases: []string{"docs"},
		Short:   "Manage client documents and workpapers",
	}

	cmd.AddCommand(documentsListCmd())
	cmd.AddCommand(documentsUploadCmd())
	cmd.AddCommand(documentsVerifyCmd())
	cmd.AddCommand(documentsDeleteCmd())

	return cmd
}

func documentsListCmd() *cobra.Command {
	var clientID, engagementID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			docs, err := client.ListDocuments(cmd.Context(), clientID, engagementID)
			if err != nil {
				return err
			}

			if len(docs) == 0 {
				fmt.Println(cli.InfoStyle.Render("No documents found."))
				return nil
			}

			w := newTable()
			defer w.Flush()
			printTableHeader(w, "ID", "Description", "Category", "Uploaded by", "Verified")
			for _, d := range docs {
				verified := ""
				if d.IsVerified {
					verified = cli.SuccessStyle.Render(cli.SuccessIcon)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					d.ID, d.Description, d.Category, orDash(d.UploadedByName), verified)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&clientID, "client", 0, "filter by client id")
	cmd.Flags().IntVar(&engagementID, "engagement", 0, "filter by engagement id")

	return cmd
}

func documentsUploadCmd() *cobra.Command {
	var (
		clientID     int
		engagementID int
		description  string
		category     string
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() {
				_ = file.Close()
			}()

			info, err := file.Stat()
			if err != nil {
				return fmt.Errorf("failed to stat %s: %w", args[0], err)
			}

			bar := progressbar.DefaultBytes(info.Size(), "uploading")
			reader := progressbar.NewReader(file, bar)

			req := api.UploadDocumentRequest{
				Client:      clientID,
				Description: description,
				Category:    category,
				Filename:    filepath.Base(args[0]),
				File:        &reader,
			}
			if engagementID > 0 {
				req.Engagement = &engagementID
			}

			doc, err := client.UploadDocument(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Uploaded %q (id %d)", doc.Description, doc.ID)))
			return nil
		},
	}

	cmd.Flags().IntVar(&clientID, "client", 0, "client id (required)")
	cmd.Flags().IntVar(&engagementID, "engagement", 0, "engagement id")
	cmd.Flags().StringVar(&description, "description", "", "document description (required)")
	cmd.Flags().StringVar(&category, "category", "", "category: GENERAL_LEDGER, BANK_STATEMENT, TAX_RETURN, PAYROLL, OTHER")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func documentsVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Mark a document as verified",
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
			if err := client.VerifyDocument(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Verified document %d", id)))
			return nil
		},
	}
}

func documentsDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document",
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
					fmt.Sprintf("Delete document %d and its stored file?", id))
				if confirmErr != nil {
					return confirmErr
				}
				if !ok {
					fmt.Println(cli.InfoStyle.Render("Aborted."))
					return nil
				}
			}

			if err := client.DeleteDocument(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted document %d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation")

	return cmd
}
