package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meridianfirm/firmdesk/internal/cli"
	"github.com/meridianfirm/firmdesk/internal/common"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "firmdesk",
		Short: "📒 Practice management for accounting firms",
		Long: `firmdesk: the terminal front-end for your firm's practice-management
backend. Manage clients, engagements, audit procedures, billing, and the
general ledger without leaving your shell.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/firmdesk/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("server", "", "backend base URL (overrides api.base_url)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("server"))

	// Add commands
	rootCmd.AddCommand(authCmd())
	rootCmd.AddCommand(clientsCmd())
	rootCmd.AddCommand(engagementsCmd())
	rootCmd.AddCommand(tasksCmd())
	rootCmd.AddCommand(documentsCmd())
	rootCmd.AddCommand(invoicesCmd())
	rootCmd.AddCommand(billsCmd())
	rootCmd.AddCommand(vendorsCmd())
	rootCmd.AddCommand(accountsCmd())
	rootCmd.AddCommand(staffCmd())
	rootCmd.AddCommand(portalCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError renders errors for humans: user-facing messages and session
// expiry get friendly output, everything else prints as-is.
func reportError(err error) {
	var userErr *common.UserError
	switch {
	case errors.As(err, &userErr):
		fmt.Fprintln(os.Stderr, cli.FormatError(userErr.UserMessage))
	case errors.Is(err, common.ErrSessionExpired):
		fmt.Fprintln(os.Stderr, cli.FormatError("your session has expired"))
		fmt.Fprintln(os.Stderr, cli.InfoStyle.Render("Run 'firmdesk auth login' to sign in again."))
	case errors.Is(err, common.ErrNotLoggedIn):
		fmt.Fprintln(os.Stderr, cli.FormatError("not logged in"))
		fmt.Fprintln(os.Stderr, cli.InfoStyle.Render("Run 'firmdesk auth login' to sign in."))
	default:
		fmt.Fprintln(os.Stderr, cli.FormatError(err.Error()))
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/firmdesk", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("FIRMDESK")
	viper.AutomaticEnv()

	viper.SetDefault("api.base_url", "http://localhost:8000")

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	if err := common.SetupLogger(viper.GetString("logging.level"), viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("firmdesk %s\n", version)
		},
	}
}
