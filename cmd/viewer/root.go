package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/p-blackswan/arkide-viewer/internal/arkide"
	"github.com/p-blackswan/arkide-viewer/internal/config"
	"github.com/p-blackswan/arkide-viewer/internal/retry"
)

var (
	cfg    *config.Config
	logger zerolog.Logger

	apiBaseURL string
)

var rootCmd = &cobra.Command{
	Use:   "viewer",
	Short: "ArkIDE project viewer backend",
	Long: `Serves page data for the ArkIDE project viewer and the community
guideline pages.

Configuration is read from the environment (ARKIDE_API_BASE_URL, HTTP_ADDR,
LOG_LEVEL, ...). Running without a subcommand starts the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if apiBaseURL != "" {
			cfg.APIBaseURL = apiBaseURL
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		logger = newLogger(cfg.IsDevelopment(), cfg.LogLevel)
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "override ARKIDE_API_BASE_URL")
	rootCmd.AddCommand(serveCmd, loadCmd, guidelinesCmd)
}

// newAPIClient builds the ArkIDE client from the loaded config.
func newAPIClient() *arkide.Client {
	client := arkide.NewClient(cfg.APIBaseURL, cfg.FetchTimeout, logger)
	client.SetRetry(retry.DefaultConfig().WithAttempts(cfg.FetchAttempts))
	return client
}
