// Package cmd implements the CLI commands for price-matcher.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/config"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "price-matcher",
	Short: "Resolve lab inventory items to market prices",
	Long: "An API-first service that resolves free-text lab inventory items to a\n" +
		"canonical product identity, matches them against offers from several\n" +
		"price sources, reconciles the prices and stores condition-adjusted results.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(repriceCmd)
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, logger.New(cfg.Logging.Level, cfg.Logging.Format), nil
}
