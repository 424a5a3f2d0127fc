// Package cmd implements the pm CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/api/client"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/config"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/engine"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/logger"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "pm",
		Short: "CLI client for the Price Matcher",
		Long: "pm is a command-line client for the Price Matcher API.\n" +
			"It prices inventory items, inspects extraction and manufacturer\n" +
			"normalization, and queries stored results from the terminal.\n" +
			"Pass --local to run extraction and pricing in-process instead.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.pm.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		Bool("local", false, "run in-process with default engine settings instead of calling the server")
	rootCmd.PersistentFlags().
		String("log-level", "warn", "log level for --local runs")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("local", rootCmd.PersistentFlags().Lookup("local")))
	cobra.CheckErr(viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")))

	rootCmd.AddCommand(priceCmd())
	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(normalizeCmd())
	rootCmd.AddCommand(aggregateCmd())
	rootCmd.AddCommand(resultsCmd())
	rootCmd.AddCommand(sourcesCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pm")
	}

	viper.SetEnvPrefix("PM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("server"))
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}

func localMode() bool {
	return viper.GetBool("local")
}

// localEngine builds an in-process engine with default settings, no store
// and no price sources.
func localEngine() (*engine.Engine, error) {
	cfg := config.Default()
	return engine.FromConfig(&cfg.Engine, logger.New(viper.GetString("log_level"), "text"))
}
