package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/app"
)

var repriceCmd = &cobra.Command{
	Use:   "reprice",
	Short: "Re-price every stored inventory item once and exit",
	Long: "Runs the pricing pipeline for every item in the result store, one at a\n" +
		"time with the configured stagger, and prints a batch summary.",
	RunE: runReprice,
}

func runReprice(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	summary, err := a.Engine.RepriceAll(ctx)
	if err != nil {
		return fmt.Errorf("repricing: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
