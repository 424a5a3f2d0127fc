package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	log.Info("running migrations", "driver", cfg.Database.Driver, "host", cfg.Database.Host)

	st, err := app.OpenStore(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("migrating: %w", err)
	}
	defer st.Close()

	log.Info("migrations complete")
	return nil
}
