package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "Show configured price sources and their quota usage",
		Example: `  pm sources
  pm sources --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srcs, err := newClient().ListSources(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(srcs)
			}

			if len(srcs) == 0 {
				fmt.Println("No sources configured.")
				return nil
			}
			return printSourcesTable(os.Stdout, srcs)
		},
	}
}
