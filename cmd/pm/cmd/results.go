package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/api/client"
)

func resultsCmd() *cobra.Command {
	resultsRoot := &cobra.Command{
		Use:   "results",
		Short: "Query stored pricing results",
		Long: "Query and inspect the pricing results and source observations held\n" +
			"in the server's result store.",
	}

	resultsRoot.AddCommand(
		resultsListCmd(),
		resultsGetCmd(),
		resultsObservationsCmd(),
	)

	return resultsRoot
}

func resultsListCmd() *cobra.Command {
	var (
		params    apiclient.ListResultsParams
		condition []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List results with optional filters",
		Example: `  # Latest results
  pm results list

  # Priced results for new or used items, most expensive first
  pm results list --outcome priced --condition new --condition used --order-by final_price

  # Confident matches only
  pm results list --min-confidence 0.7 --limit 20`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params.Conditions = condition
			resp, err := newClient().ListResults(cmd.Context(), &params)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			if len(resp.Results) == 0 {
				fmt.Println("No results found.")
				return nil
			}

			fmt.Printf("Showing %d of %d results\n\n", len(resp.Results), resp.Total)
			return printResultsTable(os.Stdout, resp.Results)
		},
	}
	cmd.Flags().StringVar(&params.ProductKey, "product-key", "", "product key filter")
	cmd.Flags().StringVar(&params.Outcome, "outcome", "", "outcome filter (priced, no_match, no_price)")
	cmd.Flags().StringArrayVar(&condition, "condition", nil, "condition filter (repeatable)")
	cmd.Flags().Float64Var(&params.MinConfidence, "min-confidence", 0, "minimum match confidence")
	cmd.Flags().IntVar(&params.Limit, "limit", 50, "number of results")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "result offset")
	cmd.Flags().
		StringVar(&params.OrderBy, "order-by", "", "sort order (priced_at, confidence, final_price)")

	return cmd
}

func resultsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "get <product key>",
		Short:   "Show the latest result for a product",
		Example: `  pm results get ABC-789_pack_20`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newClient().GetResult(cmd.Context(), args[0])
			if apiclient.IsNotFound(err) {
				return fmt.Errorf("no result for product key %q", args[0])
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(r)
			}
			return printResultDetail(os.Stdout, r, nil)
		},
	}
}

func resultsObservationsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "observations <product key>",
		Short:   "List the source observations stored for a product",
		Example: `  pm results observations ABC-789_pack_20 --limit 10`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, err := newClient().ListObservations(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(obs)
			}

			if len(obs) == 0 {
				fmt.Println("No observations found.")
				return nil
			}
			return printObservationsTable(os.Stdout, obs)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of observations (server default 100)")

	return cmd
}
