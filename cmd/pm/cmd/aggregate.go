package cmd

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	apiclient "github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/api/client"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/extract"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/pricing"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

func aggregateCmd() *cobra.Command {
	var profile string

	cmd := &cobra.Command{
		Use:   "aggregate <price>...",
		Short: "Reconcile several observed prices into one",
		Long: "Drops prices outside the profile range, rejects values far from the\n" +
			"median and averages the rest.",
		Example: `  pm aggregate 45.00 48.50 200
  pm aggregate --local --profile lab_equipment '$1,299.00' 1250 1310`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				resp *apiclient.AggregateResponse
				err  error
			)
			if localMode() {
				resp, err = aggregateLocal(args, domain.PriceProfile(profile))
			} else {
				resp, err = newClient().Aggregate(cmd.Context(), args, domain.PriceProfile(profile))
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			return printAggregate(os.Stdout, resp)
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "price range profile (consumer, lab_equipment)")

	return cmd
}

func aggregateLocal(args []string, profile domain.PriceProfile) (*apiclient.AggregateResponse, error) {
	if profile == "" {
		profile = domain.ProfileConsumer
	}
	agg, err := pricing.NewAggregator(profile)
	if err != nil {
		return nil, err
	}

	prices := make([]decimal.Decimal, 0, len(args))
	for _, a := range args {
		p, err := extract.ParseAmount(a)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q", a)
		}
		prices = append(prices, p)
	}

	resp := &apiclient.AggregateResponse{}
	if price, ok := agg.Aggregate(prices); ok {
		resp.Found = true
		resp.Value = price.Value.StringFixed(2)
		resp.ContributingSources = price.ContributingSources
		resp.RejectedOutliers = price.RejectedOutliers
	}
	return resp, nil
}
