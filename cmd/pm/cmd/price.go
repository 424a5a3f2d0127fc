package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	apiclient "github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/api/client"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/engine"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/extract"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

type itemFlags struct {
	manufacturer string
	barcode      string
	condition    string
	reagent      bool
}

func (f *itemFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.manufacturer, "manufacturer", "", "manufacturer column value")
	cmd.Flags().StringVar(&f.barcode, "barcode", "", "UPC/EAN barcode")
	cmd.Flags().StringVar(&f.condition, "condition", "", "explicit condition column value")
	cmd.Flags().BoolVar(&f.reagent, "reagent", false, "price the item as a consumable reagent")
}

func (f *itemFlags) item(rawName string) domain.ItemDescriptor {
	return domain.ItemDescriptor{
		RawName:          rawName,
		ManufacturerHint: f.manufacturer,
		Barcode:          f.barcode,
		Condition:        f.condition,
		IsReagent:        f.reagent,
	}
}

func priceCmd() *cobra.Command {
	var (
		item         itemFlags
		mode         string
		observations []string
	)

	cmd := &cobra.Command{
		Use:   "price <item name>",
		Short: "Price an inventory item",
		Long: "Runs the pricing pipeline for one item. By default the server queries\n" +
			"its configured sources; --observation supplies offers directly as\n" +
			"source:price:title. --local requires at least one observation.",
		Example: `  # Price against the server's sources
  pm price "VWR Catalog # ABC-789 Reagent Bottles Case of 20" --manufacturer VWR

  # Price offline against given offers
  pm price --local "Corning 175 cm² Flask Angled Neck" --manufacturer Corning \
    --observation "corning.com:45.00:Corning 175cm Flask Angled Neck" \
    --observation "marketplace:200:Corning 175cm Flask Angled Neck"

  # Use the single best match instead of aggregating
  pm price "Eppendorf EP-T10 Tips 500 each used" --mode best_match`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, err := parseObservations(observations)
			if err != nil {
				return err
			}

			req := &apiclient.PriceRequest{
				ItemDescriptor: item.item(args[0]),
				Mode:           domain.Mode(mode),
				Observations:   obs,
			}

			var resp *apiclient.PriceResponse
			if localMode() {
				resp, err = priceLocal(cmd, req)
			} else {
				resp, err = newClient().Price(cmd.Context(), req)
			}
			if err != nil {
				return err
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			return printResultDetail(os.Stdout, &resp.PricingResult, resp.Warnings)
		},
	}
	item.register(cmd)
	cmd.Flags().StringVar(&mode, "mode", "", "pricing mode (best_match, aggregate)")
	cmd.Flags().StringArrayVar(&observations, "observation", nil, "offer as source:price:title (repeatable)")

	return cmd
}

func priceLocal(cmd *cobra.Command, req *apiclient.PriceRequest) (*apiclient.PriceResponse, error) {
	if len(req.Observations) == 0 {
		return nil, errors.New("--local pricing needs at least one --observation")
	}

	obs := make([]domain.SourceObservation, 0, len(req.Observations))
	for _, o := range req.Observations {
		p, err := extract.ParseAmount(o.Price)
		if err != nil {
			return nil, err
		}
		id := o.SourceID
		if id == "" {
			id = "inline"
		}
		obs = append(obs, domain.SourceObservation{SourceID: id, Title: o.Title, Price: &p})
	}

	eng, err := localEngine()
	if err != nil {
		return nil, err
	}

	result, _, err := eng.PriceObservations(cmd.Context(), req.ItemDescriptor, obs, engine.ForMode(req.Mode))
	if err != nil {
		return nil, err
	}
	return &apiclient.PriceResponse{PricingResult: *result}, nil
}

// parseObservations parses source:price:title flags. The title may itself
// contain colons.
func parseObservations(raw []string) ([]apiclient.Observation, error) {
	out := make([]apiclient.Observation, 0, len(raw))
	for _, r := range raw {
		parts := strings.SplitN(r, ":", 3)
		if len(parts) != 3 || strings.TrimSpace(parts[2]) == "" {
			return nil, fmt.Errorf("invalid observation %q: want source:price:title", r)
		}
		price := strings.TrimSpace(parts[1])
		if _, err := extract.ParseAmount(price); err != nil {
			return nil, fmt.Errorf("invalid observation %q: unparseable price %q", r, price)
		}
		out = append(out, apiclient.Observation{
			SourceID: strings.TrimSpace(parts[0]),
			Price:    price,
			Title:    strings.TrimSpace(parts[2]),
		})
	}
	return out, nil
}
