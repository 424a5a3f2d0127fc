package cmd

import (
	"os"

	"github.com/spf13/cobra"

	apiclient "github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/api/client"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/extract"
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/normalize"
)

func extractCmd() *cobra.Command {
	var item itemFlags

	cmd := &cobra.Command{
		Use:   "extract <item name>",
		Short: "Extract structured attributes from an item name",
		Long: "Derives manufacturer, part number, pack quantity, unit, condition and\n" +
			"product key from a free-text inventory item name.",
		Example: `  pm extract "VWR Catalog # ABC-789 Reagent Bottles Case of 20"
  pm extract --local "TF-200 Pipette Tips 200uL pack of 96" --manufacturer fisher`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it := item.item(args[0])

			var resp *apiclient.ExtractResponse
			if localMode() {
				ex := extract.New(normalize.New(nil))
				resp = &apiclient.ExtractResponse{
					ExtractedAttributes: ex.ExtractItem(it),
					IsReagent:           it.IsReagent || extract.IsReagent(it.RawName),
				}
			} else {
				var err error
				resp, err = newClient().Extract(cmd.Context(), it)
				if err != nil {
					return err
				}
			}

			if jsonOutput() {
				return outputJSON(resp)
			}
			return printAttributes(os.Stdout, &resp.ExtractedAttributes, resp.IsReagent)
		},
	}
	item.register(cmd)

	return cmd
}

func normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <manufacturer>",
		Short: "Resolve a manufacturer spelling to its canonical name",
		Example: `  pm normalize "thermo fisher sci"
  pm normalize --local "VWR International"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp *apiclient.NormalizeResponse
			if localMode() {
				canonical, matched := normalize.New(nil).Resolve(args[0])
				resp = &apiclient.NormalizeResponse{Input: args[0], Canonical: canonical, Matched: matched}
			} else {
				var err error
				resp, err = newClient().Normalize(cmd.Context(), args[0])
				if err != nil {
					return err
				}
			}

			if jsonOutput() {
				return outputJSON(resp)
			}

			tw := newTabWriter(os.Stdout)
			tw.writef("Input:\t%s\n", resp.Input)
			tw.writef("Canonical:\t%s\n", displayManufacturer(resp.Canonical, resp.Matched))
			tw.writef("Matched:\t%v\n", resp.Matched)
			return tw.finish()
		},
	}
}
