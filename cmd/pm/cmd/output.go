package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	apiclient "github.com/global-mysterysnailrevolution/zoho-price-matcher/internal/api/client"
	domain "github.com/global-mysterysnailrevolution/zoho-price-matcher/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

// displayManufacturer title-cases names no alias matched so that ad-hoc
// spellings print consistently; canonical names are printed as-is.
func displayManufacturer(name string, matched bool) string {
	if matched {
		return name
	}
	return cases.Title(language.English).String(name)
}

func printResultDetail(w io.Writer, r *domain.PricingResult, warnings []string) error {
	tw := newTabWriter(w)
	tw.writef("Product Key:\t%s\n", r.ProductKey)
	tw.writef("Item:\t%s\n", r.RawName)
	if r.Manufacturer != "" {
		tw.writef("Manufacturer:\t%s\n", r.Manufacturer)
	}
	if r.PartNumber != "" {
		tw.writef("Part Number:\t%s\n", r.PartNumber)
	}
	tw.writef("Outcome:\t%s\n", r.Outcome)
	tw.writef("Mode:\t%s\n", r.Mode)
	tw.writef("Confidence:\t%.2f\n", r.Confidence)
	if r.MatchedTitle != "" {
		tw.writef("Best Match:\t%s (%s)\n", r.MatchedTitle, r.MatchedSource)
	}
	if r.Outcome == domain.OutcomePriced {
		tw.writef("Base Price:\t$%s\n", r.BasePrice.StringFixed(2))
		tw.writef("Condition:\t%s (x%.2f)\n", r.Condition, r.Multiplier)
		tw.writef("Final Price:\t$%s\n", r.FinalPrice.StringFixed(2))
		tw.writef("Sources:\t%d (%d outliers rejected)\n", r.Sources, r.Rejected)
	}
	if !r.PricedAt.IsZero() {
		tw.writef("Priced At:\t%s\n", r.PricedAt.Format("2006-01-02 15:04:05"))
	}
	for _, warn := range warnings {
		tw.writef("Warning:\t%s\n", warn)
	}
	return tw.finish()
}

func printResultsTable(w io.Writer, results []domain.PricingResult) error {
	tw := newTabWriter(w)
	tw.writef("PRODUCT KEY\tOUTCOME\tCONDITION\tBASE\tFINAL\tCONFIDENCE\tPRICED AT\n")
	for i := range results {
		r := &results[i]
		base, final := "-", "-"
		if r.Outcome == domain.OutcomePriced {
			base = "$" + r.BasePrice.StringFixed(2)
			final = "$" + r.FinalPrice.StringFixed(2)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\t%.2f\t%s\n",
			truncate(r.ProductKey, 40),
			r.Outcome,
			r.Condition,
			base,
			final,
			r.Confidence,
			r.PricedAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.finish()
}

func printObservationsTable(w io.Writer, obs []domain.SourceObservation) error {
	tw := newTabWriter(w)
	tw.writef("SOURCE\tTITLE\tPRICE\tPART NUMBER\tPACK\n")
	for i := range obs {
		o := &obs[i]
		price := "-"
		if o.HasPrice() {
			price = "$" + o.Price.StringFixed(2)
		}
		pack := "-"
		if o.PackQuantity > 0 {
			pack = fmt.Sprintf("%d", o.PackQuantity)
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			o.SourceID,
			truncate(o.Title, 40),
			price,
			o.PartNumber,
			pack,
		)
	}
	return tw.finish()
}

func printAttributes(w io.Writer, a *domain.ExtractedAttributes, isReagent bool) error {
	tw := newTabWriter(w)
	tw.writef("Product Key:\t%s\n", a.ProductKey)
	tw.writef("Manufacturer:\t%s\n", dash(a.Manufacturer))
	tw.writef("Part Number:\t%s\n", dash(a.PartNumber))
	if a.PackQuantity > 0 {
		tw.writef("Pack Quantity:\t%d\n", a.PackQuantity)
	} else {
		tw.writef("Pack Quantity:\t-\n")
	}
	tw.writef("Unit:\t%s\n", dash(string(a.UnitType)))
	tw.writef("Condition:\t%s\n", a.Condition)
	tw.writef("Barcode:\t%s\n", dash(a.Barcode))
	tw.writef("Reagent:\t%v\n", isReagent)
	return tw.finish()
}

func printAggregate(w io.Writer, a *apiclient.AggregateResponse) error {
	tw := newTabWriter(w)
	if !a.Found {
		tw.writef("Price:\tnone in range\n")
		return tw.finish()
	}
	tw.writef("Price:\t$%s\n", a.Value)
	tw.writef("Contributing:\t%d\n", a.ContributingSources)
	tw.writef("Rejected:\t%d\n", a.RejectedOutliers)
	return tw.finish()
}

func printSourcesTable(w io.Writer, srcs []apiclient.SourceStatus) error {
	tw := newTabWriter(w)
	tw.writef("SOURCE\tDAILY LIMIT\tUSED\tREMAINING\tRESETS\n")
	for i := range srcs {
		s := &srcs[i]
		limit, used, remaining, resets := "-", "-", "-", "-"
		if s.RateLimited {
			used = fmt.Sprintf("%d", s.DailyUsed)
			if s.DailyLimit > 0 {
				limit = fmt.Sprintf("%d", s.DailyLimit)
				remaining = fmt.Sprintf("%d", s.Remaining)
			}
			if s.ResetAt != nil {
				resets = s.ResetAt.Format("2006-01-02 15:04:05")
			}
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\n", s.ID, limit, used, remaining, resets)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
