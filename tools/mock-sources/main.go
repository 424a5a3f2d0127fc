// Package main implements mock price sources for local development. It
// serves an offers API for the HTTP source, the eBay OAuth token and Browse
// search endpoints, and a webhook sink that logs published results.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// product is one catalog entry served by every mock source.
type product struct {
	Title        string  `json:"title"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	PartNumber   string  `json:"part_number,omitempty"`
	PackQuantity int     `json:"pack_quantity,omitempty"`
	Price        float64 `json:"price"`
	URL          string  `json:"url"`
}

var catalog = []product{
	{
		Title: "Corning 431080 T-75 Flask Angled Neck, Case of 100", Manufacturer: "Corning",
		PartNumber: "431080", PackQuantity: 100, Price: 312.40,
		URL: "https://www.fishersci.com/shop/products/corning-431080",
	},
	{
		Title: "Corning 175cm Flask Angled Neck Nonpyrogenic", Manufacturer: "Corning",
		Price: 45.00, URL: "https://ecatalog.corning.com/flask-175",
	},
	{
		Title: "VWR ABC-789 Reagent Bottles Case of 20", Manufacturer: "VWR",
		PartNumber: "ABC-789", PackQuantity: 20, Price: 57.00,
		URL: "https://us.vwr.com/store/product/ABC-789",
	},
	{
		Title: "Eppendorf EP-T10 epT.I.P.S. Tips, 500 each", Manufacturer: "Eppendorf",
		PartNumber: "EP-T10", PackQuantity: 500, Price: 89.95,
		URL: "https://www.eppendorf.com/product/EP-T10",
	},
	{
		Title: "Thermo Scientific TF-200 Pipette Tips 200uL pack of 96", Manufacturer: "Thermo Fisher",
		PartNumber: "TF-200", PackQuantity: 96, Price: 24.10,
		URL: "https://www.thermofisher.com/order/catalog/product/TF-200",
	},
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock sources", "addr", addr, "products", len(catalog))

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, newMux(logger, catalog)),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, products []product) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /offers", offersHandler(logger, products))
	mux.HandleFunc("POST /identity/v1/oauth2/token", tokenHandler(logger))
	mux.HandleFunc("GET /buy/browse/v1/item_summary/search", searchHandler(logger, products))
	mux.HandleFunc("POST /webhook", webhookHandler(logger))
	return mux
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

// match returns the products whose part number equals id, or whose title
// contains a query word of three or more letters.
func match(products []product, query, id string) []product {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) >= 3 {
			words = append(words, w)
		}
	}

	out := []product{}
	for _, p := range products {
		if id != "" && strings.EqualFold(p.PartNumber, id) {
			out = append(out, p)
			continue
		}
		title := strings.ToLower(p.Title)
		for _, w := range words {
			if strings.Contains(title, w) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func offersHandler(logger *slog.Logger, products []product) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matched := match(products, r.URL.Query().Get("q"), r.URL.Query().Get("id"))

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{"offers": matched})
		logger.Info("offers", "query", r.URL.Query().Get("q"), "matched", len(matched))
	}
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Validate Basic Auth header is present (don't verify creds).
		if _, _, ok := r.BasicAuth(); !ok {
			logger.Warn("token request missing Basic Auth header")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{
				"error":             "invalid_client",
				"error_description": "client authentication failed",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "mock-token-v1-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"expires_in":   7200,
			"token_type":   "Application Access Token",
		})
		logger.Info("issued mock token")
	}
}

type itemSummary struct {
	ItemID        string            `json:"itemId"`
	Title         string            `json:"title"`
	Price         map[string]string `json:"price"`
	ItemWebURL    string            `json:"itemWebUrl"`
	Condition     string            `json:"condition"`
	BuyingOptions []string          `json:"buyingOptions"`
}

func searchHandler(logger *slog.Logger, products []product) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		limit := 50
		if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
			limit = v
		}

		matched := match(products, r.URL.Query().Get("q"), r.URL.Query().Get("gtin"))
		items := make([]itemSummary, 0, min(len(matched), limit))
		for i, p := range matched {
			if i >= limit {
				break
			}
			items = append(items, itemSummary{
				ItemID:        fmt.Sprintf("v1|%d|0", 100000+i),
				Title:         p.Title,
				Price:         map[string]string{"value": strconv.FormatFloat(p.Price*1.1, 'f', 2, 64), "currency": "USD"},
				ItemWebURL:    fmt.Sprintf("https://www.ebay.com/itm/%d", 100000+i),
				Condition:     "New",
				BuyingOptions: []string{"FIXED_PRICE"},
			})
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{"itemSummaries": items, "total": len(matched)})
		logger.Info("search", "query", r.URL.Query().Get("q"), "matched", len(matched), "returned", len(items))
	}
}

func webhookHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
		if err != nil || !json.Valid(body) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		logger.Info("webhook received", "body", string(body))
		w.WriteHeader(http.StatusNoContent)
	}
}
