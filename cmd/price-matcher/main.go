// Package main is the entry point for the price-matcher server.
package main

import (
	"os"

	"github.com/global-mysterysnailrevolution/zoho-price-matcher/cmd/price-matcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
