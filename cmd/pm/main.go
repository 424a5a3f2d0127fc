// Package main is the entry point for the pm CLI client.
package main

import (
	"github.com/global-mysterysnailrevolution/zoho-price-matcher/cmd/pm/cmd"
)

func main() {
	cmd.Execute()
}
