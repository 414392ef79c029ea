// Package main provides the card_agent CLI: it serves the card site, regenerates card
// folders and previews, resolves and validates individual cards.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "card_agent",
	Short:        "Next Level Cleaning digital business cards",
	Long:         "card_agent serves the static business card site and its quote-request endpoint, generates per-employee card folders and checks card data.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
