package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfermarkt-api",
		Short: "HTTP API serving football data scraped from transfermarkt.com",
		Long: `transfermarkt-api fetches and extracts structured football data
(players, clubs, competitions) from transfermarkt.com on demand. Every
API call re-fetches the underlying page through a resilient scraping
pipeline with rotating sessions, retries and a headless-browser
fallback.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: environment and built-in defaults)")
	cmd.AddCommand(newServeCmd())
	return cmd
}

// Execute runs the CLI.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
