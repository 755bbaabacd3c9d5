package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var scrapeOut string

func init() {
	scrapeCmd.Flags().StringVarP(&scrapeOut, "out", "o", "", "File to write the listings JSON to (default stdout)")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--out <file.json>]",
	Short: "Scrapes bill listings from the configured legislature sites.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		application, logger, err := newApplication(cmd, cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		listings, err := application.Scrape(cmd.Context())
		if err != nil {
			return fmt.Errorf("scrape: %w", err)
		}

		var w io.Writer = cmd.OutOrStdout()
		if scrapeOut != "" {
			f, err := os.Create(scrapeOut)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			defer f.Close()
			w = f
		}

		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(listings); err != nil {
			return fmt.Errorf("encode listings: %w", err)
		}
		logger.Info("listings scraped", "count", len(listings), "out", scrapeOut)
		return nil
	},
}
