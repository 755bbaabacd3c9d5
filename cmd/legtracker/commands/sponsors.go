package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"legtracker/internal/usecase"
	"legtracker/internal/view"
)

var sponsorsLimit int

func init() {
	sponsorsCmd.Flags().IntVarP(&sponsorsLimit, "limit", "n", 0, "Show only the first n sponsors (0 shows all)")
	rootCmd.AddCommand(sponsorsCmd)
}

var sponsorsCmd = &cobra.Command{
	Use:   "sponsors [--limit n]",
	Short: "Prints sponsors ordered by bill count with their linked representative.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		application, _, err := newApplication(cmd, cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		build, err := application.Build(cmd.Context())
		if err != nil {
			return err
		}
		printSponsors(build, sponsorsLimit)
		return nil
	},
}

func printSponsors(build *usecase.Build, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Sponsor", "Bills", "Passed", "Failed", "Pass rate", "Avg progress", "Representative"})

	for i, section := range build.Sponsors.Sections {
		if limit > 0 && i >= limit {
			break
		}

		stats := view.StatsFor(section)
		rep := "-"
		if link, ok := build.Links.ForSponsor(section.Sponsor); ok {
			rep = link.Representative
		}

		t.AppendRow(table.Row{
			i + 1, section.Sponsor, stats.Total, stats.Passed, stats.Failed,
			fmt.Sprintf("%.1f%%", stats.PassRate), fmt.Sprintf("%.0f%%", stats.AvgProgress), rep,
		})
	}

	t.AppendFooter(table.Row{"", "Total", build.Index.Bills, "", "", "", "", fmt.Sprintf("%d diagnostics", len(build.Diagnostics))})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
