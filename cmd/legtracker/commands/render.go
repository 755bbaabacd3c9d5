package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var renderOut string

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "site", "Directory to write the HTML pages to")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [--out <dir>]",
	Short: "Builds the dashboard once and writes the static HTML pages.",
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

		paths, err := application.Render(cmd.Context(), renderOut)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		for _, p := range paths {
			logger.Info("page written", "path", p)
		}
		return nil
	},
}
