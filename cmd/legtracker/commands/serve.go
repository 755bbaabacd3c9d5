package commands

import (
	"github.com/spf13/cobra"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr and HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--addr :8080]",
	Short: "Builds the dashboard, serves it over HTTP and rebuilds on the cron schedule.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		application, logger, err := newApplication(cmd, cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		logger.Info("starting dashboard", "office", cfg.Page.Office, "addr", cfg.Server.Addr,
			"cron", cfg.Scheduler.CronExpression)
		return application.Serve(cmd.Context())
	},
}
