package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"legtracker/internal/app"
	"legtracker/internal/config"
	"legtracker/internal/logging"
)

var (
	configPath string
	office     string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "legtracker",
	Short:         "legtracker builds a legislative bill tracking dashboard.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (overrides LEGTRACKER_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&office, "office", "", "Office to show, e.g. House or Senate")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return config.Config{}, fmt.Errorf("config file: %w", err)
		}
		if err := os.Setenv("LEGTRACKER_CONFIG", configPath); err != nil {
			return config.Config{}, err
		}
	}

	cfg := config.Load()
	if office != "" {
		cfg.Page.Office = office
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	return cfg, nil
}

// newApplication wires the application from cfg. Callers must Close it.
func newApplication(cmd *cobra.Command, cfg config.Config) (*app.Application, *slog.Logger, error) {
	logger := logging.NewWithWriter(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	application, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return application, logger, nil
}
