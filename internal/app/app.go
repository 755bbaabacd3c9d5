package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"legtracker/internal/config"
	"legtracker/internal/domain"
	"legtracker/internal/infrastructure/dataset"
	"legtracker/internal/infrastructure/parser"
	"legtracker/internal/infrastructure/scheduler"
	"legtracker/internal/infrastructure/storage"
	"legtracker/internal/infrastructure/telegram"
	"legtracker/internal/infrastructure/web"
	"legtracker/internal/legislature"
	"legtracker/internal/logging"
	"legtracker/internal/ports"
	"legtracker/internal/scanner"
	"legtracker/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	dashboard *usecase.Dashboard
	renderer  *web.Renderer
	listings  ports.BillListSource
	store     *storage.SnapshotRepository
}

// New builds the application graph. The snapshot store is opened only when a
// DSN is configured.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	pipeline := legislature.MustDefaultPipeline()
	if len(cfg.Pipeline.Stages) > 0 {
		p, err := legislature.NewPipeline(cfg.Pipeline.Stages)
		if err != nil {
			return nil, fmt.Errorf("configure pipeline: %w", err)
		}
		pipeline = p
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	app := &Application{cfg: cfg, logger: baseLogger, renderer: renderer}

	deps := usecase.DashboardDeps{
		Source:   dataset.NewSource(cfg.Datasets, nil, baseLogger.With("component", "dataset")),
		Pipeline: pipeline,
		Linker:   legislature.NewLinker(cfg.Linker.Threshold),
		Office:   cfg.Page.Office,
		Title:    cfg.Page.Title,
		Logger:   baseLogger.With("component", "dashboard"),
	}

	if cfg.Database.DSN != "" {
		store, err := storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		app.store = store
		deps.Snapshots = store
	}
	if cfg.Notifications.Telegram.Enabled() {
		deps.Notifier = telegram.NewNotifier(cfg.Notifications.Telegram)
	}
	app.dashboard = usecase.NewDashboard(deps)

	registry := scanner.NewRegistry()
	registry.Register(parser.NewUtahScanner(nil, baseLogger.With("component", "scanner.utah")))
	app.listings = parser.NewStrategySource(registry, cfg.Sites, baseLogger.With("component", "source"))

	return app, nil
}

// Close releases the snapshot store.
func (a *Application) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

// Serve builds once, then serves pages and rebuilds on the cron schedule
// until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	if err := scheduler.Validate(a.cfg.Scheduler.CronExpression); err != nil {
		return err
	}

	// A failed first build still starts the server; pages answer 503 until
	// a scheduled rebuild succeeds.
	_ = a.dashboard.Rebuild(ctx, time.Now().In(a.cfg.Scheduler.Location()))

	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location(),
		a.logger.With("component", "scheduler"))
	jobs := usecase.NewScheduler(driver, a.dashboard)
	if err := jobs.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	server := web.NewServer(a.cfg.Server.Addr, a.cfg.Server.ShutdownTimeout, a.dashboard, a.renderer,
		a.logger.With("component", "http"))
	runErr := server.Run(ctx)

	stopCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout+time.Second)
	defer cancel()
	if err := jobs.Stop(stopCtx); err != nil {
		a.logger.Warn("stop scheduler", "error", err)
	}
	return runErr
}

// Build runs a single dashboard build without serving it.
func (a *Application) Build(ctx context.Context) (*usecase.Build, error) {
	return a.dashboard.Build(ctx)
}

// Render builds once and writes the pages to dir.
func (a *Application) Render(ctx context.Context, dir string) ([]string, error) {
	build, err := a.dashboard.Build(ctx)
	if err != nil {
		return nil, err
	}
	return usecase.ExportPages(build, a.renderer, dir)
}

// Scrape collects bill listings from the configured legislature sites.
func (a *Application) Scrape(ctx context.Context) ([]domain.BillListing, error) {
	return a.listings.FetchListings(ctx)
}
