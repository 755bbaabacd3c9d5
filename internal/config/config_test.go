package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"legtracker/internal/legislature"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(officeEnv, "")
	t.Setenv(databaseDSNEnv, "")

	cfg := Load()

	if cfg.Page.Office != "House" {
		t.Fatalf("unexpected default office: %s", cfg.Page.Office)
	}
	if len(cfg.Pipeline.Stages) != len(legislature.DefaultStages) {
		t.Fatalf("expected default stages, got %d", len(cfg.Pipeline.Stages))
	}
	if cfg.Database.DSN != "" {
		t.Fatalf("storage should be disabled by default")
	}
	if len(cfg.Sites) != 1 || cfg.Sites[0].Scanner != "utah-le" {
		t.Fatalf("unexpected default sites: %+v", cfg.Sites)
	}
	if cfg.Scheduler.Location() == nil {
		t.Fatalf("timezone not bound")
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
logging:
  level: debug
datasets:
  bills:
    file: ./bills.json
  timeout: 5s
page:
  office: Senate
pipeline:
  stages: [Intro, Committee, Floor, Signed]
scheduler:
  cronExpression: "*/15 * * * *"
  timezone: UTC
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(officeEnv, "")
	t.Setenv(databaseDSNEnv, "sqlite:///tmp/legtracker.db")
	t.Setenv(telegramTokenEnv, "token")
	t.Setenv(telegramChatIDEnv, "chat")
	t.Setenv(linkThresholdEnv, "0.93")

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level not merged: %s", cfg.Logging.Level)
	}
	if cfg.Datasets.Bills.File != "./bills.json" || cfg.Datasets.Bills.URL != "" {
		t.Fatalf("bills source not merged: %+v", cfg.Datasets.Bills)
	}
	if cfg.Datasets.Representatives.URL == "" {
		t.Fatalf("representatives default should survive the merge")
	}
	if cfg.Datasets.Timeout != 5*time.Second {
		t.Fatalf("timeout not parsed: %s", cfg.Datasets.Timeout)
	}
	if cfg.Page.Office != "Senate" {
		t.Fatalf("office not merged: %s", cfg.Page.Office)
	}
	if len(cfg.Pipeline.Stages) != 4 {
		t.Fatalf("stages not merged: %v", cfg.Pipeline.Stages)
	}
	if cfg.Scheduler.CronExpression != "*/15 * * * *" {
		t.Fatalf("cron not merged: %s", cfg.Scheduler.CronExpression)
	}
	if cfg.Scheduler.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %s", cfg.Scheduler.Location())
	}
	if cfg.Database.DSN != "sqlite:///tmp/legtracker.db" {
		t.Fatalf("dsn override missing: %s", cfg.Database.DSN)
	}
	if !cfg.Notifications.Telegram.Enabled() {
		t.Fatalf("telegram should be enabled")
	}
	if cfg.Linker.Threshold != 0.93 {
		t.Fatalf("threshold override missing: %v", cfg.Linker.Threshold)
	}
}

func TestLoadUnreadableFileFallsBack(t *testing.T) {
	t.Setenv(configPathEnv, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv(officeEnv, "Senate")

	cfg := Load()
	if cfg.Page.Office != "Senate" {
		t.Fatalf("env override should still apply, got %s", cfg.Page.Office)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("defaults expected, got %s", cfg.Server.Addr)
	}
}
