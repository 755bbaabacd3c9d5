package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"legtracker/internal/config"
	"legtracker/internal/logging"
)

const (
	repsDoc  = `[{"Office": "House", "Rep_Name": "John Doe", "District": 12, "Party": "R"}]`
	billsDoc = `[
  {"Bill_Sponsor": "Doe, John", "Bill_Number": "HB1", "Bill_Title": "Water", "Process_Tag": "Committee 1", "Date": "2025-02-01", "Office": "House"},
  {"Bill_Sponsor": "Doe, John", "Bill_Number": "HB1", "Bill_Title": "Water", "Process_Tag": "Rules 2", "Date": "2025-02-10", "Office": "House"}
]`
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	repsPath := filepath.Join(dir, "reps.json")
	billsPath := filepath.Join(dir, "bills.json")
	if err := os.WriteFile(repsPath, []byte(repsDoc), 0o600); err != nil {
		t.Fatalf("write reps: %v", err)
	}
	if err := os.WriteFile(billsPath, []byte(billsDoc), 0o600); err != nil {
		t.Fatalf("write bills: %v", err)
	}

	return config.Config{
		Datasets: config.DatasetsConfig{
			Representatives: config.SourceConfig{File: repsPath},
			Bills:           config.SourceConfig{File: billsPath},
		},
		Page:     config.PageConfig{Office: "House", Title: "Utah House"},
		Database: config.DatabaseConfig{DSN: filepath.Join(dir, "stages.db")},
	}
}

func TestApplicationRender(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	application, err := New(context.Background(), cfg, logging.Discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer application.Close()

	out := filepath.Join(t.TempDir(), "site")
	paths, err := application.Render(context.Background(), out)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 pages, got %v", paths)
	}

	raw, err := os.ReadFile(filepath.Join(out, "sponsors.html"))
	if err != nil {
		t.Fatalf("read sponsors page: %v", err)
	}
	if !strings.Contains(string(raw), "Rules 2") || strings.Contains(string(raw), "Committee 1") {
		t.Fatalf("sponsors page should show only the latest stage")
	}

	stages, err := application.store.LatestStages(context.Background())
	if err != nil {
		t.Fatalf("LatestStages: %v", err)
	}
	if len(stages) != 0 {
		t.Fatalf("render must not store a stage snapshot, got %d", len(stages))
	}
}

func TestApplicationRejectsBadPipeline(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Pipeline.Stages = []string{"Rules 1", "Rules 1"}

	if _, err := New(context.Background(), cfg, logging.Discard()); err == nil {
		t.Fatalf("expected duplicate stage error")
	}
}
