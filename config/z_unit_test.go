package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zintix-labs/lottolab/config"
	"github.com/zintix-labs/lottolab/errs"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "lotto539.db" || cfg.FetchTimeout != 10*time.Second || !cfg.StrictNumbers {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CSVURL != config.DefaultCSVURL {
		t.Fatalf("csv url %q", cfg.CSVURL)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lotto.yaml")
	body := "db_path: other.db\nfetch_timeout: 3s\nstrict_numbers: false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOTTO_REPORT_DIR", filepath.Join(dir, "out"))

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "other.db" || cfg.FetchTimeout != 3*time.Second || cfg.StrictNumbers {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.ReportDir != filepath.Join(dir, "out") {
		t.Fatalf("env override not applied: %q", cfg.ReportDir)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestValidRejectsBadLogMode(t *testing.T) {
	cfg := config.Default()
	cfg.LogMode = "loud"
	if err := cfg.Valid(); !errs.IsWarn(err) {
		t.Fatalf("expected warn, got %v", err)
	}
}

func TestWriteFileThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "lotto.yaml")
	cfg := config.Default()
	cfg.Addr = ":9000"
	if err := cfg.WriteFile(path); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := cfg.WriteFile(path); !errs.IsWarn(err) {
		t.Fatalf("second write should warn, got %v", err)
	}
	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Addr != ":9000" || got.CacheTTL != time.Minute {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestPaths(t *testing.T) {
	cfg := config.Default()
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	if got := cfg.SummaryPDFPath(day); !strings.HasSuffix(got, "lotto539_report_2024-05-06.pdf") {
		t.Fatalf("summary path %q", got)
	}
	if got := cfg.WeeklyPDFPath(day); !strings.HasSuffix(got, "weekly_number_summary_20240506.pdf") {
		t.Fatalf("weekly path %q", got)
	}
	if got := cfg.CSVPath(day); got != filepath.Join("data", "lotto539_20240506.csv") {
		t.Fatalf("csv path %q", got)
	}
	if got := cfg.ChartDirFor(day); got != filepath.Join("reports", "charts", "20240506") {
		t.Fatalf("chart dir %q", got)
	}
}

func TestDotEnvDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	body := "LOTTO_ADDR=:7000\nLOTTO_DATA_DIR=from-dotenv\n"
	if err := os.WriteFile(filepath.Join(dir, config.DotEnv), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	// 讓測試結束後還原成未設定
	t.Setenv("LOTTO_ADDR", "")
	os.Unsetenv("LOTTO_ADDR")
	t.Setenv("LOTTO_DATA_DIR", "from-env")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Fatalf(".env not applied: %q", cfg.Addr)
	}
	if cfg.DataDir != "from-env" {
		t.Fatalf("process env should win: %q", cfg.DataDir)
	}
}
