package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zintix-labs/lottolab/cli"
	"github.com/zintix-labs/lottolab/server/svrcfg"
)

const csvBody = "\ufeff日期,期別,號碼1,號碼2,號碼3,號碼4,號碼5\n" +
	"2024/01/01,113000001,05,12,19,26,33\n" +
	"2024/01/02,113000002,1,2,3,4,5\n" +
	"2024/01/03,113000003,7,12,21,30,39\n"

type env struct {
	dir string
	out *bytes.Buffer
	err *bytes.Buffer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	return &env{dir: dir, out: &bytes.Buffer{}, err: &bytes.Buffer{}}
}

func (e *env) run(t *testing.T, input string, args ...string) error {
	t.Helper()
	return e.runWith(t, input, nil, args...)
}

func (e *env) runWith(t *testing.T, input string, opts []cli.Option, args ...string) error {
	t.Helper()
	opts = append([]cli.Option{cli.WithClock(func() time.Time {
		return time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	})}, opts...)
	root := cli.NewRoot(strings.NewReader(input), e.out, e.err, opts...)
	base := []string{
		"--db", filepath.Join(e.dir, "lotto.db"),
		"--data-dir", filepath.Join(e.dir, "data"),
		"--report-dir", filepath.Join(e.dir, "reports"),
		"--chart-dir", filepath.Join(e.dir, "charts"),
		"--log-mode", "silence",
	}
	root.SetArgs(append(base, args...))
	return root.ExecuteContext(context.Background())
}

func (e *env) seed(t *testing.T) {
	t.Helper()
	path := filepath.Join(e.dir, "in.csv")
	if err := os.WriteFile(path, []byte(csvBody), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := e.run(t, "", "import", path); err != nil {
		t.Fatalf("import: %v", err)
	}
	e.out.Reset()
}

func TestMenuInvalidChoiceContinues(t *testing.T) {
	e := newEnv(t)
	if err := e.run(t, "9\nabc\n0\n"); err != nil {
		t.Fatalf("menu: %v", err)
	}
	out := e.out.String()
	if strings.Count(out, "無效選項") != 2 {
		t.Fatalf("expected two invalid messages:\n%s", out)
	}
	if !strings.Contains(out, "再見") {
		t.Fatalf("menu did not exit on 0:\n%s", out)
	}
}

func TestMenuErrorDoesNotExit(t *testing.T) {
	e := newEnv(t)
	// 資料庫不存在：3 失敗後仍回到選單
	if err := e.run(t, "3\n0\n"); err != nil {
		t.Fatalf("menu: %v", err)
	}
	out := e.out.String()
	if !strings.Contains(out, "database not found") {
		t.Fatalf("error not reported:\n%s", out)
	}
	if strings.Count(out, "主選單") != 2 || !strings.Contains(out, "再見") {
		t.Fatalf("menu should loop back after error:\n%s", out)
	}
}

func TestMenuStopsAtEOF(t *testing.T) {
	e := newEnv(t)
	if err := e.run(t, ""); err != nil {
		t.Fatalf("eof should end menu cleanly: %v", err)
	}
}

func TestImportTwiceInsertsNothing(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	if err := e.run(t, "", "import", filepath.Join(e.dir, "in.csv")); err != nil {
		t.Fatalf("import again: %v", err)
	}
	if !strings.Contains(e.out.String(), "略過（重複）") {
		t.Fatalf("unexpected output:\n%s", e.out.String())
	}
}

func TestSummaryJSON(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	if err := e.run(t, "", "summary", "--format", "json"); err != nil {
		t.Fatalf("summary: %v", err)
	}
	var got struct {
		Draws int    `json:"draws"`
		Start string `json:"start"`
		End   string `json:"end"`
	}
	if err := json.Unmarshal(e.out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, e.out.String())
	}
	if got.Draws != 3 || got.Start != "2024-01-01" || got.End != "2024-01-03" {
		t.Fatalf("got %+v", got)
	}
}

func TestSummaryUnknownFormat(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	if err := e.run(t, "", "summary", "--format", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestGap(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	if err := e.run(t, "", "gap", "12", "--chart"); err != nil {
		t.Fatalf("gap: %v", err)
	}
	if !strings.Contains(e.out.String(), "號碼 12 間隔分析") {
		t.Fatalf("unexpected output:\n%s", e.out.String())
	}
	if _, err := os.Stat(filepath.Join(e.dir, "charts", "20240110", "gap_12.png")); err != nil {
		t.Fatalf("gap chart missing: %v", err)
	}
	if err := e.run(t, "", "gap", "40"); err == nil {
		t.Fatalf("40 is out of range")
	}
}

func TestCalendarWithXLSX(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	out := filepath.Join(e.dir, "cal.xlsx")
	if err := e.run(t, "", "calendar", "-q", "12,12", "-o", out); err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if !strings.Contains(e.out.String(), "警告") {
		t.Fatalf("duplicate query should warn:\n%s", e.out.String())
	}
	if st, err := os.Stat(out); err != nil || st.Size() == 0 {
		t.Fatalf("xlsx missing: %v", err)
	}
}

func TestReportAndWeeklyWritePDF(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	if err := e.run(t, "5\n7\n0\n"); err != nil {
		t.Fatalf("menu: %v", err)
	}
	for _, name := range []string{"lotto539_report_2024-01-10.pdf", "weekly_number_summary_20240110.pdf"} {
		if _, err := os.Stat(filepath.Join(e.dir, "reports", name)); err != nil {
			t.Fatalf("%s missing: %v\n%s", name, err, e.out.String())
		}
	}
}

func TestServeUsesFlags(t *testing.T) {
	e := newEnv(t)
	var got *svrcfg.SvrCfg
	serve := cli.WithServe(func(ctx context.Context, sCfg *svrcfg.SvrCfg) error {
		got = sCfg
		return nil
	})
	if err := e.runWith(t, "", []cli.Option{serve}, "serve", "--addr", ":9999"); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if got == nil || got.Cfg.Addr != ":9999" {
		t.Fatalf("serve config got %+v", got)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	e := newEnv(t)
	if err := e.run(t, "", "config", "init"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(e.dir, "lotto.yaml")); err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if err := e.run(t, "", "config", "init"); err == nil {
		t.Fatalf("second init should refuse to overwrite")
	}
	e.out.Reset()
	if err := e.run(t, "", "config", "show"); err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(e.out.String(), "db_path: "+filepath.Join(e.dir, "lotto.db")) {
		t.Fatalf("flag should override file:\n%s", e.out.String())
	}
}

func TestVersion(t *testing.T) {
	e := newEnv(t)
	if err := e.run(t, "", "version"); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(e.out.String(), "lotto ") {
		t.Fatalf("got %q", e.out.String())
	}
}

func TestPprofFlagWritesProfile(t *testing.T) {
	e := newEnv(t)
	if err := e.run(t, "", "--pprof", "heap", "version"); err != nil {
		t.Fatalf("version: %v", err)
	}
	if _, err := os.Stat(filepath.Join(e.dir, "build", "profiling", "heap.pprof")); err != nil {
		t.Fatalf("profile missing: %v", err)
	}
	if err := e.run(t, "", "--pprof", "trace", "version"); err == nil {
		t.Fatalf("unknown pprof mode should fail")
	}
}
