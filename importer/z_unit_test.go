package importer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zintix-labs/lottolab/config"
	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/fetcher"
	"github.com/zintix-labs/lottolab/importer"
	"github.com/zintix-labs/lottolab/store"
)

const sampleCSV = "\ufeff日期,期別,號碼1,號碼2,號碼3,號碼4,號碼5\n" +
	"2024/01/01,113000001,05,12,19,26,33\n" +
	"2024/01/02,113000002,1,2,3,4,5\n" +
	"2024/13/40,113000003,1,2,3,4,5\n" +
	"2024/01/04,113000004,1,2,x,4,5\n" +
	"2024/01/05,113000005,1,2,3,4,40\n" +
	"2024/01/06,113000006,7,7,8,9,10\n"

func TestParseCSVStrict(t *testing.T) {
	p, err := importer.ParseCSV(strings.NewReader(sampleCSV), true)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Rows != 6 || len(p.Draws) != 2 || len(p.Errors) != 4 {
		t.Fatalf("rows=%d draws=%d errors=%d", p.Rows, len(p.Draws), len(p.Errors))
	}
	first := p.Draws[0]
	if first.Period != "113000001" || first.DateString() != "2024-01-01" || first.Weekday != draw.Monday {
		t.Fatalf("unexpected first draw: %+v", first)
	}
	if first.Numbers != (draw.Numbers{5, 12, 19, 26, 33}) {
		t.Fatalf("numbers %v", first.Numbers)
	}
	for _, e := range p.Errors {
		if e.Period == "" || e.Reason == "" {
			t.Fatalf("row error missing context: %+v", e)
		}
		if errs.Level(e.Err) != errs.Log {
			t.Fatalf("row error should be log level: %v", e.Err)
		}
	}
}

func TestParseCSVPermissive(t *testing.T) {
	p, err := importer.ParseCSV(strings.NewReader(sampleCSV), false)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	// 壞日期與非數字仍失敗；範圍外與重複號碼放行
	if len(p.Draws) != 4 || len(p.Errors) != 2 {
		t.Fatalf("draws=%d errors=%d", len(p.Draws), len(p.Errors))
	}
}

func TestParseCSVEmpty(t *testing.T) {
	p, err := importer.ParseCSV(strings.NewReader(""), true)
	if err != nil || p.Rows != 0 || len(p.Draws) != 0 {
		t.Fatalf("got %+v err %v", p, err)
	}
}

func newImporter(t *testing.T) (*importer.Importer, *store.Store, *config.Config) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(dir, "lotto.db")
	cfg.DataDir = filepath.Join(dir, "data")
	st := store.New(cfg.DBPath, nil)
	return importer.New(st, cfg, nil), st, cfg
}

func TestImportTwiceInsertsZero(t *testing.T) {
	ctx := context.Background()
	im, st, _ := newImporter(t)
	path := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	var bar bytes.Buffer
	first, err := im.WithProgress(&bar).ImportFile(ctx, path)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if first.Inserted != 2 || first.Failed != 4 || first.RunID == "" {
		t.Fatalf("first import got %+v", first)
	}
	second, err := im.ImportFile(ctx, path)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if second.Inserted != 0 || second.Skipped != 2 {
		t.Fatalf("second import got %+v", second)
	}
	if second.RunID == first.RunID {
		t.Fatalf("run ids must differ")
	}

	runs, err := st.Runs(ctx, 0)
	if err != nil || len(runs) != 2 {
		t.Fatalf("runs got %d err %v", len(runs), err)
	}
}

func TestImportMissingFileIsFatal(t *testing.T) {
	im, _, _ := newImporter(t)
	_, err := im.ImportFile(context.Background(), filepath.Join(t.TempDir(), "none.csv"))
	if !errs.IsFatal(err) {
		t.Fatalf("expected fatal, got %v", err)
	}
}

func TestResolveLatest(t *testing.T) {
	ctx := context.Background()
	im, _, cfg := newImporter(t)

	if _, err := importer.ResolveLatest(cfg.DataDir); !errs.IsFatal(err) {
		t.Fatalf("missing pointer should be fatal, got %v", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	csvPath := filepath.Join(cfg.DataDir, "lotto539_20240101.csv")
	if err := fetcher.WritePointer(cfg.DataDir, csvPath); err != nil {
		t.Fatal(err)
	}
	if _, err := importer.ResolveLatest(cfg.DataDir); !errs.IsFatal(err) {
		t.Fatalf("dangling pointer should be fatal, got %v", err)
	}
	if err := os.WriteFile(csvPath, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := im.ImportLatest(ctx, cfg.DataDir)
	if err != nil || res.Inserted != 2 || res.Source != csvPath {
		t.Fatalf("import latest got %+v err %v", res, err)
	}
}
