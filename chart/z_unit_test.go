package chart_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zintix-labs/lottolab/analyzer"
	"github.com/zintix-labs/lottolab/chart"
	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func sample() []draw.Draw {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []draw.Draw{
		draw.New("001", d, draw.Numbers{1, 2, 3, 10, 11}),
		draw.New("002", d.AddDate(0, 0, 1), draw.Numbers{2, 5, 9, 21, 39}),
		draw.New("003", d.AddDate(0, 0, 2), draw.Numbers{2, 3, 4, 20, 31}),
		draw.New("004", d.AddDate(0, 0, 3), draw.Numbers{7, 14, 22, 30, 38}),
	}
}

func TestRenderPNG(t *testing.T) {
	r, err := chart.New("", nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range chart.Names {
		var buf bytes.Buffer
		if err := r.Render(&buf, name, sample()); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Fatalf("%s: not a png", name)
		}
	}
	if err := r.Render(&bytes.Buffer{}, "nope", sample()); !errs.IsWarn(err) {
		t.Fatalf("unknown chart should warn, got %v", err)
	}
}

func TestOddEvenEmpty(t *testing.T) {
	r, _ := chart.New("", nil)
	if err := r.OddEven(&bytes.Buffer{}, nil); !errs.IsWarn(err) {
		t.Fatalf("expected warn, got %v", err)
	}
}

func TestGapTrend(t *testing.T) {
	r, _ := chart.New("", nil)
	res, err := analyzer.GapOf(sample(), 2)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := r.GapTrend(&buf, res); err != nil {
		t.Fatalf("gap: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Fatalf("not a png")
	}
	if err := r.GapTrend(&buf, analyzer.GapResult{Number: 5}); !errs.IsWarn(err) {
		t.Fatalf("empty history should warn, got %v", err)
	}

	dir := t.TempDir()
	p, err := r.WriteGap(dir, res)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(p) != "gap_02.png" {
		t.Fatalf("path %s", p)
	}
}

func TestWriteAll(t *testing.T) {
	r, _ := chart.New("", nil)
	dir := filepath.Join(t.TempDir(), "20240104")
	paths, err := r.WriteAll(dir, sample())
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != len(chart.Names) {
		t.Fatalf("paths %v", paths)
	}
	for _, p := range paths {
		if st, err := os.Stat(p); err != nil || st.Size() == 0 {
			t.Fatalf("missing %s: %v", p, err)
		}
	}
}

func TestBadFont(t *testing.T) {
	r, err := chart.New(filepath.Join(t.TempDir(), "missing.ttf"), nil)
	if !errs.IsWarn(err) || r == nil {
		t.Fatalf("expected warn with fallback renderer, got %v", err)
	}
}
