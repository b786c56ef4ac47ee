package perf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/perf"
)

func TestStartEmptyModeIsNoop(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prof")
	stop, err := perf.Start("", dir)
	if err != nil || stop() != nil {
		t.Fatalf("noop start failed: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("noop should not create dir")
	}
}

func TestStartWritesProfile(t *testing.T) {
	for _, mode := range []string{"heap", "allocs", "cpu"} {
		dir := t.TempDir()
		stop, err := perf.Start(mode, dir)
		if err != nil {
			t.Fatalf("%s start: %v", mode, err)
		}
		_ = make([]byte, 1<<16)
		if err := stop(); err != nil {
			t.Fatalf("%s stop: %v", mode, err)
		}
		if st, err := os.Stat(filepath.Join(dir, mode+".pprof")); err != nil || st.Size() == 0 {
			t.Fatalf("%s profile missing: %v", mode, err)
		}
	}
}

func TestStartUnknownMode(t *testing.T) {
	if _, err := perf.Start("trace", t.TempDir()); !errs.IsWarn(err) {
		t.Fatalf("expected warn, got %v", err)
	}
}
