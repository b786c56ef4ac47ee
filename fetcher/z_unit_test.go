package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/zintix-labs/lottolab/config"
	"github.com/zintix-labs/lottolab/fetcher"
)

const body = "日期,期別,號碼1,號碼2,號碼3,號碼4,號碼5\n2024/01/01,113000001,1,2,3,4,5\n"

func newCfg(t *testing.T, url string) *config.Config {
	cfg := config.Default()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.CSVURL = url
	cfg.FetchTimeout = 2 * time.Second
	return cfg
}

func TestFetchSavesFileAndPointer(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(body))
	}))
	defer ts.Close()

	cfg := newCfg(t, ts.URL)
	clock := func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }
	res, err := fetcher.New(cfg, nil).WithClock(clock).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if filepath.Base(res.Path) != "lotto539_20240601.csv" {
		t.Fatalf("unexpected path %q", res.Path)
	}
	got, _ := os.ReadFile(res.Path)
	if string(got) != body {
		t.Fatalf("content mismatch: %q", got)
	}
	ptr, err := os.ReadFile(cfg.PointerPath())
	if err != nil || strings.TrimSpace(string(ptr)) != res.Path {
		t.Fatalf("pointer got %q err %v", ptr, err)
	}
}

func TestFetchNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	res, err := fetcher.New(newCfg(t, ts.URL), nil).Fetch(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if res.Path != "" {
		t.Fatalf("path should be empty on failure, got %q", res.Path)
	}
}

func TestFetchTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	cfg := newCfg(t, ts.URL)
	f := fetcher.New(cfg, nil).WithClient(&http.Client{Timeout: 50 * time.Millisecond})
	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatalf("expected timeout error")
	}
}
