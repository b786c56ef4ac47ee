// Package fetcher 下載最新的開獎 CSV。
//
// 一次 GET、固定逾時；成功後存成 <data_dir>/lotto539_YYYYMMDD.csv，
// 並把檔案路徑寫入 <data_dir>/.latest_csv_path 供匯入使用。
package fetcher

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/zintix-labs/lottolab/config"
	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/logger"
)

// 單檔上限，避免來源異常時寫爆磁碟
const maxBytes = 32 << 20

// Fetcher CSV 下載器
type Fetcher struct {
	url     string
	dataDir string
	client  *http.Client
	log     *slog.Logger
	now     func() time.Time
}

// Result 下載結果
type Result struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// New 依設定建立 Fetcher；transport 支援 gzip 回應
func New(cfg *config.Config, log *slog.Logger) *Fetcher {
	return &Fetcher{
		url:     cfg.CSVURL,
		dataDir: cfg.DataDir,
		client: &http.Client{
			Timeout:   cfg.FetchTimeout,
			Transport: gzhttp.Transport(http.DefaultTransport),
		},
		log: logger.OrDiscard(log),
		now: time.Now,
	}
}

// WithClient 替換 http client（測試用）
func (f *Fetcher) WithClient(c *http.Client) *Fetcher {
	f.client = c
	return f
}

// WithClock 替換時間來源（決定檔名日期）
func (f *Fetcher) WithClock(now func() time.Time) *Fetcher {
	f.now = now
	return f
}

// Fetch 下載 CSV。失敗時記錄 error log 並回傳空路徑與錯誤。
func (f *Fetcher) Fetch(ctx context.Context) (Result, error) {
	res, err := f.fetch(ctx)
	if err != nil {
		f.log.Error("fetch.failed", slog.String("url", f.url), slog.Any("err", err))
		return Result{}, err
	}
	f.log.Info("fetch.saved", slog.String("path", res.Path), slog.Int("bytes", res.Bytes))
	return res, nil
}

func (f *Fetcher) fetch(ctx context.Context) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return Result{}, errs.WrapAs(errs.Warn, err, "build request")
	}
	req.Header.Set("Accept", "text/csv,*/*;q=0.8")
	req.Header.Set("User-Agent", "lottolab/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return Result{}, errs.Wrap(err, "download csv")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, errs.Fatalf("unexpected status: %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return Result{}, errs.Wrap(err, "read body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return Result{}, errs.NewFatal("empty csv body")
	}

	if err := os.MkdirAll(f.dataDir, 0o755); err != nil {
		return Result{}, errs.Wrap(err, "create data dir")
	}
	path := filepath.Join(f.dataDir, "lotto539_"+f.now().Format("20060102")+".csv")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return Result{}, errs.Wrap(err, "save csv")
	}
	if err := WritePointer(f.dataDir, path); err != nil {
		return Result{}, err
	}
	return Result{Path: path, Bytes: len(body)}, nil
}

// WritePointer 將最新 CSV 路徑寫入指標檔
func WritePointer(dataDir, csvPath string) error {
	p := filepath.Join(dataDir, config.LatestPointer)
	if err := os.WriteFile(p, []byte(csvPath), 0o644); err != nil {
		return errs.Wrap(err, "write latest pointer")
	}
	return nil
}
