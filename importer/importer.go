// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package importer 把開獎 CSV 匯入 store。
//
// 匯入是冪等的：同一份檔案匯入兩次，第二次新增 0 筆（期別重複由 store 略過）。
// 每次匯入都有一個 run id，結果寫進 import_runs。
package importer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"

	"github.com/zintix-labs/lottolab/config"
	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/logger"
	"github.com/zintix-labs/lottolab/store"
)

// Importer CSV 匯入器
type Importer struct {
	st       *store.Store
	strict   bool
	log      *slog.Logger
	progress io.Writer // nil: 不顯示進度條
}

// Result 匯入結果
type Result struct {
	RunID    string     `json:"run_id"`
	Source   string     `json:"source"`
	Rows     int        `json:"rows"`
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors"`
	Elapsed  string     `json:"elapsed"`
}

// New strict 取自 cfg.StrictNumbers
func New(st *store.Store, cfg *config.Config, log *slog.Logger) *Importer {
	return &Importer{st: st, strict: cfg.StrictNumbers, log: logger.OrDiscard(log)}
}

// WithProgress 匯入時在 w 上顯示進度條
func (im *Importer) WithProgress(w io.Writer) *Importer {
	im.progress = w
	return im
}

// ImportFile 匯入指定 CSV 檔；檔案不存在回傳 Fatal
func (im *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		e := errs.NewWithExtra(errs.Fatal, "csv file not found", path)
		e.Cause = err
		im.log.Error("import.open_failed", slog.String("path", path), slog.Any("err", err))
		return nil, e
	}
	defer f.Close()
	return im.Import(ctx, f, path)
}

// ImportLatest 匯入 .latest_csv_path 指向的檔案
func (im *Importer) ImportLatest(ctx context.Context, dataDir string) (*Result, error) {
	path, err := ResolveLatest(dataDir)
	if err != nil {
		im.log.Error("import.no_latest", slog.String("data_dir", dataDir), slog.Any("err", err))
		return nil, err
	}
	return im.ImportFile(ctx, path)
}

// Import 解析並寫入；source 只用於紀錄
func (im *Importer) Import(ctx context.Context, r io.Reader, source string) (*Result, error) {
	started := time.Now()
	res := &Result{RunID: uuid.NewString(), Source: source}

	parsed, err := ParseCSV(r, im.strict)
	if err != nil {
		return nil, err
	}
	res.Rows = parsed.Rows
	res.Errors = parsed.Errors
	res.Failed = len(parsed.Errors)
	for _, re := range parsed.Errors {
		im.log.Warn("import.row_failed",
			slog.String("run_id", res.RunID),
			slog.Int("line", re.Line),
			slog.String("period", re.Period),
			slog.String("reason", re.Reason))
	}

	bar := pb.New(len(parsed.Draws))
	if im.progress != nil {
		bar.SetWriter(im.progress)
	} else {
		bar.SetWriter(io.Discard)
	}
	bar.Start()
	ins, err := im.st.Insert(ctx, parsed.Draws, func() { bar.Increment() })
	bar.Finish()
	if err != nil {
		return nil, err
	}
	res.Inserted = ins.Inserted
	res.Skipped = ins.Skipped
	res.Elapsed = time.Since(started).Round(time.Millisecond).String()

	run := store.Run{
		ID:         res.RunID,
		Source:     source,
		Inserted:   res.Inserted,
		Skipped:    res.Skipped,
		Failed:     res.Failed,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if err := im.st.RecordRun(ctx, run); err != nil {
		// 資料已寫入，紀錄失敗只記 log
		im.log.Warn("import.run_not_recorded", slog.String("run_id", res.RunID), slog.Any("err", err))
	}
	im.log.Info("import.done",
		slog.String("run_id", res.RunID),
		slog.String("source", source),
		slog.Int("inserted", res.Inserted),
		slog.Int("skipped", res.Skipped),
		slog.Int("failed", res.Failed))
	return res, nil
}

// ResolveLatest 讀取 <dataDir>/.latest_csv_path；指標或目標檔不存在回傳 Fatal
func ResolveLatest(dataDir string) (string, error) {
	ptr := filepath.Join(dataDir, config.LatestPointer)
	b, err := os.ReadFile(ptr)
	if err != nil {
		return "", errs.NewWithExtra(errs.Fatal, "latest csv pointer not found", ptr)
	}
	path := strings.TrimSpace(string(b))
	if path == "" {
		return "", errs.NewWithExtra(errs.Fatal, "latest csv pointer is empty", ptr)
	}
	if _, err := os.Stat(path); err != nil {
		return "", errs.NewWithExtra(errs.Fatal, "csv file not found", path)
	}
	return path, nil
}
