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

// Package cli 是 lotto 指令的進入點。
//
// 不帶子指令時進入數字選單（0~7）；每個選單項目也有對應的子指令，
// 方便在 script 或 cron 裡單獨執行。設定優先序：flags > LOTTO_* env > lotto.yaml > 預設值。
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zintix-labs/lottolab/config"
	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/logger"
	"github.com/zintix-labs/lottolab/perf"
	"github.com/zintix-labs/lottolab/server"
	"github.com/zintix-labs/lottolab/server/svrcfg"
)

// Version 由 -ldflags "-X github.com/zintix-labs/lottolab/cli.Version=..." 注入
var Version = "dev"

// flag 名稱 -> 設定 key；permissive 是反向旗標，在 load 內另外處理
var flagKeys = map[string]string{
	"db":         "db_path",
	"data-dir":   "data_dir",
	"report-dir": "report_dir",
	"chart-dir":  "chart_dir",
	"font":       "font_path",
	"log-mode":   "log_mode",
	"addr":       "addr",
	"csv-url":    "csv_url",
	"cache-ttl":  "cache_ttl",
}

// App 一次指令執行的狀態；所有輸出都走 out / errOut
type App struct {
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	cfgFile string
	pprof   string
	stop    perf.Stop
	cfg     *config.Config
	log     *slog.Logger
	now     func() time.Time

	// serve 可在測試中替換，避免真的監聽 port
	serve func(ctx context.Context, sCfg *svrcfg.SvrCfg) error
}

// Option 調整 App（測試用）
type Option func(*App)

// WithClock 替換時間來源
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithServe 替換 dashboard 啟動函式
func WithServe(fn func(ctx context.Context, sCfg *svrcfg.SvrCfg) error) Option {
	return func(a *App) { a.serve = fn }
}

// NewRoot 建立 root command
func NewRoot(in io.Reader, out, errOut io.Writer, opts ...Option) *cobra.Command {
	a := &App{in: in, out: out, errOut: errOut, now: time.Now, serve: server.Run}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "lotto",
		Short: "今彩539 開獎資料下載、統計與報表",
		Long: `lotto 下載今彩539 歷史開獎 CSV、匯入 SQLite，並產出統計摘要、圖表、
PDF 報表、日曆表格與網頁 dashboard。

不帶子指令時進入互動選單。`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			stop, err := perf.Start(a.pprof, perf.Dir)
			a.stop = stop
			return err
		},
		// profile 只在指令成功結束時寫出
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.stop == nil {
				return nil
			}
			return a.stop()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Menu(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./lotto.yaml)")
	pf.String("db", "", "SQLite database path")
	pf.String("data-dir", "", "directory for downloaded CSV files")
	pf.String("report-dir", "", "directory for PDF / XLSX output")
	pf.String("chart-dir", "", "directory for PNG charts")
	pf.String("font", "", "TTF font for Chinese labels in charts and PDFs")
	pf.String("log-mode", "", "log mode: dev|prod|silence")
	pf.String("addr", "", "dashboard listen address")
	pf.String("csv-url", "", "CSV download URL")
	pf.Duration("cache-ttl", 0, "dashboard draw cache TTL (0 disables)")
	pf.Bool("permissive", false, "accept rows with repeated or out-of-range numbers")
	pf.StringVar(&a.pprof, "pprof", "", "write a pprof profile into build/profiling: cpu|heap|allocs")

	root.AddCommand(
		a.fetchCmd(),
		a.importCmd(),
		a.summaryCmd(),
		a.chartsCmd(),
		a.reportCmd(),
		a.weeklyCmd(),
		a.serveCmd(),
		a.gapCmd(),
		a.calendarCmd(),
		a.configCmd(),
		versionCmd(),
	)
	return root
}

// Execute 執行並回傳 exit code
func Execute(ctx context.Context, args []string) int {
	root := NewRoot(os.Stdin, os.Stdout, os.Stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		return 1
	}
	return 0
}

// load 綁定 flags 到 viper 後讀出設定並建立 logger
func (a *App) load(cmd *cobra.Command) error {
	v := config.NewViper(a.cfgFile)
	if err := bindFlags(v, cmd.Root().PersistentFlags()); err != nil {
		return err
	}
	cfg, err := config.FromViper(v, a.cfgFile != "")
	if err != nil {
		return err
	}
	if f := cmd.Root().PersistentFlags().Lookup("permissive"); f != nil && f.Changed {
		cfg.StrictNumbers = false
	}
	a.cfg = cfg
	a.log = logger.NewTo(cfg.Mode(), a.errOut)
	return nil
}

// bindFlags 只綁定有名稱對應的 flag；未指定的 flag 不會覆寫 env / 設定檔
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return errs.Wrap(err, "bind flag "+name)
		}
	}
	return nil
}

// describe 錯誤轉成給人看的一行
func describe(err error) string {
	if e, ok := errs.AsErr(err); ok {
		msg := fmt.Sprintf("[%s] %s", errs.ErrLv(e.ErrLv), errs.Message(err))
		if e.Extra != "" {
			msg += " (" + e.Extra + ")"
		}
		return msg
	}
	return err.Error()
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "lotto %s\n", Version)
			return err
		},
	}
}
