package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zintix-labs/lottolab/analyzer"
	"github.com/zintix-labs/lottolab/calendar"
	"github.com/zintix-labs/lottolab/chart"
	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/fetcher"
	"github.com/zintix-labs/lottolab/importer"
	"github.com/zintix-labs/lottolab/pdfreport"
	"github.com/zintix-labs/lottolab/report"
	"github.com/zintix-labs/lottolab/server/svrcfg"
	"github.com/zintix-labs/lottolab/store"
	"github.com/zintix-labs/lottolab/weekly"
)

// 每個動作對應一個選單項目 / 子指令，成功時只在 out 印出結果摘要

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) store() *store.Store {
	return store.New(a.cfg.DBPath, a.log)
}

func (a *App) draws(ctx context.Context) ([]draw.Draw, error) {
	return a.store().All(ctx, store.Desc)
}

// Fetch 下載最新 CSV
func (a *App) Fetch(ctx context.Context) error {
	res, err := fetcher.New(a.cfg, a.log).WithClock(a.now).Fetch(ctx)
	if err != nil {
		return err
	}
	a.printf("已下載 %s（%d bytes）\n", res.Path, res.Bytes)
	return nil
}

// Import 匯入 path；空字串時匯入最近一次下載的檔案
func (a *App) Import(ctx context.Context, path string) error {
	st := a.store()
	if err := st.Init(ctx); err != nil {
		return err
	}
	im := importer.New(st, a.cfg, a.log).WithProgress(a.errOut)
	var (
		res *importer.Result
		err error
	)
	if path == "" {
		res, err = im.ImportLatest(ctx, a.cfg.DataDir)
	} else {
		res, err = im.ImportFile(ctx, path)
	}
	if err != nil {
		return err
	}
	keys := []string{"來源", "總列數", "新增", "略過（重複）", "失敗", "耗時", "Run ID"}
	msg := map[string]string{}
	msg["來源"] = res.Source
	msg["總列數"] = strconv.Itoa(res.Rows)
	msg["新增"] = strconv.Itoa(res.Inserted)
	msg["略過（重複）"] = strconv.Itoa(res.Skipped)
	msg["失敗"] = strconv.Itoa(res.Failed)
	msg["耗時"] = res.Elapsed
	msg["Run ID"] = res.RunID
	a.printf("%s", report.Table("匯入結果", keys, msg))
	for _, re := range res.Errors {
		a.printf("  第 %d 列（期別 %s）：%s\n", re.Line, re.Period, re.Reason)
	}
	return nil
}

// Summary 統計摘要；format 為 table / json / yaml
func (a *App) Summary(ctx context.Context, format string) error {
	r, ok := report.RenderFor(format)
	if !ok {
		return errs.Warnf("unknown format: %q (table|json|yaml)", format)
	}
	ds, err := a.draws(ctx)
	if err != nil {
		return err
	}
	return report.Build(ds, a.now()).WriteWith(a.out, r)
}

// charts 依設定建立繪圖器；字型問題已在 chart.New 內記錄，改用英文標籤
func (a *App) charts() *chart.Renderer {
	r, _ := chart.New(a.cfg.FontPath, a.log)
	return r
}

func (a *App) pdf() *pdfreport.Writer {
	return pdfreport.New(a.cfg.FontPath, a.log).WithClock(a.now)
}

// Charts 產出四張統計圖到 <chart_dir>/<YYYYMMDD>/
func (a *App) Charts(ctx context.Context) ([]string, error) {
	ds, err := a.draws(ctx)
	if err != nil {
		return nil, err
	}
	paths, err := a.charts().WriteAll(a.cfg.ChartDirFor(a.now()), ds)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		a.printf("圖表：%s\n", p)
	}
	return paths, nil
}

// Report 產出圖表後組成摘要 PDF
func (a *App) Report(ctx context.Context) error {
	paths, err := a.Charts(ctx)
	if err != nil {
		return err
	}
	ds, err := a.draws(ctx)
	if err != nil {
		return err
	}
	now := a.now()
	out := a.cfg.SummaryPDFPath(now)
	if err := a.pdf().WriteSummaryFile(out, report.Build(ds, now), paths); err != nil {
		return err
	}
	a.printf("PDF 報告：%s\n", out)
	return nil
}

// Weekly 產出星期號碼統計 PDF
func (a *App) Weekly(ctx context.Context) error {
	ds, err := a.draws(ctx)
	if err != nil {
		return err
	}
	rep := weekly.Build(ds)
	if err := rep.Verify(); err != nil {
		return err
	}
	out := a.cfg.WeeklyPDFPath(a.now())
	if err := a.pdf().WriteWeeklyFile(out, rep); err != nil {
		return err
	}
	a.printf("星期號碼報表：%s（資料收集日期 %s）\n", out, rep.LastDate)
	return nil
}

// Serve 啟動 dashboard，阻塞到 Ctrl-C
func (a *App) Serve(ctx context.Context) error {
	if !a.store().Exists() {
		a.log.Warn("cli.serve.db_missing", slog.String("path", a.cfg.DBPath))
	}
	a.printf("dashboard：http://localhost%s（Ctrl-C 結束）\n", a.cfg.Addr)
	return a.serve(ctx, &svrcfg.SvrCfg{Log: a.log, Cfg: a.cfg, Now: a.now})
}

// Gap 單一號碼的間隔分析；withChart 時另外輸出折線圖
func (a *App) Gap(ctx context.Context, n int, withChart bool) error {
	ds, err := a.draws(ctx)
	if err != nil {
		return err
	}
	res, err := analyzer.GapOf(ds, n)
	if err != nil {
		return err
	}
	a.printf("%s", report.Table(fmt.Sprintf("號碼 %s 間隔分析", draw.Pad2(n)), gapKeys, gapPairs(res)))
	if !withChart {
		return nil
	}
	p, err := a.charts().WriteGap(a.cfg.ChartDirFor(a.now()), res)
	if err != nil {
		return err
	}
	a.printf("圖表：%s\n", p)
	return nil
}

var gapKeys = []string{"總期數", "出現次數", "目前間隔", "最大間隔", "最小間隔", "平均間隔", "中位數", "狀態"}

var gapStates = map[analyzer.GapState]string{
	analyzer.GapHot:          "熱號（近期可能再出）",
	analyzer.GapCold:         "冷號（久未出現）",
	analyzer.GapInsufficient: "資料不足",
}

func gapPairs(res analyzer.GapResult) map[string]string {
	m := map[string]string{}
	m["總期數"] = strconv.Itoa(res.Draws)
	m["出現次數"] = strconv.Itoa(res.Occurrences)
	m["目前間隔"] = strconv.Itoa(res.CurrentGap)
	m["狀態"] = gapStates[res.State]
	if res.Stats == nil {
		for _, k := range []string{"最大間隔", "最小間隔", "平均間隔", "中位數"} {
			m[k] = "-"
		}
		return m
	}
	m["最大間隔"] = strconv.Itoa(res.Stats.Max)
	m["最小間隔"] = strconv.Itoa(res.Stats.Min)
	m["平均間隔"] = strconv.FormatFloat(res.Stats.Avg, 'f', 2, 64)
	m["中位數"] = strconv.FormatFloat(res.Stats.Median, 'f', 1, 64)
	return m
}

// Calendar 印出日曆表格；xlsx 非空時另存檔
func (a *App) Calendar(ctx context.Context, opt calendar.Options, xlsx string) error {
	ds, err := a.draws(ctx)
	if err != nil {
		return err
	}
	if opt.Today.IsZero() {
		opt.Today = a.now()
	}
	g, err := calendar.Build(ds, opt)
	if err != nil {
		return err
	}
	for _, w := range g.Warnings {
		a.printf("警告：%s\n", w)
	}
	a.printf("%s\n%s", g.Title(), calendarText(g))
	if xlsx == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := calendar.WriteXLSX(g, &buf); err != nil {
		return err
	}
	if dir := filepath.Dir(xlsx); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrap(err, "create report dir")
		}
	}
	if err := os.WriteFile(xlsx, buf.Bytes(), 0o644); err != nil {
		return errs.Wrap(err, "write xlsx")
	}
	a.printf("XLSX：%s\n", xlsx)
	return nil
}

// calendarText 文字版：每組 月 / 日 / 星期 / 號碼，查詢命中的號碼加上 *
func calendarText(g *calendar.Grid) string {
	hit := map[string]bool{}
	for _, q := range g.Queries {
		hit[draw.Pad2(q.Number)] = true
	}
	header := make([]string, 0, calendar.Groups*4)
	for i := 0; i < calendar.Groups; i++ {
		header = append(header, "月", "日", "星期", "號碼")
	}
	rows := make([][]string, 0, calendar.Rows)
	for r := 0; r < calendar.Rows; r++ {
		row := make([]string, 0, len(header))
		for grp := 0; grp < calendar.Groups; grp++ {
			e := g.At(r, grp)
			nums := make([]string, 0, draw.PickSize)
			for _, n := range e.Numbers {
				if n == "" {
					continue
				}
				if hit[n] {
					n += "*"
				}
				nums = append(nums, n)
			}
			row = append(row, e.Month, e.Day, e.Weekday, strings.Join(nums, " "))
		}
		rows = append(rows, row)
	}
	return report.Grid(header, rows)
}
