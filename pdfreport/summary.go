package pdfreport

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-pdf/fpdf"

	"github.com/zintix-labs/lottolab/analyzer"
	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/report"
)

type section struct {
	title string
	lines []string
}

// Summary 摘要 PDF：標題、產出日期、各統計段落；charts 為要附上的 PNG 路徑
func (w *Writer) Summary(out io.Writer, s *report.Summary, charts []string) error {
	d := w.newDoc("P", "539 Analysis Report")
	today := w.now().Format("2006-01-02")

	d.SetHeaderFunc(func() {
		d.font("B", 16)
		d.CellFormat(0, 10, d.tr(d.pick("Lotto 539 Analysis Report", "今彩539 分析報告")), "", 1, "C", false, 0, "")
		d.font("", 12)
		d.CellFormat(0, 10, d.tr(d.pick("Generated: ", "產出日期：")+today), "", 1, "C", false, 0, "")
		d.Ln(5)
	})
	d.SetFooterFunc(func() {
		d.SetY(-15)
		d.font("", 10)
		d.CellFormat(0, 10, d.tr(fmt.Sprintf(d.pick("Page %d", "第 %d 頁"), d.PageNo())), "", 0, "C", false, 0, "")
	})
	d.AddPage()

	for _, sec := range summarySections(d, s) {
		d.font("B", 14)
		d.SetTextColor(0, 0, 128)
		d.CellFormat(0, 10, d.tr(sec.title), "", 1, "", false, 0, "")
		d.SetTextColor(0, 0, 0)
		d.font("", 12)
		for _, l := range sec.lines {
			d.CellFormat(0, 8, d.tr(l), "", 1, "", false, 0, "")
		}
		d.Ln(5)
	}

	for _, p := range charts {
		if _, err := os.Stat(p); err != nil {
			w.log.Warn("pdf.chart.skip", slog.String("path", p))
			continue
		}
		d.AddPage()
		d.ImageOptions(p, 15, 40, 180, 0, false, fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}, 0, "")
	}
	return d.output(out)
}

// WriteSummaryFile 寫到 path
func (w *Writer) WriteSummaryFile(path string, s *report.Summary, charts []string) error {
	if err := writeFile(path, func(out io.Writer) error { return w.Summary(out, s, charts) }); err != nil {
		return err
	}
	w.log.Info("pdf.saved", slog.String("path", path))
	return nil
}

func summarySections(d *doc, s *report.Summary) []section {
	nums := func(ncs []analyzer.NumberCount) []string {
		out := make([]string, 0, len(ncs))
		for _, nc := range ncs {
			out = append(out, fmt.Sprintf(d.pick("No. %s -> %d times", "號碼 %s ➜ %d 次"), draw.Pad2(nc.Number), nc.Count))
		}
		return out
	}
	tails := make([]string, 0, len(s.TopTails))
	for _, t := range s.TopTails {
		tails = append(tails, fmt.Sprintf(d.pick("Tail %d -> %d times", "尾數 %d ➜ %d 次"), t.Tail, t.Count))
	}
	segs := make([]string, 0, len(s.Segments))
	for _, sg := range s.Segments {
		segs = append(segs, fmt.Sprintf(d.pick("%s: %d times", "%s：%d 次"), sg.Label, sg.Count))
	}
	days := make([]string, 0, len(s.Weekdays))
	for _, wd := range s.Weekdays {
		days = append(days, fmt.Sprintf(d.pick("%s: %d draws", "%s：%d 期"), d.pick(wd.Weekday.English(), wd.Weekday.Label()), wd.Count))
	}
	verdict := d.pick("consistent with uniform", "無法拒絕均勻分布")
	if !s.Uniformity.Uniform {
		verdict = d.pick("not uniform", "顯著偏離均勻分布")
	}

	return []section{
		{d.pick("Data range", "資料期間"), []string{
			fmt.Sprintf("%s ~ %s", s.Start, s.End),
			fmt.Sprintf(d.pick("%d draws", "共 %d 期"), s.Draws),
		}},
		{d.pick("Hot numbers (top 5)", "熱門號碼（前5）"), nums(s.Hot)},
		{d.pick("Cold numbers (bottom 5)", "冷門號碼（後5）"), nums(s.Cold)},
		{d.pick("Odd / even", "奇偶比例"), []string{
			fmt.Sprintf(d.pick("Odd: %.1f%%", "奇數：%.1f%%"), s.OddEven.OddRatio),
			fmt.Sprintf(d.pick("Even: %.1f%%", "偶數：%.1f%%"), s.OddEven.EvenRatio),
		}},
		{d.pick("Tail digits (top 3)", "尾數分布"), tails},
		{d.pick("Consecutive numbers", "連號期數"), []string{
			fmt.Sprintf(d.pick("%d draws contain a run (%d pairs)", "含連號的期數共 %d 期（%d 組）"), s.ConsecutiveDraws, s.ConsecutivePairs),
		}},
		{d.pick("Range segments", "區間分布"), segs},
		{d.pick("Weekday distribution", "星期分布"), days},
		{d.pick("Chi-square uniformity", "卡方均勻檢定"), []string{
			fmt.Sprintf("chi2=%.2f  dof=%d  p=%.4f  (%s)", s.Uniformity.Statistic, s.Uniformity.DoF, s.Uniformity.PValue, verdict),
		}},
	}
}
