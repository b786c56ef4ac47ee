package pdfreport

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/weekly"
)

const (
	margin   = 3.0
	labelW   = 16.0
	rowH     = 7.0
	cellFont = 6.5
)

var enLabels = map[string]string{
	weekly.LabelMonTue: "Mon+Tue",
	weekly.LabelWedThu: "Wed+Thu",
	weekly.LabelFriSun: "Fri-Sun",
	weekly.LabelTotal:  "Mon-Sun",
	weekly.LabelVerify: "Check",
}

// Weekly 橫向 A4 的星期 × 號碼表；每列依類型上底色
func (w *Writer) Weekly(out io.Writer, rep *weekly.Report) error {
	d := w.newDoc("L", "539 Weekday Number Summary")
	d.SetMargins(margin, margin*2, margin)
	d.SetAutoPageBreak(true, margin*2)
	d.AddPage()

	pw, _ := d.GetPageSize()
	numW := (pw - 2*margin - labelW) / draw.MaxNumber

	d.font("B", 14)
	d.CellFormat(0, 9, d.tr(d.pick("Lotto 539 Number Counts by Weekday", "539 號碼出現次數統計")), "", 1, "C", false, 0, "")
	d.font("", 7)
	d.CellFormat(0, 5, d.tr(d.pick("Data collected through: ", "資料收集日期：")+rep.LastDate), "", 1, "L", false, 0, "")
	d.Ln(2)

	d.SetLineWidth(0.4)
	d.font("B", cellFont)
	d.SetFillColor(245, 245, 245)
	for i, h := range weekly.Header() {
		cw := numW
		if i == 0 {
			cw = labelW
			h = d.pick("Day", h)
		}
		d.CellFormat(cw, rowH, d.tr(h), "1", 0, "C", true, 0, "")
	}
	d.Ln(-1)

	d.font("", cellFont)
	for _, row := range rep.Rows {
		r, g, b := row.Color.Ints()
		d.SetFillColor(r, g, b)
		d.CellFormat(labelW, rowH, d.tr(rowLabel(d, row)), "1", 0, "C", true, 0, "")
		for _, c := range row.Counts {
			d.CellFormat(numW, rowH, fmt.Sprint(c), "1", 0, "C", true, 0, "")
		}
		d.Ln(-1)
	}
	return d.output(out)
}

// WriteWeeklyFile 寫到 path
func (w *Writer) WriteWeeklyFile(path string, rep *weekly.Report) error {
	if err := writeFile(path, func(out io.Writer) error { return w.Weekly(out, rep) }); err != nil {
		return err
	}
	w.log.Info("pdf.saved", slog.String("path", path), slog.String("last_date", rep.LastDate))
	return nil
}

func rowLabel(d *doc, row weekly.Row) string {
	if d.cjk {
		return row.Label
	}
	if row.Kind == weekly.KindWeekday {
		if wd, err := draw.ParseWeekday(row.Label); err == nil {
			return wd.English()
		}
	}
	if en, ok := enLabels[row.Label]; ok {
		return en
	}
	return row.Label
}
