package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zintix-labs/lottolab/analyzer"
	"github.com/zintix-labs/lottolab/calendar"
	"github.com/zintix-labs/lottolab/report"
	"github.com/zintix-labs/lottolab/server/httperr"
	"github.com/zintix-labs/lottolab/weekly"
)

const (
	mimePNG  = "image/png"
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// 檔案先寫進 buffer，產生失敗時還能回傳正確的錯誤狀態

// Chart 統計圖 PNG：hot_numbers / tail_digits / range_segments / odd_even_ratio
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "name"), ".png")
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.charts.Render(&buf, name, ds); err != nil {
		h.fail(w, "v1.chart", err)
		return
	}
	w.Header().Set("Content-Type", mimePNG)
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(buf.Bytes())
}

// GapChart 單一號碼間隔折線圖
func (h *Handler) GapChart(w http.ResponseWriter, r *http.Request) {
	n, err := numberParam(strings.TrimSuffix(chi.URLParam(r, "number"), ".png"))
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	res, err := analyzer.GapOf(ds, n)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	var buf bytes.Buffer
	if err := h.charts.GapTrend(&buf, res); err != nil {
		h.fail(w, "v1.chart.gap", err)
		return
	}
	w.Header().Set("Content-Type", mimePNG)
	_, _ = w.Write(buf.Bytes())
}

// CalendarXLSX 日曆表格下載
func (h *Handler) CalendarXLSX(w http.ResponseWriter, r *http.Request) {
	g, ok := h.grid(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := calendar.WriteXLSX(g, &buf); err != nil {
		h.fail(w, "v1.calendar.xlsx", err)
		return
	}
	h.file(w, mimeXLSX, fmt.Sprintf("calendar_%s.xlsx", h.now().Format("20060102")), buf.Bytes())
}

// WeeklyPDF 星期號碼報表下載
func (h *Handler) WeeklyPDF(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	rep := weekly.Build(ds)
	if err := rep.Verify(); err != nil {
		h.fail(w, "v1.weekly.verify", err)
		return
	}
	var buf bytes.Buffer
	if err := h.pdf.Weekly(&buf, rep); err != nil {
		h.fail(w, "v1.weekly.pdf", err)
		return
	}
	h.file(w, mimePDF, fmt.Sprintf("weekly_number_summary_%s.pdf", h.now().Format("20060102")), buf.Bytes())
}

// SummaryPDF 摘要報表下載（不含圖表頁）
func (h *Handler) SummaryPDF(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	now := h.now()
	var buf bytes.Buffer
	if err := h.pdf.Summary(&buf, report.Build(ds, now), nil); err != nil {
		h.fail(w, "v1.summary.pdf", err)
		return
	}
	h.file(w, mimePDF, fmt.Sprintf("lotto539_report_%s.pdf", now.Format("2006-01-02")), buf.Bytes())
}
