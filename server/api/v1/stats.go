package v1

import (
	"context"
	"net/http"

	"github.com/zintix-labs/lottolab/analyzer"
	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/report"
	"github.com/zintix-labs/lottolab/server/httperr"
)

// Stats 總期數與日期範圍
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	st, err := h.src.Stats(ctx)
	if err != nil {
		h.fail(w, "v1.stats", err)
		return
	}
	h.json(w, st)
}

// Summary 摘要；format=json（預設）/ yaml / table
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	rd, ok := report.RenderFor(format)
	if !ok {
		httperr.Errs(w, errs.Warnf("unsupported format: %q", format))
		return
	}
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}

	s := report.Build(ds, h.now())
	switch rd.(type) {
	case report.JSONRender:
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	case report.YAMLRender:
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	if err := s.WriteWith(w, rd); err != nil {
		h.log.Warn("v1.summary.write", "err", err)
	}
}

// Frequency 1~39 出現次數（依次數排序）
func (h *Handler) Frequency(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	f := analyzer.CountFrequency(ds)
	h.json(w, map[string]any{
		"draws":   f.Draws,
		"total":   f.Total,
		"ignored": f.Ignored,
		"ranked":  f.Ranked(),
	})
}

// Hot 熱門與冷門號碼；top 預設 10
func (h *Handler) Hot(w http.ResponseWriter, r *http.Request) {
	top, err := intQuery(r, "top", 10, 1, 39)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	h.json(w, analyzer.HotAndCold(ds, top))
}

// Tail 尾數分布
func (h *Handler) Tail(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	ts := analyzer.TailDigits(ds)
	h.json(w, map[string]any{
		"total":    ts.Total,
		"by_digit": ts.ByDigit(),
		"top":      ts.Top(3),
	})
}

// OddEven 奇偶統計
func (h *Handler) OddEven(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	h.json(w, analyzer.OddEven(ds))
}

// Segments 四個號碼區間
func (h *Handler) Segments(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	h.json(w, analyzer.RangeSegments(ds))
}

// Consecutive 連號統計
func (h *Handler) Consecutive(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	h.json(w, analyzer.Consecutive(ds))
}

// Weekday 各星期開獎次數與星期 × 號碼百分比
func (h *Handler) Weekday(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	h.json(w, map[string]any{
		"draws":   analyzer.Weekdays(ds),
		"numbers": analyzer.WeekdayNumbers(ds).Rows(),
	})
}

// Latest 最新 n 筆（預設 10，最多 500）
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	n, err := intQuery(r, "n", 10, 1, 500)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	ds, err := h.src.Latest(ctx, n)
	if err != nil {
		h.fail(w, "v1.latest", err)
		return
	}
	h.json(w, ds)
}

// Runs 最近的匯入紀錄
func (h *Handler) Runs(w http.ResponseWriter, r *http.Request) {
	n, err := intQuery(r, "n", 20, 1, 200)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	runs, err := h.src.Runs(ctx, n)
	if err != nil {
		h.fail(w, "v1.runs", err)
		return
	}
	h.json(w, runs)
}

// Flush 清空資料快取（匯入新資料後使用）
func (h *Handler) Flush(w http.ResponseWriter, r *http.Request) {
	h.src.Flush()
	w.WriteHeader(http.StatusNoContent)
}
