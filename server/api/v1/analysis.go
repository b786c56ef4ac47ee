package v1

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zintix-labs/lottolab/analyzer"
	"github.com/zintix-labs/lottolab/calendar"
	"github.com/zintix-labs/lottolab/server/httperr"
	"github.com/zintix-labs/lottolab/weekly"
)

// Gap 單一號碼的間隔分析
func (h *Handler) Gap(w http.ResponseWriter, r *http.Request) {
	n, err := numberParam(chi.URLParam(r, "number"))
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
	h.json(w, res)
}

// GapTable 1~39 全部號碼的間隔摘要
func (h *Handler) GapTable(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	h.json(w, analyzer.GapTable(ds))
}

// GapPattern 相鄰號碼差值分布
func (h *Handler) GapPattern(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	h.json(w, analyzer.GapPattern(ds))
}

// calendarOptions 讀取 start / end / q1..q5 / c1..c5
func (h *Handler) calendarOptions(r *http.Request) (calendar.Options, error) {
	opt := calendar.Options{Today: h.now()}
	var err error
	if opt.Start, err = dateQuery(r, "start"); err != nil {
		return opt, err
	}
	if opt.End, err = dateQuery(r, "end"); err != nil {
		return opt, err
	}
	q := r.URL.Query()
	for i := 0; i < calendar.MaxQuery; i++ {
		k := string(rune('1' + i))
		opt.Queries[i] = q.Get("q" + k)
		opt.Colors[i] = strings.TrimSpace(q.Get("c" + k))
	}
	return opt, nil
}

func (h *Handler) grid(w http.ResponseWriter, r *http.Request) (*calendar.Grid, bool) {
	opt, err := h.calendarOptions(r)
	if err != nil {
		httperr.Errs(w, err)
		return nil, false
	}
	ds, ok := h.draws(w, r)
	if !ok {
		return nil, false
	}
	g, err := calendar.Build(ds, opt)
	if err != nil {
		httperr.Errs(w, err)
		return nil, false
	}
	return g, true
}

// Calendar 36×4 日曆表格（JSON）；查詢號碼的問題以 warnings 回傳
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	g, ok := h.grid(w, r)
	if !ok {
		return
	}
	h.json(w, g.View())
}

// Weekly 星期 × 號碼報表（JSON）
func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.draws(w, r)
	if !ok {
		return
	}
	rep := weekly.Build(ds)
	if err := rep.Verify(); err != nil {
		h.fail(w, "v1.weekly.verify", err)
		return
	}
	h.json(w, rep)
}
