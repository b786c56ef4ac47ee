// Package v1 提供 dashboard 的唯讀 JSON / 檔案 API。
//
// 所有 handler 只讀：資料經 source 快取取得，統計即時計算，不寫資料庫也不寫檔案。
package v1

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zintix-labs/lottolab/chart"
	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/pdfreport"
	"github.com/zintix-labs/lottolab/report"
	"github.com/zintix-labs/lottolab/server/httperr"
	"github.com/zintix-labs/lottolab/server/netsvr"
	"github.com/zintix-labs/lottolab/server/source"
	"github.com/zintix-labs/lottolab/server/svrcfg"
)

// 單一請求的處理上限
const requestTimeout = 15 * time.Second

// Handler v1 API
type Handler struct {
	src    *source.Source
	charts *chart.Renderer
	pdf    *pdfreport.Writer
	log    *slog.Logger
	now    func() time.Time
}

// NewHandler sCfg 需先通過 Valid
func NewHandler(sCfg *svrcfg.SvrCfg) (*Handler, error) {
	if sCfg == nil || sCfg.Source == nil || sCfg.Charts == nil || sCfg.PDF == nil {
		return nil, errs.NewFatal("server config is not validated")
	}
	return &Handler{
		src:    sCfg.Source,
		charts: sCfg.Charts,
		pdf:    sCfg.PDF,
		log:    sCfg.Log,
		now:    sCfg.Now,
	}, nil
}

// Register 掛載 /v1 路由
func (h *Handler) Register(r netsvr.NetRouter) {
	r.Get("/stats", h.Stats)
	r.Get("/summary", h.Summary)
	r.Get("/frequency", h.Frequency)
	r.Get("/hot", h.Hot)
	r.Get("/tail", h.Tail)
	r.Get("/oddeven", h.OddEven)
	r.Get("/segments", h.Segments)
	r.Get("/consecutive", h.Consecutive)
	r.Get("/weekday", h.Weekday)
	r.Get("/latest", h.Latest)
	r.Get("/runs", h.Runs)
	r.Get("/gap", h.GapTable)
	r.Get("/gap/{number}", h.Gap)
	r.Get("/gap-pattern", h.GapPattern)
	r.Get("/calendar", h.Calendar)
	r.Get("/calendar.xlsx", h.CalendarXLSX)
	r.Get("/weekly", h.Weekly)
	r.Get("/weekly.pdf", h.WeeklyPDF)
	r.Get("/report.pdf", h.SummaryPDF)
	r.Get("/charts/{name}", h.Chart)
	r.Get("/charts/gap/{number}", h.GapChart)
	r.Post("/cache/flush", h.Flush)
}

// draws 取得全部資料（新到舊），失敗時直接回寫錯誤
func (h *Handler) draws(w http.ResponseWriter, r *http.Request) ([]draw.Draw, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	ds, err := h.src.Draws(ctx)
	if err != nil {
		h.fail(w, "v1.draws", err)
		return nil, false
	}
	return ds, true
}

func (h *Handler) fail(w http.ResponseWriter, msg string, err error) {
	httperr.Log(h.log, msg, err)
	httperr.Errs(w, err)
}

func (h *Handler) json(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := report.WriteJSON(w, v); err != nil {
		h.log.Warn("v1.encode", slog.Any("err", err))
	}
}

func (h *Handler) file(w http.ResponseWriter, contentType, name string, b []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	_, _ = w.Write(b)
}

// intQuery 讀取整數參數；空值回傳 def，超出 [lo, hi] 為 Warn
func intQuery(r *http.Request, key string, def, lo, hi int) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errs.Warnf("%s must be an integer", key)
	}
	if v < lo || v > hi {
		return 0, errs.Warnf("%s must be in [%d,%d]", key, lo, hi)
	}
	return v, nil
}

// dateQuery 空值回傳零值時間
func dateQuery(r *http.Request, key string) (time.Time, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return time.Time{}, nil
	}
	t, err := draw.ParseDate(s)
	if err != nil {
		return time.Time{}, errs.WrapAs(errs.Warn, err, key+" is not a valid date")
	}
	return t, nil
}

// numberParam 解析路徑上的號碼（1~39）
func numberParam(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errs.Warnf("number must be an integer: %q", s)
	}
	if !draw.InRange(n) {
		return 0, errs.Warnf("number out of range [%d,%d]: %d", draw.MinNumber, draw.MaxNumber, n)
	}
	return n, nil
}
