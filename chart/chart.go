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

// Package chart 將統計結果繪製成 PNG。
//
// 預設字型只含拉丁字元，所以標題與軸名稱使用英文；
// 設定 font_path 指向 CJK TTF 後，標籤改用中文。
package chart

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/sync/errgroup"

	"github.com/zintix-labs/lottolab/analyzer"
	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
	"github.com/zintix-labs/lottolab/logger"
)

// 圖表名稱，同時是輸出檔名（不含副檔名）
const (
	HotNumbers    = "hot_numbers"
	TailDigits    = "tail_digits"
	RangeSegments = "range_segments"
	OddEvenRatio  = "odd_even_ratio"
)

// Names 批次輸出的圖表
var Names = []string{HotNumbers, TailDigits, RangeSegments, OddEvenRatio}

const (
	Width  = 1000
	Height = 500
	TopN   = 10 // 熱門號碼長條數
)

var (
	colorHot  = drawing.ColorFromHex("e4572e")
	colorTail = drawing.ColorFromHex("4e79a7")
	colorSeg  = drawing.ColorFromHex("59a14f")
	colorOdd  = drawing.ColorFromHex("f28e2b")
	colorEven = drawing.ColorFromHex("76b7b2")
	colorGap  = drawing.ColorFromHex("b07aa1")
)

// Renderer 繪圖器；font 為 nil 時使用 go-chart 內建字型
type Renderer struct {
	font *truetype.Font
	log  *slog.Logger
}

// New 建立 Renderer；fontPath 讀取失敗時回傳 Warn 並退回內建字型
func New(fontPath string, log *slog.Logger) (*Renderer, error) {
	r := &Renderer{log: logger.OrDiscard(log)}
	if fontPath == "" {
		return r, nil
	}
	f, err := LoadFont(fontPath)
	if err != nil {
		r.log.Warn("chart.font", slog.String("path", fontPath), slog.String("err", errs.Message(err)))
		return r, err
	}
	r.font = f
	return r, nil
}

// LoadFont 讀取 TTF
func LoadFont(path string) (*truetype.Font, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.WrapAs(errs.Warn, err, "read font file")
	}
	f, err := truetype.Parse(b)
	if err != nil {
		return nil, errs.WrapAs(errs.Warn, err, "parse font file")
	}
	return f, nil
}

func (r *Renderer) label(en, zh string) string {
	if r.font != nil {
		return zh
	}
	return en
}

// Render 依名稱繪製
func (r *Renderer) Render(w io.Writer, name string, draws []draw.Draw) error {
	switch name {
	case HotNumbers:
		return r.HotNumbers(w, draws)
	case TailDigits:
		return r.TailDigits(w, draws)
	case RangeSegments:
		return r.RangeSegments(w, draws)
	case OddEvenRatio:
		return r.OddEven(w, draws)
	default:
		return errs.Warnf("unknown chart: %q", name)
	}
}

// HotNumbers 出現次數前 10 名長條圖
func (r *Renderer) HotNumbers(w io.Writer, draws []draw.Draw) error {
	top := analyzer.CountFrequency(draws).Top(TopN)
	bars := make([]gochart.Value, 0, len(top))
	for _, nc := range top {
		bars = append(bars, gochart.Value{Label: draw.Pad2(nc.Number), Value: float64(nc.Count)})
	}
	return r.bar(w, r.label("Hot Numbers Top 10", "熱門號碼 Top 10"), bars, colorHot)
}

// TailDigits 尾數 0~9 出現次數
func (r *Renderer) TailDigits(w io.Writer, draws []draw.Draw) error {
	tails := analyzer.TailDigits(draws).ByDigit()
	bars := make([]gochart.Value, 0, len(tails))
	for _, tc := range tails {
		bars = append(bars, gochart.Value{Label: fmt.Sprint(tc.Tail), Value: float64(tc.Count)})
	}
	return r.bar(w, r.label("Tail Digits", "尾數分布"), bars, colorTail)
}

// RangeSegments 四個號碼區間
func (r *Renderer) RangeSegments(w io.Writer, draws []draw.Draw) error {
	segs := analyzer.RangeSegments(draws)
	bars := make([]gochart.Value, 0, len(segs))
	for _, s := range segs {
		bars = append(bars, gochart.Value{Label: s.Label, Value: float64(s.Count)})
	}
	return r.bar(w, r.label("Range Segments", "號碼區間分布"), bars, colorSeg)
}

// OddEven 奇偶比例圓餅圖；沒有資料時回傳 Warn
func (r *Renderer) OddEven(w io.Writer, draws []draw.Draw) error {
	oe := analyzer.OddEven(draws)
	if oe.Total == 0 {
		return errs.NewWarn("no draws to chart")
	}
	pie := gochart.PieChart{
		Title:  r.label("Odd / Even", "奇偶比例"),
		Width:  Height,
		Height: Height,
		Font:   r.font,
		Values: []gochart.Value{
			{Label: fmt.Sprintf("%s %.1f%%", r.label("Odd", "奇數"), oe.OddRatio), Value: float64(oe.Odd), Style: gochart.Style{FillColor: colorOdd}},
			{Label: fmt.Sprintf("%s %.1f%%", r.label("Even", "偶數"), oe.EvenRatio), Value: float64(oe.Even), Style: gochart.Style{FillColor: colorEven}},
		},
	}
	if err := pie.Render(gochart.PNG, w); err != nil {
		return errs.Wrap(err, "render odd/even chart")
	}
	return nil
}

// GapTrend 單一號碼的間隔折線；歷史不足時回傳 Warn
func (r *Renderer) GapTrend(w io.Writer, res analyzer.GapResult) error {
	if len(res.History) == 0 {
		return errs.Warnf("number %s has no gap history", draw.Pad2(res.Number))
	}
	xs := make([]float64, len(res.History))
	ys := make([]float64, len(res.History))
	top := 1.0
	for i, g := range res.History {
		xs[i] = float64(i + 1)
		ys[i] = float64(g)
		top = max(top, ys[i])
	}
	ch := gochart.Chart{
		Title:  fmt.Sprintf(r.label("Gap Trend of %s", "號碼 %s 間隔走勢"), draw.Pad2(res.Number)),
		Width:  Width,
		Height: Height,
		Font:   r.font,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:  r.label("Occurrence", "出現序"),
			Range: &gochart.ContinuousRange{Min: 0, Max: float64(len(xs) + 1)},
		},
		YAxis: gochart.YAxis{
			Name:  r.label("Gap (draws)", "間隔期數"),
			Range: &gochart.ContinuousRange{Min: 0, Max: top + 1},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    draw.Pad2(res.Number),
				XValues: xs,
				YValues: ys,
				Style:   gochart.Style{StrokeColor: colorGap, StrokeWidth: 2, DotWidth: 4, DotColor: colorGap},
			},
		},
	}
	if err := ch.Render(gochart.PNG, w); err != nil {
		return errs.Wrap(err, "render gap chart")
	}
	return nil
}

func (r *Renderer) bar(w io.Writer, title string, bars []gochart.Value, c drawing.Color) error {
	if len(bars) == 0 {
		return errs.NewWarn("no data to chart")
	}
	top := 1.0
	for i := range bars {
		bars[i].Style = gochart.Style{FillColor: c, StrokeColor: c}
		top = max(top, bars[i].Value)
	}
	bc := gochart.BarChart{
		Title:    title,
		Width:    Width,
		Height:   Height,
		BarWidth: 50,
		Font:     r.font,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: bars,
	}
	if err := bc.Render(gochart.PNG, w); err != nil {
		return errs.Wrap(err, "render bar chart")
	}
	return nil
}

// WriteAll 將四張圖並行寫入 dir，依 Names 順序回傳成功的檔案路徑。
// 單張失敗只記錄，不影響其餘圖表。
func (r *Renderer) WriteAll(dir string, draws []draw.Draw) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "create chart dir")
	}
	done := make([]string, len(Names))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, name := range Names {
		i, name := i, name
		g.Go(func() error {
			p := filepath.Join(dir, name+".png")
			if err := r.writeFile(p, func(w io.Writer) error { return r.Render(w, name, draws) }); err != nil {
				r.log.Warn("chart.skip", slog.String("chart", name), slog.String("err", errs.Message(err)))
				return nil
			}
			r.log.Info("chart.saved", slog.String("path", p))
			done[i] = p
			return nil
		})
	}
	_ = g.Wait()
	paths := make([]string, 0, len(Names))
	for _, p := range done {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// WriteGap 輸出 gap_NN.png
func (r *Renderer) WriteGap(dir string, res analyzer.GapResult) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.Wrap(err, "create chart dir")
	}
	p := filepath.Join(dir, fmt.Sprintf("gap_%s.png", draw.Pad2(res.Number)))
	if err := r.writeFile(p, func(w io.Writer) error { return r.GapTrend(w, res) }); err != nil {
		return "", err
	}
	r.log.Info("chart.saved", slog.String("path", p))
	return p, nil
}

func (r *Renderer) writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create chart file")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errs.Wrap(cerr, "close chart file")
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return fn(f)
}
