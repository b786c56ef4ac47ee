// Package weekly 建立「星期 × 號碼」出現次數報表。
//
// 列的順序固定：
//
//	一, 二, 一、二加總, 三, 四, 三、四加總, 五, 六, 日, 五、六、日加總, 一到日所有加總, 總計(驗證)
//
// 「一到日所有加總」由七個星期列相加；「總計(驗證)」直接從原始號碼重新計數，
// 兩者不一致代表資料或彙總有誤（Verify）。
package weekly

import (
	"fmt"

	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
)

// Kind 列類型
type Kind uint8

const (
	KindWeekday Kind = iota
	KindCombined
	KindTotal
	KindVerify
)

const (
	LabelMonTue = "一、二加總"
	LabelWedThu = "三、四加總"
	LabelFriSun = "五、六、日加總"
	LabelTotal  = "一到日所有加總"
	LabelVerify = "總計(驗證)"
)

// RGB 0~1 色彩分量（PDF 使用）
type RGB struct {
	R, G, B float64
}

// Hex #rrggbb
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", to255(c.R), to255(c.G), to255(c.B))
}

// Ints 0~255 分量
func (c RGB) Ints() (int, int, int) {
	return to255(c.R), to255(c.G), to255(c.B)
}

func to255(v float64) int {
	return int(v*255 + 0.5)
}

var (
	colorMonTue   = RGB{0.85, 0.88, 0.95}
	colorWedThu   = RGB{0.88, 0.95, 0.85}
	colorFriSun   = RGB{0.9, 0.85, 0.95}
	colorCombined = RGB{1, 1, 0.8}
	colorTotal    = RGB{1, 0.95, 0.8}
	colorVerify   = RGB{0.85, 0.92, 0.98}
)

// Row 一列
type Row struct {
	Label  string              `json:"label"`
	Kind   Kind                `json:"kind"`
	Counts [draw.MaxNumber]int `json:"counts"` // index 0 = 號碼 01
	Sum    int                 `json:"sum"`
	Color  RGB                 `json:"-"`
	Hex    string              `json:"color"`
}

// Count 號碼 n 的次數
func (r Row) Count(n int) int {
	if !draw.InRange(n) {
		return 0
	}
	return r.Counts[n-1]
}

// Report 星期號碼報表
type Report struct {
	Rows     []Row  `json:"rows"`
	LastDate string `json:"last_date"` // 最新開獎日；無資料為 N/A
	Draws    int    `json:"draws"`
}

// Build 建立報表；沒有資料時各列皆為 0
func Build(draws []draw.Draw) *Report {
	var byDay [7][draw.MaxNumber]int
	var verify [draw.MaxNumber]int
	for _, d := range draws {
		for _, n := range d.Numbers {
			if !draw.InRange(n) {
				continue
			}
			byDay[d.Weekday][n-1]++
			verify[n-1]++
		}
	}

	day := func(w draw.Weekday, c RGB) Row {
		return newRow(w.Short(), KindWeekday, byDay[w], c)
	}
	sum := func(label string, kind Kind, c RGB, ws ...draw.Weekday) Row {
		var acc [draw.MaxNumber]int
		for _, w := range ws {
			for i, v := range byDay[w] {
				acc[i] += v
			}
		}
		return newRow(label, kind, acc, c)
	}

	rep := &Report{Draws: len(draws), LastDate: "N/A"}
	rep.Rows = []Row{
		day(draw.Monday, colorMonTue),
		day(draw.Tuesday, colorMonTue),
		sum(LabelMonTue, KindCombined, colorCombined, draw.Monday, draw.Tuesday),
		day(draw.Wednesday, colorWedThu),
		day(draw.Thursday, colorWedThu),
		sum(LabelWedThu, KindCombined, colorCombined, draw.Wednesday, draw.Thursday),
		day(draw.Friday, colorFriSun),
		day(draw.Saturday, colorFriSun),
		day(draw.Sunday, colorFriSun),
		sum(LabelFriSun, KindCombined, colorCombined, draw.Friday, draw.Saturday, draw.Sunday),
		sum(LabelTotal, KindTotal, colorTotal, draw.Weekdays[:]...),
		newRow(LabelVerify, KindVerify, verify, colorVerify),
	}
	if len(draws) > 0 {
		rep.LastDate = draw.SortDesc(draws)[0].DateString()
	}
	return rep
}

func newRow(label string, kind Kind, counts [draw.MaxNumber]int, c RGB) Row {
	r := Row{Label: label, Kind: kind, Counts: counts, Color: c, Hex: c.Hex()}
	for _, v := range counts {
		r.Sum += v
	}
	return r
}

// Row 依標籤取列
func (r *Report) Row(label string) (Row, bool) {
	for _, row := range r.Rows {
		if row.Label == label {
			return row, true
		}
	}
	return Row{}, false
}

// Verify 檢查「一到日所有加總」與獨立計數的「總計(驗證)」逐欄相等
func (r *Report) Verify() error {
	total, ok1 := r.Row(LabelTotal)
	check, ok2 := r.Row(LabelVerify)
	if !ok1 || !ok2 {
		return errs.NewFatal("weekly report is missing total rows")
	}
	for i := range total.Counts {
		if total.Counts[i] != check.Counts[i] {
			return errs.Fatalf("weekly total mismatch at %s: %d != %d", draw.Pad2(i+1), total.Counts[i], check.Counts[i])
		}
	}
	return nil
}

// Header 欄名：星期, 01..39
func Header() []string {
	out := make([]string, 0, draw.MaxNumber+1)
	out = append(out, "星期")
	for n := draw.MinNumber; n <= draw.MaxNumber; n++ {
		out = append(out, draw.Pad2(n))
	}
	return out
}
