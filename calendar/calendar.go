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

// Package calendar 把開獎紀錄排成 A3 月曆式表格。
//
// 版面固定 36 列 × 4 組，每組為 月 / 日 / 星期 / 5 個號碼，共 144 格；
// 第 r 列第 g 組放第 r+36*g 筆（由舊到新）。不足 144 筆以空白補齊。
// 查詢號碼最多 5 個，各自配色，命中的號碼格塗上該色，其餘格子使用所屬組的底色。
package calendar

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
)

const (
	Rows     = 36
	Groups   = 4
	Capacity = Rows * Groups
	MaxQuery = 5
)

// DefaultColors 查詢號碼預設配色
var DefaultColors = [MaxQuery]string{"#fca5a5", "#fdba74", "#fcd34d", "#86efac", "#93c5fd"}

// GroupColors 各組底色
var GroupColors = [Groups]string{"#fef3c7", "#e0f2fe", "#ede9fe", "#dcfce7"}

// Options 表格條件。零值日期表示使用預設範圍。
type Options struct {
	Start   time.Time
	End     time.Time
	Queries [MaxQuery]string
	Colors  [MaxQuery]string // 空字串使用 DefaultColors
	Today   time.Time        // 零值使用 time.Now()
}

// Query 有效的查詢號碼
type Query struct {
	Number int    `json:"number"`
	Color  string `json:"color"`
}

// Entry 一格（一期）
type Entry struct {
	Blank   bool                  `json:"blank"`
	Period  string                `json:"period,omitempty"`
	Date    string                `json:"date,omitempty"`
	Month   string                `json:"month"`
	Day     string                `json:"day"`
	Weekday string                `json:"weekday"`
	Numbers [draw.PickSize]string `json:"numbers"` // 升冪、補零兩位
	Colors  [draw.PickSize]string `json:"colors"`  // 每個號碼格的底色
	Group   int                   `json:"group"`
	Bg      string                `json:"bg"` // 組底色（月 / 日 / 星期 格）
}

// Grid 月曆表格
type Grid struct {
	Start    time.Time       `json:"-"`
	End      time.Time       `json:"-"`
	Filled   int             `json:"filled"` // 非空白格數
	Entries  [Capacity]Entry `json:"-"`
	Queries  []Query         `json:"queries"`
	Warnings []string        `json:"warnings"`
}

// At 第 row 列第 group 組
func (g *Grid) At(row, group int) Entry {
	return g.Entries[row+Rows*group]
}

// Blank 空白格數
func (g *Grid) Blank() int { return Capacity - g.Filled }

// Title 表頭，例如 今彩539（起始日：2024/01/02，結束日：2024/06/28）
func (g *Grid) Title() string {
	return fmt.Sprintf("今彩539（起始日：%s，結束日：%s）", fmtSlash(g.Start), fmtSlash(g.End))
}

// DefaultRange 預設區間：結束日 = min(today, 最新開獎日)；起始日 = 結束日以前最新 144 期中最早的日期
func DefaultRange(draws []draw.Draw, today time.Time) (time.Time, time.Time) {
	if len(draws) == 0 {
		return time.Time{}, time.Time{}
	}
	desc := draw.SortDesc(draws)
	end := desc[0].Date
	if t := draw.DateOnly(today); t.Before(end) {
		end = t
	}
	return startFor(desc, end), end
}

func startFor(desc []draw.Draw, end time.Time) time.Time {
	var start time.Time
	n := 0
	for _, d := range desc {
		if d.Date.After(end) {
			continue
		}
		start = d.Date
		n++
		if n == Capacity {
			break
		}
	}
	return start
}

// Build 依條件建立表格。Start 晚於 End 回傳 Warn；查詢號碼錯誤只產生警告。
func Build(draws []draw.Draw, opt Options) (*Grid, error) {
	if opt.Today.IsZero() {
		opt.Today = time.Now()
	}
	defStart, defEnd := DefaultRange(draws, opt.Today)
	start, end := opt.Start, opt.End
	if end.IsZero() {
		end = defEnd
	}
	if start.IsZero() {
		if opt.End.IsZero() {
			start = defStart
		} else {
			start = startFor(draw.SortDesc(draws), end)
		}
	}
	start, end = draw.DateOnly(start), draw.DateOnly(end)
	if start.After(end) {
		return nil, errs.Warnf("start date %s is after end date %s", start.Format(draw.DateLayout), end.Format(draw.DateLayout))
	}

	g := &Grid{Start: start, End: end, Queries: []Query{}, Warnings: []string{}}
	g.Queries, g.Warnings = parseQueries(opt.Queries, opt.Colors)

	// 區間內最新 144 期，再由舊到新排列
	picked := make([]draw.Draw, 0, Capacity)
	for _, d := range draw.SortDesc(draws) {
		if d.Date.Before(start) || d.Date.After(end) {
			continue
		}
		picked = append(picked, d)
		if len(picked) == Capacity {
			break
		}
	}
	slices.Reverse(picked)
	if len(picked) > 0 {
		g.Start = picked[0].Date
		g.End = picked[len(picked)-1].Date
	}

	colorOf := make(map[int]string, len(g.Queries))
	for _, q := range g.Queries {
		colorOf[q.Number] = q.Color
	}
	for i := range g.Entries {
		group := i / Rows
		e := Entry{Blank: true, Group: group, Bg: GroupColors[group]}
		for k := range e.Colors {
			e.Colors[k] = e.Bg
		}
		if i < len(picked) {
			fill(&e, picked[i], colorOf)
			g.Filled++
		}
		g.Entries[i] = e
	}
	return g, nil
}

func fill(e *Entry, d draw.Draw, colorOf map[int]string) {
	e.Blank = false
	e.Period = d.Period
	e.Date = d.DateString()
	e.Month = fmt.Sprintf("%02d", int(d.Date.Month()))
	e.Day = fmt.Sprintf("%02d", d.Date.Day())
	e.Weekday = d.Weekday.Label()
	for k, n := range d.Numbers.Sorted() {
		e.Numbers[k] = draw.Pad2(n)
		if c, ok := colorOf[n]; ok {
			e.Colors[k] = c
		}
	}
}

// parseQueries 空白略過；非整數或超出範圍、重複值產生警告且不套用
func parseQueries(raw [MaxQuery]string, colors [MaxQuery]string) ([]Query, []string) {
	out := []Query{}
	warns := []string{}
	used := map[int]bool{}
	for i, r := range raw {
		s := strings.TrimSpace(r)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil || !draw.InRange(n) {
			warns = append(warns, fmt.Sprintf("查詢號碼 %d 僅能輸入 1~39 的整數：%q", i+1, s))
			continue
		}
		if used[n] {
			warns = append(warns, fmt.Sprintf("查詢號碼 %s 輸入重複，已忽略", draw.Pad2(n)))
			continue
		}
		used[n] = true
		c := strings.TrimSpace(colors[i])
		if c == "" {
			c = DefaultColors[i]
		}
		out = append(out, Query{Number: n, Color: c})
	}
	return out, warns
}

func fmtSlash(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2006/01/02")
}

// View JSON 輸出用：36 列，每列 4 組
type View struct {
	Title    string    `json:"title"`
	Start    string    `json:"start"`
	End      string    `json:"end"`
	Filled   int       `json:"filled"`
	Rows     [][]Entry `json:"rows"`
	Queries  []Query   `json:"queries"`
	Warnings []string  `json:"warnings"`
}

func (g *Grid) View() View {
	v := View{
		Title:    g.Title(),
		Start:    dateOrEmpty(g.Start),
		End:      dateOrEmpty(g.End),
		Filled:   g.Filled,
		Rows:     make([][]Entry, Rows),
		Queries:  g.Queries,
		Warnings: g.Warnings,
	}
	for r := 0; r < Rows; r++ {
		v.Rows[r] = make([]Entry, Groups)
		for grp := 0; grp < Groups; grp++ {
			v.Rows[r][grp] = g.At(r, grp)
		}
	}
	return v
}

func dateOrEmpty(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(draw.DateLayout)
}
