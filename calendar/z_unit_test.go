package calendar_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/zintix-labs/lottolab/calendar"
	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// series n 期，每日一期；第 i 期號碼為 {i%35+1, ..., i%35+5}
func series(n int) []draw.Draw {
	out := make([]draw.Draw, 0, n)
	for i := 0; i < n; i++ {
		b := i%35 + 1
		out = append(out, draw.New(
			draw.Pad2(i/100)+draw.Pad2(i%100),
			base.AddDate(0, 0, i),
			draw.Numbers{b + 4, b + 3, b + 2, b + 1, b},
		))
	}
	return out
}

func TestBuildPadsTo144(t *testing.T) {
	draws := series(130)
	g, err := calendar.Build(draws, calendar.Options{Today: base.AddDate(1, 0, 0)})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if g.Filled != 130 || g.Blank() != 14 || len(g.Entries) != calendar.Capacity {
		t.Fatalf("filled=%d blank=%d", g.Filled, g.Blank())
	}
	if !g.Start.Equal(base) || !g.End.Equal(base.AddDate(0, 0, 129)) {
		t.Fatalf("effective range %v ~ %v", g.Start, g.End)
	}
	// 第 1 列第 2 組 = 第 36 筆
	e := g.At(0, 1)
	if e.Date != base.AddDate(0, 0, 36).Format(draw.DateLayout) {
		t.Fatalf("At(0,1) got %s", e.Date)
	}
	// 號碼升冪、補零
	first := g.At(0, 0)
	if first.Numbers != [5]string{"01", "02", "03", "04", "05"} || first.Month != "01" || first.Day != "01" || first.Weekday != "星期一" {
		t.Fatalf("first entry %+v", first)
	}
	last := g.At(calendar.Rows-1, calendar.Groups-1)
	if !last.Blank || last.Bg != calendar.GroupColors[3] {
		t.Fatalf("last entry should be blank with group bg: %+v", last)
	}
}

func TestBuildKeepsLatest144(t *testing.T) {
	g, err := calendar.Build(series(200), calendar.Options{Today: base.AddDate(1, 0, 0)})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if g.Filled != calendar.Capacity {
		t.Fatalf("filled %d", g.Filled)
	}
	if !g.Start.Equal(base.AddDate(0, 0, 56)) || !g.End.Equal(base.AddDate(0, 0, 199)) {
		t.Fatalf("range %v ~ %v", g.Start, g.End)
	}
}

func TestDefaultEndCappedByToday(t *testing.T) {
	today := base.AddDate(0, 0, 9)
	start, end := calendar.DefaultRange(series(30), today)
	if !end.Equal(today) || !start.Equal(base) {
		t.Fatalf("range %v ~ %v", start, end)
	}
}

func TestQueriesAndHighlight(t *testing.T) {
	opt := calendar.Options{
		Today:   base.AddDate(1, 0, 0),
		Queries: [5]string{"3", " ", "03", "abc", "40"},
		Colors:  [5]string{"", "", "#000000", "", ""},
	}
	g, err := calendar.Build(series(10), opt)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(g.Queries) != 1 || g.Queries[0].Number != 3 || g.Queries[0].Color != calendar.DefaultColors[0] {
		t.Fatalf("queries %+v", g.Queries)
	}
	// 重複 1 + 非整數 1 + 超出範圍 1
	if len(g.Warnings) != 3 {
		t.Fatalf("warnings %v", g.Warnings)
	}
	first := g.At(0, 0) // 01 02 03 04 05
	if first.Colors[2] != calendar.DefaultColors[0] {
		t.Fatalf("03 not highlighted: %v", first.Colors)
	}
	if first.Colors[0] != calendar.GroupColors[0] {
		t.Fatalf("unmatched cell should use group bg: %v", first.Colors)
	}
}

func TestStartAfterEnd(t *testing.T) {
	_, err := calendar.Build(series(10), calendar.Options{Start: base.AddDate(0, 0, 5), End: base})
	if !errs.IsWarn(err) {
		t.Fatalf("expected warn, got %v", err)
	}
}

func TestBuildEmpty(t *testing.T) {
	g, err := calendar.Build(nil, calendar.Options{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if g.Filled != 0 || g.Blank() != calendar.Capacity {
		t.Fatalf("got filled %d", g.Filled)
	}
	if v := g.View(); len(v.Rows) != calendar.Rows || len(v.Rows[0]) != calendar.Groups {
		t.Fatalf("view shape %d", len(v.Rows))
	}
}

func TestWriteXLSX(t *testing.T) {
	g, err := calendar.Build(series(40), calendar.Options{Today: base.AddDate(1, 0, 0), Queries: [5]string{"2"}})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := calendar.WriteXLSX(g, &buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	// A3 = 第 1 期月份；D3 = 第 1 期最小號碼
	if v, _ := f.GetCellValue("539", "A3"); v != "01" {
		t.Fatalf("A3 got %q", v)
	}
	if v, _ := f.GetCellValue("539", "D3"); v != "01" {
		t.Fatalf("D3 got %q", v)
	}
	if v, _ := f.GetCellValue("539", "I2"); v != "月" {
		t.Fatalf("I2 got %q", v)
	}
}
