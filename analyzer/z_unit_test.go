package analyzer_test

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/zintix-labs/lottolab/analyzer"
	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
)

func mk(period string, daysFromStart int, nums ...int) draw.Draw {
	var n draw.Numbers
	copy(n[:], nums)
	return draw.New(period, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, daysFromStart), n)
}

// 2024-01-01 為星期一
func fixture() []draw.Draw {
	return []draw.Draw{
		mk("001", 0, 1, 2, 3, 10, 20),
		mk("002", 1, 3, 4, 5, 10, 21),
		mk("003", 2, 2, 7, 15, 28, 39),
		mk("004", 3, 1, 2, 3, 4, 5),
	}
}

func TestFrequencySumsToFiveTimesDraws(t *testing.T) {
	draws := fixture()
	f := analyzer.CountFrequency(draws)
	sum := 0
	for n := draw.MinNumber; n <= draw.MaxNumber; n++ {
		sum += f.Count(n)
	}
	if sum != draw.PickSize*len(draws) || f.Total != sum {
		t.Fatalf("sum=%d total=%d want %d", sum, f.Total, draw.PickSize*len(draws))
	}
	if len(f.Ranked()) != draw.MaxNumber {
		t.Fatalf("ranked should list all numbers, got %d", len(f.Ranked()))
	}
}

func TestFrequencyStableTieBreak(t *testing.T) {
	f := analyzer.CountFrequency(fixture())
	// 2 與 3 都出現 3 次；2 在攤平序列中先出現
	top := f.Top(3)
	want := []analyzer.NumberCount{{Number: 2, Count: 3}, {Number: 3, Count: 3}, {Number: 1, Count: 2}}
	if diff := cmp.Diff(want, top); diff != "" {
		t.Fatalf("top mismatch (-want +got):\n%s", diff)
	}
	// 未出現號碼依號碼遞增排在最後（39 有出現）
	bottom := f.Bottom(2)
	want = []analyzer.NumberCount{{Number: 37, Count: 0}, {Number: 38, Count: 0}}
	if diff := cmp.Diff(want, bottom); diff != "" {
		t.Fatalf("bottom mismatch (-want +got):\n%s", diff)
	}
	asc := f.Sorted(1, true)
	if asc[0].Count != 0 {
		t.Fatalf("ascending first should be unseen: %v", asc)
	}
}

func TestHotAndCold(t *testing.T) {
	hc := analyzer.HotAndCold(fixture(), 5)
	if len(hc.Hot) != 5 || len(hc.Cold) != 5 {
		t.Fatalf("got %d hot %d cold", len(hc.Hot), len(hc.Cold))
	}
	if hc.Hot[0].Number != 2 {
		t.Fatalf("hottest got %v", hc.Hot[0])
	}
}

func TestOddEvenRatios(t *testing.T) {
	s := analyzer.OddEven(fixture())
	if s.Odd+s.Even != s.Total || s.Total != 20 {
		t.Fatalf("counts %+v", s)
	}
	if math.Abs(s.OddRatio+s.EvenRatio-100) > 0.02 {
		t.Fatalf("ratios do not sum to 100: %+v", s)
	}
	if z := analyzer.OddEven(nil); z.Total != 0 || z.OddRatio != 0 {
		t.Fatalf("empty input got %+v", z)
	}
}

func TestTailDigits(t *testing.T) {
	s := analyzer.TailDigits(fixture())
	if s.Total != 20 {
		t.Fatalf("total %d", s.Total)
	}
	// 尾數 0: 10,20,10  尾數 1: 1,21,1
	if s.Counts[0] != 3 || s.Counts[1] != 3 {
		t.Fatalf("counts %v", s.Counts)
	}
	top := s.Top(3)
	if len(top) != 3 || top[0].Count < top[2].Count {
		t.Fatalf("top %v", top)
	}
}

func TestRangeSegments(t *testing.T) {
	segs := analyzer.RangeSegments(fixture())
	if len(segs) != 4 || segs[0].Label != "01-10" || segs[3].Label != "31-39" {
		t.Fatalf("segments %v", segs)
	}
	total := 0
	for _, s := range segs {
		total += s.Count
	}
	if total != 20 {
		t.Fatalf("segment total %d", total)
	}
	if segs[0].Count != 15 || segs[3].Count != 1 {
		t.Fatalf("segment counts %v", segs)
	}
}

func TestWeekdays(t *testing.T) {
	ws := analyzer.Weekdays(fixture())
	if len(ws) != 7 || ws[0].Weekday != draw.Monday || ws[0].Count != 1 || ws[6].Count != 0 {
		t.Fatalf("weekdays %v", ws)
	}
	m := analyzer.WeekdayNumbers(fixture())
	if m.Counts[draw.Thursday][5] != 1 || m.Totals[draw.Thursday] != 5 {
		t.Fatalf("matrix thursday %v", m.Counts[draw.Thursday])
	}
	if p := m.Percent(draw.Thursday, 5); p != 20 {
		t.Fatalf("percent got %v", p)
	}
	rows := m.Rows()
	if len(rows) != 7 || len(rows[0].Counts) != draw.MaxNumber || rows[0].Counts[0] != 1 {
		t.Fatalf("rows %v", rows[0])
	}
}

func TestConsecutiveOf(t *testing.T) {
	cases := []struct {
		in   draw.Numbers
		want int
	}{
		{draw.Numbers{3, 4, 5, 10, 20}, 2},
		{draw.Numbers{1, 2, 3, 4, 5}, 4},
		{draw.Numbers{2, 7, 15, 28, 39}, 0},
		{draw.Numbers{20, 5, 4, 10, 3}, 2},
	}
	for _, c := range cases {
		if got := analyzer.ConsecutiveOf(c.in); got != c.want {
			t.Fatalf("ConsecutiveOf(%v) got %d want %d", c.in, got, c.want)
		}
	}
}

func TestConsecutive(t *testing.T) {
	st := analyzer.Consecutive(fixture())
	// 001: 1-2,2-3 =2; 002: 3-4,4-5 =2; 003: 0; 004: 4
	if st.TotalPairs != 8 || st.DrawsWithRun != 3 {
		t.Fatalf("got %+v", st)
	}
	want := []analyzer.PairsCount{{Pairs: 0, Draws: 1}, {Pairs: 2, Draws: 2}, {Pairs: 4, Draws: 1}}
	if !slices.Equal(st.Distribution, want) {
		t.Fatalf("distribution %v", st.Distribution)
	}
	if st.PerDraw[3].Period != "004" || st.PerDraw[3].Pairs != 4 {
		t.Fatalf("per draw %v", st.PerDraw)
	}
}

func TestGapsFromPositions(t *testing.T) {
	if got := analyzer.GapsFromPositions([]int{0, 5, 5, 12}); !slices.Equal(got, []int{5, 7}) {
		t.Fatalf("got %v", got)
	}
	r := analyzer.AnalyzePositions([]int{0, 5, 5, 12}, 20)
	want := analyzer.GapResult{
		Draws:       20,
		Occurrences: 4,
		CurrentGap:  0,
		History:     []int{5, 7},
		Stats:       &analyzer.GapStats{Max: 7, Min: 5, Avg: 6.0, Median: 6.0},
		State:       analyzer.GapHot,
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Fatalf("gap result mismatch (-want +got):\n%s", diff)
	}
}

func TestGapInsufficientAndNeverSeen(t *testing.T) {
	r := analyzer.AnalyzePositions([]int{3}, 10)
	if !r.Insufficient() || r.Stats != nil || r.CurrentGap != 3 {
		t.Fatalf("single occurrence got %+v", r)
	}
	r = analyzer.AnalyzePositions(nil, 10)
	if !r.Insufficient() || r.CurrentGap != 10 {
		t.Fatalf("never seen got %+v", r)
	}
}

func TestGapOf(t *testing.T) {
	// 由新到舊：004(1,2,3,4,5) 003(2,...) 002(3,...) 001(1,2,3,...)
	r, err := analyzer.GapOf(fixture(), 2)
	if err != nil {
		t.Fatalf("gap: %v", err)
	}
	if !slices.Equal(r.History, []int{1, 2}) || r.CurrentGap != 0 || r.State != analyzer.GapHot {
		t.Fatalf("got %+v", r)
	}
	r, _ = analyzer.GapOf(fixture(), 39)
	if r.CurrentGap != 1 || !r.Insufficient() {
		t.Fatalf("39 got %+v", r)
	}
	if _, err := analyzer.GapOf(fixture(), 40); !errs.IsWarn(err) {
		t.Fatalf("expected warn, got %v", err)
	}
	if got := analyzer.ClassifyGap(9, 6.5); got != analyzer.GapCold {
		t.Fatalf("classify got %s", got)
	}
	if tbl := analyzer.GapTable(fixture()); len(tbl) != draw.MaxNumber || tbl[1].Number != 2 {
		t.Fatalf("gap table %v", tbl[:2])
	}
}

func TestGapPattern(t *testing.T) {
	got := analyzer.GapPattern([]draw.Draw{mk("x", 0, 1, 2, 4, 7, 11)})
	want := []analyzer.GapCount{{Gap: 1, Count: 1}, {Gap: 2, Count: 1}, {Gap: 3, Count: 1}, {Gap: 4, Count: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("gap pattern mismatch (-want +got):\n%s", diff)
	}
}

func TestUniformity(t *testing.T) {
	// 1~35 各出現一次
	var draws []draw.Draw
	for i := 0; i < 7; i++ {
		b := i*5 + 1
		if b+4 > draw.MaxNumber {
			break
		}
		draws = append(draws, mk("u", i, b, b+1, b+2, b+3, b+4))
	}
	u := analyzer.Uniformity(analyzer.CountFrequency(draws))
	if u.DoF != 38 {
		t.Fatalf("dof %d", u.DoF)
	}
	skew := analyzer.Uniformity(analyzer.CountFrequency([]draw.Draw{
		mk("a", 0, 1, 2, 3, 4, 5), mk("b", 1, 1, 2, 3, 4, 5), mk("c", 2, 1, 2, 3, 4, 5),
		mk("d", 3, 1, 2, 3, 4, 5), mk("e", 4, 1, 2, 3, 4, 5), mk("f", 5, 1, 2, 3, 4, 5),
	}))
	if skew.Uniform || skew.PValue >= analyzer.Alpha {
		t.Fatalf("skewed sample judged uniform: %+v", skew)
	}
	if z := analyzer.Uniformity(analyzer.CountFrequency(nil)); !z.Uniform || z.PValue != 1 {
		t.Fatalf("empty got %+v", z)
	}
}
