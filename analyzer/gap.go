package analyzer

import (
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
)

// GapState 號碼冷熱狀態
type GapState string

const (
	GapHot          GapState = "hot"
	GapCold         GapState = "cold"
	GapInsufficient GapState = "insufficient"
)

// GapStats 歷史間隔統計
type GapStats struct {
	Max    int     `json:"max"`
	Min    int     `json:"min"`
	Avg    float64 `json:"avg"` // 四捨五入到小數兩位
	Median float64 `json:"median"`
}

// GapResult 單一號碼的間隔分析
//
// 位置 0 表示最新一期。CurrentGap 是最近一次出現的位置；從未出現時等於總期數。
// History 為相鄰兩次出現的位置差，由近到遠。
type GapResult struct {
	Number      int       `json:"number"`
	Draws       int       `json:"draws"`
	Occurrences int       `json:"occurrences"`
	CurrentGap  int       `json:"current_gap"`
	History     []int     `json:"history"`
	Stats       *GapStats `json:"stats,omitempty"`
	State       GapState  `json:"state"`
}

// Insufficient 出現次數不足，無法計算間隔
func (g GapResult) Insufficient() bool { return g.State == GapInsufficient }

// GapOf 計算號碼 target 的間隔分析。draws 會在內部依日期 / 期別由新到舊排序。
// target 不在 [1,39] 回傳 Warn。
func GapOf(draws []draw.Draw, target int) (GapResult, error) {
	if !draw.InRange(target) {
		return GapResult{}, errs.Warnf("number must be between %d and %d: %d", draw.MinNumber, draw.MaxNumber, target)
	}
	ordered := draw.SortDesc(draws)
	positions := make([]int, 0, len(ordered)/8+1)
	for i, d := range ordered {
		if d.Numbers.Contains(target) {
			positions = append(positions, i)
		}
	}
	r := AnalyzePositions(positions, len(ordered))
	r.Number = target
	return r, nil
}

// AnalyzePositions 由出現位置（遞增，0 = 最新）計算間隔結果
func AnalyzePositions(positions []int, total int) GapResult {
	r := GapResult{Draws: total, Occurrences: len(positions), History: GapsFromPositions(positions)}
	if len(positions) > 0 {
		r.CurrentGap = positions[0]
	} else {
		r.CurrentGap = total
	}
	if len(r.History) == 0 {
		r.State = GapInsufficient
		return r
	}
	r.Stats = gapStats(r.History)
	r.State = ClassifyGap(r.CurrentGap, r.Stats.Avg)
	return r
}

// GapsFromPositions 相鄰出現位置的差；重複位置視為同一次出現。
// [0,5,5,12] -> [5,7]
func GapsFromPositions(positions []int) []int {
	uniq := slices.Compact(slices.Clone(positions))
	if len(uniq) < 2 {
		return []int{}
	}
	out := make([]int, 0, len(uniq)-1)
	for i := 1; i < len(uniq); i++ {
		out = append(out, uniq[i]-uniq[i-1])
	}
	return out
}

// ClassifyGap 目前間隔不超過平均間隔為 hot，否則 cold
func ClassifyGap(current int, avg float64) GapState {
	if float64(current) <= avg {
		return GapHot
	}
	return GapCold
}

func gapStats(gaps []int) *GapStats {
	xs := make([]float64, len(gaps))
	for i, g := range gaps {
		xs[i] = float64(g)
	}
	return &GapStats{
		Max:    slices.Max(gaps),
		Min:    slices.Min(gaps),
		Avg:    round2(stat.Mean(xs, nil)),
		Median: median(xs),
	}
}

// median 偶數筆取中間兩筆平均
func median(xs []float64) float64 {
	s := slices.Clone(xs)
	slices.Sort(s)
	n := len(s)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// GapTable 所有號碼的間隔分析（1~39）
func GapTable(draws []draw.Draw) []GapResult {
	ordered := draw.SortDesc(draws)
	positions := make([][]int, draw.MaxNumber+1)
	for i, d := range ordered {
		for _, n := range d.Numbers {
			if draw.InRange(n) {
				positions[n] = append(positions[n], i)
			}
		}
	}
	out := make([]GapResult, 0, draw.MaxNumber)
	for n := draw.MinNumber; n <= draw.MaxNumber; n++ {
		r := AnalyzePositions(positions[n], len(ordered))
		r.Number = n
		out = append(out, r)
	}
	return out
}
