package analyzer

import (
	"slices"

	"github.com/zintix-labs/lottolab/draw"
)

// ConsecutiveOf 排序後相鄰差 1 的組數。
// {3,4,5,10,20} -> 2，{1,2,3,4,5} -> 4，{2,7,15,28,39} -> 0
func ConsecutiveOf(nums draw.Numbers) int {
	s := nums.Sorted()
	pairs := 0
	for i := 0; i < len(s)-1; i++ {
		if s[i]+1 == s[i+1] {
			pairs++
		}
	}
	return pairs
}

// PeriodPairs 單期連號組數
type PeriodPairs struct {
	Period string `json:"period"`
	Pairs  int    `json:"pairs"`
}

// PairsCount 連號組數與期數
type PairsCount struct {
	Pairs int `json:"pairs"`
	Draws int `json:"draws"`
}

// ConsecutiveStat 連號統計
type ConsecutiveStat struct {
	PerDraw      []PeriodPairs `json:"per_draw"` // 依輸入順序
	TotalPairs   int           `json:"total_pairs"`
	DrawsWithRun int           `json:"draws_with_run"`
	Distribution []PairsCount  `json:"distribution"` // 依組數由小到大
}

// Consecutive 逐期計算連號
func Consecutive(draws []draw.Draw) ConsecutiveStat {
	st := ConsecutiveStat{PerDraw: make([]PeriodPairs, 0, len(draws)), Distribution: []PairsCount{}}
	dist := map[int]int{}
	for _, d := range draws {
		p := ConsecutiveOf(d.Numbers)
		st.PerDraw = append(st.PerDraw, PeriodPairs{Period: d.Period, Pairs: p})
		st.TotalPairs += p
		if p > 0 {
			st.DrawsWithRun++
		}
		dist[p]++
	}
	for p, n := range dist {
		st.Distribution = append(st.Distribution, PairsCount{Pairs: p, Draws: n})
	}
	slices.SortFunc(st.Distribution, func(a, b PairsCount) int { return a.Pairs - b.Pairs })
	return st
}
