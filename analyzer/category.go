package analyzer

import (
	"math"
	"slices"

	"github.com/zintix-labs/lottolab/draw"
)

// OddEvenStat 奇偶統計，比例以百分比表示並四捨五入到小數兩位
type OddEvenStat struct {
	Odd       int     `json:"odd"`
	Even      int     `json:"even"`
	Total     int     `json:"total"`
	OddRatio  float64 `json:"odd_ratio"`
	EvenRatio float64 `json:"even_ratio"`
}

// OddEven 統計所有號碼的奇偶數量
func OddEven(draws []draw.Draw) OddEvenStat {
	s := OddEvenStat{}
	for _, d := range draws {
		for _, n := range d.Numbers {
			if n%2 == 1 {
				s.Odd++
			} else {
				s.Even++
			}
		}
	}
	s.Total = s.Odd + s.Even
	s.OddRatio = percent(s.Odd, s.Total)
	s.EvenRatio = percent(s.Even, s.Total)
	return s
}

// TailCount 尾數與次數
type TailCount struct {
	Tail  int `json:"tail"`
	Count int `json:"count"`
}

// TailStat 尾數 0~9 分布
type TailStat struct {
	Counts [10]int `json:"counts"`
	Total  int     `json:"total"`
	order  []int
}

// TailDigits 統計尾數（號碼 % 10）
func TailDigits(draws []draw.Draw) *TailStat {
	s := &TailStat{order: make([]int, 0, 10)}
	for _, d := range draws {
		for _, n := range d.Numbers {
			t := draw.Tail(n)
			if t < 0 {
				continue
			}
			if s.Counts[t] == 0 {
				s.order = append(s.order, t)
			}
			s.Counts[t]++
			s.Total++
		}
	}
	return s
}

// ByDigit 依尾數 0~9 排序輸出（只含出現過的尾數）
func (s *TailStat) ByDigit() []TailCount {
	out := make([]TailCount, 0, 10)
	for t, c := range s.Counts {
		if c > 0 {
			out = append(out, TailCount{Tail: t, Count: c})
		}
	}
	return out
}

// Top 最常見的 n 個尾數，同次數依首次出現順序
func (s *TailStat) Top(n int) []TailCount {
	out := make([]TailCount, 0, len(s.order))
	for _, t := range s.order {
		out = append(out, TailCount{Tail: t, Count: s.Counts[t]})
	}
	slices.SortStableFunc(out, func(a, b TailCount) int { return b.Count - a.Count })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// SegmentCount 區間統計
type SegmentCount struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Ratio float64 `json:"ratio"`
}

// RangeSegments 四個固定區間的號碼數量，依 01-10 ~ 31-39 順序輸出；範圍外號碼略過
func RangeSegments(draws []draw.Draw) []SegmentCount {
	var counts [5]int
	total := 0
	for _, d := range draws {
		for _, n := range d.Numbers {
			seg := draw.SegmentOf(n)
			if seg == draw.SegmentNone {
				continue
			}
			counts[seg]++
			total++
		}
	}
	out := make([]SegmentCount, 0, len(draw.Segments))
	for _, seg := range draw.Segments {
		out = append(out, SegmentCount{Label: seg.Label(), Count: counts[seg], Ratio: percent(counts[seg], total)})
	}
	return out
}

// GapCount 期內相鄰號碼差距與次數
type GapCount struct {
	Gap   int `json:"gap"`
	Count int `json:"count"`
}

// GapPattern 每期號碼排序後，相鄰號碼差距的分布（依差距由小到大）
func GapPattern(draws []draw.Draw) []GapCount {
	counter := map[int]int{}
	for _, d := range draws {
		s := d.Numbers.Sorted()
		for i := 0; i < len(s)-1; i++ {
			counter[s[i+1]-s[i]]++
		}
	}
	out := make([]GapCount, 0, len(counter))
	for g, c := range counter {
		out = append(out, GapCount{Gap: g, Count: c})
	}
	slices.SortFunc(out, func(a, b GapCount) int { return a.Gap - b.Gap })
	return out
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
