package analyzer

import "github.com/zintix-labs/lottolab/draw"

// WeekdayCount 星期與開獎期數
type WeekdayCount struct {
	Weekday draw.Weekday `json:"weekday"`
	Count   int          `json:"count"`
	Ratio   float64      `json:"ratio"`
}

// Weekdays 各星期的開獎期數，固定以星期一到星期日輸出（沒有開獎的星期為 0）
func Weekdays(draws []draw.Draw) []WeekdayCount {
	var counts [7]int
	for _, d := range draws {
		counts[d.Weekday]++
	}
	out := make([]WeekdayCount, 0, len(draw.Weekdays))
	for _, w := range draw.Weekdays {
		out = append(out, WeekdayCount{Weekday: w, Count: counts[w], Ratio: percent(counts[w], len(draws))})
	}
	return out
}

// WeekdayMatrix 星期 × 號碼 出現次數
type WeekdayMatrix struct {
	Counts [7][draw.MaxNumber + 1]int `json:"-"`
	Totals [7]int                     `json:"-"` // 該星期出現的號碼總數
}

// WeekdayRow 一個星期的號碼分布（JSON 輸出用）
type WeekdayRow struct {
	Weekday  draw.Weekday `json:"weekday"`
	Total    int          `json:"total"`
	Counts   []int        `json:"counts"`   // index 0 = 號碼 1
	Percents []float64    `json:"percents"` // 佔該星期號碼總數的百分比
}

// WeekdayNumbers 統計每個星期各號碼出現次數；範圍外號碼略過
func WeekdayNumbers(draws []draw.Draw) *WeekdayMatrix {
	m := &WeekdayMatrix{}
	for _, d := range draws {
		for _, n := range d.Numbers {
			if !draw.InRange(n) {
				continue
			}
			m.Counts[d.Weekday][n]++
			m.Totals[d.Weekday]++
		}
	}
	return m
}

// Percent 號碼 n 在星期 w 的出現比例（%）
func (m *WeekdayMatrix) Percent(w draw.Weekday, n int) float64 {
	if !draw.InRange(n) {
		return 0
	}
	return percent(m.Counts[w][n], m.Totals[w])
}

// Rows 依星期一到星期日輸出
func (m *WeekdayMatrix) Rows() []WeekdayRow {
	out := make([]WeekdayRow, 0, 7)
	for _, w := range draw.Weekdays {
		row := WeekdayRow{
			Weekday:  w,
			Total:    m.Totals[w],
			Counts:   make([]int, draw.MaxNumber),
			Percents: make([]float64, draw.MaxNumber),
		}
		for n := draw.MinNumber; n <= draw.MaxNumber; n++ {
			row.Counts[n-1] = m.Counts[w][n]
			row.Percents[n-1] = m.Percent(w, n)
		}
		out = append(out, row)
	}
	return out
}
