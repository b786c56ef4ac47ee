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

// Package analyzer 提供所有開獎統計的彙總函數。
//
// 每個彙總都是對完整 []draw.Draw 的單次掃描，彼此獨立、無狀態，
// 也不保存任何衍生結果；呼叫端每次都從原始資料重新計算。
// 沒有資料時回傳空值 / 零值，不回傳錯誤。
package analyzer

import (
	"slices"

	"github.com/zintix-labs/lottolab/draw"
)

// NumberCount 號碼與出現次數
type NumberCount struct {
	Number int `json:"number"`
	Count  int `json:"count"`
}

// Frequency 號碼出現頻率
//
// Counts[n] 為號碼 n 的出現次數（index 0 不使用）。
// 排名規則：次數由多到少；同次數時以攤平序列中「首次出現」的先後決定（穩定排序）。
// 從未出現的號碼排在最後，依號碼由小到大。
type Frequency struct {
	Counts  [draw.MaxNumber + 1]int `json:"-"`
	Draws   int                     `json:"draws"`
	Total   int                     `json:"total"`
	Ignored int                     `json:"ignored,omitempty"` // 範圍外號碼（寬鬆匯入時可能出現）
	order   []int                   // 依首次出現順序排列的號碼
}

// CountFrequency 統計 1~39 每個號碼的出現次數
func CountFrequency(draws []draw.Draw) *Frequency {
	f := &Frequency{Draws: len(draws), order: make([]int, 0, draw.MaxNumber)}
	for _, d := range draws {
		for _, n := range d.Numbers {
			if !draw.InRange(n) {
				f.Ignored++
				continue
			}
			if f.Counts[n] == 0 {
				f.order = append(f.order, n)
			}
			f.Counts[n]++
			f.Total++
		}
	}
	return f
}

// Count 號碼 n 的出現次數
func (f *Frequency) Count(n int) int {
	if !draw.InRange(n) {
		return 0
	}
	return f.Counts[n]
}

// Ranked 依次數由多到少排名，含從未出現的號碼（共 39 筆）
func (f *Frequency) Ranked() []NumberCount {
	return f.Sorted(0, false)
}

// Sorted 依次數排序；ascending=true 時冷門在前。limit<=0 表示全部。
// 同次數時維持首次出現順序。
func (f *Frequency) Sorted(limit int, ascending bool) []NumberCount {
	out := make([]NumberCount, 0, draw.MaxNumber)
	for _, n := range f.insertionOrder() {
		out = append(out, NumberCount{Number: n, Count: f.Counts[n]})
	}
	slices.SortStableFunc(out, func(a, b NumberCount) int {
		if ascending {
			return a.Count - b.Count
		}
		return b.Count - a.Count
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// Top 熱門前 n 名
func (f *Frequency) Top(n int) []NumberCount {
	return f.Sorted(n, false)
}

// Bottom 冷門後 n 名（排名序列的最後 n 筆，仍維持由多到少的順序）
func (f *Frequency) Bottom(n int) []NumberCount {
	r := f.Ranked()
	if n <= 0 || n >= len(r) {
		return r
	}
	return r[len(r)-n:]
}

// Table 只含出現過號碼的 map 形式
func (f *Frequency) Table() map[int]int {
	out := make(map[int]int, len(f.order))
	for _, n := range f.order {
		out[n] = f.Counts[n]
	}
	return out
}

func (f *Frequency) insertionOrder() []int {
	out := make([]int, 0, draw.MaxNumber)
	out = append(out, f.order...)
	for n := draw.MinNumber; n <= draw.MaxNumber; n++ {
		if f.Counts[n] == 0 {
			out = append(out, n)
		}
	}
	return out
}

// HotCold 熱號與冷號
type HotCold struct {
	Hot  []NumberCount `json:"hot"`
	Cold []NumberCount `json:"cold"`
}

// HotAndCold 取得熱門前 topN 與冷門後 topN
func HotAndCold(draws []draw.Draw, topN int) HotCold {
	f := CountFrequency(draws)
	return HotCold{Hot: f.Top(topN), Cold: f.Bottom(topN)}
}
