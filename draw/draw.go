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

// Package draw 定義今彩539 的開獎紀錄（Draw）與其不變條件。
//
// 每期開出 5 個介於 1~39 的不重複號碼；期別（Period）在全部資料中唯一。
// Draw 只在匯入時建立，之後不會被修改或刪除。
package draw

import (
	"fmt"
	"slices"
	"time"

	"github.com/zintix-labs/lottolab/errs"
)

const (
	MinNumber = 1  // 最小號碼
	MaxNumber = 39 // 最大號碼
	PickSize  = 5  // 每期開出號碼數
)

// Numbers 一期的 5 個號碼（依來源順序，不保證已排序）
type Numbers [PickSize]int

// Draw 一期開獎紀錄
type Draw struct {
	ID      int64     `json:"id"`
	Period  string    `json:"period"`
	Date    time.Time `json:"draw_date"`
	Weekday Weekday   `json:"weekday"`
	Numbers Numbers   `json:"numbers"`
	Remark  string    `json:"remark,omitempty"`
}

// New 建立 Draw，weekday 由日期推導
func New(period string, date time.Time, nums Numbers) Draw {
	return Draw{
		Period:  period,
		Date:    date,
		Weekday: WeekdayOf(date),
		Numbers: nums,
	}
}

// DateString 以 YYYY-MM-DD 輸出開獎日期（資料庫儲存格式）
func (d Draw) DateString() string {
	return d.Date.Format(DateLayout)
}

// Sorted 回傳升冪排序後的號碼副本
func (n Numbers) Sorted() Numbers {
	out := n
	slices.Sort(out[:])
	return out
}

// Contains 是否含有號碼 v
func (n Numbers) Contains(v int) bool {
	return slices.Contains(n[:], v)
}

// Validate 檢查號碼範圍 [1,39] 與期內不重複
func (n Numbers) Validate() error {
	var seen [MaxNumber + 1]bool
	for _, v := range n {
		if v < MinNumber || v > MaxNumber {
			return errs.Warnf("number out of range [%d,%d]: %d", MinNumber, MaxNumber, v)
		}
		if seen[v] {
			return errs.Warnf("duplicate number in draw: %d", v)
		}
		seen[v] = true
	}
	return nil
}

// InRange 號碼是否落在 [1,39]
func InRange(v int) bool {
	return v >= MinNumber && v <= MaxNumber
}

// Tail 尾數：號碼對 10 取餘
func Tail(v int) int {
	return v % 10
}

// Pad2 將號碼補零成兩位數字串，例如 7 -> "07"
func Pad2(v int) string {
	return fmt.Sprintf("%02d", v)
}

// Flatten 將多期號碼攤平成單一序列（保留出現順序）
func Flatten(draws []Draw) []int {
	out := make([]int, 0, len(draws)*PickSize)
	for _, d := range draws {
		out = append(out, d.Numbers[:]...)
	}
	return out
}

// SortDesc 依開獎日期由新到舊排序（同日以期別排序），回傳新 slice
func SortDesc(draws []Draw) []Draw {
	out := slices.Clone(draws)
	slices.SortStableFunc(out, func(a, b Draw) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return compareString(b.Period, a.Period)
	})
	return out
}

// SortAsc 依開獎日期由舊到新排序，回傳新 slice
func SortAsc(draws []Draw) []Draw {
	out := slices.Clone(draws)
	slices.SortStableFunc(out, func(a, b Draw) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return compareString(a.Period, b.Period)
	})
	return out
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
