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

// Package report 組裝摘要報告並提供 table / JSON / YAML 輸出。
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zintix-labs/lottolab/analyzer"
	"github.com/zintix-labs/lottolab/draw"
)

var lang language.Tag = language.English

const (
	HotN  = 5 // 熱門 / 冷門號碼數
	TailN = 3 // 常見尾數數
)

// Summary 數據摘要
type Summary struct {
	Draws            int                     `json:"draws" yaml:"draws"`
	Start            string                  `json:"start" yaml:"start"`
	End              string                  `json:"end" yaml:"end"`
	Hot              []analyzer.NumberCount  `json:"hot" yaml:"hot"`
	Cold             []analyzer.NumberCount  `json:"cold" yaml:"cold"`
	TopTails         []analyzer.TailCount    `json:"top_tails" yaml:"top_tails"`
	OddEven          analyzer.OddEvenStat    `json:"odd_even" yaml:"odd_even"`
	ConsecutivePairs int                     `json:"consecutive_pairs" yaml:"consecutive_pairs"`
	ConsecutiveDraws int                     `json:"consecutive_draws" yaml:"consecutive_draws"`
	Weekdays         []analyzer.WeekdayCount `json:"weekdays" yaml:"weekdays"`
	Segments         []analyzer.SegmentCount `json:"segments" yaml:"segments"`
	Uniformity       analyzer.UniformityTest `json:"uniformity" yaml:"uniformity"`
	GeneratedAt      string                  `json:"generated_at" yaml:"generated_at"`
}

// Build 從完整開獎資料計算摘要
func Build(draws []draw.Draw, now time.Time) *Summary {
	freq := analyzer.CountFrequency(draws)
	cons := analyzer.Consecutive(draws)
	s := &Summary{
		Draws:            len(draws),
		Start:            "N/A",
		End:              "N/A",
		Hot:              freq.Top(HotN),
		Cold:             freq.Bottom(HotN),
		TopTails:         analyzer.TailDigits(draws).Top(TailN),
		OddEven:          analyzer.OddEven(draws),
		ConsecutivePairs: cons.TotalPairs,
		ConsecutiveDraws: cons.DrawsWithRun,
		Weekdays:         analyzer.Weekdays(draws),
		Segments:         analyzer.RangeSegments(draws),
		Uniformity:       analyzer.Uniformity(freq),
		GeneratedAt:      now.Format("2006-01-02 15:04:05"),
	}
	if len(draws) > 0 {
		asc := draw.SortAsc(draws)
		s.Start = asc[0].DateString()
		s.End = asc[len(asc)-1].DateString()
	}
	return s
}

// WriteWith 以指定 Render 輸出
func (s *Summary) WriteWith(w io.Writer, r Render) error {
	return r.Write(w, s)
}

// Lines 摘要的逐行文字（CLI 與 PDF 共用）
func (s *Summary) Lines() []string {
	p := message.NewPrinter(lang)
	out := []string{
		fmt.Sprintf("資料期間：%s ～ %s", s.Start, s.End),
		p.Sprintf("總期數：%d 期", s.Draws),
		"熱門號碼（前5）：" + joinCounts(s.Hot),
		"冷門號碼（後5）：" + joinCounts(s.Cold),
		"常見尾數（前3）：" + joinTails(s.TopTails),
		p.Sprintf("奇數：%d，偶數：%d（奇偶比 %d:%d）", s.OddEven.Odd, s.OddEven.Even, s.OddEven.Odd, s.OddEven.Even),
		p.Sprintf("出現連號期數總計：%d 次", s.ConsecutivePairs),
		"各星期開獎次數：",
	}
	for _, w := range s.Weekdays {
		out = append(out, p.Sprintf("  %s：%d 次", w.Weekday.Label(), w.Count))
	}
	return out
}

// Pairs 摘要的 key / value（表格輸出用）
func (s *Summary) Pairs() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	keys := make([]string, 0, 16)
	m := make(map[string]string, 16)
	add := func(k, v string) {
		keys = append(keys, k)
		m[k] = v
	}
	add("資料期間", s.Start+" ~ "+s.End)
	add("總期數", p.Sprintf("%d", s.Draws))
	add("熱門號碼", joinCounts(s.Hot))
	add("冷門號碼", joinCounts(s.Cold))
	add("常見尾數", joinTails(s.TopTails))
	add("奇 / 偶", p.Sprintf("%d / %d (%.2f%% / %.2f%%)", s.OddEven.Odd, s.OddEven.Even, s.OddEven.OddRatio, s.OddEven.EvenRatio))
	add("連號組數", p.Sprintf("%d（%d 期）", s.ConsecutivePairs, s.ConsecutiveDraws))
	add("區間分布", joinSegments(s.Segments))
	add("卡方 p 值", p.Sprintf("%.4f (χ²=%.2f)", s.Uniformity.PValue, s.Uniformity.Statistic))
	for _, w := range s.Weekdays {
		add(w.Weekday.Label(), p.Sprintf("%d", w.Count))
	}
	return keys, m
}

func joinCounts(ncs []analyzer.NumberCount) string {
	parts := make([]string, 0, len(ncs))
	for _, nc := range ncs {
		parts = append(parts, fmt.Sprintf("%s(%d)", draw.Pad2(nc.Number), nc.Count))
	}
	return strings.Join(parts, " ")
}

func joinTails(ts []analyzer.TailCount) string {
	parts := make([]string, 0, len(ts))
	for _, t := range ts {
		parts = append(parts, fmt.Sprintf("%d(%d)", t.Tail, t.Count))
	}
	return strings.Join(parts, " ")
}

func joinSegments(ss []analyzer.SegmentCount) string {
	parts := make([]string, 0, len(ss))
	for _, s := range ss {
		parts = append(parts, fmt.Sprintf("%s:%d", s.Label, s.Count))
	}
	return strings.Join(parts, " ")
}
