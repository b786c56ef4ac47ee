package draw

import (
	"strings"
	"time"

	"github.com/zintix-labs/lottolab/errs"
)

// DateLayout 資料庫內 draw_date 的儲存格式
const DateLayout = "2006-01-02"

// 可接受的輸入格式。單位數月份 / 日期的 layout 也能解析補零的輸入（"1" 可吃 "01"）。
var acceptedLayouts = []string{
	"2006/1/2",
	"2006-1-2",
	"2006.1.2",
}

// ParseDate 解析 YYYY/MM/DD、YYYY-MM-DD、YYYY.MM.DD（含不補零寫法），回傳 UTC 日期
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.Warnf("unable to parse date: %q", s)
}

// NormalizeDate 將可接受格式的日期統一成 YYYY-MM-DD
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// DateOnly 去掉時分秒並轉為 UTC 日期
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
