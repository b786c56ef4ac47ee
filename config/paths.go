package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// ChartDirFor 當日圖表目錄 <chart_dir>/YYYYMMDD
func (c *Config) ChartDirFor(t time.Time) string {
	return filepath.Join(c.ChartDir, t.Format("20060102"))
}

// SummaryPDFPath 摘要報表 lotto539_report_<YYYY-MM-DD>.pdf
func (c *Config) SummaryPDFPath(t time.Time) string {
	return filepath.Join(c.ReportDir, fmt.Sprintf("lotto539_report_%s.pdf", t.Format("2006-01-02")))
}

// WeeklyPDFPath 星期號碼報表 weekly_number_summary_<YYYYMMDD>.pdf
func (c *Config) WeeklyPDFPath(t time.Time) string {
	return filepath.Join(c.ReportDir, fmt.Sprintf("weekly_number_summary_%s.pdf", t.Format("20060102")))
}

// CalendarXLSXPath 日曆表格 calendar_<YYYYMMDD>.xlsx
func (c *Config) CalendarXLSXPath(t time.Time) string {
	return filepath.Join(c.ReportDir, fmt.Sprintf("calendar_%s.xlsx", t.Format("20060102")))
}

// CSVPath 下載檔 data/lotto539_YYYYMMDD.csv
func (c *Config) CSVPath(t time.Time) string {
	return filepath.Join(c.DataDir, fmt.Sprintf("lotto539_%s.csv", t.Format("20060102")))
}

// PointerPath 最新 CSV 路徑指標檔
func (c *Config) PointerPath() string {
	return filepath.Join(c.DataDir, LatestPointer)
}
