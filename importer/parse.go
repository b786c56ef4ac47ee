package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zintix-labs/lottolab/draw"
	"github.com/zintix-labs/lottolab/errs"
)

// 欄位順序：日期, 期別, 號碼1..號碼5
const (
	colDate   = 0
	colPeriod = 1
	colFirst  = 2
	minCols   = colFirst + draw.PickSize
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// RowError 單列解析失敗；不中斷匯入
type RowError struct {
	Line   int    `json:"line"`
	Period string `json:"period"`
	Err    error  `json:"-"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d (period %s): %s", e.Line, e.Period, e.Reason)
}

// Parsed CSV 解析結果
type Parsed struct {
	Draws  []draw.Draw `json:"-"`
	Rows   int         `json:"rows"` // 不含標題列
	Errors []RowError  `json:"errors"`
}

// ParseCSV 解析開獎 CSV：第一列為標題；UTF-8，可帶 BOM。
// 每列獨立解析，失敗的列記入 Errors 後繼續。
// strict=true 時號碼必須落在 [1,39] 且期內不重複。
func ParseCSV(r io.Reader, strict bool) (*Parsed, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && string(head) == string(bom) {
		_, _ = br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return &Parsed{Draws: []draw.Draw{}, Errors: []RowError{}}, nil
		}
		return nil, errs.WrapAs(errs.Warn, err, "read csv header")
	}

	out := &Parsed{Draws: make([]draw.Draw, 0, 1024), Errors: []RowError{}}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// 引號錯誤等格式問題只影響該列
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				out.Rows++
				out.Errors = append(out.Errors, rowErr(pe.Line, "", err))
				continue
			}
			return nil, errs.Wrap(err, "read csv")
		}
		if isBlank(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		out.Rows++
		d, err := parseRow(rec, strict)
		if err != nil {
			out.Errors = append(out.Errors, rowErr(line, field(rec, colPeriod), err))
			continue
		}
		out.Draws = append(out.Draws, d)
	}
	return out, nil
}

func parseRow(rec []string, strict bool) (draw.Draw, error) {
	if len(rec) < minCols {
		return draw.Draw{}, errs.Logf("expected %d columns, got %d", minCols, len(rec))
	}
	date, err := draw.ParseDate(rec[colDate])
	if err != nil {
		return draw.Draw{}, errs.WrapAs(errs.Log, err, "bad date")
	}
	period := strings.TrimSpace(rec[colPeriod])
	if period == "" {
		return draw.Draw{}, errs.NewLog("empty period")
	}
	var nums draw.Numbers
	for i := range nums {
		v, err := strconv.Atoi(strings.TrimSpace(rec[colFirst+i]))
		if err != nil {
			return draw.Draw{}, errs.WrapAs(errs.Log, err, "bad number")
		}
		nums[i] = v
	}
	if strict {
		if err := nums.Validate(); err != nil {
			return draw.Draw{}, errs.WrapAs(errs.Log, err, "invalid numbers")
		}
	}
	return draw.New(period, date, nums), nil
}

func rowErr(line int, period string, err error) RowError {
	return RowError{Line: line, Period: period, Err: err, Reason: errs.Message(err)}
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
