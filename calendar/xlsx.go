package calendar

import (
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/zintix-labs/lottolab/errs"
)

const sheetName = "539"

var groupHeaders = []string{"月", "日", "星期", "號碼1", "號碼2", "號碼3", "號碼4", "號碼5"}

// WriteXLSX 將表格輸出成 xlsx：第 1 列為標題，第 2 列為欄名，其後 36 列資料
func WriteXLSX(g *Grid, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return errs.Wrap(err, "rename sheet")
	}
	styles := newStyleCache(f)

	width := len(groupHeaders) * Groups
	last, _ := excelize.CoordinatesToCellName(width, 1)
	if err := f.MergeCell(sheetName, "A1", last); err != nil {
		return errs.Wrap(err, "merge title")
	}
	if err := f.SetCellValue(sheetName, "A1", g.Title()); err != nil {
		return errs.Wrap(err, "write title")
	}

	for grp := 0; grp < Groups; grp++ {
		for k, h := range groupHeaders {
			col := grp*len(groupHeaders) + k + 1
			if err := styles.put(sheetName, col, 2, h, GroupColors[grp]); err != nil {
				return err
			}
		}
	}

	for r := 0; r < Rows; r++ {
		for grp := 0; grp < Groups; grp++ {
			e := g.At(r, grp)
			base := grp * len(groupHeaders)
			row := r + 3
			cells := []string{e.Month, e.Day, e.Weekday}
			for k, v := range cells {
				if err := styles.put(sheetName, base+k+1, row, v, e.Bg); err != nil {
					return err
				}
			}
			for k, v := range e.Numbers {
				if err := styles.put(sheetName, base+len(cells)+k+1, row, v, e.Colors[k]); err != nil {
					return err
				}
			}
		}
	}
	if err := f.Write(w); err != nil {
		return errs.Wrap(err, "write xlsx")
	}
	return nil
}

// styleCache 同色共用同一個 style id
type styleCache struct {
	f   *excelize.File
	ids map[string]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, ids: map[string]int{}}
}

func (s *styleCache) put(sheet string, col, row int, v string, color string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return errs.Wrap(err, "cell name")
	}
	if err := s.f.SetCellStr(sheet, cell, v); err != nil {
		return errs.Wrap(err, "write cell")
	}
	id, err := s.id(color)
	if err != nil {
		return err
	}
	if err := s.f.SetCellStyle(sheet, cell, cell, id); err != nil {
		return errs.Wrap(err, "style cell")
	}
	return nil
}

func (s *styleCache) id(color string) (int, error) {
	key := strings.TrimPrefix(strings.ToUpper(color), "#")
	if id, ok := s.ids[key]; ok {
		return id, nil
	}
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	st := &excelize.Style{
		Border:    border,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Font:      &excelize.Font{Size: 9},
	}
	if key != "" {
		st.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{key}}
	}
	id, err := s.f.NewStyle(st)
	if err != nil {
		return 0, errs.Wrap(err, "new style")
	}
	s.ids[key] = id
	return id, nil
}
