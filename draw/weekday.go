package draw

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/zintix-labs/lottolab/errs"
)

// Weekday 星期，Monday = 0 ... Sunday = 6（與 time.Weekday 不同，週一開始）
type Weekday uint8

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Weekdays 週一到週日的固定順序
var Weekdays = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var (
	labels      = [7]string{"星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日"}
	shortLabels = [7]string{"一", "二", "三", "四", "五", "六", "日"}
	enLabels    = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
)

// WeekdayOf 由日期推導星期
func WeekdayOf(t time.Time) Weekday {
	// time.Sunday == 0
	return Weekday((int(t.Weekday()) + 6) % 7)
}

// Label 資料庫儲存用標籤，例如 "星期一"
func (w Weekday) Label() string { return labels[w%7] }

// Short 報表用短標籤，例如 "一"
func (w Weekday) Short() string { return shortLabels[w%7] }

// English 英文短標籤，例如 "Mon"（PDF 核心字型無中文時使用）
func (w Weekday) English() string { return enLabels[w%7] }

func (w Weekday) String() string { return w.Label() }

// ParseWeekday 接受 "星期一" / "一" / "Mon" / "Monday"（不分大小寫）
func ParseWeekday(s string) (Weekday, error) {
	s = strings.TrimSpace(s)
	for i := range labels {
		if s == labels[i] || s == shortLabels[i] || strings.EqualFold(s, enLabels[i]) ||
			strings.EqualFold(s, time.Weekday((i+1)%7).String()) {
			return Weekday(i), nil
		}
	}
	return 0, errs.Warnf("unknown weekday label: %q", s)
}

func (w Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Label())
}

func (w *Weekday) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errs.WrapAs(errs.Warn, err, "weekday must be a string")
	}
	v, err := ParseWeekday(s)
	if err != nil {
		return err
	}
	*w = v
	return nil
}

func (w Weekday) MarshalYAML() (any, error) {
	return w.Label(), nil
}
