package draw

// Segment 號碼區間，四個固定區段切分 1~39
type Segment uint8

const (
	SegmentNone Segment = iota // 非法號碼
	Segment1                   // 01-10
	Segment2                   // 11-20
	Segment3                   // 21-30
	Segment4                   // 31-39
)

// Segments 固定輸出順序
var Segments = [4]Segment{Segment1, Segment2, Segment3, Segment4}

var segmentLabels = map[Segment]string{
	Segment1: "01-10",
	Segment2: "11-20",
	Segment3: "21-30",
	Segment4: "31-39",
}

// SegmentOf 計算號碼所屬區段，範圍外回傳 SegmentNone
func SegmentOf(v int) Segment {
	switch {
	case v >= 1 && v <= 10:
		return Segment1
	case v >= 11 && v <= 20:
		return Segment2
	case v >= 21 && v <= 30:
		return Segment3
	case v >= 31 && v <= 39:
		return Segment4
	default:
		return SegmentNone
	}
}

func (s Segment) Label() string { return segmentLabels[s] }
