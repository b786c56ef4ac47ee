package report

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Render 定義摘要輸出行為
type Render interface {
	Write(w io.Writer, s *Summary) error
}

// JSONRender JSON 輸出
type JSONRender struct{}

func (JSONRender) Write(w io.Writer, s *Summary) error {
	return WriteJSON(w, s)
}

// YAMLRender YAML 輸出；最內層一維陣列使用 flow style
type YAMLRender struct{}

func (YAMLRender) Write(w io.Writer, s *Summary) error {
	return WriteYAML(w, s)
}

// TableRender 對齊的文字表格（含中文寬度）
type TableRender struct {
	Title string
}

func (tr TableRender) Write(w io.Writer, s *Summary) error {
	title := tr.Title
	if title == "" {
		title = "今彩539 數據摘要分析"
	}
	keys, msg := s.Pairs()
	_, err := io.WriteString(w, Table(title, keys, msg))
	return err
}

// RenderFor 依名稱取得 Render：table / json / yaml
func RenderFor(format string) (Render, bool) {
	switch strings.ToLower(format) {
	case "", "table", "text":
		return TableRender{}, true
	case "json":
		return JSONRender{}, true
	case "yaml", "yml":
		return YAMLRender{}, true
	default:
		return nil, false
	}
}

// WriteJSON 任意資料的縮排 JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML 任意資料的 YAML。
// 外層陣列保持展開；最內層的一維陣列（例如 39 個號碼的次數）輸出成 [a, b, c]。
func WriteYAML(w io.Writer, v any) error {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return err
	}
	flowLeafSequences(&node)
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(&node)
}

func flowLeafSequences(n *yaml.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			flowLeafSequences(c)
		}
	case yaml.SequenceNode:
		leaf := true
		for _, c := range n.Content {
			if c != nil && (c.Kind == yaml.SequenceNode || c.Kind == yaml.MappingNode) {
				leaf = false
			}
			flowLeafSequences(c)
		}
		if leaf {
			n.Style = yaml.FlowStyle
		}
	}
}

// Table 兩欄 key / value 表格，title 置中
func Table(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	kw, vw := 0, 0
	for _, k := range keys {
		kw = max(kw, runewidth.StringWidth(k))
		vw = max(vw, runewidth.StringWidth(msg[k]))
	}
	kw += 2
	vw += 2

	inner := kw + vw + 1
	tw := runewidth.StringWidth(title)
	if tw > inner {
		vw += tw - inner
		inner = tw
	}
	left := (inner - tw) / 2

	var b strings.Builder
	b.WriteString("+" + strings.Repeat("-", inner) + "+\n")
	b.WriteString(p.Sprintf("|%s%s%s|\n", pad(left), title, pad(inner-tw-left)))
	divider := "+" + strings.Repeat("-", kw) + "+" + strings.Repeat("-", vw) + "+\n"
	b.WriteString(divider)
	for _, k := range keys {
		v := msg[k]
		b.WriteString("| " + k + pad(kw-2-runewidth.StringWidth(k)) + " | " + v + pad(vw-2-runewidth.StringWidth(v)) + " |\n")
	}
	b.WriteString(divider)
	return b.String()
}

// Grid 多欄表格（第一列為表頭），欄寬依中文寬度對齊
func Grid(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, r := range rows {
		for i := 0; i < len(r) && i < len(widths); i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(r[i]))
		}
	}
	var b strings.Builder
	line := func(cells []string) {
		for i := range widths {
			c := ""
			if i < len(cells) {
				c = cells[i]
			}
			if i > 0 {
				b.WriteString(" ")
			}
			b.WriteString(pad(widths[i]-runewidth.StringWidth(c)) + c)
		}
		b.WriteString("\n")
	}
	line(header)
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	line(sep)
	for _, r := range rows {
		line(r)
	}
	return b.String()
}

func pad(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
