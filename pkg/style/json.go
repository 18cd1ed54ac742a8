package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// jsonTokenRe 依次匹配：带冒号的键、字符串、数字、字面量
var jsonTokenRe = regexp.MustCompile(`("(?:[^"\\]|\\.)*")(\s*:)|("(?:[^"\\]|\\.)*")|(-?\d+(?:\.\d+)?(?:[eE][+-]?\d+)?)|\b(true|false)\b|\b(null)\b`)

// PrintJSON 缩进并高亮输出 JSON
// v 为 string 或 []byte 时按原始 JSON 文本处理，否则先编码
func PrintJSON(w io.Writer, v any) error {
	pretty, err := FormatJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, HighlightJSON(pretty))
	return err
}

// FormatJSON 返回两空格缩进、以换行结尾的 JSON 文本
func FormatJSON(v any) (string, error) {
	var raw []byte
	switch x := v.(type) {
	case string:
		raw = []byte(x)
	case []byte:
		raw = x
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		raw = b
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "null\n", nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", err
	}
	out.WriteByte('\n')
	return out.String(), nil
}

// HighlightJSON 给已格式化的 JSON 文本着色，空白与标点保持原样
func HighlightJSON(s string) string {
	key := lipgloss.NewStyle().Foreground(ColorJSONKey).Bold(true)
	str := lipgloss.NewStyle().Foreground(ColorJSONString)
	num := lipgloss.NewStyle().Foreground(ColorJSONNumber)
	boolean := lipgloss.NewStyle().Foreground(ColorJSONBool)
	null := lipgloss.NewStyle().Foreground(ColorJSONNull)

	return jsonTokenRe.ReplaceAllStringFunc(s, func(tok string) string {
		m := jsonTokenRe.FindStringSubmatch(tok)
		switch {
		case m[1] != "":
			return key.Render(m[1]) + m[2]
		case m[3] != "":
			return str.Render(m[3])
		case m[4] != "":
			return num.Render(m[4])
		case m[5] != "":
			return boolean.Render(m[5])
		default:
			return null.Render(m[6])
		}
	})
}
