package style

import (
	"io"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown 用 glamour 渲染 Markdown 后写入 w
//
// width<=0 时使用终端宽度，结果限制在 [80, 120]；theme 为空时按终端背景自动选择，关闭颜色时固定为 notty
func RenderMarkdown(w io.Writer, input string, width int, theme string) error {
	if width <= 0 {
		width = TerminalWidth(w)
	}
	width = max(80, min(120, width))

	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
		glamour.WithInlineTableLinks(true),
	}
	switch {
	case noColor:
		opts = append(opts, glamour.WithStandardStyle("notty"))
	case theme == "":
		opts = append(opts, glamour.WithAutoStyle())
	default:
		opts = append(opts, glamour.WithStandardStyle(theme))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return err
	}
	out, err := r.Render(input)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
