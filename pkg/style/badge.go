package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yeisme/codescope/pkg/models"
)

// PrintHeading 打印区块标题
func PrintHeading(w io.Writer, title string) error {
	s := lipgloss.NewStyle().
		Foreground(ColorAccentText).
		Background(ColorAccentPrimary).
		Bold(true).
		Padding(0, 1)
	_, err := fmt.Fprintln(w, s.Render(strings.ToUpper(title)))
	return err
}

// SeverityBadge 渲染严重程度徽标，如 [CRITICAL]
func SeverityBadge(s models.Severity) string {
	return lipgloss.NewStyle().
		Foreground(SeverityColor(s)).
		Bold(true).
		Render("[" + strings.ToUpper(string(s)) + "]")
}

// ScoreBadge 渲染 "score/100"，按分数着色
func ScoreBadge(score int) string {
	return lipgloss.NewStyle().
		Foreground(ScoreColor(score)).
		Bold(true).
		Render(fmt.Sprintf("%d/100", score))
}

// Muted 次要文字
func Muted(s string) string {
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(s)
}

// KV 一行键值
type KV struct {
	Key   string
	Value string
}

// PrintKV 以键名对齐的方式打印键值列表
func PrintKV(w io.Writer, pairs []KV) error {
	width := 0
	for _, p := range pairs {
		width = max(width, runewidth.StringWidth(p.Key))
	}
	keyStyle := lipgloss.NewStyle().Foreground(ColorAccentPrimary).Bold(true)
	for _, p := range pairs {
		pad := strings.Repeat(" ", width-runewidth.StringWidth(p.Key))
		if _, err := fmt.Fprintf(w, "  %s%s  %s\n", keyStyle.Render(p.Key), pad, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Truncate 按显示宽度截断，超出部分以 … 结尾
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
