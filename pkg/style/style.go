// Package style 负责终端上的样式化输出：表格、列表、徽标、Markdown 与 JSON 高亮
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/yeisme/codescope/pkg/models"
)

// 调色板
const (
	// 主题强调色，用于标题背景与列表符号
	ColorAccentPrimary = lipgloss.Color("#33A1FF")
	// 强调背景上的文字
	ColorAccentText = lipgloss.Color("#FFFFFF")
	// 普通文本
	ColorText = lipgloss.Color("#E4E4E4")
	// 次要文本，如描述与建议
	ColorMuted = lipgloss.Color("#9CA3AF")
	// 边框与连接符
	ColorBorder = lipgloss.Color("#444444")

	// 严重程度
	ColorCritical = lipgloss.Color("#FF5555")
	ColorWarning  = lipgloss.Color("#F59E0B")
	ColorInfo     = lipgloss.Color("#60A5FA")
	ColorSuccess  = lipgloss.Color("#22C55E")

	// JSON 高亮
	ColorJSONKey    = lipgloss.Color("#55BCF4")
	ColorJSONString = lipgloss.Color("#E4E4E4")
	ColorJSONNumber = lipgloss.Color("#D4EC19")
	ColorJSONBool   = lipgloss.Color("#DFAB49")
	ColorJSONNull   = lipgloss.Color("#6272A4")
)

// SeverityColor 严重程度对应的颜色
func SeverityColor(s models.Severity) lipgloss.Color {
	switch s {
	case models.SeverityCritical:
		return ColorCritical
	case models.SeverityWarning:
		return ColorWarning
	default:
		return ColorInfo
	}
}

// ScoreColor 分数着色：80 以上为绿，50 以上为黄，其余为红
func ScoreColor(score int) lipgloss.Color {
	switch {
	case score >= 80:
		return ColorSuccess
	case score >= 50:
		return ColorWarning
	default:
		return ColorCritical
	}
}

var noColor bool

// DisableColor 之后的所有样式输出均不带颜色
func DisableColor() {
	noColor = true
	lipgloss.SetColorProfile(termenv.Ascii)
}
