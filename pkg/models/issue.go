// Package models 定义分析引擎与各输出层共享的数据模型
package models

// Severity 问题严重程度
type Severity string

const (
	// SeverityCritical 严重：安全漏洞或确定的缺陷
	SeverityCritical Severity = "critical"
	// SeverityWarning 警告：很可能的缺陷或风险
	SeverityWarning Severity = "warning"
	// SeverityInfo 提示：风格与可维护性
	SeverityInfo Severity = "info"
)

// Issue 单条检测结果
// Line 为 1 起始的行号，0 表示没有关联行
type Issue struct {
	Type        Severity `json:"type" yaml:"type" toml:"type"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Line        int      `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty"`
	Suggestion  string   `json:"suggestion" yaml:"suggestion" toml:"suggestion"`
}

// HasLine 是否关联了具体行
func (i Issue) HasLine() bool { return i.Line > 0 }

// SeverityCounts 按严重程度统计的数量
type SeverityCounts struct {
	Critical int `json:"critical" yaml:"critical" toml:"critical"`
	Warning  int `json:"warning" yaml:"warning" toml:"warning"`
	Info     int `json:"info" yaml:"info" toml:"info"`
}

// Total 返回总数
func (c SeverityCounts) Total() int { return c.Critical + c.Warning + c.Info }

// Add 累加另一组计数
func (c *SeverityCounts) Add(o SeverityCounts) {
	c.Critical += o.Critical
	c.Warning += o.Warning
	c.Info += o.Info
}

// CountBySeverity 统计问题列表中各严重程度的数量
func CountBySeverity(issues []Issue) SeverityCounts {
	var c SeverityCounts
	for _, is := range issues {
		switch is.Type {
		case SeverityCritical:
			c.Critical++
		case SeverityWarning:
			c.Warning++
		case SeverityInfo:
			c.Info++
		}
	}
	return c
}
