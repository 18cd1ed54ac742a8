package models

// CodeMetrics 代码度量
// CodeLines 可能为负数：注释行数是近似值，这里不做修正
type CodeMetrics struct {
	LinesOfCode  int `json:"linesOfCode" yaml:"lines_of_code" toml:"lines_of_code"`
	CodeLines    int `json:"codeLines" yaml:"code_lines" toml:"code_lines"`
	CommentLines int `json:"commentLines" yaml:"comment_lines" toml:"comment_lines"`
	BlankLines   int `json:"blankLines" yaml:"blank_lines" toml:"blank_lines"`
	Complexity   int `json:"complexity" yaml:"complexity" toml:"complexity"`
	Functions    int `json:"functions" yaml:"functions" toml:"functions"`
	Classes      int `json:"classes" yaml:"classes" toml:"classes"`
}

// IndicatorKind 作者归属信号的方向
type IndicatorKind string

const (
	// IndicatorAI 倾向生成代码的信号
	IndicatorAI IndicatorKind = "ai"
	// IndicatorHuman 倾向人工编写的信号
	IndicatorHuman IndicatorKind = "human"
)

// Indicator 一条作者归属信号
type Indicator struct {
	Type IndicatorKind `json:"type" yaml:"type" toml:"type"`
	Text string        `json:"text" yaml:"text" toml:"text"`
}

// AIDetectionResult 作者归属判定结果
type AIDetectionResult struct {
	IsLikelyAI bool        `json:"isLikelyAI" yaml:"is_likely_ai" toml:"is_likely_ai"`
	Confidence int         `json:"confidence" yaml:"confidence" toml:"confidence"`
	Indicators []Indicator `json:"indicators" yaml:"indicators" toml:"indicators"`
}

// AnalysisResult 单份源码的完整分析结果
type AnalysisResult struct {
	Score       int               `json:"score" yaml:"score" toml:"score"`
	Issues      []Issue           `json:"issues" yaml:"issues" toml:"issues"`
	Metrics     CodeMetrics       `json:"metrics" yaml:"metrics" toml:"metrics"`
	AIDetection AIDetectionResult `json:"aiDetection" yaml:"ai_detection" toml:"ai_detection"`
}

// Counts 返回问题的严重程度分布
func (r *AnalysisResult) Counts() SeverityCounts {
	return CountBySeverity(r.Issues)
}
