package models

// CICDIssue 流水线配置中的问题
type CICDIssue struct {
	Type        Severity `json:"type" yaml:"type" toml:"type"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Suggestion  string   `json:"suggestion" yaml:"suggestion" toml:"suggestion"`
	Platform    string   `json:"platform" yaml:"platform" toml:"platform"`
}

// BestPractice 最佳实践检查项
type BestPractice struct {
	Name        string `json:"name" yaml:"name" toml:"name"`
	Implemented bool   `json:"implemented" yaml:"implemented" toml:"implemented"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// CICDAnalysisResult 流水线配置分析结果
// 未识别平台时 Detected 为 false，Platform 为 nil，序列化为 null
type CICDAnalysisResult struct {
	Detected      bool           `json:"detected" yaml:"detected" toml:"detected"`
	Platform      *string        `json:"platform" yaml:"platform" toml:"platform"`
	Issues        []CICDIssue    `json:"issues" yaml:"issues" toml:"issues"`
	BestPractices []BestPractice `json:"bestPractices" yaml:"best_practices" toml:"best_practices"`
	SecurityScore int            `json:"securityScore" yaml:"security_score" toml:"security_score"`
}

// PlatformName 返回平台名，未识别时为空串
func (r *CICDAnalysisResult) PlatformName() string {
	if r.Platform == nil {
		return ""
	}
	return *r.Platform
}
