package models

// FileReport 批量分析中单个文件的结果
type FileReport struct {
	Path        string          `json:"path" yaml:"path" toml:"path"`
	Language    string          `json:"language" yaml:"language" toml:"language"`
	Fingerprint string          `json:"fingerprint" yaml:"fingerprint" toml:"fingerprint"`
	Duplicate   bool            `json:"duplicate,omitempty" yaml:"duplicate,omitempty" toml:"duplicate,omitempty"`
	Result      *AnalysisResult `json:"result" yaml:"result" toml:"result"`
}

// LanguageSummary 按语言聚合的统计
type LanguageSummary struct {
	Files      int            `json:"files" yaml:"files" toml:"files"`
	Lines      int            `json:"lines" yaml:"lines" toml:"lines"`
	MeanScore  float64        `json:"meanScore" yaml:"mean_score" toml:"mean_score"`
	Issues     SeverityCounts `json:"issues" yaml:"issues" toml:"issues"`
	scoreTotal int
}

// AddFile 把一个文件的结果计入汇总
func (s *LanguageSummary) AddFile(r *AnalysisResult) {
	s.Files++
	s.Lines += r.Metrics.LinesOfCode
	s.scoreTotal += r.Score
	s.MeanScore = float64(s.scoreTotal) / float64(s.Files)
	s.Issues.Add(r.Counts())
}

// ProjectReport 目录批量分析的汇总报告
type ProjectReport struct {
	Root       string                      `json:"root" yaml:"root" toml:"root"`
	Files      []FileReport                `json:"files" yaml:"files" toml:"files"`
	Languages  map[string]*LanguageSummary `json:"languages" yaml:"languages" toml:"languages"`
	Total      LanguageSummary             `json:"total" yaml:"total" toml:"total"`
	Duplicates int                         `json:"duplicates" yaml:"duplicates" toml:"duplicates"`
	Skipped    int                         `json:"skipped" yaml:"skipped" toml:"skipped"`
}
