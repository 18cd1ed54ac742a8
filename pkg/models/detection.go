package models

// LanguageScore 某语言的检测得分
type LanguageScore struct {
	Language string  `json:"language" yaml:"language" toml:"language"`
	Score    float64 `json:"score" yaml:"score" toml:"score"`
}

// DetectionResult 语言检测结果，Scores 按得分降序，最多 5 项
type DetectionResult struct {
	DetectedLanguage string          `json:"detectedLanguage" yaml:"detected_language" toml:"detected_language"`
	Confidence       int             `json:"confidence" yaml:"confidence" toml:"confidence"`
	Scores           []LanguageScore `json:"scores" yaml:"scores" toml:"scores"`
}
