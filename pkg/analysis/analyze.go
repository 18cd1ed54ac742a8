package analysis

import (
	"strings"

	"github.com/yeisme/codescope/pkg/models"
)

// Analyze 对一段源码做完整分析：度量、问题、作者归属与评分
//
// 空白输入返回固定的提示结果，不会报错
func Analyze(code string, language string) *models.AnalysisResult {
	if strings.TrimSpace(code) == "" {
		return emptyResult()
	}
	metrics := ComputeMetrics(code, language)
	issues := DetectIssues(code, language)
	return &models.AnalysisResult{
		Score:       Score(issues, metrics),
		Issues:      issues,
		Metrics:     metrics,
		AIDetection: DetectAuthorship(code, language),
	}
}

func emptyResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Score: 0,
		Issues: []models.Issue{{
			Type:        models.SeverityWarning,
			Title:       "No code provided",
			Description: "Please enter code to analyze.",
			Suggestion:  "Paste or upload code to get started.",
		}},
		AIDetection: models.AIDetectionResult{
			Confidence: 50,
			Indicators: []models.Indicator{},
		},
	}
}
