// Package report 把分析结果渲染成各种输出：终端摘要、分享文本、Markdown、JSON 导出与图表数据
package report

import (
	"fmt"
	"strings"

	"github.com/yeisme/codescope/pkg/models"
)

// ShareText 生成可直接复制分享的纯文本报告，cicd 为 nil 或未识别平台时不含 CI/CD 行
func ShareText(r *models.AnalysisResult, cicd *models.CICDAnalysisResult) string {
	c := r.Counts()
	verdict := "Likely Human Written"
	if r.AIDetection.IsLikelyAI {
		verdict = "Possibly AI Generated"
	}

	var b strings.Builder
	b.WriteString("🔍 Code Analysis Report\n\n")
	fmt.Fprintf(&b, "📊 Quality Score: %d/100\n", r.Score)
	fmt.Fprintf(&b, "📏 Lines of Code: %d\n", r.Metrics.LinesOfCode)
	fmt.Fprintf(&b, "🔄 Complexity: %d\n", r.Metrics.Complexity)
	fmt.Fprintf(&b, "📝 Functions: %d\n\n", r.Metrics.Functions)
	b.WriteString("⚠️ Issues Found:\n")
	fmt.Fprintf(&b, "- Critical: %d\n", c.Critical)
	fmt.Fprintf(&b, "- Warnings: %d\n", c.Warning)
	fmt.Fprintf(&b, "- Info: %d\n\n", len(r.Issues)-c.Critical-c.Warning)
	fmt.Fprintf(&b, "🤖 AI Detection: %s (%d%% confidence)\n\n", verdict, r.AIDetection.Confidence)
	if cicd != nil && cicd.Detected {
		fmt.Fprintf(&b, "\n🚀 CI/CD: %s (Security: %d%%)", cicd.PlatformName(), cicd.SecurityScore)
	}
	b.WriteString("\n\nAnalyzed with codescope")
	return b.String()
}

// OneLine 单行摘要，如 "Score: 87/100 | 3 issues | 120 lines"
func OneLine(r *models.AnalysisResult) string {
	return fmt.Sprintf("Score: %d/100 | %d issues | %d lines", r.Score, len(r.Issues), r.Metrics.LinesOfCode)
}
