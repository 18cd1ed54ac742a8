// Package llm 基于大模型的修复建议与代码问答
//
// 核心分析不依赖本包；这里只把分析结果序列化为提示词并调用 OpenAI 兼容接口
package llm

import (
	"fmt"
	"strings"

	"github.com/yeisme/codescope/pkg/models"
)

const (
	maxCriticalIssues = 3
	maxWarningIssues  = 2

	fixSystemPrompt  = "You are a helpful code review assistant. You provide concise, actionable fixes for code issues. Always respond with valid JSON only, no markdown formatting."
	chatSystemPrompt = "You are an expert code assistant helping to fix bugs and improve code quality."
)

// SelectIssues 挑选送往模型的问题：最多 3 个 critical 加 2 个 warning，总数不超过 limit
func SelectIssues(issues []models.Issue, limit int) []models.Issue {
	var critical, warning []models.Issue
	for _, is := range issues {
		switch is.Type {
		case models.SeverityCritical:
			if len(critical) < maxCriticalIssues {
				critical = append(critical, is)
			}
		case models.SeverityWarning:
			if len(warning) < maxWarningIssues {
				warning = append(warning, is)
			}
		}
	}
	out := append(critical, warning...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SummarizeIssues 生成编号的纯文本问题列表 "N. Title (Line L): Description"，limit <= 0 表示不截断
func SummarizeIssues(issues []models.Issue, limit int) string {
	if limit > 0 && len(issues) > limit {
		issues = issues[:limit]
	}
	lines := make([]string, 0, len(issues))
	for i, is := range issues {
		line := ""
		if is.HasLine() {
			line = fmt.Sprintf(" (Line %d)", is.Line)
		}
		lines = append(lines, fmt.Sprintf("%d. %s%s: %s", i+1, is.Title, line, is.Description))
	}
	return strings.Join(lines, "\n")
}

// FixPrompt 修复建议的用户提示词，要求模型只返回 JSON
func FixPrompt(code, language string, issues []models.Issue) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert code reviewer. Analyze the following %s code and provide specific fixes for the issues listed.\n\n", language)
	fmt.Fprintf(&b, "CODE:\n```%s\n%s\n```\n\n", language, code)
	fmt.Fprintf(&b, "ISSUES TO FIX:\n%s\n\n", SummarizeIssues(issues, 0))
	b.WriteString(`Provide:
1. Individual fixes for each issue with the corrected code snippet and explanation
2. The COMPLETE fully functional corrected code with ALL issues fixed

Respond ONLY with valid JSON in this exact format (no markdown, no code blocks, just raw JSON):
{
  "fixes": [
    {
      "issue": "Issue title here",
      "fixedCode": "corrected code snippet here",
      "explanation": "Brief explanation of why this fix works"
    }
  ],
  "fullCorrectedCode": "The complete corrected code with all issues fixed goes here"
}`)
	return b.String()
}

// ChatContext 问答的系统消息，附带代码与分析结果；code 或 result 为空时省略对应段落
func ChatContext(code, language string, result *models.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(chatSystemPrompt)
	if code != "" && language != "" {
		fmt.Fprintf(&b, "\n\nUser's code (%s):\n```%s\n%s\n```", language, language, code)
	}
	if result == nil {
		return b.String()
	}
	b.WriteString("\n\nCode Analysis Results:")
	fmt.Fprintf(&b, "\n- Quality Score: %d/100", result.Score)
	if len(result.Issues) > 0 {
		b.WriteString("\n\nIssues Found:")
		for i, is := range result.Issues {
			fmt.Fprintf(&b, "\n%d. [%s] %s: %s", i+1, is.Type, is.Title, is.Description)
			if is.HasLine() {
				fmt.Fprintf(&b, " (Line %d)", is.Line)
			}
			if is.Suggestion != "" {
				fmt.Fprintf(&b, "\n   Suggestion: %s", is.Suggestion)
			}
		}
	}
	return b.String()
}
