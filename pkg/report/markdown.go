package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/style"
)

// Markdown 生成 Markdown 报告
func Markdown(r *models.AnalysisResult, language string, cicd *models.CICDAnalysisResult) string {
	var b strings.Builder
	c := r.Counts()
	level := LevelFor(r.Metrics.Complexity)

	fmt.Fprintf(&b, "# Code Analysis Report\n\n")
	fmt.Fprintf(&b, "**Language:** %s  \n", lang.Label(language))
	fmt.Fprintf(&b, "**Quality Score:** %d/100 (%s)  \n", r.Score, ScoreLabel(r.Score))
	fmt.Fprintf(&b, "**Complexity:** %d (%s, %s)  \n", r.Metrics.Complexity, level.Label, strings.ToLower(level.Description))
	fmt.Fprintf(&b, "**Maintainability Index:** %d\n\n", MaintainabilityIndex(r.Metrics))

	b.WriteString("## Metrics\n\n| Metric | Value |\n|---|---|\n")
	for _, row := range metricRows(r.Metrics) {
		fmt.Fprintf(&b, "| %s | %s |\n", row[0], row[1])
	}

	fmt.Fprintf(&b, "\n## Issues (%d critical, %d warning, %d info)\n\n", c.Critical, c.Warning, c.Info)
	if len(r.Issues) == 0 {
		b.WriteString("No issues found.\n")
	}
	for i, is := range r.Issues {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, is.Title)
		fmt.Fprintf(&b, "- **Severity:** %s\n", is.Type)
		if is.HasLine() {
			fmt.Fprintf(&b, "- **Line:** %d\n", is.Line)
		}
		fmt.Fprintf(&b, "\n%s\n\n> %s\n\n", is.Description, is.Suggestion)
	}

	verdict := "Likely human written"
	if r.AIDetection.IsLikelyAI {
		verdict = "Possibly AI generated"
	}
	fmt.Fprintf(&b, "## Authorship\n\n%s (%d%% confidence)\n\n", verdict, r.AIDetection.Confidence)
	for _, ind := range r.AIDetection.Indicators {
		fmt.Fprintf(&b, "- `%s` %s\n", ind.Type, ind.Text)
	}

	if cicd != nil && cicd.Detected {
		fmt.Fprintf(&b, "\n## CI/CD: %s\n\n**Security Score:** %d/100\n\n", cicd.PlatformName(), cicd.SecurityScore)
		for _, is := range cicd.Issues {
			fmt.Fprintf(&b, "- **[%s] %s**: %s %s\n", is.Type, is.Title, is.Description, is.Suggestion)
		}
		b.WriteString("\n")
		for _, bp := range cicd.BestPractices {
			mark := " "
			if bp.Implemented {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s: %s\n", mark, bp.Name, bp.Description)
		}
	}
	return b.String()
}

// RenderMarkdown 渲染 Markdown 报告到终端
func RenderMarkdown(w io.Writer, r *models.AnalysisResult, language string, cicd *models.CICDAnalysisResult) error {
	return style.RenderMarkdown(w, Markdown(r, language, cicd), 0, "")
}

func metricRows(m models.CodeMetrics) [][]string {
	return [][]string{
		{"Lines of code", fmt.Sprint(m.LinesOfCode)},
		{"Code lines", fmt.Sprint(m.CodeLines)},
		{"Comment lines", fmt.Sprint(m.CommentLines)},
		{"Blank lines", fmt.Sprint(m.BlankLines)},
		{"Complexity", fmt.Sprint(m.Complexity)},
		{"Functions", fmt.Sprint(m.Functions)},
		{"Classes", fmt.Sprint(m.Classes)},
	}
}
