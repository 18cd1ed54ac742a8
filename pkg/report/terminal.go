package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yeisme/codescope/pkg/detect"
	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/style"
)

// 表格里标题与描述的最大显示宽度
const (
	titleWidth = 48
	descWidth  = 72
)

// Summary 终端摘要的附加信息
type Summary struct {
	Path     string
	Language string
	CICD     *models.CICDAnalysisResult
	// Verbose 为 true 时输出每条问题的描述与建议
	Verbose bool
}

// PrintSummary 在终端输出分析结果
func PrintSummary(w io.Writer, r *models.AnalysisResult, s Summary) error {
	title := "analysis"
	if s.Path != "" {
		title = s.Path
	}
	if err := style.PrintHeading(w, title); err != nil {
		return err
	}

	level := LevelFor(r.Metrics.Complexity)
	verdict := "likely human written"
	if r.AIDetection.IsLikelyAI {
		verdict = "possibly AI generated"
	}
	if err := style.PrintKV(w, []style.KV{
		{Key: "Language", Value: lang.Label(s.Language)},
		{Key: "Score", Value: fmt.Sprintf("%s %s", style.ScoreBadge(r.Score), ScoreLabel(r.Score))},
		{Key: "Complexity", Value: fmt.Sprintf("%d %s", r.Metrics.Complexity, style.Muted(level.Label+", "+level.Description))},
		{Key: "Maintainability", Value: fmt.Sprint(MaintainabilityIndex(r.Metrics))},
		{Key: "Authorship", Value: fmt.Sprintf("%s (%d%% confidence)", verdict, r.AIDetection.Confidence)},
	}); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if err := style.PrintTable(w, []string{"metric", "value"}, metricRows(r.Metrics), 40, nil); err != nil {
		return err
	}
	if err := PrintChart(w, BuildChart(r)); err != nil {
		return err
	}
	if err := PrintIssues(w, r.Issues, s.Verbose); err != nil {
		return err
	}

	if len(r.AIDetection.Indicators) > 0 {
		items := make([]any, 0, len(r.AIDetection.Indicators))
		for _, ind := range r.AIDetection.Indicators {
			items = append(items, fmt.Sprintf("[%s] %s", ind.Type, ind.Text))
		}
		if err := style.PrintList(w, items...); err != nil {
			return err
		}
	}

	if s.CICD != nil && s.CICD.Detected {
		return PrintCICD(w, s.CICD)
	}
	return nil
}

// PrintIssues 以表格列出问题，verbose 时在表格后逐条给出描述与建议
func PrintIssues(w io.Writer, issues []models.Issue, verbose bool) error {
	if len(issues) == 0 {
		_, err := fmt.Fprintln(w, style.Muted("No issues found."))
		return err
	}
	rows := make([][]string, 0, len(issues))
	for i, is := range issues {
		line := "-"
		if is.HasLine() {
			line = fmt.Sprint(is.Line)
		}
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			string(is.Type),
			line,
			style.Truncate(is.Title, titleWidth),
		})
	}
	styler := func(row, col int, base lipgloss.Style) lipgloss.Style {
		if col == 1 && row >= 0 && row < len(issues) {
			return base.Foreground(style.SeverityColor(issues[row].Type)).Bold(true)
		}
		return base
	}
	if err := style.PrintTable(w, []string{"#", "severity", "line", "title"}, rows, 0, styler); err != nil {
		return err
	}
	if !verbose {
		return nil
	}
	for i, is := range issues {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, style.SeverityBadge(is.Type), is.Title)
		fmt.Fprintf(w, "   %s\n", style.Truncate(is.Description, descWidth*3))
		fmt.Fprintf(w, "   %s %s\n\n", style.Muted("fix:"), is.Suggestion)
	}
	return nil
}

// PrintChart 以条形图输出代码构成与健康度
func PrintChart(w io.Writer, c ChartData) error {
	total := 0.0
	for _, s := range c.Composition {
		total += max(0, s.Value)
	}
	bar := func(frac float64, width int) string {
		n := int(frac*float64(width) + 0.5)
		n = max(0, min(width, n))
		return lipgloss.NewStyle().Foreground(style.ColorAccentPrimary).Render(strings.Repeat("█", n)) +
			style.Muted(strings.Repeat("░", width-n))
	}

	const width = 30
	var b strings.Builder
	for _, s := range c.Composition {
		frac := 0.0
		if total > 0 {
			frac = max(0, s.Value) / total
		}
		fmt.Fprintf(&b, "  %-13s %s %4.0f\n", s.Name, bar(frac, width), s.Value)
	}
	for _, s := range c.Health {
		fmt.Fprintf(&b, "  %-13s %s %3.0f%%\n", s.Name, bar(s.Value/100, width), s.Value)
	}
	_, err := fmt.Fprintln(w, b.String())
	return err
}

// PrintCICD 输出流水线分析结果
func PrintCICD(w io.Writer, res *models.CICDAnalysisResult) error {
	if !res.Detected {
		_, err := fmt.Fprintln(w, style.Muted("No CI/CD platform detected."))
		return err
	}
	if err := style.PrintHeading(w, "CI/CD: "+res.PlatformName()); err != nil {
		return err
	}
	if err := style.PrintKV(w, []style.KV{{Key: "Security", Value: style.ScoreBadge(res.SecurityScore)}}); err != nil {
		return err
	}
	for _, is := range res.Issues {
		fmt.Fprintf(w, "%s %s\n   %s\n   %s %s\n", style.SeverityBadge(is.Type), is.Title, is.Description, style.Muted("fix:"), is.Suggestion)
	}
	checks := make([]style.Check, 0, len(res.BestPractices))
	for _, bp := range res.BestPractices {
		checks = append(checks, style.Check{Name: bp.Name, Done: bp.Implemented, Detail: bp.Description})
	}
	return style.PrintChecklist(w, "Best practices", checks)
}

// PrintDetection 输出语言检测排名
func PrintDetection(w io.Writer, d models.DetectionResult) error {
	if err := style.PrintKV(w, []style.KV{
		{Key: "Language", Value: lang.Label(d.DetectedLanguage)},
		{Key: "Confidence", Value: fmt.Sprintf("%d%%", d.Confidence)},
	}); err != nil {
		return err
	}
	rows := make([][]string, 0, len(d.Scores))
	for i, s := range d.Scores {
		rows = append(rows, []string{fmt.Sprint(i + 1), lang.Label(s.Language), fmt.Sprintf("%.1f", s.Score)})
	}
	return style.PrintTable(w, []string{"rank", "language", "score"}, rows, 48, nil)
}

// PrintMismatch 输出语言不一致提示
func PrintMismatch(w io.Writer, m detect.Mismatch) error {
	_, err := fmt.Fprintf(w, "%s %s\n", style.SeverityBadge(models.SeverityWarning), m.Message())
	return err
}
