package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/style"
)

// PrintProject 输出目录分析汇总：按语言的统计表与得分最低的 worst 个文件
func PrintProject(w io.Writer, rep *models.ProjectReport, worst int) error {
	if err := style.PrintHeading(w, rep.Root); err != nil {
		return err
	}
	if err := style.PrintKV(w, []style.KV{
		{Key: "Files", Value: fmt.Sprint(rep.Total.Files)},
		{Key: "Lines", Value: fmt.Sprint(rep.Total.Lines)},
		{Key: "Mean score", Value: style.ScoreBadge(int(rep.Total.MeanScore + 0.5))},
		{Key: "Duplicates", Value: fmt.Sprint(rep.Duplicates)},
		{Key: "Skipped", Value: fmt.Sprint(rep.Skipped)},
	}); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if rep.Total.Files == 0 {
		_, err := fmt.Fprintln(w, style.Muted("No source files found."))
		return err
	}

	if err := style.PrintTable(w,
		[]string{"language", "files", "lines", "score", "critical", "warning", "info"},
		languageRows(rep), 0, nil); err != nil {
		return err
	}

	files := WorstFiles(rep, worst)
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{
			style.Truncate(f.Path, titleWidth),
			fmt.Sprint(f.Result.Score),
			fmt.Sprint(len(f.Result.Issues)),
		})
	}
	styler := func(row, col int, base lipgloss.Style) lipgloss.Style {
		if col == 1 && row >= 0 && row < len(files) {
			return base.Foreground(style.ScoreColor(files[row].Result.Score)).Bold(true)
		}
		return base
	}
	return style.PrintTable(w, []string{"file", "score", "issues"}, rows, 0, styler)
}

// languageRows 按文件数降序，同数时按语言名
func languageRows(rep *models.ProjectReport) [][]string {
	names := make([]string, 0, len(rep.Languages))
	for name := range rep.Languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := rep.Languages[names[i]], rep.Languages[names[j]]
		if a.Files != b.Files {
			return a.Files > b.Files
		}
		return names[i] < names[j]
	})

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		s := rep.Languages[name]
		rows = append(rows, []string{
			lang.Label(name),
			fmt.Sprint(s.Files),
			fmt.Sprint(s.Lines),
			fmt.Sprintf("%.1f", s.MeanScore),
			fmt.Sprint(s.Issues.Critical),
			fmt.Sprint(s.Issues.Warning),
			fmt.Sprint(s.Issues.Info),
		})
	}
	return rows
}

// WorstFiles 返回得分最低的 n 个非重复文件，n <= 0 时返回全部
func WorstFiles(rep *models.ProjectReport, n int) []models.FileReport {
	files := make([]models.FileReport, 0, len(rep.Files))
	for _, f := range rep.Files {
		if !f.Duplicate {
			files = append(files, f)
		}
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].Result.Score < files[j].Result.Score })
	if n > 0 && len(files) > n {
		files = files[:n]
	}
	return files
}
