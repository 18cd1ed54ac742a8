package style

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	xterm "github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
)

// CellStyler 为表格单元格追加样式，row 从 0 开始且不含表头
type CellStyler func(row, col int, base lipgloss.Style) lipgloss.Style

// PrintTable 输出带边框的表格
// width<=0 时探测终端宽度，失败回退到 80；styler 可为 nil
func PrintTable(w io.Writer, headers []string, rows [][]string, width int, styler CellStyler) error {
	if width <= 0 {
		width = TerminalWidth(w)
	}

	re := lipgloss.NewRenderer(w)
	if noColor {
		re.SetColorProfile(termenv.Ascii)
	}
	base := re.NewStyle().Padding(0, 1)
	header := base.Foreground(lipgloss.Color("252")).Bold(true)

	upper := make([]string, len(headers))
	for i, h := range headers {
		upper[i] = strings.ToUpper(h)
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(re.NewStyle().Foreground(ColorBorder)).
		Headers(upper...).
		Width(width).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if styler != nil {
				return styler(row, col, base)
			}
			return base
		})

	_, err := fmt.Fprintln(w, tbl)
	return err
}

// TerminalWidth 返回 w 所在终端的宽度，无法探测时为 80
func TerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := xterm.GetSize(f.Fd()); err == nil && cols > 0 {
			return cols
		}
	}
	if v := os.Getenv("COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 80
}

// IsTerminal w 是否连接到终端
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && xterm.IsTerminal(f.Fd())
}
