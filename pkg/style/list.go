package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/list"
	"github.com/charmbracelet/lipgloss/tree"
)

// PrintList 以圆点列表输出，items 可以嵌套 list.New() 形成子列表
func PrintList(w io.Writer, items ...any) error {
	l := list.New(items...).
		Enumerator(list.Bullet).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(ColorAccentPrimary).MarginRight(1)).
		ItemStyle(lipgloss.NewStyle().Foreground(ColorText))
	_, err := fmt.Fprintln(w, l)
	return err
}

// Check 清单中的一项
type Check struct {
	Name   string
	Done   bool
	Detail string
}

// PrintChecklist 以树形输出清单，完成项打勾，未完成项打叉并附说明
func PrintChecklist(w io.Writer, title string, checks []Check) error {
	ok := lipgloss.NewStyle().Foreground(ColorSuccess)
	miss := lipgloss.NewStyle().Foreground(ColorCritical)

	t := tree.New().Root(title)
	for _, c := range checks {
		mark := ok.Render("✔")
		if !c.Done {
			mark = miss.Render("✘")
		}
		node := tree.New().Root(fmt.Sprintf("%s %s", mark, c.Name))
		if c.Detail != "" {
			node.Child(Muted(c.Detail))
		}
		t.Child(node)
	}
	t.Enumerator(tree.RoundedEnumerator).
		RootStyle(lipgloss.NewStyle().Foreground(ColorAccentText).Bold(true)).
		EnumeratorStyle(lipgloss.NewStyle().Foreground(ColorBorder))

	_, err := fmt.Fprintln(w, t)
	return err
}
