package llm

import (
	"fmt"
	"strings"
)

// Markdown 把修复建议渲染为 Markdown，每条修复一节，最后附完整修正代码
func (r FixResult) Markdown(language string) string {
	var b strings.Builder
	b.WriteString("# AI Fix Suggestions\n\n")
	if len(r.Fixes) == 0 && r.FullCorrectedCode == "" {
		b.WriteString("_No fix suggestions were returned._\n")
		return b.String()
	}
	for i, f := range r.Fixes {
		fmt.Fprintf(&b, "## %d. %s\n\n", i+1, f.Issue)
		if f.Explanation != "" {
			b.WriteString(f.Explanation + "\n\n")
		}
		if f.FixedCode != "" {
			fmt.Fprintf(&b, "```%s\n%s\n```\n\n", language, strings.TrimRight(f.FixedCode, "\n"))
		}
	}
	if r.FullCorrectedCode != "" {
		fmt.Fprintf(&b, "## Full corrected code\n\n```%s\n%s\n```\n", language, strings.TrimRight(r.FullCorrectedCode, "\n"))
	}
	return b.String()
}
