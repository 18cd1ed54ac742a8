// Package analysis 是源码质量分析的核心：度量、问题检测、作者归属与评分
//
// 包内所有入口都是纯函数，不做 I/O，可并发调用
package analysis

import (
	"regexp"
	"strings"

	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/models"
)

// MaxComplexity 复杂度上限
const MaxComplexity = 20

var complexityRe = regexp.MustCompile(`if|else|for|while|case|catch|\?\?|\|\||&&`)

// ComputeMetrics 计算代码度量
//
// 注释行数的统计方式是把所有注释匹配用换行拼接后再数行数，
// 与真实注释行并不总是一致；CodeLines 因此可能为负
func ComputeMetrics(code string, language string) models.CodeMetrics {
	lines := strings.Split(code, "\n")
	p := lang.MetricPatternsFor(language)

	stripped := p.Comment.ReplaceAllString(code, "")

	commentLines := 0
	if comments := p.Comment.FindAllString(code, -1); len(comments) > 0 {
		commentLines = len(strings.Split(strings.Join(comments, "\n"), "\n"))
	}

	blank := 0
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			blank++
		}
	}

	functions := countMatches(p.Function, stripped)
	classes := countMatches(p.Class, stripped)
	complexity := min(MaxComplexity, countMatches(complexityRe, stripped)+functions)

	return models.CodeMetrics{
		LinesOfCode:  len(lines),
		CodeLines:    len(lines) - blank - commentLines,
		CommentLines: commentLines,
		BlankLines:   blank,
		Complexity:   complexity,
		Functions:    functions,
		Classes:      classes,
	}
}

func countMatches(re *regexp.Regexp, s string) int {
	return len(re.FindAllStringIndex(s, -1))
}
