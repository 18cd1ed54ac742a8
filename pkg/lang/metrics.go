package lang

import (
	"regexp"
	"strings"
)

// MetricPatterns 度量计算使用的函数、类与注释正则
type MetricPatterns struct {
	Function *regexp.Regexp
	Class    *regexp.Regexp
	Comment  *regexp.Regexp
}

const (
	cStyleComment = `//.*|/\*[\s\S]*?\*/`
	jsFunction    = `function\s+\w+|const\s+\w+\s*=\s*\([^)]*\)\s*=>|=>\s*{`
	braceFunction = `\w+\s+\w+\s*\([^)]*\)\s*{`
)

var (
	metricPatterns = map[string]MetricPatterns{
		"javascript": {
			Function: regexp.MustCompile(jsFunction),
			Class:    regexp.MustCompile(`class\s+\w+`),
			Comment:  regexp.MustCompile(cStyleComment),
		},
		"typescript": {
			Function: regexp.MustCompile(jsFunction),
			Class:    regexp.MustCompile(`class\s+\w+|interface\s+\w+`),
			Comment:  regexp.MustCompile(cStyleComment),
		},
		"python": {
			Function: regexp.MustCompile(`def\s+\w+`),
			Class:    regexp.MustCompile(`class\s+\w+`),
			Comment:  regexp.MustCompile(`#.*|'''[\s\S]*?'''|"""[\s\S]*?"""`),
		},
		"java": {
			Function: regexp.MustCompile(braceFunction),
			Class:    regexp.MustCompile(`class\s+\w+|interface\s+\w+`),
			Comment:  regexp.MustCompile(cStyleComment),
		},
		"cpp": {
			Function: regexp.MustCompile(braceFunction),
			Class:    regexp.MustCompile(`class\s+\w+|struct\s+\w+`),
			Comment:  regexp.MustCompile(cStyleComment),
		},
	}

	fallbackPatterns = MetricPatterns{
		Function: regexp.MustCompile(`function\s+\w+|def\s+\w+|\w+\s*\([^)]*\)\s*{`),
		Class:    regexp.MustCompile(`class\s+\w+`),
		Comment:  regexp.MustCompile(`//.*|#.*|/\*[\s\S]*?\*/`),
	}
)

// MetricPatternsFor 按语言标识（不区分大小写）取度量正则，未登记的语言使用通用规则
func MetricPatternsFor(language string) MetricPatterns {
	if p, ok := metricPatterns[strings.ToLower(language)]; ok {
		return p
	}
	return fallbackPatterns
}
