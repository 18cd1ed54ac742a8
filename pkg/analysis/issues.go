package analysis

import (
	"regexp"
	"strings"

	"github.com/yeisme/codescope/pkg/models"
)

// source 一次问题检测的输入，规则之间共享
type source struct {
	code     string
	language string
	lines    []string
}

// rule 单条检测规则，按顺序执行，输出顺序即规则顺序
type rule func(src *source) []models.Issue

var rules = []rule{
	// 常见缺陷
	assignmentInConditional,
	missingBackticks,
	stringInNumericContext,
	commonTypos,
	missingSemicolons,
	unusedVariables,
	missingReturn,
	// 安全
	evalUsage,
	innerHTMLAssignment,
	sqlInjection,
	hardcodedCredentials,
	weakCrypto,
	// 质量
	consoleStatements,
	missingAsyncErrorHandling,
	taskMarkers,
	magicNumbers,
	lowDocumentation,
	longFunctions,
	commentedOutCode,
}

// DetectIssues 对源码执行全部检测规则
func DetectIssues(code string, language string) []models.Issue {
	src := &source{
		code:     code,
		language: language,
		lines:    strings.Split(code, "\n"),
	}
	issues := make([]models.Issue, 0)
	for _, r := range rules {
		issues = append(issues, r(src)...)
	}
	return issues
}

// isJSFamily 语言标识包含 javascript 或 typescript
func (s *source) isJSFamily() bool {
	return languageHas(s.language, "javascript", "typescript")
}

// languageHas 语言标识按子串匹配，因此 "java" 也会命中 "javascript"
func languageHas(language string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(language, sub) {
			return true
		}
	}
	return false
}

// firstLine 返回第一个匹配行的行号（1 起始），没有则为 0
func (s *source) firstLine(re *regexp.Regexp) int {
	for i, l := range s.lines {
		if re.MatchString(l) {
			return i + 1
		}
	}
	return 0
}

// locate 先按行找；匹配跨行时退回到整段匹配的起始行
func (s *source) locate(re *regexp.Regexp) int {
	if n := s.firstLine(re); n > 0 {
		return n
	}
	if loc := re.FindStringIndex(s.code); loc != nil {
		return strings.Count(s.code[:loc[0]], "\n") + 1
	}
	return 0
}

func one(is models.Issue) []models.Issue { return []models.Issue{is} }

func plural(n int, suffix string) string {
	if n > 1 {
		return suffix
	}
	return ""
}
