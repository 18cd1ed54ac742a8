package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yeisme/codescope/pkg/models"
)

var (
	assignInIfRe      = regexp.MustCompile(`if\s*\([^)]*[^=!<>]\s=\s[^=]`)
	consoleTemplateRe = regexp.MustCompile("console\\.log\\([^`]*\\$\\{")
	returnTemplateRe  = regexp.MustCompile("return\\s+[^`]*\\$\\{")
	quotedNumberRe    = regexp.MustCompile(`["']\d+["']`)
	mathContextRe     = regexp.MustCompile(`(?i)factorial|calculate|multiply|divide|add|subtract|Math\.`)
	statementStartRe  = regexp.MustCompile(`^(const|let|var|return)\s`)
	declarationRe     = regexp.MustCompile(`(?:const|let|var)\s+(\w+)`)
	namedFunctionRe   = regexp.MustCompile(`function\s+\w+`)
	returnRe          = regexp.MustCompile(`return\s`)
)

type typo struct {
	wrong, right string
}

var typos = []typo{
	{"lenght", "length"},
	{"fucntion", "function"},
	{"retrun", "return"},
	{"consoel", "console"},
	{"udefined", "undefined"},
}

func assignmentInConditional(src *source) []models.Issue {
	var out []models.Issue
	for i, l := range src.lines {
		if !assignInIfRe.MatchString(l) || strings.Contains(l, "==") {
			continue
		}
		n := i + 1
		out = append(out, models.Issue{
			Type:        models.SeverityCritical,
			Title:       "BUG: Assignment operator in conditional",
			Description: fmt.Sprintf("Line %d uses assignment (=) instead of comparison (== or ===) in an if statement. This will always assign the value and evaluate to true/truthy, not compare values. This is almost always a bug.", n),
			Line:        n,
			Suggestion:  "Change = to === for strict equality check. Example: if (n === 0) instead of if (n = 0). Use == only if you intentionally want type coercion.",
		})
	}
	return out
}

func missingBackticks(src *source) []models.Issue {
	var out []models.Issue
	for i, l := range src.lines {
		if !consoleTemplateRe.MatchString(l) && !returnTemplateRe.MatchString(l) {
			continue
		}
		n := i + 1
		out = append(out, models.Issue{
			Type:        models.SeverityCritical,
			Title:       "SYNTAX ERROR: Missing backticks for template literal",
			Description: fmt.Sprintf("Line %d uses template literal syntax (${}) but is missing backticks. This will cause a syntax error. Template literals must use backticks (`), not single or double quotes.", n),
			Line:        n,
			Suggestion:  "Replace quotes with backticks: console.log(`Factorial of ${num} is: ${result}`);",
		})
	}
	return out
}

func stringInNumericContext(src *source) []models.Issue {
	if !src.isJSFamily() {
		return nil
	}
	var out []models.Issue
	for i, l := range src.lines {
		if !quotedNumberRe.MatchString(l) {
			continue
		}
		lo, hi := max(0, i-3), min(len(src.lines), i+3)
		if !mathContextRe.MatchString(strings.Join(src.lines[lo:hi], " ")) {
			continue
		}
		n := i + 1
		out = append(out, models.Issue{
			Type:        models.SeverityWarning,
			Title:       "BUG: String used in numeric context",
			Description: fmt.Sprintf(`Line %d uses a string (e.g., "5") where a number is expected. This can cause type coercion issues, NaN results, or unexpected string concatenation instead of addition.`, n),
			Line:        n,
			Suggestion:  `Remove quotes to use numbers: const number = 5; not const number = "5". Or parse strings: parseInt(str) or Number(str).`,
		})
	}
	return out
}

func commonTypos(src *source) []models.Issue {
	var out []models.Issue
	for _, t := range typos {
		n := 0
		for i, l := range src.lines {
			if strings.Contains(l, t.wrong) {
				n = i + 1
				break
			}
		}
		if n == 0 {
			continue
		}
		out = append(out, models.Issue{
			Type:        models.SeverityCritical,
			Title:       fmt.Sprintf("TYPO: '%s' should be '%s'", t.wrong, t.right),
			Description: fmt.Sprintf("Found typo on line %d. This will cause a ReferenceError or unexpected behavior.", n),
			Line:        n,
			Suggestion:  fmt.Sprintf("Correct the spelling to '%s'.", t.right),
		})
	}
	return out
}

func missingSemicolons(src *source) []models.Issue {
	if !src.isJSFamily() {
		return nil
	}
	count := 0
	for i, l := range src.lines {
		t := strings.TrimSpace(l)
		if t == "" || !statementStartRe.MatchString(t) || i >= len(src.lines)-1 {
			continue
		}
		if strings.HasSuffix(t, ";") || strings.HasSuffix(t, "{") || strings.HasSuffix(t, ",") {
			continue
		}
		count++
	}
	if count <= 3 {
		return nil
	}
	return one(models.Issue{
		Type:        models.SeverityInfo,
		Title:       "Missing semicolons detected",
		Description: fmt.Sprintf("Found %d statements without semicolons. While JavaScript has ASI (Automatic Semicolon Insertion), it can cause subtle bugs in certain cases.", count),
		Suggestion:  "Add semicolons at the end of statements, or use a linter like ESLint with automatic fixing to enforce consistency.",
	})
}

// unusedVariables 出现次数按子串计，同名遮蔽或名字是其他标识符的一部分时会漏报
func unusedVariables(src *source) []models.Issue {
	if !src.isJSFamily() {
		return nil
	}
	seen := make(map[string]bool)
	var declared []string
	for _, l := range src.lines {
		for _, m := range declarationRe.FindAllStringSubmatch(l, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true
				declared = append(declared, m[1])
			}
		}
	}
	var unused []string
	for _, v := range declared {
		if strings.Count(src.code, v) <= 1 {
			unused = append(unused, v)
		}
	}
	if len(unused) == 0 {
		return nil
	}
	return one(models.Issue{
		Type:        models.SeverityInfo,
		Title:       fmt.Sprintf("Unused variable%s: %s", plural(len(unused), "s"), strings.Join(unused, ", ")),
		Description: fmt.Sprintf("Declared %d variable(s) that are never used. Dead code clutters the codebase and may indicate incomplete refactoring.", len(unused)),
		Suggestion:  "Remove unused variables or use them if they were meant to be used. Modern IDEs can highlight these automatically.",
	})
}

func missingReturn(src *source) []models.Issue {
	if !src.isJSFamily() {
		return nil
	}
	var out []models.Issue
	inFunc, hasReturn := false, false
	start, depth := 0, 0
	for i, l := range src.lines {
		if namedFunctionRe.MatchString(l) && !strings.Contains(l, "=>") {
			inFunc, hasReturn = true, false
			start, depth = i, 0
		}
		if !inFunc {
			continue
		}
		depth += strings.Count(l, "{") - strings.Count(l, "}")
		if returnRe.MatchString(l) {
			hasReturn = true
		}
		if depth != 0 || i <= start {
			continue
		}
		if !hasReturn && utf8.RuneCountInString(strings.Join(src.lines[start:i+1], " ")) > 100 {
			out = append(out, models.Issue{
				Type:        models.SeverityWarning,
				Title:       "Function may be missing return statement",
				Description: fmt.Sprintf("Function starting at line %d has no return statement. If this function should return a value, it will return undefined.", start+1),
				Line:        start + 1,
				Suggestion:  "Add a return statement if the function should return a value, or clarify if it's intentionally a void function.",
			})
		}
		inFunc = false
	}
	return out
}
