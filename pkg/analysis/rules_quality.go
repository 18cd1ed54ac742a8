package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yeisme/codescope/pkg/utils/mathx"
	"github.com/yeisme/codescope/pkg/models"
)

const (
	consoleThreshold   = 5
	magicThreshold     = 3
	magicMinDigits     = 3
	docFunctionMin     = 3
	docRatioMin        = 0.1
	longFunctionLines  = 60
	commentedCodeLimit = 3
)

var (
	consoleRe        = regexp.MustCompile(`console\.(log|error|warn|debug|info)`)
	asyncRe          = regexp.MustCompile(`(?i)async|await|fetch|axios|request|Promise|\.then\(`)
	errorHandlingRe  = regexp.MustCompile(`(?i)try|catch|except|throw|\.catch\(|error`)
	taskMarkerRe     = regexp.MustCompile(`(?i)TODO|FIXME|HACK|XXX|BUG`)
	functionStartRe  = regexp.MustCompile(`function|def |fn |func `)
	slashCommentedRe = regexp.MustCompile(`^[\s]*//\s*[a-zA-Z]+.*[;{}\(\)]`)
	hashCommentedRe  = regexp.MustCompile(`^[\s]*#\s*[a-zA-Z]+.*[;:\(\)]`)
)

func consoleStatements(src *source) []models.Issue {
	n := countMatches(consoleRe, src.code)
	if n <= consoleThreshold {
		return nil
	}
	suggestion := "Remove print/debug statements. Use a logging framework with configurable levels (logging, log4j) that can be disabled in production."
	if src.isJSFamily() {
		suggestion = `Remove console.* before deploying. Use a proper logger (Winston, Pino, or Bunyan) with environment-based levels: if (process.env.NODE_ENV !== "production") console.log(). Set up error tracking with Sentry or similar.`
	}
	return one(models.Issue{
		Type:        models.SeverityWarning,
		Title:       fmt.Sprintf("%d console statements found", n),
		Description: "Console logs in production expose sensitive data (user IDs, API responses, internal logic) to anyone with browser DevTools. They also impact performance and clutter the console, making real errors harder to spot.",
		Suggestion:  suggestion,
	})
}

func missingAsyncErrorHandling(src *source) []models.Issue {
	if !languageHas(src.language, "javascript", "typescript", "python", "java") {
		return nil
	}
	if !asyncRe.MatchString(src.code) || errorHandlingRe.MatchString(src.code) {
		return nil
	}
	suggestion := "Add try-except blocks around all async/IO operations. Log errors and provide user feedback. Use context managers (with statements) for resource cleanup."
	if src.isJSFamily() {
		suggestion = `Wrap async code in try-catch: try { const data = await fetch(url); } catch (error) { console.error("API failed:", error); showToast("Error loading data"); }. Use .catch() for promises. Add global error handlers for unhandled rejections.`
	}
	return one(models.Issue{
		Type:        models.SeverityWarning,
		Title:       "Missing error handling for async operations",
		Description: "Async code without error handling causes unhandled promise rejections, crashes, silent failures, or leaves the app in an inconsistent state. Users see generic errors or worse - no error at all.",
		Suggestion:  suggestion,
	})
}

func taskMarkers(src *source) []models.Issue {
	n := countMatches(taskMarkerRe, src.code)
	if n == 0 {
		return nil
	}
	line := src.firstLine(taskMarkerRe)
	return one(models.Issue{
		Type:        models.SeverityInfo,
		Title:       fmt.Sprintf("%d unfinished task marker%s (TODO/FIXME)", n, plural(n, "s")),
		Description: fmt.Sprintf("Found starting at line %d. These comments indicate incomplete features, temporary workarounds, or known bugs. Shipping code with TODOs means you're deploying unfinished work.", line),
		Line:        line,
		Suggestion:  "Review each TODO: Complete the work, create a ticket in your issue tracker (Jira, Linear, GitHub Issues) with proper priority, or remove if no longer relevant. Assign owners and due dates. Never deploy critical TODOs.",
	})
}

func magicNumbers(src *source) []models.Issue {
	if countMagicNumbers(src.code) <= magicThreshold {
		return nil
	}
	return one(models.Issue{
		Type:        models.SeverityInfo,
		Title:       "Magic numbers detected - use named constants",
		Description: "Unexplained numbers like 86400, 1000, 3600 make code hard to understand and maintain. When the same number appears multiple times, changing it requires finding every instance.",
		Suggestion:  "Replace with named constants: const SECONDS_IN_DAY = 86400; const MAX_RETRIES = 3; const DEFAULT_TIMEOUT_MS = 5000. Use SCREAMING_SNAKE_CASE for constants. Group related constants in an object or enum.",
	})
}

// countMagicNumbers 统计独立的多位数字字面量
//
// 数字串需满足：长度不少于 3，前一个字符不是单词字符或小数点，
// 后一个字符不是单词字符，跳过空白后紧跟的也不是字母或下划线
func countMagicNumbers(code string) int {
	count := 0
	for i := 0; i < len(code); {
		if !isDigit(code[i]) {
			i++
			continue
		}
		start := i
		for i < len(code) && isDigit(code[i]) {
			i++
		}
		if i-start < magicMinDigits {
			continue
		}
		if start > 0 && (isWordByte(code[start-1]) || code[start-1] == '.') {
			continue
		}
		if i < len(code) && isWordByte(code[i]) {
			continue
		}
		j := i
		for j < len(code) && isSpaceByte(code[j]) {
			j++
		}
		if j < len(code) && (isLetterByte(code[j]) || code[j] == '_') {
			continue
		}
		count++
	}
	return count
}

func lowDocumentation(src *source) []models.Issue {
	m := ComputeMetrics(src.code, src.language)
	codeLines := m.CodeLines
	if codeLines == 0 {
		codeLines = 1
	}
	ratio := float64(m.CommentLines) / float64(codeLines)
	if m.Functions <= docFunctionMin || ratio >= docRatioMin {
		return nil
	}
	var suggestion string
	switch {
	case src.isJSFamily():
		suggestion = "Add JSDoc comments: /** @param {string} userId - Unique user identifier * @returns {Promise<User>} User object * @throws {NotFoundError} If user doesn't exist */. Document complex logic, edge cases, and business rules. Use clear variable names to reduce need for comments."
	case languageHas(src.language, "python"):
		suggestion = `Add docstrings: """Fetch user by ID. Args: user_id (str): Unique identifier. Returns: User: User object. Raises: NotFoundError: If user not found.""". Follow PEP 257 conventions.`
	default:
		suggestion = "Add function/method documentation explaining parameters, return values, exceptions, and purpose. Document non-obvious logic and business rules."
	}
	return one(models.Issue{
		Type:        models.SeverityInfo,
		Title:       "Low code documentation",
		Description: fmt.Sprintf(`Found %d functions but only %d%% comments. Undocumented code is a maintenance nightmare. Future developers (including you in 6 months) won't understand the "why" behind decisions.`, m.Functions, mathx.Round(ratio*100)),
		Suggestion:  suggestion,
	})
}

// longFunctions 以花括号深度跟踪函数体
//
// 进入函数后只有在报告一次超长函数时才退出跟踪状态，
// 所以短函数结束后仍会继续累计到后续代码
func longFunctions(src *source) []models.Issue {
	var out []models.Issue
	inFunction := false
	start, depth := 0, 0
	for i, l := range src.lines {
		if !inFunction && functionStartRe.MatchString(l) {
			inFunction = true
			start, depth = i, 0
		}
		if !inFunction {
			continue
		}
		depth += strings.Count(l, "{") - strings.Count(l, "}")
		if depth == 0 && i-start > longFunctionLines {
			out = append(out, models.Issue{
				Type:        models.SeverityInfo,
				Title:       "Long function detected",
				Description: fmt.Sprintf("Function starting at line %d spans %d lines. Long functions are hard to test, understand, debug, and reuse. They often violate the Single Responsibility Principle.", start+1, i-start),
				Line:        start + 1,
				Suggestion:  "Break down into smaller functions with clear names: extract repeated logic, separate concerns (validation, processing, formatting), create helper functions. Aim for functions under 30 lines that do one thing well.",
			})
			inFunction = false
		}
	}
	return out
}

func commentedOutCode(src *source) []models.Issue {
	n := 0
	for _, l := range src.lines {
		if slashCommentedRe.MatchString(l) || hashCommentedRe.MatchString(l) {
			n++
		}
	}
	if n <= commentedCodeLimit {
		return nil
	}
	return one(models.Issue{
		Type:        models.SeverityInfo,
		Title:       "Commented-out code found",
		Description: fmt.Sprintf("Found %d lines of commented code. Commented code creates confusion, clutter, and false positives in searches. Version control (Git) already preserves history.", n),
		Suggestion:  "Delete commented code - it's in Git history if you need it. If keeping for reference, add a comment explaining why and when to remove it. Better: use feature flags for experimental code.",
	})
}

func isWordByte(b byte) bool { return isLetterByte(b) || isDigit(b) || b == '_' }

func isLetterByte(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
