package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/models"
)

func newSource(code, language string) *source {
	return &source{code: code, language: language, lines: strings.Split(code, "\n")}
}

func Test_Analyze_EmptyInput(t *testing.T) {
	for _, l := range lang.All() {
		for _, in := range []string{"", "   ", "\n\t\n"} {
			res := Analyze(in, l.String())
			assert.Equal(t, 0, res.Score)
			require.Len(t, res.Issues, 1)
			assert.Equal(t, "No code provided", res.Issues[0].Title)
			assert.Equal(t, models.SeverityWarning, res.Issues[0].Type)
			assert.Equal(t, models.CodeMetrics{}, res.Metrics)
			assert.False(t, res.AIDetection.IsLikelyAI)
			assert.Equal(t, 50, res.AIDetection.Confidence)
			assert.Empty(t, res.AIDetection.Indicators)
		}
	}
}

func Test_Analyze_LineCount(t *testing.T) {
	cases := []string{"x", "a\nb", "a\n\n\nb\n", "def f():\n    pass"}
	for _, c := range cases {
		for _, l := range []string{"javascript", "python", "rust"} {
			res := Analyze(c, l)
			assert.Equal(t, len(strings.Split(c, "\n")), res.Metrics.LinesOfCode)
			assert.GreaterOrEqual(t, res.Score, 0)
			assert.LessOrEqual(t, res.Score, 100)
		}
	}
}

func Test_Analyze_Eval(t *testing.T) {
	res := Analyze("const total = eval(input);\nconsole.log(total);", "javascript")
	found := false
	for _, is := range res.Issues {
		if is.Type == models.SeverityCritical && strings.Contains(is.Title, "eval") {
			found = true
			assert.Equal(t, 1, is.Line)
		}
	}
	assert.True(t, found)
	assert.Less(t, res.Score, 100)
}

func Test_DetectIssues_RuleOrder(t *testing.T) {
	code := "// TODO remove\nconst r = eval(x);\nreturn r;"
	issues := DetectIssues(code, "javascript")
	evalAt, todoAt := -1, -1
	for i, is := range issues {
		switch {
		case strings.Contains(is.Title, "eval"):
			evalAt = i
		case strings.Contains(is.Title, "unfinished task"):
			todoAt = i
		}
	}
	require.GreaterOrEqual(t, evalAt, 0)
	require.GreaterOrEqual(t, todoAt, 0)
	assert.Less(t, evalAt, todoAt)
}

func Test_DetectIssues_NeverNil(t *testing.T) {
	assert.NotNil(t, DetectIssues("x", "go"))
}

func Test_Score(t *testing.T) {
	tests := []struct {
		name    string
		issues  []models.Issue
		metrics models.CodeMetrics
		want    int
	}{
		{"neutral ratio", nil, models.CodeMetrics{CommentLines: 1, CodeLines: 10}, 100},
		{"no lines at all", nil, models.CodeMetrics{}, 100},
		{"comments only", nil, models.CodeMetrics{CommentLines: 3}, 100},
		{"low docs", nil, models.CodeMetrics{CommentLines: 0, CodeLines: 10}, 95},
		{
			"mixed",
			[]models.Issue{{Type: models.SeverityCritical}, {Type: models.SeverityWarning}, {Type: models.SeverityInfo}},
			models.CodeMetrics{Complexity: 12, CodeLines: 10},
			64,
		},
		{
			"very complex",
			nil,
			models.CodeMetrics{Complexity: 16, CommentLines: 1, CodeLines: 10},
			90,
		},
		{
			"clamped",
			[]models.Issue{
				{Type: models.SeverityCritical}, {Type: models.SeverityCritical}, {Type: models.SeverityCritical},
				{Type: models.SeverityCritical}, {Type: models.SeverityCritical}, {Type: models.SeverityCritical},
				{Type: models.SeverityCritical}, {Type: models.SeverityCritical},
			},
			models.CodeMetrics{CodeLines: 10},
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.issues, tt.metrics))
		})
	}
}

func Test_countMagicNumbers(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"a = 1000; b = 2000; c = 3000; d = 4000;", 4},
		{"width: 1000px", 0},
		{"x.1000", 0},
		{"wait(1000 ms)", 0},
		{"12 + 99", 0},
		{"abc1000", 0},
		{"1000", 1},
		{"(1000)", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, countMagicNumbers(tt.in), tt.in)
	}
}

func Test_hasWeakCrypto(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"hash = md5(x)", true},
		{"crypto.createHash('SHA1')", true},
		{"sha256(x)", false},
		{"sha12", false},
		{"base64(password)", true},
		{"base64url(password)", false},
		{"base64 encode\npassword", false},
		{"plain text", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hasWeakCrypto(tt.in), tt.in)
	}
}

func Test_weakCrypto_Suggestion(t *testing.T) {
	js := weakCrypto(newSource("md5(x)", "javascript"))
	require.Len(t, js, 1)
	assert.True(t, strings.HasPrefix(js[0].Suggestion, "For passwords"))
	assert.False(t, js[0].HasLine())

	other := weakCrypto(newSource("md5(x)", "go"))
	require.Len(t, other, 1)
	assert.True(t, strings.HasPrefix(other[0].Suggestion, "Use bcrypt"))
}

func Test_sqlInjection(t *testing.T) {
	code := "user = 1\nq = \"SELECT * FROM t WHERE id = '\" + uid + \"'\""
	out := sqlInjection(newSource(code, "python"))
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].Line)
	assert.Contains(t, out[0].Suggestion, "cursor.execute")

	assert.Nil(t, sqlInjection(newSource("SELECT * FROM t", "python")))
}

func Test_hardcodedCredentials(t *testing.T) {
	out := hardcodedCredentials(newSource(`password = "supersecret123"`, "python"))
	require.Len(t, out, 1)
	assert.Equal(t, models.SeverityCritical, out[0].Type)
	assert.Equal(t, 1, out[0].Line)

	assert.Nil(t, hardcodedCredentials(newSource(`password = "short"`, "python")))
}

func Test_consoleStatements(t *testing.T) {
	code := strings.Repeat("console.log(x);\n", 6)
	out := consoleStatements(newSource(code, "javascript"))
	require.Len(t, out, 1)
	assert.Equal(t, "6 console statements found", out[0].Title)
	assert.Contains(t, out[0].Suggestion, "Winston")

	assert.Nil(t, consoleStatements(newSource(strings.Repeat("console.log(x);\n", 5), "javascript")))
}

func Test_missingAsyncErrorHandling(t *testing.T) {
	out := missingAsyncErrorHandling(newSource("rows = await load_rows()", "python"))
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Suggestion, "try-except")

	assert.Nil(t, missingAsyncErrorHandling(newSource("try:\n    rows = await load_rows()", "python")))
	assert.Nil(t, missingAsyncErrorHandling(newSource("rows = await load_rows()", "go")))
}

func Test_taskMarkers(t *testing.T) {
	out := taskMarkers(newSource("a\n// TODO later\n// fixme", "javascript"))
	require.Len(t, out, 1)
	assert.Equal(t, "2 unfinished task markers (TODO/FIXME)", out[0].Title)
	assert.Equal(t, 2, out[0].Line)

	single := taskMarkers(newSource("# HACK", "python"))
	require.Len(t, single, 1)
	assert.Equal(t, "1 unfinished task marker (TODO/FIXME)", single[0].Title)
}

func Test_lowDocumentation(t *testing.T) {
	code := "function a() {}\nfunction b() {}\nfunction c() {}\nfunction d() {}"
	out := lowDocumentation(newSource(code, "javascript"))
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Description, "Found 4 functions but only 0% comments.")
	assert.Contains(t, out[0].Suggestion, "JSDoc")
}

func Test_longFunctions(t *testing.T) {
	code := "function big() {\n" + strings.Repeat("  x++;\n", 61) + "}"
	out := longFunctions(newSource(code, "javascript"))
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].Line)
	assert.Contains(t, out[0].Description, "spans 62 lines")

	short := "function small() {\n  x++;\n}"
	assert.Empty(t, longFunctions(newSource(short, "javascript")))
}

func Test_commentedOutCode(t *testing.T) {
	code := strings.Repeat("// foo();\n", 4)
	out := commentedOutCode(newSource(code, "javascript"))
	require.Len(t, out, 1)
	assert.Contains(t, out[0].Description, "Found 4 lines")

	assert.Nil(t, commentedOutCode(newSource(strings.Repeat("// foo();\n", 3), "javascript")))
}

func Test_DetectAuthorship(t *testing.T) {
	res := DetectAuthorship("x", "javascript")
	assert.True(t, res.IsLikelyAI)
	assert.Equal(t, 100, res.Confidence)
	require.Len(t, res.Indicators, 1)
	assert.Equal(t, models.IndicatorAI, res.Indicators[0].Type)

	res = DetectAuthorship("// TODO lol", "javascript")
	assert.False(t, res.IsLikelyAI)
	assert.Equal(t, 25, res.Confidence)
	require.Len(t, res.Indicators, 3)
	assert.Equal(t, models.IndicatorHuman, res.Indicators[0].Type)
	assert.True(t, strings.HasPrefix(res.Indicators[0].Text, "1 development marker(s)"))
	assert.Equal(t, models.IndicatorHuman, res.Indicators[1].Type)
	assert.Equal(t, models.IndicatorAI, res.Indicators[2].Type)
}

func Test_rankIndicators(t *testing.T) {
	var in []models.Indicator
	for i := 0; i < 4; i++ {
		in = append(in, models.Indicator{Type: models.IndicatorHuman, Text: "h"})
		in = append(in, models.Indicator{Type: models.IndicatorAI, Text: "a"})
	}
	out := rankIndicators(in, true)
	require.Len(t, out, MaxIndicators)
	for i := 0; i < 4; i++ {
		assert.Equal(t, models.IndicatorAI, out[i].Type)
	}
	assert.Equal(t, models.IndicatorHuman, out[4].Type)
}

func Test_ComputeMetrics(t *testing.T) {
	code := "// add numbers\nfunction add(a, b) {\n  if (a) return a + b;\n\n}"
	m := ComputeMetrics(code, "javascript")
	assert.Equal(t, 5, m.LinesOfCode)
	assert.Equal(t, 1, m.BlankLines)
	assert.Equal(t, 1, m.CommentLines)
	assert.Equal(t, 3, m.CodeLines)
	assert.Equal(t, 1, m.Functions)
	assert.LessOrEqual(t, m.Complexity, MaxComplexity)
}

func titlesContaining(issues []models.Issue, sub string) []models.Issue {
	var out []models.Issue
	for _, is := range issues {
		if strings.Contains(is.Title, sub) {
			out = append(out, is)
		}
	}
	return out
}

func Test_DetectIssues_AssignmentInIf(t *testing.T) {
	issues := DetectIssues("function test() { if (x = 5) { console.log(x); } }", "javascript")
	require.Len(t, issues, 1)
	assert.Equal(t, models.SeverityCritical, issues[0].Type)
	assert.Equal(t, "BUG: Assignment operator in conditional", issues[0].Title)
	assert.Equal(t, 1, issues[0].Line)
}

func Test_DetectIssues_SQLConcatenation(t *testing.T) {
	code := `const query = "SELECT * FROM users WHERE id = '" + userId + "'";`
	sql := titlesContaining(DetectIssues(code, "javascript"), "SQL Injection")
	require.Len(t, sql, 1)
	assert.Equal(t, models.SeverityCritical, sql[0].Type)
	assert.Equal(t, 1, sql[0].Line)
	assert.Contains(t, sql[0].Suggestion, "db.query")
}

func Test_Analyze_UndocumentedPython(t *testing.T) {
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, fmt.Sprintf("def step_%d():", i))
		for j := 0; j < 19; j++ {
			lines = append(lines, fmt.Sprintf("    value_%d = %d", j, j))
		}
	}
	code := strings.Join(lines, "\n")

	res := Analyze(code, "python")
	assert.Equal(t, 200, res.Metrics.LinesOfCode)
	assert.Equal(t, 10, res.Metrics.Functions)
	assert.Zero(t, res.Metrics.CommentLines)
	docs := titlesContaining(res.Issues, "Low code documentation")
	require.Len(t, docs, 1)
	assert.Equal(t, models.SeverityInfo, docs[0].Type)
	assert.Contains(t, docs[0].Suggestion, "docstrings")
}

func Test_bugRules(t *testing.T) {
	tests := []struct {
		name     string
		rule     rule
		code     string
		language string
		want     []models.Issue
	}{
		{
			name: "assignment in if", rule: assignmentInConditional, language: "javascript",
			code: "let n = 1;\nif (n = 0) { run(); }",
			want: []models.Issue{{Type: models.SeverityCritical, Title: "BUG: Assignment operator in conditional", Line: 2}},
		},
		{name: "comparison in if", rule: assignmentInConditional, language: "javascript", code: "if (n == 0) { run(); }\nif (n === 1) {}"},
		{
			name: "template without backticks", rule: missingBackticks, language: "javascript",
			code: "const total = 3;\nconsole.log(\"Total is ${total}\");\nreturn 'x ${y}';",
			want: []models.Issue{
				{Type: models.SeverityCritical, Title: "SYNTAX ERROR: Missing backticks for template literal", Line: 2},
				{Type: models.SeverityCritical, Title: "SYNTAX ERROR: Missing backticks for template literal", Line: 3},
			},
		},
		{name: "template with backticks", rule: missingBackticks, language: "javascript", code: "console.log(`Total is ${total}`);"},
		{
			name: "quoted number near math", rule: stringInNumericContext, language: "javascript",
			code: "const n = \"5\";\nconst r = multiply(n, 2);",
			want: []models.Issue{{Type: models.SeverityWarning, Title: "BUG: String used in numeric context", Line: 1}},
		},
		{name: "quoted number without math", rule: stringInNumericContext, language: "javascript", code: "const label = \"42\";"},
		{name: "quoted number outside js", rule: stringInNumericContext, language: "python", code: "n = \"5\"\nr = multiply(n, 2)"},
		{
			name: "typos in table order", rule: commonTypos, language: "javascript",
			code: "retrun n;\nconst n = arr.lenght;",
			want: []models.Issue{
				{Type: models.SeverityCritical, Title: "TYPO: 'lenght' should be 'length'", Line: 2},
				{Type: models.SeverityCritical, Title: "TYPO: 'retrun' should be 'return'", Line: 1},
			},
		},
		{
			name: "missing semicolons", rule: missingSemicolons, language: "javascript",
			code: "const a = 1\nconst b = 2\nlet c = 3\nvar d = 4\nreturn a",
			want: []models.Issue{{Type: models.SeverityInfo, Title: "Missing semicolons detected"}},
		},
		{name: "three missing semicolons", rule: missingSemicolons, language: "javascript", code: "const a = 1\nconst b = 2\nlet c = 3\nreturn a"},
		{
			name: "one unused variable", rule: unusedVariables, language: "javascript",
			code: "const used = 1;\nconst unused = 2;\nconsole.log(used);",
			want: []models.Issue{{Type: models.SeverityInfo, Title: "Unused variable: unused"}},
		},
		{
			name: "two unused variables", rule: unusedVariables, language: "typescript",
			code: "const alpha = 1;\nlet beta = 2;",
			want: []models.Issue{{Type: models.SeverityInfo, Title: "Unused variables: alpha, beta"}},
		},
		{
			name: "function without return", rule: missingReturn, language: "javascript",
			code: "function logAll(items) {\n  items.forEach(function (item) { console.log(item); });\n  console.log('done with all of the items here');\n}",
			want: []models.Issue{{Type: models.SeverityWarning, Title: "Function may be missing return statement", Line: 1}},
		},
		{
			name: "function with return", rule: missingReturn, language: "javascript",
			code: "function sumAll(items) {\n  let total = 0;\n  items.forEach(function (item) { total += item; });\n  return total;\n}",
		},
		{
			name: "innerHTML assignment", rule: innerHTMLAssignment, language: "javascript",
			code: "const el = find();\nel.innerHTML = userInput;",
			want: []models.Issue{{Type: models.SeverityCritical, Title: "Critical XSS Risk: Direct innerHTML manipulation", Line: 2}},
		},
		{name: "textContent assignment", rule: innerHTMLAssignment, language: "javascript", code: "el.textContent = userInput;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rule(newSource(tt.code, tt.language))
			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w.Type, got[i].Type)
				assert.Equal(t, w.Title, got[i].Title)
				assert.Equal(t, w.Line, got[i].Line)
				assert.NotEmpty(t, got[i].Description)
				assert.NotEmpty(t, got[i].Suggestion)
			}
		})
	}
}

func Test_ComputeMetrics_Edges(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		language string
		want     models.CodeMetrics
	}{
		{
			name: "complexity capped", language: "javascript",
			code: strings.TrimSuffix(strings.Repeat("if (a) b();\n", 30), "\n"),
			want: models.CodeMetrics{LinesOfCode: 30, CodeLines: 30, Complexity: MaxComplexity},
		},
		{
			name: "comments outnumber lines", language: "javascript",
			code: "/* a */ /* b */ x",
			want: models.CodeMetrics{LinesOfCode: 1, CodeLines: -1, CommentLines: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeMetrics(tt.code, tt.language))
		})
	}
}

func Test_Analyze_ComposesParts(t *testing.T) {
	inputs := []struct{ code, language string }{
		{"const total = eval(input);\nconsole.log(total);", "javascript"},
		{"def main():\n    # entry\n    print('hi')\n", "python"},
		{"/* a */ /* b */ x", "javascript"},
		{"package main\n\nfunc main() {}\n", "go"},
	}
	for _, in := range inputs {
		res := Analyze(in.code, in.language)
		m := ComputeMetrics(in.code, in.language)
		issues := DetectIssues(in.code, in.language)
		assert.Equal(t, m, res.Metrics, in.code)
		assert.Equal(t, issues, res.Issues, in.code)
		assert.Equal(t, Score(issues, m), res.Score, in.code)
		assert.Equal(t, DetectAuthorship(in.code, in.language), res.AIDetection, in.code)
	}
}
