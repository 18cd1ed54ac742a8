package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/codescope/pkg/models"
)

func sampleResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Score: 72,
		Issues: []models.Issue{
			{Type: models.SeverityCritical, Title: "Critical: eval() allows arbitrary code execution", Line: 3, Description: "d", Suggestion: "s"},
			{Type: models.SeverityWarning, Title: "Missing error handling for async operations", Description: "d", Suggestion: "s"},
			{Type: models.SeverityInfo, Title: "Low code documentation", Description: "d", Suggestion: "s"},
			{Type: models.SeverityInfo, Title: "Magic numbers detected - use named constants", Description: "d", Suggestion: "s"},
		},
		Metrics: models.CodeMetrics{LinesOfCode: 120, CodeLines: 100, CommentLines: 10, BlankLines: 10, Complexity: 12, Functions: 4, Classes: 1},
		AIDetection: models.AIDetectionResult{
			IsLikelyAI: true,
			Confidence: 64,
			Indicators: []models.Indicator{{Type: models.IndicatorAI, Text: "Perfect indentation"}},
		},
	}
}

func platform(name string) *string { return &name }

func Test_ShareText(t *testing.T) {
	text := ShareText(sampleResult(), nil)
	assert.True(t, strings.HasPrefix(text, "🔍 Code Analysis Report\n\n📊 Quality Score: 72/100\n"))
	assert.Contains(t, text, "📏 Lines of Code: 120\n🔄 Complexity: 12\n📝 Functions: 4\n")
	assert.Contains(t, text, "- Critical: 1\n- Warnings: 1\n- Info: 2\n")
	assert.Contains(t, text, "🤖 AI Detection: Possibly AI Generated (64% confidence)")
	assert.NotContains(t, text, "CI/CD")

	withCICD := ShareText(sampleResult(), &models.CICDAnalysisResult{Detected: true, Platform: platform("GitLab CI"), SecurityScore: 85})
	assert.Contains(t, withCICD, "\n\n\n🚀 CI/CD: GitLab CI (Security: 85%)\n\n")

	notDetected := ShareText(sampleResult(), &models.CICDAnalysisResult{SecurityScore: 100})
	assert.NotContains(t, notDetected, "CI/CD")
}

func Test_OneLine(t *testing.T) {
	assert.Equal(t, "Score: 72/100 | 4 issues | 120 lines", OneLine(sampleResult()))
}

func Test_Export(t *testing.T) {
	now := time.Date(2025, 3, 9, 23, 30, 0, 0, time.FixedZone("X", -2*3600))
	assert.Equal(t, "code-analysis-2025-03-10.json", ExportFileName(now))

	var buf bytes.Buffer
	require.NoError(t, NewExport(sampleResult(), nil, now).WriteJSON(&buf))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Contains(t, doc, "analysisResult")
	assert.NotContains(t, doc, "cicdAnalysis")
	assert.Equal(t, "2025-03-10T01:30:00Z", doc["timestamp"])

	ar := doc["analysisResult"].(map[string]any)
	assert.EqualValues(t, 72, ar["score"])
	assert.Contains(t, ar, "aiDetection")
	issues := ar["issues"].([]any)
	assert.NotContains(t, issues[1].(map[string]any), "line")
}

func Test_BuildChart(t *testing.T) {
	c := BuildChart(sampleResult())
	require.Len(t, c.Composition, 3)
	assert.Equal(t, Slice{"Code", 100}, c.Composition[0])

	health := map[string]float64{}
	for _, s := range c.Health {
		health[s.Name] = s.Value
	}
	assert.Equal(t, 40.0, health["Simplicity"])
	assert.Equal(t, 50.0, health["Documentation"])
	assert.Equal(t, 60.0, health["Modularity"])
	assert.Equal(t, 75.0, health["Structure"])
	assert.Equal(t, 88.0, health["Conciseness"])

	assert.Equal(t, []Slice{{"Critical", 1}, {"Warning", 1}, {"Info", 2}}, c.Issues)
	assert.Equal(t, "High", c.Level.Label)
	assert.Equal(t, 169, c.MaintainabilityIndex)

	empty := BuildChart(&models.AnalysisResult{})
	assert.Empty(t, empty.Issues)
	assert.Equal(t, 0.0, findSlice(empty.Health, "Documentation"))
	assert.Equal(t, 100.0, findSlice(empty.Health, "Simplicity"))

	// 注释行近似值使 CodeLines 为负时，Documentation 不做下限截断
	negative := BuildChart(&models.AnalysisResult{Metrics: models.CodeMetrics{LinesOfCode: 1, CodeLines: -1, CommentLines: 2}})
	assert.Equal(t, -1000.0, findSlice(negative.Health, "Documentation"))
}

func Test_MaintainabilityIndex(t *testing.T) {
	tests := []struct {
		name string
		m    models.CodeMetrics
		want int
	}{
		{"empty", models.CodeMetrics{}, 182},
		{"sample", sampleResult().Metrics, 169},
		{"no comments counts as one", models.CodeMetrics{LinesOfCode: 200, Complexity: 20}, 120},
		{"floored at zero", models.CodeMetrics{LinesOfCode: 1000}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaintainabilityIndex(tt.m))
		})
	}
}

func Test_ScoreLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Excellent"},
		{80, "Excellent"},
		{79, "Good"},
		{60, "Good"},
		{59, "Fair"},
		{40, "Fair"},
		{39, "Needs Improvement"},
		{0, "Needs Improvement"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ScoreLabel(tt.score), tt.score)
	}
}

func findSlice(s []Slice, name string) float64 {
	for _, x := range s {
		if x.Name == name {
			return x.Value
		}
	}
	return -1
}

func Test_LevelFor(t *testing.T) {
	assert.Equal(t, "Low", LevelFor(5).Label)
	assert.Equal(t, "Moderate", LevelFor(10).Label)
	assert.Equal(t, "High", LevelFor(15).Label)
	assert.Equal(t, "Very High", LevelFor(16).Label)
}

func Test_Markdown(t *testing.T) {
	md := Markdown(sampleResult(), "javascript", &models.CICDAnalysisResult{
		Detected: true, Platform: platform("GitHub Actions"), SecurityScore: 90,
		BestPractices: []models.BestPractice{{Name: "Dependency Caching", Implemented: true, Description: "ok"}},
	})
	assert.Contains(t, md, "# Code Analysis Report")
	assert.Contains(t, md, "**Language:** JavaScript")
	assert.Contains(t, md, "**Quality Score:** 72/100 (Good)")
	assert.Contains(t, md, "**Maintainability Index:** 169")
	assert.Contains(t, md, "### 1. Critical: eval() allows arbitrary code execution")
	assert.Contains(t, md, "- **Line:** 3")
	assert.Contains(t, md, "## CI/CD: GitHub Actions")
	assert.Contains(t, md, "- [x] Dependency Caching: ok")
}

func Test_PrintSummary(t *testing.T) {
	var buf bytes.Buffer
	err := PrintSummary(&buf, sampleResult(), Summary{Path: "app.js", Language: "javascript", Verbose: true})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "APP.JS")
	assert.Contains(t, out, "72/100")
	assert.Contains(t, out, "Good")
	assert.Contains(t, out, "Maintainability")
	assert.Contains(t, out, "169")
	assert.Contains(t, out, "Simplicity")
	assert.Contains(t, out, "Perfect indentation")
}

func Test_PrintCICD_NotDetected(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintCICD(&buf, &models.CICDAnalysisResult{SecurityScore: 100}))
	assert.Contains(t, buf.String(), "No CI/CD platform detected.")
}

func sampleProject() *models.ProjectReport {
	rep := &models.ProjectReport{
		Root: "svc",
		Files: []models.FileReport{
			{Path: "a.go", Language: "go", Fingerprint: "1", Result: &models.AnalysisResult{Score: 90}},
			{Path: "b.py", Language: "python", Fingerprint: "2", Result: &models.AnalysisResult{Score: 40}},
			{Path: "c.go", Language: "go", Fingerprint: "1", Duplicate: true, Result: &models.AnalysisResult{Score: 90}},
			{Path: "d.go", Language: "go", Fingerprint: "3", Result: &models.AnalysisResult{Score: 70}},
		},
		Languages:  map[string]*models.LanguageSummary{},
		Duplicates: 1,
	}
	for _, f := range rep.Files {
		ls, ok := rep.Languages[f.Language]
		if !ok {
			ls = &models.LanguageSummary{}
			rep.Languages[f.Language] = ls
		}
		ls.AddFile(f.Result)
		rep.Total.AddFile(f.Result)
	}
	return rep
}

func Test_WorstFiles(t *testing.T) {
	rep := sampleProject()
	got := WorstFiles(rep, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "b.py", got[0].Path)
	assert.Equal(t, "d.go", got[1].Path)
	assert.Len(t, WorstFiles(rep, 0), 3)
}

func Test_languageRows(t *testing.T) {
	rows := languageRows(sampleProject())
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Go", "3", "0", "83.3", "0", "0", "0"}, rows[0])
	assert.Equal(t, "Python", rows[1][0])
}

func Test_PrintProject(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintProject(&buf, sampleProject(), 5))
	out := buf.String()
	assert.Contains(t, out, "b.py")
	assert.Contains(t, out, "Python")

	buf.Reset()
	require.NoError(t, PrintProject(&buf, &models.ProjectReport{Root: "empty", Languages: map[string]*models.LanguageSummary{}}, 5))
	assert.Contains(t, buf.String(), "No source files found.")
}
