package analysis

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/utils/mathx"
)

// MaxIndicators 结果中保留的信号条数上限
const MaxIndicators = 6

// aiThreshold 置信度超过该值判定为生成代码
const aiThreshold = 60

var (
	genericNameRe   = regexp.MustCompile(`\b(data|result|response|item|value|temp|tmp|foo|bar|obj|arr|element|config|options|params)\b`)
	declaredVarRe   = regexp.MustCompile(`\b(?:const|let|var|def|auto|int|string)\s+(\w+)`)
	formalCommentRe = regexp.MustCompile(`(?i)\b(function|method|parameter|returns?|description|example)\b`)
	devMarkerRe     = regexp.MustCompile(`(?i)TODO|FIXME|HACK|XXX|BUG|WIP|NOTE|TEMP`)
	debugRe         = regexp.MustCompile(`console\.(log|debug|dir|table)|print\(|println\(|debugger;|dump\(`)
	longIdentRe     = regexp.MustCompile(`\b[a-z][a-zA-Z]{18,}\b`)
	casualRe        = regexp.MustCompile(`(?i)\b(lol|wtf|damn|shit|crap|hell|hmm|oops|yikes)\b`)
	irregularRe     = regexp.MustCompile(`\(\s{2,}|\s{2,}\)|\{\s{2,}|\s{2,}\}|\s{3,}\w|=\s{2,}|,\s{3,}`)
	anyErrorRe      = regexp.MustCompile(`(?i)try|catch|except|throw|raise|error|Exception`)
	tryCatchRe      = regexp.MustCompile(`try\s*{[\s\S]*?catch\s*\(`)
)

// tally 两个方向的累计分与按触发顺序记录的信号
type tally struct {
	ai, human  int
	indicators []models.Indicator
}

func (t *tally) addAI(points int, text string) {
	t.ai += points
	t.indicators = append(t.indicators, models.Indicator{Type: models.IndicatorAI, Text: text})
}

func (t *tally) addHuman(points int, text string) {
	t.human += points
	t.indicators = append(t.indicators, models.Indicator{Type: models.IndicatorHuman, Text: text})
}

// confidence 生成代码倾向的百分比，两边都没有得分时为 50
func (t *tally) confidence() float64 {
	total := t.ai + t.human
	if total == 0 {
		return 50
	}
	return float64(t.ai) / float64(total) * 100
}

// DetectAuthorship 用一组独立的风格信号估计代码是否为生成代码
//
// language 目前不参与判定，保留是为了与其他分析入口保持一致
func DetectAuthorship(code string, language string) models.AIDetectionResult {
	lines := strings.Split(code, "\n")
	total := float64(len(lines))
	t := &tally{}

	// 缩进
	evenIndent := 0
	for _, l := range lines {
		if strings.TrimSpace(l) == "" || leadingSpace(l)%2 == 0 {
			evenIndent++
		}
	}
	indentRatio := float64(evenIndent) / total
	switch {
	case indentRatio > 0.95:
		t.addAI(18, "Perfect, consistent indentation throughout (95%+ lines). Human code typically has occasional spacing inconsistencies from quick edits or multiple authors.")
	case indentRatio < 0.85:
		t.addHuman(15, "Inconsistent indentation patterns. Natural when code evolves over time with different edits.")
	}

	// 通用命名
	vars := countMatches(declaredVarRe, code)
	genericRatio := 0.0
	if vars > 0 {
		genericRatio = float64(countMatches(genericNameRe, code)) / float64(vars)
	}
	switch {
	case genericRatio > 0.4:
		t.addAI(22, fmt.Sprintf("%d%% generic variable names (data, result, item). AI models favor descriptive but generic naming patterns.", mathx.Round(genericRatio*100)))
	case genericRatio < 0.2 && vars > 5:
		t.addHuman(12, "Domain-specific, contextual variable names showing familiarity with the problem space.")
	}

	// 注释密度与文档化程度
	comments, formal := 0, 0
	for _, l := range lines {
		s := strings.TrimSpace(l)
		if !strings.HasPrefix(s, "//") && !strings.HasPrefix(s, "#") && !strings.HasPrefix(s, "*") {
			continue
		}
		comments++
		if formalCommentRe.MatchString(l) {
			formal++
		}
	}
	commentRatio := float64(comments) / total
	switch {
	case commentRatio > 0.25 && float64(formal) > float64(comments)*0.5:
		t.addAI(20, "High density of formal documentation comments (JSDoc/docstring style). AI often generates comprehensive docs even for simple code.")
	case commentRatio > 0 && commentRatio < 0.1 && formal < 2:
		t.addHuman(12, "Minimal, informal comments. Humans often under-document or add quick explanatory notes rather than formal docs.")
	}

	if n := countMatches(devMarkerRe, code); n > 0 {
		t.addHuman(25, fmt.Sprintf("%d development marker(s) found (TODO/FIXME/HACK). Strong indicator of iterative human development and self-reminders.", n))
	}

	if n := countMatches(debugRe, code); n > 2 {
		t.addHuman(18, fmt.Sprintf("%d debug statement(s) present. Developers leave these during development; AI typically doesn't include them.", n))
	}

	if repeatedBlocks(lines) > 3 {
		t.addAI(15, "Multiple highly repetitive code blocks. AI often generates similar patterns; humans typically refactor or vary implementations.")
	}

	if n := countMatches(longIdentRe, code); n > 4 {
		t.addAI(12, fmt.Sprintf("%d very long identifier(s) (19+ characters). AI favors verbose, self-documenting names; humans often abbreviate.", n))
	}

	if casualRe.MatchString(code) {
		t.addHuman(30, "Informal/casual language in comments. Very strong indicator of human authorship - AI avoids unprofessional language.")
	}

	if countMatches(irregularRe, code) > 3 {
		t.addHuman(14, "Irregular spacing patterns detected. Human code often has spacing inconsistencies from manual typing and edits.")
	}

	// 错误处理
	switch {
	case countMatches(tryCatchRe, code) > 1 && commentRatio > 0.2:
		t.addAI(10, "Comprehensive error handling with documentation. AI generates complete, defensive code patterns.")
	case !anyErrorRe.MatchString(code) && len(lines) > 20:
		t.addHuman(8, "Minimal error handling in medium-length code. Humans often skip error handling in quick implementations.")
	}

	// 行长
	width := 0
	for _, l := range lines {
		width += utf8.RuneCountInString(l)
	}
	if avg := float64(width) / total; avg > 60 && avg < 85 && indentRatio > 0.9 {
		t.addAI(8, "Consistently optimal line length (60-85 chars) with perfect structure. AI follows style guides precisely.")
	}

	conf := t.confidence()
	likelyAI := conf > aiThreshold
	return models.AIDetectionResult{
		IsLikelyAI: likelyAI,
		Confidence: mathx.Round(conf),
		Indicators: rankIndicators(t.indicators, likelyAI),
	}
}

// rankIndicators 占优方向的信号排在前面，同方向内保持触发顺序，最多保留 MaxIndicators 条
func rankIndicators(in []models.Indicator, likelyAI bool) []models.Indicator {
	lead := models.IndicatorHuman
	if likelyAI {
		lead = models.IndicatorAI
	}
	out := make([]models.Indicator, 0, len(in))
	for _, ind := range in {
		if ind.Type == lead {
			out = append(out, ind)
		}
	}
	for _, ind := range in {
		if ind.Type != lead {
			out = append(out, ind)
		}
	}
	if len(out) > MaxIndicators {
		out = out[:MaxIndicators]
	}
	return out
}

// repeatedBlocks 以三行为窗口统计出现超过两次的代码块个数
func repeatedBlocks(lines []string) int {
	seen := make(map[string]int)
	for i := 0; i < len(lines)-3; i++ {
		block := strings.TrimSpace(strings.Join(lines[i:i+3], "\n"))
		if utf8.RuneCountInString(block) > 20 {
			seen[block]++
		}
	}
	n := 0
	for _, c := range seen {
		if c > 2 {
			n++
		}
	}
	return n
}

func leadingSpace(l string) int {
	return utf8.RuneCountInString(l) - utf8.RuneCountInString(strings.TrimLeftFunc(l, unicode.IsSpace))
}
