package report

import (
	"math"

	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/utils/mathx"
)

// Slice 图表中的一项
type Slice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ComplexityLevel 复杂度分档
type ComplexityLevel struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// ChartData 可视化所需的数据
type ChartData struct {
	// 代码、注释、空行的行数
	Composition []Slice `json:"composition"`
	// 五个维度的健康度，上限 100；Documentation 在 CodeLines 为负时可能小于 0
	Health []Slice `json:"health"`
	// 按严重程度的问题数，省略为 0 的项
	Issues               []Slice         `json:"issues"`
	Level                ComplexityLevel `json:"level"`
	MaintainabilityIndex int             `json:"maintainabilityIndex"`
}

// ScoreLabel 质量分的文字评级
func ScoreLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs Improvement"
	}
}

// MaintainabilityIndex 简化的可维护性指数，85 以上可维护性高
//
// 171 - 5.2·ln(complexity+1) - 0.23·LOC + 16.2·ln(comments+1)，
// 注释行为 0 时按 1 计，结果不小于 0
func MaintainabilityIndex(m models.CodeMetrics) int {
	comments := m.CommentLines
	if comments == 0 {
		comments = 1
	}
	mi := 171 - 5.2*math.Log(float64(m.Complexity)+1) - 0.23*float64(m.LinesOfCode) + 16.2*math.Log(float64(comments)+1)
	return mathx.Round(math.Max(0, mi))
}

// LevelFor 按复杂度返回分档
func LevelFor(complexity int) ComplexityLevel {
	switch {
	case complexity <= 5:
		return ComplexityLevel{"Low", "Easy to maintain"}
	case complexity <= 10:
		return ComplexityLevel{"Moderate", "Manageable complexity"}
	case complexity <= 15:
		return ComplexityLevel{"High", "Consider refactoring"}
	default:
		return ComplexityLevel{"Very High", "Needs immediate attention"}
	}
}

// BuildChart 从分析结果计算图表数据
func BuildChart(r *models.AnalysisResult) ChartData {
	m := r.Metrics
	code := m.CodeLines
	if code == 0 {
		code = 1
	}

	c := r.Counts()
	issues := make([]Slice, 0, 3)
	for _, s := range []Slice{
		{"Critical", float64(c.Critical)},
		{"Warning", float64(c.Warning)},
		{"Info", float64(c.Info)},
	} {
		if s.Value > 0 {
			issues = append(issues, s)
		}
	}

	return ChartData{
		Composition: []Slice{
			{"Code", float64(m.CodeLines)},
			{"Comments", float64(m.CommentLines)},
			{"Blank", float64(m.BlankLines)},
		},
		Health: []Slice{
			{"Simplicity", math.Max(0, 100-float64(m.Complexity)*5)},
			{"Documentation", math.Min(100, float64(m.CommentLines)/float64(code)*500)},
			{"Modularity", math.Min(100, float64(m.Functions)*15)},
			{"Structure", math.Min(100, float64(m.Classes)*25+50)},
			{"Conciseness", math.Max(0, 100-float64(m.LinesOfCode)/10)},
		},
		Issues:               issues,
		Level:                LevelFor(m.Complexity),
		MaintainabilityIndex: MaintainabilityIndex(m),
	}
}
