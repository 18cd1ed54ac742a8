package analysis

import (
	"math"

	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/utils/mathx"
)

// 评分权重
const (
	PenaltyCritical = 15
	PenaltyWarning  = 8
	PenaltyInfo     = 3
)

// Score 根据问题与度量计算 0 到 100 的质量分
//
// 注释与代码行之比按浮点语义计算：代码行为 0 而有注释时视为无穷大，
// 两者都为 0 时结果为 NaN，不加也不减
func Score(issues []models.Issue, m models.CodeMetrics) int {
	score := 100.0
	for _, is := range issues {
		switch is.Type {
		case models.SeverityCritical:
			score -= PenaltyCritical
		case models.SeverityWarning:
			score -= PenaltyWarning
		case models.SeverityInfo:
			score -= PenaltyInfo
		}
	}

	switch {
	case m.Complexity > 15:
		score -= 10
	case m.Complexity > 10:
		score -= 5
	}

	ratio := docRatio(m.CommentLines, m.CodeLines)
	switch {
	case ratio < 0.05:
		score -= 5
	case ratio > 0.1:
		score += 5
	}

	return mathx.Round(mathx.Clamp(score, 0, 100))
}

func docRatio(comment, code int) float64 {
	if code == 0 {
		switch {
		case comment > 0:
			return math.Inf(1)
		case comment < 0:
			return math.Inf(-1)
		default:
			return math.NaN()
		}
	}
	return float64(comment) / float64(code)
}
