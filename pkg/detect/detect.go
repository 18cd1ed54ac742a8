// Package detect 根据源码文本推断其编程语言
package detect

import (
	"sort"
	"strings"

	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/utils/mathx"
)

const (
	strongPoints  = 20
	generalPoints = 3
	keywordPoints = 2
	// TopN 结果中保留的排名数量
	TopN = 5
)

// DetectLanguage 对每种语言打分并给出置信度，不会 panic
//
// 空白输入返回 lang.Default 与空排名；没有任何命中时置信度为 0，
// 语言为特征表中的第一个（python），调用方应据置信度回退
func DetectLanguage(text string) models.DetectionResult {
	if strings.TrimSpace(text) == "" {
		return models.DetectionResult{
			DetectedLanguage: string(lang.Default),
			Scores:           []models.LanguageScore{},
		}
	}

	sigs := lang.Signatures()
	scores := make([]models.LanguageScore, 0, len(sigs))
	for _, sig := range sigs {
		scores = append(scores, models.LanguageScore{
			Language: string(sig.Language),
			Score:    Score(sig, text),
		})
	}

	// 稳定排序：同分时保持特征表顺序，全为 0 分时第一项即特征表首个语言
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	top := scores[0].Score
	second := scores[1].Score

	return models.DetectionResult{
		DetectedLanguage: scores[0].Language,
		Confidence:       confidence(top, second),
		Scores:           scores[:TopN],
	}
}

// Score 计算单种语言的加权得分
func Score(sig lang.Signature, text string) float64 {
	raw := 0
	for _, re := range sig.Strong {
		raw += len(re.FindAllStringIndex(text, -1)) * strongPoints
	}
	for _, re := range sig.General {
		raw += len(re.FindAllStringIndex(text, -1)) * generalPoints
	}
	for _, re := range sig.Keywords {
		raw += len(re.FindAllStringIndex(text, -1)) * keywordPoints
	}
	return float64(raw) * sig.Weight
}

func confidence(top, second float64) int {
	if top <= 0 {
		return 0
	}
	dominance := 1.0
	if second > 0 {
		dominance = (top - second) / top
	}
	bonus := top * 0.6
	if top > 50 {
		bonus = 30
	}
	return min(100, mathx.Round(dominance*100*0.7+bonus))
}
