package detect

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/models"
)

// Mismatch 检测结果与用户所选语言不一致时的提示
type Mismatch struct {
	Selected  lang.Language
	Detected  lang.Language
	Detection models.DetectionResult
}

// Message 返回可直接展示的提示文本
func (m Mismatch) Message() string {
	return fmt.Sprintf("code looks like %s (%d%% confidence) but %s is selected",
		m.Detected.Label(), m.Detection.Confidence, m.Selected.Label())
}

// CheckMismatch 文本过短、置信度不足或与所选语言一致时不提示
func CheckMismatch(text string, selected lang.Language, minLen, minConfidence int) (Mismatch, bool) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minLen {
		return Mismatch{}, false
	}
	det := DetectLanguage(text)
	if det.Confidence < minConfidence || lang.Language(det.DetectedLanguage) == selected {
		return Mismatch{}, false
	}
	return Mismatch{
		Selected:  selected,
		Detected:  lang.Language(det.DetectedLanguage),
		Detection: det,
	}, true
}
