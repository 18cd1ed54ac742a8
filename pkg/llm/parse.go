package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Fix 针对单个问题的修复
type Fix struct {
	Issue       string `json:"issue" yaml:"issue"`
	FixedCode   string `json:"fixedCode" yaml:"fixed_code"`
	Explanation string `json:"explanation" yaml:"explanation"`
}

// FixResult 模型返回的修复集合
type FixResult struct {
	Fixes             []Fix  `json:"fixes" yaml:"fixes"`
	FullCorrectedCode string `json:"fullCorrectedCode" yaml:"full_corrected_code"`
}

var fenceRe = regexp.MustCompile("```(?:json)?\n?")

// ParseFixResponse 解析模型回复
//
// 兼容两种形态：对象 {fixes, fullCorrectedCode} 与仅含修复的数组。
// 去掉可能包裹的 ``` 代码块；无法解析时返回空结果而不是错误
func ParseFixResponse(content string) FixResult {
	clean := strings.TrimSpace(content)
	if strings.HasPrefix(clean, "```") {
		clean = strings.TrimSpace(fenceRe.ReplaceAllString(clean, ""))
	}

	empty := FixResult{Fixes: []Fix{}}
	if strings.HasPrefix(clean, "[") {
		var fixes []Fix
		if err := json.Unmarshal([]byte(clean), &fixes); err != nil {
			return empty
		}
		if fixes == nil {
			fixes = []Fix{}
		}
		return FixResult{Fixes: fixes}
	}

	var res FixResult
	if err := json.Unmarshal([]byte(clean), &res); err != nil {
		return empty
	}
	if res.Fixes == nil {
		res.Fixes = []Fix{}
	}
	return res
}
