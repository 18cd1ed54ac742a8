// Package lang 定义支持的语言集合，以及检测与度量所用的正则目录
package lang

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Language 语言标识，统一使用小写
type Language string

// 支持的语言，顺序即对外枚举顺序
const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	Python     Language = "python"
	Java       Language = "java"
	Cpp        Language = "cpp"
	C          Language = "c"
	CSharp     Language = "csharp"
	Go         Language = "go"
	Rust       Language = "rust"
	PHP        Language = "php"
	Ruby       Language = "ruby"
	Swift      Language = "swift"
	Kotlin     Language = "kotlin"
	HTML       Language = "html"
	CSS        Language = "css"
	SQL        Language = "sql"
)

// Default 无法判断时使用的语言
const Default = JavaScript

var all = []Language{
	JavaScript, TypeScript, Python, Java, Cpp, C, CSharp, Go,
	Rust, PHP, Ruby, Swift, Kotlin, HTML, CSS, SQL,
}

var labels = map[Language]string{
	JavaScript: "JavaScript",
	TypeScript: "TypeScript",
	Python:     "Python",
	Java:       "Java",
	Cpp:        "C++",
	C:          "C",
	CSharp:     "C#",
	Go:         "Go",
	Rust:       "Rust",
	PHP:        "PHP",
	Ruby:       "Ruby",
	Swift:      "Swift",
	Kotlin:     "Kotlin",
	HTML:       "HTML",
	CSS:        "CSS",
	SQL:        "SQL",
}

// All 返回全部语言（副本）
func All() []Language {
	out := make([]Language, len(all))
	copy(out, all)
	return out
}

// String 实现 fmt.Stringer
func (l Language) String() string { return string(l) }

// Label 返回展示名，未知标识原样返回
func (l Language) Label() string {
	if s, ok := labels[l]; ok {
		return s
	}
	return string(l)
}

// Label 按字符串标识取展示名
func Label(id string) string { return Language(id).Label() }

// Known 是否为支持的语言
func (l Language) Known() bool {
	_, ok := labels[l]
	return ok
}

// Parse 解析用户输入的语言标识，接受标识或展示名（不区分大小写）
func Parse(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if l := Language(strings.ToLower(s)); l.Known() {
		return l, true
	}
	for _, l := range all {
		if strings.EqualFold(labels[l], s) {
			return l, true
		}
	}
	switch strings.ToLower(s) {
	case "js":
		return JavaScript, true
	case "ts":
		return TypeScript, true
	case "py":
		return Python, true
	case "c++", "cxx":
		return Cpp, true
	case "c#", "cs":
		return CSharp, true
	case "golang":
		return Go, true
	case "rs":
		return Rust, true
	case "rb":
		return Ruby, true
	case "kt":
		return Kotlin, true
	}
	return "", false
}

// Suggest 为无法识别的输入给出最接近的候选，最多 max 个
func Suggest(s string, max int) []Language {
	targets := make([]string, len(all))
	for i, l := range all {
		targets[i] = string(l)
	}
	ranks := fuzzy.RankFindFold(strings.TrimSpace(s), targets)
	sort.Sort(ranks)
	out := make([]Language, 0, max)
	for _, r := range ranks {
		if len(out) == max {
			break
		}
		out = append(out, Language(r.Target))
	}
	if len(out) == 0 {
		// 子序列匹配不到时退化为前缀
		for _, l := range all {
			if len(out) == max {
				break
			}
			if s != "" && strings.HasPrefix(string(l), strings.ToLower(s[:1])) {
				out = append(out, l)
			}
		}
	}
	return out
}
