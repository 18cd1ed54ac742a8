// Package source 负责读取待分析的源码，并在调用侧做大小限制
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/yeisme/codescope/pkg/lang"
)

// Stdin 表示从标准输入读取的路径占位符
const Stdin = "-"

var (
	// ErrTooManyLines 行数超过限制
	ErrTooManyLines = errors.New("source exceeds line limit")
	// ErrTooManyChars 字符数超过限制
	ErrTooManyChars = errors.New("source exceeds character limit")
)

// Input 一份待分析的源码
type Input struct {
	Path     string
	Code     string
	Language lang.Language
	// FromExt 语言是否由扩展名得出
	FromExt bool
}

// Limits 调用侧的输入上限，零值表示不限制
type Limits struct {
	MaxLines int `mapstructure:"max_lines"`
	MaxChars int `mapstructure:"max_chars"`
}

var extensions = map[string]lang.Language{
	".js":    lang.JavaScript,
	".jsx":   lang.JavaScript,
	".mjs":   lang.JavaScript,
	".cjs":   lang.JavaScript,
	".ts":    lang.TypeScript,
	".tsx":   lang.TypeScript,
	".py":    lang.Python,
	".java":  lang.Java,
	".cpp":   lang.Cpp,
	".cc":    lang.Cpp,
	".cxx":   lang.Cpp,
	".hpp":   lang.Cpp,
	".c":     lang.C,
	".h":     lang.C,
	".cs":    lang.CSharp,
	".go":    lang.Go,
	".rs":    lang.Rust,
	".php":   lang.PHP,
	".rb":    lang.Ruby,
	".swift": lang.Swift,
	".kt":    lang.Kotlin,
	".kts":   lang.Kotlin,
	".html":  lang.HTML,
	".htm":   lang.HTML,
	".css":   lang.CSS,
	".scss":  lang.CSS,
	".sass":  lang.CSS,
	".sql":   lang.SQL,
}

// LanguageForPath 按扩展名推断语言，无法识别时返回默认语言和 false
func LanguageForPath(path string) (lang.Language, bool) {
	if l, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return l, true
	}
	return lang.Default, false
}

// Extensions 返回所有可识别的扩展名
func Extensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}
	return out
}

// Load 读取文件内容，path 为 "-" 时读取标准输入
func Load(path string) (Input, error) {
	return load(path, os.Stdin)
}

func load(path string, stdin io.Reader) (Input, error) {
	var (
		data []byte
		err  error
	)
	if path == Stdin || path == "" {
		data, err = io.ReadAll(stdin)
		path = Stdin
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return Input{}, fmt.Errorf("read %s: %w", path, err)
	}

	in := Input{Path: path, Code: string(data), Language: lang.Default}
	if path != Stdin {
		in.Language, in.FromExt = LanguageForPath(path)
	}
	return in, nil
}

// Guard 检查源码是否超过 Limits
func Guard(code string, lim Limits) error {
	if lim.MaxChars > 0 {
		if n := utf8.RuneCountInString(code); n > lim.MaxChars {
			return fmt.Errorf("%w: %d > %d", ErrTooManyChars, n, lim.MaxChars)
		}
	}
	if lim.MaxLines > 0 {
		if n := strings.Count(code, "\n") + 1; n > lim.MaxLines {
			return fmt.Errorf("%w: %d > %d", ErrTooManyLines, n, lim.MaxLines)
		}
	}
	return nil
}
