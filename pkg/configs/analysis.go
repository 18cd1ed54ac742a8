package configs

import (
	"time"

	"github.com/spf13/viper"
)

// AnalysisConfig 单文件分析
type AnalysisConfig struct {
	// 语言检测结果只在输入达到该长度（字符）时使用
	MinDetectLength int `mapstructure:"min_detect_length" json:"min_detect_length" yaml:"min_detect_length" toml:"min_detect_length"`
	// 输入上限，0 表示不限
	MaxLines int `mapstructure:"max_lines" json:"max_lines" yaml:"max_lines" toml:"max_lines"`
	MaxChars int `mapstructure:"max_chars" json:"max_chars" yaml:"max_chars" toml:"max_chars"`
	// 无法从扩展名推断时使用的语言
	DefaultLanguage string `mapstructure:"default_language" json:"default_language" yaml:"default_language" toml:"default_language"`
	// 检测结果与所选语言不一致且置信度不低于该值时给出提示
	MismatchConfidence int `mapstructure:"mismatch_confidence" json:"mismatch_confidence" yaml:"mismatch_confidence" toml:"mismatch_confidence"`
}

// ProjectConfig 目录批量分析
type ProjectConfig struct {
	Include          []string `mapstructure:"include" json:"include" yaml:"include" toml:"include"`
	Exclude          []string `mapstructure:"exclude" json:"exclude" yaml:"exclude" toml:"exclude"`
	RespectGitignore bool     `mapstructure:"respect_gitignore" json:"respect_gitignore" yaml:"respect_gitignore" toml:"respect_gitignore"`
	// 0 表示使用 CPU 数
	Concurrency int `mapstructure:"concurrency" json:"concurrency" yaml:"concurrency" toml:"concurrency"`
	// 字节，超过的文件跳过
	MaxFileSize int64 `mapstructure:"max_file_size" json:"max_file_size" yaml:"max_file_size" toml:"max_file_size"`
	Dedupe      bool  `mapstructure:"dedupe" json:"dedupe" yaml:"dedupe" toml:"dedupe"`
	// 缓存的结果条数
	CacheSize int64 `mapstructure:"cache_size" json:"cache_size" yaml:"cache_size" toml:"cache_size"`
}

// WatchConfig 监听模式
type WatchConfig struct {
	Debounce int `mapstructure:"debounce" json:"debounce" yaml:"debounce" toml:"debounce"` // 毫秒
}

// DebounceDuration 防抖时长
func (w WatchConfig) DebounceDuration() time.Duration {
	return time.Duration(w.Debounce) * time.Millisecond
}

// LLMConfig 修复建议与对话所用的模型服务
type LLMConfig struct {
	BaseURL   string `mapstructure:"base_url" json:"base_url" yaml:"base_url" toml:"base_url"`
	Model     string `mapstructure:"model" json:"model" yaml:"model" toml:"model"`
	APIKeyEnv string `mapstructure:"api_key_env" json:"api_key_env" yaml:"api_key_env" toml:"api_key_env"`
	MaxIssues int    `mapstructure:"max_issues" json:"max_issues" yaml:"max_issues" toml:"max_issues"`
	Timeout   int    `mapstructure:"timeout" json:"timeout" yaml:"timeout" toml:"timeout"` // 秒
}

// TimeoutDuration 单次请求超时
func (l LLMConfig) TimeoutDuration() time.Duration {
	return time.Duration(l.Timeout) * time.Second
}

func setAnalysisConfigDefaults(v *viper.Viper) {
	v.SetDefault("analysis.min_detect_length", 20)
	v.SetDefault("analysis.max_lines", 5000)
	v.SetDefault("analysis.max_chars", 200000)
	v.SetDefault("analysis.default_language", "javascript")
	v.SetDefault("analysis.mismatch_confidence", 50)
}

func setProjectConfigDefaults(v *viper.Viper) {
	v.SetDefault("project.include", []string{})
	v.SetDefault("project.exclude", []string{
		"**/node_modules/**",
		"**/vendor/**",
		"**/dist/**",
		"**/build/**",
		"**/*.min.js",
	})
	v.SetDefault("project.respect_gitignore", true)
	v.SetDefault("project.concurrency", 0)
	v.SetDefault("project.max_file_size", 1<<20)
	v.SetDefault("project.dedupe", true)
	v.SetDefault("project.cache_size", 4096)
}

func setWatchConfigDefaults(v *viper.Viper) {
	v.SetDefault("watch.debounce", 300)
}

func setLLMConfigDefaults(v *viper.Viper) {
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.api_key_env", "CODESCOPE_LLM_API_KEY")
	v.SetDefault("llm.max_issues", 5)
	v.SetDefault("llm.timeout", 60)
}
