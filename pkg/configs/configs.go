// Package configs 提供应用配置的加载、默认值与输出
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 CODESCOPE_LOG_LEVEL
const EnvPrefix = "CODESCOPE"

// Config 应用配置
type Config struct {
	Log      LogConfig      `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
	App      AppConfig      `mapstructure:"app" json:"app" yaml:"app" toml:"app"`
	Analysis AnalysisConfig `mapstructure:"analysis" json:"analysis" yaml:"analysis" toml:"analysis"`
	Project  ProjectConfig  `mapstructure:"project" json:"project" yaml:"project" toml:"project"`
	Watch    WatchConfig    `mapstructure:"watch" json:"watch" yaml:"watch" toml:"watch"`
	LLM      LLMConfig      `mapstructure:"llm" json:"llm" yaml:"llm" toml:"llm"`
}

// SetDefaults 写入全部默认值
func SetDefaults(v *viper.Viper) {
	setLogConfigDefaults(v)
	setAppConfigDefaults(v)
	setAnalysisConfigDefaults(v)
	setProjectConfigDefaults(v)
	setWatchConfigDefaults(v)
	setLLMConfigDefaults(v)
}

// searchPaths 配置文件搜索目录
func searchPaths() []string {
	paths := []string{".", "./configs", "$HOME", "$HOME/.config/codescope"}
	if runtime.GOOS == "windows" {
		paths = append(paths, "$APPDATA/codescope")
	} else {
		paths = append(paths, "/etc/codescope")
	}
	return paths
}

// findConfigFile 按目录、文件名、扩展名的顺序查找第一个存在的配置文件
func findConfigFile() string {
	names := []string{".codescope", "codescope"}
	exts := []string{"yaml", "yml", "json", "toml"}
	for _, dir := range searchPaths() {
		for _, name := range names {
			for _, ext := range exts {
				p := os.ExpandEnv(filepath.Join(dir, name+"."+ext))
				if _, err := os.Stat(p); err == nil {
					return p
				}
			}
		}
	}
	return ""
}

// LoadConfig 把配置读入 v 并解析
// configPath 为空时自动查找，找不到则只用默认值；显式指定的文件必须存在
func LoadConfig(v *viper.Viper, configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile()
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查取值范围
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Log.Mode) {
	case "", "console", "file", "both":
	default:
		errs = append(errs, fmt.Errorf("log.mode must be console, file or both, got %q", c.Log.Mode))
	}
	if c.Analysis.MaxLines < 0 || c.Analysis.MaxChars < 0 {
		errs = append(errs, errors.New("analysis.max_lines and analysis.max_chars must not be negative"))
	}
	if c.Analysis.MismatchConfidence < 0 || c.Analysis.MismatchConfidence > 100 {
		errs = append(errs, fmt.Errorf("analysis.mismatch_confidence must be within [0, 100], got %d", c.Analysis.MismatchConfidence))
	}
	if c.Project.Concurrency < 0 {
		errs = append(errs, errors.New("project.concurrency must not be negative"))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, errors.New("watch.debounce must not be negative"))
	}
	return errors.Join(errs...)
}
