package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultConfigPath 给定格式的默认配置文件名
func DefaultConfigPath(format OutputFormat) string {
	return ".codescope." + string(format)
}

// CreateDefaultConfig 把默认配置写到 path，文件已存在时报错
func CreateDefaultConfig(path string, format OutputFormat) error {
	if format == FormatText {
		return fmt.Errorf("text format is not supported for config files")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	v := viper.New()
	SetDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode defaults: %w", err)
	}

	data, err := Marshal(cfg, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
