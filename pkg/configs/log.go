package configs

import "github.com/spf13/viper"

// LogConfig 日志配置
//
// Level 取 trace, debug, info, warn, error；Mode 取 console, file, both，
// FilePath 及轮转参数只在写文件时生效（MaxSize 单位 MB，MaxAge 单位天）
type LogConfig struct {
	Level      string `mapstructure:"level" json:"level" yaml:"level" toml:"level"`
	JSON       bool   `mapstructure:"json" json:"json" yaml:"json" toml:"json"`
	Mode       string `mapstructure:"mode" json:"mode" yaml:"mode" toml:"mode"`
	FilePath   string `mapstructure:"file_path" json:"file_path" yaml:"file_path" toml:"file_path"`
	MaxSize    int    `mapstructure:"max_size" json:"max_size" yaml:"max_size" toml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" json:"max_backups" yaml:"max_backups" toml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" json:"max_age" yaml:"max_age" toml:"max_age"`
}

func setLogConfigDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.json", false)
	v.SetDefault("log.mode", "console")
	v.SetDefault("log.file_path", ".codescope/codescope.log")
	v.SetDefault("log.max_size", 20)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
}
