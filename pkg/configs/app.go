package configs

import "github.com/spf13/viper"

// AppConfig 应用级开关，命令行标志会覆盖这里的值
type AppConfig struct {
	Name    string `mapstructure:"name" json:"name" yaml:"name" toml:"name"`
	Debug   bool   `mapstructure:"debug" json:"debug" yaml:"debug" toml:"debug"`
	Verbose bool   `mapstructure:"verbose" json:"verbose" yaml:"verbose" toml:"verbose"`
	Quiet   bool   `mapstructure:"quiet" json:"quiet" yaml:"quiet" toml:"quiet"`
	NoColor bool   `mapstructure:"no_color" json:"no_color" yaml:"no_color" toml:"no_color"`
}

func setAppConfigDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "codescope")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.verbose", false)
	v.SetDefault("app.quiet", false)
	v.SetDefault("app.no_color", false)
}
