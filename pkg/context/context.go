// Package context 组装命令运行所需的配置、viper 实例与日志记录器
package context

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/utils/log"
)

// GlobalFlags 根命令上的全局标志
type GlobalFlags struct {
	ConfigPath string
	Debug      bool
	Verbose    bool
	Quiet      bool
	NoColor    bool
}

// CodescopeContext 命令共享的运行环境
type CodescopeContext struct {
	context.Context
	Config *configs.Config
	Viper  *viper.Viper
	Logger log.Logger
}

// InitContext 加载配置并初始化日志，命令行标志覆盖配置文件中的 app 段
func InitContext(ctx context.Context, flags GlobalFlags) (*CodescopeContext, error) {
	v := viper.New()
	cfg, err := configs.LoadConfig(v, flags.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flags.Debug {
		cfg.App.Debug = true
	}
	if flags.Verbose {
		cfg.App.Verbose = true
	}
	if flags.Quiet {
		cfg.App.Quiet = true
	}
	if flags.NoColor {
		cfg.App.NoColor = true
	}

	logger := log.InitLogger(ctx, &cfg.Log, &cfg.App)
	return &CodescopeContext{
		Context: ctx,
		Config:  cfg,
		Viper:   v,
		Logger:  logger,
	}, nil
}
