// Package log 初始化与获取全局 zerolog 日志记录器
//
// 控制台输出写到标准错误，标准输出留给分析结果；文件输出由 lumberjack 轮转
package log

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yeisme/codescope/pkg/configs"
)

// Logger 全局日志记录器类型
type Logger = *zerolog.Logger

var (
	mu           sync.RWMutex
	globalLogger Logger
	// consoleOut 控制台输出目标，测试中可替换
	consoleOut io.Writer = os.Stderr
)

// InitLogger 按配置创建日志记录器并设为全局
// 优先级：quiet > debug > verbose > config.Level
func InitLogger(ctx context.Context, config *configs.LogConfig, appConfig *configs.AppConfig) Logger {
	var logger zerolog.Logger

	switch {
	case appConfig.Quiet:
		zerolog.SetGlobalLevel(zerolog.Disabled)
		logger = zerolog.New(io.Discard)
	default:
		switch {
		case appConfig.Debug:
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		case appConfig.Verbose:
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		default:
			zerolog.SetGlobalLevel(ParseLevel(config.Level))
		}

		out := newWriter(config, appConfig.NoColor)
		c := zerolog.New(out).With().Timestamp()
		if appConfig.Debug {
			c = c.Caller().Str("app", appConfig.Name)
		}
		logger = c.Ctx(ctx).Logger()
	}

	mu.Lock()
	globalLogger = &logger
	mu.Unlock()
	zlog.Logger = logger
	return &logger
}

func newWriter(config *configs.LogConfig, noColor bool) io.Writer {
	switch strings.ToLower(config.Mode) {
	case "file":
		return fileWriter(config)
	case "both":
		return io.MultiWriter(consoleWriter(config.JSON, noColor), fileWriter(config))
	default:
		return consoleWriter(config.JSON, noColor)
	}
}

func consoleWriter(useJSON, noColor bool) io.Writer {
	if useJSON {
		return consoleOut
	}
	return zerolog.ConsoleWriter{
		Out:        consoleOut,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}
}

// fileWriter 目录创建失败时退回到控制台
func fileWriter(config *configs.LogConfig) io.Writer {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
		return consoleOut
	}
	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   true,
	}
}

// GetLogger 返回全局日志记录器，未初始化时返回一个 warn 级别的控制台记录器
func GetLogger() Logger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}
	return InitLogger(context.Background(), &configs.LogConfig{Level: "warn"}, &configs.AppConfig{Name: "codescope"})
}

// ParseLevel 解析日志级别，无法识别时为 info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug 创建 Debug 级别事件
func Debug() *zerolog.Event { return GetLogger().Debug() }

// Info 创建 Info 级别事件
func Info() *zerolog.Event { return GetLogger().Info() }

// Warn 创建 Warn 级别事件
func Warn() *zerolog.Event { return GetLogger().Warn() }

// Error 创建 Error 级别事件
func Error() *zerolog.Event { return GetLogger().Error() }
