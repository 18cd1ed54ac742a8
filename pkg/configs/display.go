package configs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/yeisme/codescope/pkg/style"
)

// OutputFormat 结构化输出格式
type OutputFormat string

const (
	// FormatYAML YAML
	FormatYAML OutputFormat = "yaml"
	// FormatJSON JSON
	FormatJSON OutputFormat = "json"
	// FormatTOML TOML
	FormatTOML OutputFormat = "toml"
	// FormatText 纯文本
	FormatText OutputFormat = "text"
)

// ValidFormats 所有可用的输出格式
func ValidFormats() []string {
	return []string{string(FormatYAML), string(FormatJSON), string(FormatTOML), string(FormatText)}
}

// ParseOutputFormat 解析格式名，接受 yml 与 txt 简写
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format %q, supported formats: %s", format, strings.Join(ValidFormats(), ", "))
	}
}

// Marshal 按格式编码
func Marshal(data any, format OutputFormat) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("close yaml encoder: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		b, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return append(b, '\n'), nil
	case FormatTOML:
		b, err := toml.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal toml: %w", err)
		}
		return b, nil
	case FormatText:
		return []byte(fmt.Sprintf("%+v\n", data)), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// OutputData 按格式写出 data；JSON 在 color 为 true 时高亮
func OutputData(data any, format OutputFormat, out io.Writer, color bool) error {
	b, err := Marshal(data, format)
	if err != nil {
		return err
	}
	if format == FormatJSON && color {
		return style.PrintJSON(out, b)
	}
	_, err = out.Write(b)
	return err
}

// GetConfigSection 取配置段
// showAll 为 true 时返回解析后的结构体（含默认值），否则返回 viper 原始数据
func GetConfigSection(v *viper.Viper, section string, showAll bool) (any, error) {
	lower := strings.ToLower(section)
	if showAll {
		var cfg Config
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
		if lower == "" {
			return cfg, nil
		}
		val := reflect.ValueOf(cfg)
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			if strings.ToLower(typ.Field(i).Tag.Get("mapstructure")) == lower {
				return val.Field(i).Interface(), nil
			}
		}
		return nil, fmt.Errorf("unknown configuration section: %s (available: %s)", section, strings.Join(Sections(), ", "))
	}

	if lower == "" {
		return v.AllSettings(), nil
	}
	if v.IsSet(lower) {
		return v.Get(lower), nil
	}
	return nil, fmt.Errorf("unknown or unset configuration section %s", section)
}

// Sections 配置段名称
func Sections() []string {
	typ := reflect.TypeOf(Config{})
	out := make([]string, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		out = append(out, typ.Field(i).Tag.Get("mapstructure"))
	}
	sort.Strings(out)
	return out
}
