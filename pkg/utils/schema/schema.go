// Package schema 生成配置文件与输出报告的 JSON Schema
package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/invopop/jsonschema"

	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/report"
)

// Kind 可生成的 schema 种类
type Kind string

const (
	KindConfig  Kind = "config"
	KindResult  Kind = "result"
	KindCICD    Kind = "cicd"
	KindProject Kind = "project"
	KindExport  Kind = "export"
)

// Kinds 返回全部种类，顺序固定
func Kinds() []Kind {
	return []Kind{KindConfig, KindResult, KindCICD, KindProject, KindExport}
}

// ParseKind 解析种类名
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if slices.Contains(Kinds(), k) {
		return k, nil
	}
	return "", fmt.Errorf("unknown schema kind %q, valid: %v", s, Kinds())
}

// Generate 将指定种类的 schema 以缩进 JSON 写入 out
//
// 配置按 mapstructure 标签命名，与配置文件中的键一致；报告按 json 标签命名
func Generate(out io.Writer, kind Kind) error {
	var s *jsonschema.Schema
	switch kind {
	case KindConfig:
		r := &jsonschema.Reflector{
			AllowAdditionalProperties:  true,
			RequiredFromJSONSchemaTags: true,
			FieldNameTag:               "mapstructure",
		}
		s = r.Reflect(configs.Config{})
	case KindResult:
		s = reportReflector().Reflect(models.AnalysisResult{})
	case KindCICD:
		s = reportReflector().Reflect(models.CICDAnalysisResult{})
	case KindProject:
		s = reportReflector().Reflect(models.ProjectReport{})
	case KindExport:
		s = reportReflector().Reflect(report.Export{})
	default:
		return fmt.Errorf("unknown schema kind %q", kind)
	}

	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

func reportReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{RequiredFromJSONSchemaTags: true}
}
