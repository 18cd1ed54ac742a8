package cmd

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/detect"
	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/report"
	"github.com/yeisme/codescope/pkg/source"
	"github.com/yeisme/codescope/pkg/style"
)

// languageFlags 需要选择语言的命令共用的标志
type languageFlags struct {
	lang string
	pick bool
}

func (f *languageFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.lang, "lang", "l", "", "language id or name, see `codescope languages` (default: from extension or detection)")
	cmd.Flags().BoolVar(&f.pick, "pick", false, "pick the language interactively")
}

// loadInput 读取源码并按 analysis 配置检查大小
func loadInput(path string) (source.Input, error) {
	in, err := source.Load(path)
	if err != nil {
		return source.Input{}, err
	}
	cfg := csCtx.Config.Analysis
	if err := source.Guard(in.Code, source.Limits{MaxLines: cfg.MaxLines, MaxChars: cfg.MaxChars}); err != nil {
		return source.Input{}, fmt.Errorf("%s: %w", in.Path, err)
	}
	return in, nil
}

func inputPath(args []string) string {
	if len(args) == 0 {
		return source.Stdin
	}
	return args[0]
}

// resolveLanguage 选择分析所用的语言
//
// 优先级：--pick、--lang、扩展名、自动检测、配置中的默认语言
func resolveLanguage(in source.Input, f languageFlags) (lang.Language, error) {
	switch {
	case f.pick:
		return pickLanguage()
	case f.lang != "":
		l, ok := lang.Parse(f.lang)
		if !ok {
			return "", unknownLanguageError(f.lang)
		}
		return l, nil
	case in.FromExt:
		return in.Language, nil
	}

	cfg := csCtx.Config.Analysis
	if len([]rune(strings.TrimSpace(in.Code))) >= cfg.MinDetectLength {
		if det := detect.DetectLanguage(in.Code); det.Confidence > 0 {
			csCtx.Logger.Debug().Str("language", det.DetectedLanguage).Int("confidence", det.Confidence).Msg("language detected")
			return lang.Language(det.DetectedLanguage), nil
		}
	}
	if l, ok := lang.Parse(cfg.DefaultLanguage); ok {
		return l, nil
	}
	return lang.Default, nil
}

func unknownLanguageError(s string) error {
	candidates := lang.Suggest(s, 3)
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = string(c)
	}
	return fmt.Errorf("unknown language %q, did you mean: %s", s, strings.Join(names, ", "))
}

func pickLanguage() (lang.Language, error) {
	all := lang.All()
	idx, err := fuzzyfinder.Find(all, func(i int) string {
		return fmt.Sprintf("%s (%s)", all[i].Label(), all[i])
	}, fuzzyfinder.WithHeader("select a language"))
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errors.New("language selection aborted")
		}
		return "", err
	}
	return all[idx], nil
}

// warnMismatch 只在用户明确选择了语言时提示，输出到 stderr
func warnMismatch(w io.Writer, code string, selected lang.Language) {
	cfg := csCtx.Config.Analysis
	if m, ok := detect.CheckMismatch(code, selected, cfg.MinDetectLength, cfg.MismatchConfidence); ok {
		_ = report.PrintMismatch(w, m)
	}
}

// reportFormat 单文件报告的输出格式，在结构化格式之外增加 markdown、share 与 export
type reportFormat string

const (
	formatText     reportFormat = "text"
	formatJSON     reportFormat = "json"
	formatYAML     reportFormat = "yaml"
	formatTOML     reportFormat = "toml"
	formatMarkdown reportFormat = "markdown"
	formatShare    reportFormat = "share"
	formatExport   reportFormat = "export"
)

func reportFormats() []string {
	return []string{
		string(formatText), string(formatJSON), string(formatYAML), string(formatTOML),
		string(formatMarkdown), string(formatShare), string(formatExport),
	}
}

func parseReportFormat(s string) (reportFormat, error) {
	switch strings.ToLower(s) {
	case "", "txt":
		return formatText, nil
	case "yml":
		return formatYAML, nil
	case "md":
		return formatMarkdown, nil
	}
	f := reportFormat(strings.ToLower(s))
	if !slices.Contains(reportFormats(), string(f)) {
		return "", fmt.Errorf("unsupported format %q, supported formats: %s", s, strings.Join(reportFormats(), ", "))
	}
	return f, nil
}

// structured 返回对应的 configs 格式，text/markdown/share/export 返回 false
func (f reportFormat) structured() (configs.OutputFormat, bool) {
	switch f {
	case formatJSON:
		return configs.FormatJSON, true
	case formatYAML:
		return configs.FormatYAML, true
	case formatTOML:
		return configs.FormatTOML, true
	}
	return "", false
}

// getOutputFormatFromFlags 读取 --format 与 --yaml/--json/--toml/--text 简写，默认 yaml
func getOutputFormatFromFlags(cmd *cobra.Command) (configs.OutputFormat, error) {
	if s, _ := cmd.Flags().GetString("format"); s != "" {
		return configs.ParseOutputFormat(s)
	}
	for _, f := range []configs.OutputFormat{configs.FormatYAML, configs.FormatJSON, configs.FormatTOML, configs.FormatText} {
		if set, _ := cmd.Flags().GetBool(string(f)); set {
			return f, nil
		}
	}
	return configs.FormatYAML, nil
}

// colorEnabled 未关闭颜色且 w 为终端
func colorEnabled(w io.Writer) bool {
	return !csCtx.Config.App.NoColor && style.IsTerminal(w)
}
