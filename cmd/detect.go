package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/detect"
	"github.com/yeisme/codescope/pkg/report"
	"github.com/yeisme/codescope/pkg/style"
)

var detectCmd = &cobra.Command{
	Use:   "detect [FILE|-]",
	Short: "Detect the programming language of a snippet",
	Long: `codescope detect scores the input against every language signature and
prints the best match with its confidence and the top candidates.

Inputs shorter than analysis.min_detect_length are still scored, but a note is
printed because the result is not used automatically for such inputs.

Examples:
  codescope detect snippet.txt
  pbpaste | codescope detect
  codescope detect main.rs --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := loadInput(inputPath(args))
		if err != nil {
			return err
		}
		det := detect.DetectLanguage(in.Code)

		if format, ok, err := structuredFormat(cmd); err != nil {
			return err
		} else if ok {
			return configs.OutputData(det, format, cmd.OutOrStdout(), colorEnabled(cmd.OutOrStdout()))
		}

		out := cmd.OutOrStdout()
		if n := len([]rune(strings.TrimSpace(in.Code))); n < csCtx.Config.Analysis.MinDetectLength {
			fmt.Fprintln(out, style.Muted(fmt.Sprintf("input is only %d characters, detection may be unreliable", n)))
		}
		return report.PrintDetection(out, det)
	},
}

// structuredFormat 命令行显式要求了 yaml/json/toml 时返回 true
func structuredFormat(cmd *cobra.Command) (configs.OutputFormat, bool, error) {
	if !cmd.Flags().Changed("format") && !anyFormatShorthand(cmd) {
		return "", false, nil
	}
	format, err := getOutputFormatFromFlags(cmd)
	if err != nil {
		return "", false, err
	}
	return format, format != configs.FormatText, nil
}

// anyFormatShorthand 是否设置了 --yaml/--json/--toml/--text 之一
func anyFormatShorthand(cmd *cobra.Command) bool {
	for _, name := range []string{"yaml", "json", "toml", "text"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			return true
		}
	}
	return false
}

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", fmt.Sprintf("output format (%s)", strings.Join(configs.ValidFormats(), ", ")))
	cmd.Flags().Bool("yaml", false, "output in YAML format")
	cmd.Flags().Bool("json", false, "output in JSON format")
	cmd.Flags().Bool("toml", false, "output in TOML format")
	cmd.Flags().Bool("text", false, "output in plain text format")
}

func init() {
	rootCmd.AddCommand(detectCmd)
	addFormatFlags(detectCmd)
}
