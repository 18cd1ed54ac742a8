package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeisme/codescope/pkg/analysis"
	"github.com/yeisme/codescope/pkg/cicd"
	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/report"
)

// analyzeOutput 结构化输出时的文档
type analyzeOutput struct {
	Path     string                     `json:"path" yaml:"path" toml:"path"`
	Language string                     `json:"language" yaml:"language" toml:"language"`
	Result   *models.AnalysisResult     `json:"result" yaml:"result" toml:"result"`
	CICD     *models.CICDAnalysisResult `json:"cicd,omitempty" yaml:"cicd,omitempty" toml:"cicd,omitempty"`
}

var (
	analyzeLang     languageFlags
	analyzeFormat   string
	analyzeOutFile  string
	analyzeWithCICD bool
	analyzeDetails  bool

	analyzeCmd = &cobra.Command{
		Use:   "analyze [FILE|-]",
		Short: "Analyze a source file and print a quality report",
		Long: `codescope analyze scores a single source file.

The language comes from --pick, --lang, the file extension or automatic
detection, in that order. Reading from stdin is supported with "-" or by
omitting FILE.

Formats:
  text      terminal summary with metrics, chart and issue tables (default)
  json      structured result (also yaml, toml)
  markdown  markdown report rendered for the terminal
  share     plain text summary for pasting into chats
  export    JSON export document written to code-analysis-YYYY-MM-DD.json

Examples:
  codescope analyze main.go
  cat snippet.txt | codescope analyze --lang python
  codescope analyze app.ts --format json
  codescope analyze app.js --cicd --format markdown
  codescope analyze app.js --format export --output report.json`,
		Aliases: []string{"a"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseReportFormat(analyzeFormat)
			if err != nil {
				return err
			}

			in, err := loadInput(inputPath(args))
			if err != nil {
				return err
			}
			language, err := resolveLanguage(in, analyzeLang)
			if err != nil {
				return err
			}
			if analyzeLang.lang != "" || analyzeLang.pick {
				warnMismatch(cmd.ErrOrStderr(), in.Code, language)
			}

			csCtx.Logger.Debug().Str("path", in.Path).Str("language", string(language)).Msg("analyzing")
			result := analysis.Analyze(in.Code, string(language))
			var ci *models.CICDAnalysisResult
			if analyzeWithCICD {
				ci = cicd.Analyze(in.Code)
			}

			return writeReport(cmd, format, analyzeOutput{
				Path:     in.Path,
				Language: string(language),
				Result:   result,
				CICD:     ci,
			})
		},
	}
)

func writeReport(cmd *cobra.Command, format reportFormat, doc analyzeOutput) error {
	if format == formatExport {
		return writeExport(cmd, doc)
	}

	w, closeFn, err := openOutput(cmd, analyzeOutFile)
	if err != nil {
		return err
	}
	defer closeFn()

	if f, ok := format.structured(); ok {
		return configs.OutputData(doc, f, w, colorEnabled(w))
	}
	switch format {
	case formatMarkdown:
		if analyzeOutFile != "" {
			_, err := io.WriteString(w, report.Markdown(doc.Result, doc.Language, doc.CICD))
			return err
		}
		return report.RenderMarkdown(w, doc.Result, doc.Language, doc.CICD)
	case formatShare:
		_, err := fmt.Fprintln(w, report.ShareText(doc.Result, doc.CICD))
		return err
	default:
		return report.PrintSummary(w, doc.Result, report.Summary{
			Path:     doc.Path,
			Language: doc.Language,
			CICD:     doc.CICD,
			Verbose:  analyzeDetails,
		})
	}
}

func writeExport(cmd *cobra.Command, doc analyzeOutput) error {
	now := time.Now()
	path := analyzeOutFile
	if path == "" {
		path = report.ExportFileName(now)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := report.NewExport(doc.Result, doc.CICD, now).WriteJSON(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	csCtx.Logger.Info().Str("path", path).Msg("analysis exported")
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", lang.Label(doc.Language), path)
	return nil
}

// openOutput path 为空时写到标准输出
func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			csCtx.Logger.Warn().Err(err).Str("path", path).Msg("close output file")
		}
	}, nil
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeLang.register(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", fmt.Sprintf("output format (%s)", strings.Join(reportFormats(), ", ")))
	analyzeCmd.Flags().StringVarP(&analyzeOutFile, "output", "o", "", "write the report to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&analyzeWithCICD, "cicd", false, "also analyze the input as a CI/CD pipeline configuration")
	analyzeCmd.Flags().BoolVar(&analyzeDetails, "details", false, "print description and suggestion for every issue")
}
