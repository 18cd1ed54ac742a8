package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yeisme/codescope/pkg/analysis"
	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/llm"
	"github.com/yeisme/codescope/pkg/style"
)

var (
	fixLang  languageFlags
	fixWrite string

	fixCmd = &cobra.Command{
		Use:   "fix [FILE|-]",
		Short: "Ask a language model for fixes to the issues found",
		Long: `codescope fix analyzes the input, sends the most important issues (up to
three critical and two warnings) to an OpenAI compatible chat completion API
and prints the suggested fixes.

The API key is read from the environment variable named by llm.api_key_env
(CODESCOPE_LLM_API_KEY by default). llm.base_url and llm.model select the
endpoint and model.

Examples:
  codescope fix app.js
  codescope fix handler.py --write handler.fixed.py
  codescope fix main.go --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, structured, err := structuredFormat(cmd)
			if err != nil {
				return err
			}

			in, err := loadInput(inputPath(args))
			if err != nil {
				return err
			}
			language, err := resolveLanguage(in, fixLang)
			if err != nil {
				return err
			}
			result := analysis.Analyze(in.Code, string(language))

			client, err := llm.NewOpenAIClient(csCtx.Config.LLM)
			if err != nil {
				return err
			}

			sp := style.NewSpinner(cmd.ErrOrStderr(), fmt.Sprintf("requesting fixes for %d issues", len(llm.SelectIssues(result.Issues, csCtx.Config.LLM.MaxIssues))))
			sp.Start()
			fixes, err := client.Suggest(cmd.Context(), in.Code, string(language), result.Issues)
			sp.Stop(err == nil || errors.Is(err, llm.ErrNoIssues))
			if errors.Is(err, llm.ErrNoIssues) {
				fmt.Fprintln(cmd.OutOrStdout(), style.Muted("No critical or warning issues to fix."))
				return nil
			}
			if err != nil {
				return err
			}

			if fixWrite != "" {
				if fixes.FullCorrectedCode == "" {
					return errors.New("the model did not return corrected code, nothing written")
				}
				if err := os.WriteFile(fixWrite, []byte(fixes.FullCorrectedCode), 0o644); err != nil {
					return fmt.Errorf("write corrected code: %w", err)
				}
				csCtx.Logger.Info().Str("path", fixWrite).Msg("corrected code written")
			}

			if structured {
				return configs.OutputData(fixes, format, cmd.OutOrStdout(), colorEnabled(cmd.OutOrStdout()))
			}
			return style.RenderMarkdown(cmd.OutOrStdout(), fixes.Markdown(string(language)), 0, "")
		},
	}
)

func init() {
	rootCmd.AddCommand(fixCmd)

	fixLang.register(fixCmd)
	addFormatFlags(fixCmd)
	fixCmd.Flags().StringVar(&fixWrite, "write", "", "write the full corrected code to this file")
}
