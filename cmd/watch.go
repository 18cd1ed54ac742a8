package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeisme/codescope/pkg/analysis"
	"github.com/yeisme/codescope/pkg/report"
	"github.com/yeisme/codescope/pkg/style"
	"github.com/yeisme/codescope/pkg/watch"
)

var (
	watchLang     languageFlags
	watchDebounce time.Duration
	watchFull     bool

	watchCmd = &cobra.Command{
		Use:   "watch PATH",
		Short: "Re-analyze a file or directory whenever it changes",
		Long: `codescope watch analyzes PATH once and then again every time it is saved.
Bursts of writes are coalesced by the debounce interval and saves that do not
change the content are ignored. When PATH is a directory, every file with a
supported extension inside it is watched (not recursively).

Press Ctrl+C to stop.

Examples:
  codescope watch main.go
  codescope watch src/ --debounce 1s
  codescope watch snippet.txt --lang rust --full`,
		Aliases: []string{"w"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := watchLang
			if flags.pick {
				l, err := pickLanguage()
				if err != nil {
					return err
				}
				flags = languageFlags{lang: string(l)}
			}
			debounce := watchDebounce
			if !cmd.Flags().Changed("debounce") {
				debounce = csCtx.Config.Watch.DebounceDuration()
			}

			w, err := watch.New(args[0], debounce)
			if err != nil {
				return err
			}

			hook := func(path string) {
				if err := analyzeOnce(cmd, path, flags); err != nil {
					csCtx.Logger.Error().Err(err).Str("path", path).Msg("analysis failed")
				}
			}
			if w.IsDir() {
				fmt.Fprintln(cmd.ErrOrStderr(), style.Muted("watching "+w.Target()+" for changes"))
			} else {
				hook(w.Target())
			}
			return w.Run(cmd.Context(), hook)
		},
	}
)

func analyzeOnce(cmd *cobra.Command, path string, flags languageFlags) error {
	in, err := loadInput(path)
	if err != nil {
		return err
	}
	language, err := resolveLanguage(in, flags)
	if err != nil {
		return err
	}
	result := analysis.Analyze(in.Code, string(language))

	out := cmd.OutOrStdout()
	if watchFull {
		return report.PrintSummary(out, result, report.Summary{Path: in.Path, Language: string(language)})
	}
	_, err = fmt.Fprintf(out, "%s %s %s\n",
		style.Muted(time.Now().Format(time.TimeOnly)),
		in.Path,
		report.OneLine(result),
	)
	return err
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchLang.register(watchCmd)
	watchCmd.Flags().DurationVarP(&watchDebounce, "debounce", "d", 300*time.Millisecond, "quiet period before re-analyzing (default: watch.debounce)")
	watchCmd.Flags().BoolVar(&watchFull, "full", false, "print the full summary instead of one line per change")
}
