package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/project"
	"github.com/yeisme/codescope/pkg/report"
	"github.com/yeisme/codescope/pkg/style"
)

var (
	projectInclude     []string
	projectExclude     []string
	projectNoGitignore bool
	projectConcurrency int
	projectNoDedupe    bool
	projectWorst       int

	projectCmd = &cobra.Command{
		Use:   "project [DIR]",
		Short: "Analyze every source file in a directory",
		Long: `codescope project walks a directory and analyzes every file whose extension
maps to a supported language. .git is always skipped, .gitignore is respected
unless --no-gitignore is given, and files larger than project.max_file_size
are skipped. Files with identical content are analyzed once and reported as
duplicates.

--include and --exclude take doublestar globs relative to DIR and add to the
project section of the configuration file.

Examples:
  codescope project
  codescope project ./src --exclude "**/*_test.go"
  codescope project . --include "pkg/**" --worst 5
  codescope project . --json > report.json`,
		Aliases: []string{"p"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			cfg := csCtx.Config.Project
			opts := project.OptionsFromConfig(cfg)
			opts.Include = append(opts.Include, projectInclude...)
			opts.Exclude = append(opts.Exclude, projectExclude...)
			if projectNoGitignore {
				opts.RespectGitignore = false
			}
			if cmd.Flags().Changed("concurrency") {
				opts.Concurrency = projectConcurrency
			}
			if projectNoDedupe {
				opts.Dedupe = false
			}

			format, structured, err := structuredFormat(cmd)
			if err != nil {
				return err
			}

			a, err := project.NewAnalyzer(cfg.CacheSize)
			if err != nil {
				return err
			}
			defer a.Close()

			sp := style.NewSpinner(cmd.ErrOrStderr(), "analyzing "+root)
			sp.Start()
			rep, err := a.AnalyzeDir(cmd.Context(), root, opts)
			if err == nil {
				sp.SetMessage(fmt.Sprintf("analyzed %d files in %s", rep.Total.Files, root))
			}
			sp.Stop(err == nil)
			if err != nil {
				return err
			}
			csCtx.Logger.Info().
				Int("files", rep.Total.Files).
				Int("issues", rep.Total.Issues.Total()).
				Int("duplicates", rep.Duplicates).
				Int("skipped", rep.Skipped).
				Msg("project analyzed")

			if structured {
				return configs.OutputData(rep, format, cmd.OutOrStdout(), colorEnabled(cmd.OutOrStdout()))
			}
			return report.PrintProject(cmd.OutOrStdout(), rep, projectWorst)
		},
	}
)

func init() {
	rootCmd.AddCommand(projectCmd)

	addFormatFlags(projectCmd)
	projectCmd.Flags().StringSliceVarP(&projectInclude, "include", "i", nil, "only analyze files matching these globs")
	projectCmd.Flags().StringSliceVarP(&projectExclude, "exclude", "e", nil, "skip files and directories matching these globs")
	projectCmd.Flags().BoolVar(&projectNoGitignore, "no-gitignore", false, "do not apply .gitignore rules")
	projectCmd.Flags().IntVarP(&projectConcurrency, "concurrency", "j", 0, "number of files analyzed in parallel (default: project.concurrency or CPU count)")
	projectCmd.Flags().BoolVar(&projectNoDedupe, "no-dedupe", false, "analyze files with identical content separately")
	projectCmd.Flags().IntVarP(&projectWorst, "worst", "w", 10, "number of lowest scoring files to list, 0 for all")
}
