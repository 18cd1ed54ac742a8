// Package cmd provides command-line interface commands for codescope
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"runtime/trace"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	cctx "github.com/yeisme/codescope/pkg/context"
	"github.com/yeisme/codescope/pkg/style"
	"github.com/yeisme/codescope/pkg/utils/version"
)

var (
	csCtx *cctx.CodescopeContext

	// Global flags
	globalFlags       = cctx.GlobalFlags{}
	cpuProfileFlag    string
	traceFlag         string
	versionEnableFlag bool

	cpuProfileFile *os.File
	traceFile      *os.File
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "codescope",
	Short: "codescope scores source code quality with fast heuristics",
	Long: `codescope is a command line source code quality analyzer.

It detects the language of a snippet, flags likely bugs, security smells and
maintainability issues, computes simple metrics and a 0-100 quality score,
and estimates whether the code looks machine generated. It can also review
CI/CD pipeline files and analyze whole directories.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if versionEnableFlag {
			fmt.Fprintln(cmd.OutOrStdout(), version.GetShortVersionString())
			return nil
		}
		return cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cpuProfileFlag != "" {
			f, err := os.Create(cpuProfileFlag)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				_ = f.Close()
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			cpuProfileFile = f
		}
		if traceFlag != "" {
			f, err := os.Create(traceFlag)
			if err != nil {
				return fmt.Errorf("could not create trace file: %w", err)
			}
			if err := trace.Start(f); err != nil {
				_ = f.Close()
				return fmt.Errorf("could not start trace: %w", err)
			}
			traceFile = f
		}

		ctx, err := cctx.InitContext(cmd.Context(), globalFlags)
		if err != nil {
			return err
		}
		csCtx = ctx
		if ctx.Config.App.NoColor || os.Getenv("NO_COLOR") != "" {
			style.DisableColor()
		}

		csCtx.Logger.Debug().Msgf("Execute Command: %s %s", "codescope", strings.Join(os.Args[1:], " "))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if cpuProfileFile != nil {
			pprof.StopCPUProfile()
			_ = cpuProfileFile.Close()
		}
		if traceFile != nil {
			trace.Stop()
			_ = traceFile.Close()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// SIGINT/SIGTERM 取消命令上下文
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "config file (default: .codescope.{yaml,json,toml} in the current or home directory)")
	rootCmd.PersistentFlags().StringVar(&cpuProfileFlag, "cpu-profile", "", "write cpu profile to `file`")
	rootCmd.PersistentFlags().StringVar(&traceFlag, "trace", "", "write execution trace to `file`")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Debug, "debug", false, "enable debug mode (prints additional information)")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "V", false, "enable verbose output (prints more detailed information)")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.Quiet, "quiet", false, "suppress all log output")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.NoColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVarP(&versionEnableFlag, "version", "v", false, "show version information")
}
