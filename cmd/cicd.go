package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yeisme/codescope/pkg/cicd"
	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/report"
)

var cicdCmd = &cobra.Command{
	Use:   "cicd [FILE|-]",
	Short: "Review a CI/CD pipeline configuration",
	Long: `codescope cicd recognizes GitHub Actions, GitLab CI, Jenkins, CircleCI, Azure
DevOps and Travis CI configurations, flags hard-coded secrets, unpinned
actions and other risky steps, checks common best practices and computes a
security score.

Examples:
  codescope cicd .github/workflows/ci.yml
  codescope cicd .gitlab-ci.yml --json
  cat Jenkinsfile | codescope cicd`,
	Aliases: []string{"ci"},
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := loadInput(inputPath(args))
		if err != nil {
			return err
		}
		res := cicd.Analyze(in.Code)
		csCtx.Logger.Debug().Bool("detected", res.Detected).Str("platform", res.PlatformName()).Msg("pipeline analyzed")

		if format, ok, err := structuredFormat(cmd); err != nil {
			return err
		} else if ok {
			return configs.OutputData(res, format, cmd.OutOrStdout(), colorEnabled(cmd.OutOrStdout()))
		}
		return report.PrintCICD(cmd.OutOrStdout(), res)
	},
}

func init() {
	rootCmd.AddCommand(cicdCmd)
	addFormatFlags(cicdCmd)
}
