package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/utils/schema"
)

var (
	configCmd = &cobra.Command{
		Use:     "config",
		Short:   "Manage codescope configuration",
		Long:    `codescope config allows you to view and manage your codescope configuration settings.`,
		Aliases: []string{"c"},
	}

	configValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate codescope configuration",
		Long: `codescope config validate loads the configuration file and environment
variables, decodes them and checks every value range.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fileUsed := csCtx.Viper.ConfigFileUsed()
			if fileUsed == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No config file found, using defaults")
			}
			if err := csCtx.Config.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if fileUsed != "" {
				csCtx.Logger.Info().Msgf("Config file used: %s", fileUsed)
				fmt.Fprintf(cmd.OutOrStdout(), "Config file %s is valid\n", fileUsed)
			}
			return nil
		},
		Aliases: []string{"check", "verify"},
	}

	configListCmd = &cobra.Command{
		Use:   "list [section]",
		Short: "List codescope configuration",
		Long: fmt.Sprintf(`codescope config list displays the current configuration settings.

You can specify a section to display only that part of the configuration:
  %s

Examples:
  codescope config list                    # Show all configuration (viper raw data)
  codescope config list --all              # Show all configuration with defaults
  codescope config list analysis           # Show only analysis settings
  codescope config list --format json      # Output in JSON format
  codescope config list --yaml             # Output in YAML format (shorthand)
  codescope config list llm --all --json   # Show llm config with defaults in JSON`,
			strings.Join(configs.Sections(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) > 0 {
				section = args[0]
			}

			format, err := getOutputFormatFromFlags(cmd)
			if err != nil {
				return err
			}
			showAll, _ := cmd.Flags().GetBool("all")

			data, err := configs.GetConfigSection(csCtx.Viper, section, showAll)
			if err != nil {
				return fmt.Errorf("get config section: %w", err)
			}
			return configs.OutputData(data, format, cmd.OutOrStdout(), colorEnabled(cmd.OutOrStdout()))
		},
		Aliases: []string{"ls"},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Initialize codescope configuration",
		Long: `codescope config init creates a new configuration file with default settings.

Examples:
  codescope config init                                    # Create .codescope.yaml in current directory
  codescope config init --path ~/.config/codescope/codescope.toml --format toml
  codescope config init --format json                      # Create .codescope.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("path")
			formatStr, _ := cmd.Flags().GetString("format")

			format, err := configs.ParseOutputFormat(formatStr)
			if err != nil {
				return err
			}
			if path == "" {
				path = configs.DefaultConfigPath(format)
			}

			if err := configs.CreateDefaultConfig(path, format); err != nil {
				return err
			}
			csCtx.Logger.Info().Msgf("Config file created successfully: %s", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
		Args: cobra.NoArgs,
	}

	configSchemaCmd = &cobra.Command{
		Use:   "schema [kind]",
		Short: "Print a JSON Schema for the config file or a report",
		Long: fmt.Sprintf(`codescope config schema prints a JSON Schema, by default for the configuration
file. Editors can use it for completion and validation.

Kinds: %s

Examples:
  codescope config schema > codescope.schema.json
  codescope config schema result`, strings.Join(schemaKinds(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := schema.KindConfig
			if len(args) > 0 {
				k, err := schema.ParseKind(args[0])
				if err != nil {
					return err
				}
				kind = k
			}
			return schema.Generate(cmd.OutOrStdout(), kind)
		},
	}
)

func schemaKinds() []string {
	kinds := schema.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(
		configListCmd,
		configValidateCmd,
		configInitCmd,
		configSchemaCmd,
	)

	addFormatFlags(configListCmd)
	configListCmd.Flags().BoolP("all", "a", false, "Show complete configuration with defaults (processed struct)")

	configInitCmd.Flags().StringP("path", "p", "", "Path to the config file")
	configInitCmd.Flags().StringP("format", "f", "yaml", "Format of the config file (yaml, json, toml)")
}
