package cmd

import (
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/source"
	"github.com/yeisme/codescope/pkg/style"
)

// languageInfo languages 命令的一行
type languageInfo struct {
	ID         string   `json:"id" yaml:"id" toml:"id"`
	Name       string   `json:"name" yaml:"name" toml:"name"`
	Extensions []string `json:"extensions" yaml:"extensions" toml:"extensions"`
}

var languagesCmd = &cobra.Command{
	Use:     "languages",
	Short:   "List supported languages and file extensions",
	Aliases: []string{"langs"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		infos := supportedLanguages()

		if format, ok, err := structuredFormat(cmd); err != nil {
			return err
		} else if ok {
			return configs.OutputData(infos, format, cmd.OutOrStdout(), colorEnabled(cmd.OutOrStdout()))
		}

		rows := make([][]string, 0, len(infos))
		for _, info := range infos {
			rows = append(rows, []string{info.ID, info.Name, strings.Join(info.Extensions, " ")})
		}
		return style.PrintTable(cmd.OutOrStdout(), []string{"id", "name", "extensions"}, rows, 0, nil)
	},
}

func supportedLanguages() []languageInfo {
	byLang := make(map[lang.Language][]string)
	for _, ext := range source.Extensions() {
		l, _ := source.LanguageForPath("x" + ext)
		byLang[l] = append(byLang[l], ext)
	}

	all := lang.All()
	infos := make([]languageInfo, 0, len(all))
	for _, l := range all {
		exts := byLang[l]
		sort.Strings(exts)
		infos = append(infos, languageInfo{ID: string(l), Name: l.Label(), Extensions: exts})
	}
	return infos
}

func init() {
	rootCmd.AddCommand(languagesCmd)
	addFormatFlags(languagesCmd)
}
