package cmd

import (
	"encoding/json"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papersrc/papersrc/icon"
	"github.com/papersrc/papersrc/key"
	"github.com/papersrc/papersrc/provider"
	"github.com/papersrc/papersrc/style"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "Only print source ids")
	sourcesListCmd.Flags().BoolP("json", "j", false, "Print the sources as JSON")
	sourcesListCmd.MarkFlagsMutuallyExclusive("raw", "json")
	sourcesListCmd.SetOut(os.Stdout)
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Inspect the available sources",
}

type sourceInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Adult      bool   `json:"adult"`
	Challenged bool   `json:"challenged"`
	Default    bool   `json:"default"`
}

func sourceInfos() []sourceInfo {
	defaults := viper.GetStringSlice(key.DefaultSources)
	return lo.Map(provider.Builtins(), func(p *provider.Provider, _ int) sourceInfo {
		return sourceInfo{
			ID:         p.ID,
			Name:       p.Name,
			Adult:      p.Adult,
			Challenged: p.Challenged,
			Default:    lo.Contains(defaults, p.ID) || lo.Contains(defaults, p.Name),
		}
	})
}

var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the built-in sources",
	Run: func(cmd *cobra.Command, args []string) {
		infos := sourceInfos()

		switch {
		case lo.Must(cmd.Flags().GetBool("json")):
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(infos))
		case lo.Must(cmd.Flags().GetBool("raw")):
			for _, info := range infos {
				cmd.Println(info.ID)
			}
		default:
			for _, info := range infos {
				line := style.Bold(info.Name) + " " + style.Faint(info.ID)
				if info.Default {
					line += " " + style.Fg(style.AccentColor)(icon.Get(icon.Home))
				}
				if info.Adult {
					line += " " + style.Fg(style.AdultColor)(icon.Get(icon.Adult))
				}
				if info.Challenged {
					line += " " + style.Fg(style.WarningColor)(icon.Get(icon.Challenge))
				}
				cmd.Println(line)
			}
		}
	},
}
