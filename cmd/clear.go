package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/papersrc/papersrc/filesystem"
	"github.com/papersrc/papersrc/icon"
	"github.com/papersrc/papersrc/provider"
	"github.com/papersrc/papersrc/query"
	"github.com/papersrc/papersrc/style"
	"github.com/papersrc/papersrc/util"
	"github.com/papersrc/papersrc/where"
)

// clearTarget is a group of files the clear command can remove.
type clearTarget struct {
	name    string
	argLong string
	paths   func() []string
}

var clearTargets = []clearTarget{
	{"cache directory", "cache", func() []string { return []string{where.Cache()} }},
	{"query suggestions", "queries", func() []string { return []string{where.Queries()} }},
	{"source settings", "settings", func() []string {
		return lo.Map(provider.Builtins(), func(p *provider.Provider, _ int) string { return where.State(p.ID) })
	}},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		clearCmd.Flags().Bool(target.argLong, false, "Clear "+target.name)
	}
	clearCmd.Flags().String("forget", "", "Only forget the queries of this source")
	lo.Must0(clearCmd.RegisterFlagCompletionFunc("forget", completionSources))
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached and stored data",
	Run: func(cmd *cobra.Command, args []string) {
		if id := lo.Must(cmd.Flags().GetString("forget")); id != "" {
			handleErr(query.Forget(id))
			fmt.Printf("%s forgot %s queries\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), id)
			return
		}

		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return lo.Must(cmd.Flags().GetBool(t.argLong))
		})
		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, target := range selected {
			for _, path := range target.paths() {
				handleErr(filesystem.API().RemoveAll(path))
			}
			fmt.Printf("%s %s cleared\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), util.Capitalize(target.name))
		}
	},
}
