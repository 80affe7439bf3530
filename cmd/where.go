package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"

	"github.com/papersrc/papersrc/style"
	"github.com/papersrc/papersrc/where"
)

// location is a resolvable path printed by where.
type location struct {
	name     string
	path     func() string
	argLong  string
	argShort mo.Option[string]
}

var locations = []location{
	{"Config", where.Config, "config", mo.Some("c")},
	{"Logs", where.Logs, "logs", mo.Some("l")},
	{"Cache", where.Cache, "cache", mo.None[string]()},
	{"Queries", where.Queries, "queries", mo.Some("q")},
	{"Source settings", func() string { return where.State("<source>") }, "state", mo.Some("s")},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, l := range locations {
		if short, ok := l.argShort.Get(); ok {
			whereCmd.Flags().BoolP(l.argLong, short, false, l.name+" path")
		} else {
			whereCmd.Flags().Bool(l.argLong, false, l.name+" path")
		}
	}

	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(locations, func(l location, _ int) string { return l.argLong })...)
	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Print the paths papersrc reads and writes",
	Run: func(cmd *cobra.Command, args []string) {
		if l, ok := lo.Find(locations, func(l location) bool {
			return lo.Must(cmd.Flags().GetBool(l.argLong))
		}); ok {
			cmd.Println(l.path())
			return
		}

		for i, l := range locations {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", style.Fg(style.AccentColor)(style.Bold(l.name)), style.Fg(style.WarningColor)("--"+l.argLong))
			cmd.Println(l.path())
		}
	},
}
