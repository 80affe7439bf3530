package cmd

import (
	"os"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/papersrc/papersrc/config"
	"github.com/papersrc/papersrc/style"
	"github.com/papersrc/papersrc/where"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.SetOut(os.Stdout)

	envCmd.Flags().BoolP("set-only", "s", false, "Only print variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only print variables that are not set")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envNames lists every environment variable papersrc reads, sorted.
func envNames() []string {
	names := lo.MapToSlice(config.Default, func(_ string, f config.Field) string { return f.Env() })
	names = append(names, where.EnvConfigPath)
	slices.Sort(names)
	return names
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Print the environment variables papersrc reads",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		for _, name := range envNames() {
			value, present := os.LookupEnv(name)
			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			if present {
				cmd.Printf("%s=%s\n", style.Fg(style.AccentColor)(style.Bold(name)), style.Fg(style.SuccessColor)(value))
			} else {
				cmd.Printf("%s=%s\n", style.Fg(style.AccentColor)(style.Bold(name)), style.Fg(style.ErrorColor)("unset"))
			}
		}
	},
}
