package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/papersrc/papersrc/icon"
	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/style"
)

func init() {
	rootCmd.AddCommand(homeCmd, moreCmd)

	addOutputFlags(homeCmd)
	homeCmd.SetOut(os.Stdout)

	moreCmd.Flags().IntP("page", "p", 1, "Page of results to fetch")
	moreCmd.Flags().Int("offset", 0, "Result offset, for sources paging by offset")
	addOutputFlags(moreCmd)
	moreCmd.SetOut(os.Stdout)
}

var homeCmd = &cobra.Command{
	Use:               "home [source]",
	Short:             "Show the home page sections of a source",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		if printSchema(cmd, &[]*source.HomeSection{}) {
			return
		}

		src := loadSource(lo.FirstOrEmpty(args))
		asJSON := lo.Must(cmd.Flags().GetBool("json"))

		var loaded []*source.HomeSection
		err := src.HomeSections(cmd.Context(), func(section *source.HomeSection) {
			if !section.Loaded() {
				return
			}

			if asJSON {
				loaded = append(loaded, section)
				return
			}

			cmd.Printf("%s %s %s\n", icon.Get(icon.Home), style.Title(section.Title), style.Faint(section.ID))
			printTitles(cmd, section.Items)
			cmd.Println()
		})

		if asJSON {
			printJSON(cmd, loaded)
		}
		handleErr(err)
	},
}

var moreCmd = &cobra.Command{
	Use:               "more <source> <section>",
	Short:             "Page through a home page section",
	Args:              argsOrSchema(2),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		if printSchema(cmd, &source.PagedResults{}) {
			return
		}

		src := loadSource(args[0])
		results, err := src.ViewMore(cmd.Context(), args[1], &source.Metadata{
			Page:   lo.Must(cmd.Flags().GetInt("page")),
			Offset: lo.Must(cmd.Flags().GetInt("offset")),
		})
		handleErr(err)

		if printJSON(cmd, results) {
			return
		}

		printTitles(cmd, results.Results)
		printNext(cmd, results.Metadata)
	},
}
