package cmd

import (
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/papersrc/papersrc/log"
	"github.com/papersrc/papersrc/query"
	"github.com/papersrc/papersrc/source"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("page", "p", 1, "Page of results to fetch")
	searchCmd.Flags().StringSliceP("tag", "t", []string{}, "Only include titles with these source tag ids")
	searchCmd.Flags().Int("offset", 0, "Result offset, for sources paging by offset")
	addOutputFlags(searchCmd)
	searchCmd.SetOut(os.Stdout)
}

var searchCmd = &cobra.Command{
	Use:   "search <source> <query>",
	Short: "Search a source for titles",
	Example: `  papersrc search mangadex "one piece"
  papersrc search nhentai "glasses sort:popular"
  papersrc search nhentai 177013`,
	Args: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			return nil
		}
		return cobra.MinimumNArgs(2)(cmd, args)
	},
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return completionSources(cmd, args, toComplete)
		}
		return query.SuggestMany(args[0], toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		if printSchema(cmd, &source.PagedResults{}) {
			return
		}

		src := loadSource(args[0])
		request := source.SearchRequest{
			Title:        strings.Join(args[1:], " "),
			IncludedTags: lo.Must(cmd.Flags().GetStringSlice("tag")),
		}

		results, err := src.Search(cmd.Context(), request, &source.Metadata{
			Page:   lo.Must(cmd.Flags().GetInt("page")),
			Offset: lo.Must(cmd.Flags().GetInt("offset")),
		})
		handleErr(err)

		if err := query.Remember(src.ID(), request.Title, 1); err != nil {
			log.Warnf("remember query: %v", err)
		}

		if printJSON(cmd, results) {
			return
		}

		printTitles(cmd, results.Results)
		printNext(cmd, results.Metadata)
	},
}

// printNext tells how to fetch the page after metadata.
func printNext(cmd *cobra.Command, metadata *source.Metadata) {
	if metadata == nil || metadata.StopSearch {
		return
	}

	cmd.Println()
	if metadata.Offset > 0 {
		cmd.Printf("next page: --page %d --offset %d\n", metadata.Page, metadata.Offset)
	} else {
		cmd.Printf("next page: --page %d\n", metadata.Page)
	}
}
