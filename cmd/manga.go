package cmd

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/papersrc/papersrc/open"
	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/style"
)

func init() {
	rootCmd.AddCommand(mangaCmd, chaptersCmd, pagesCmd)

	for _, c := range []*cobra.Command{mangaCmd, chaptersCmd, pagesCmd} {
		addOutputFlags(c)
		c.SetOut(os.Stdout)
	}
	mangaCmd.Flags().BoolP("open", "o", false, "Open the title's web page instead")
}

var mangaCmd = &cobra.Command{
	Use:               "manga <source> <id>",
	Short:             "Show the details of a title",
	Args:              argsOrSchema(2),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		if printSchema(cmd, &source.Title{}) {
			return
		}

		src := loadSource(args[0])
		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(src.ShareURL(args[1])))
			return
		}

		title, err := src.MangaDetails(cmd.Context(), args[1])
		handleErr(err)

		if printJSON(cmd, title) {
			return
		}
		printTitle(cmd, src, title)
	},
}

var chaptersCmd = &cobra.Command{
	Use:               "chapters <source> <manga id>",
	Short:             "List the chapters of a title",
	Args:              argsOrSchema(2),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		if printSchema(cmd, &[]*source.Chapter{}) {
			return
		}

		src := loadSource(args[0])
		chapters, err := src.Chapters(cmd.Context(), args[1])
		handleErr(err)

		if printJSON(cmd, chapters) {
			return
		}

		for _, c := range chapters {
			line := fmt.Sprintf("%s %s", style.Faint(c.ID), style.Bold(fmt.Sprintf("Ch. %g", c.Number)))
			if c.Volume > 0 {
				line += fmt.Sprintf(" Vol. %g", c.Volume)
			}
			if c.Name != "" {
				line += " " + c.Name
			}
			line += style.Faint(fmt.Sprintf(" [%s] %s", c.Language, c.Group))
			cmd.Println(line)
		}
	},
}

var pagesCmd = &cobra.Command{
	Use:               "pages <source> <manga id> <chapter id>",
	Short:             "List the page images of a chapter",
	Args:              argsOrSchema(3),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		if printSchema(cmd, &source.ChapterDetails{}) {
			return
		}

		src := loadSource(args[0])
		details, err := src.ChapterDetails(cmd.Context(), args[1], args[2])
		handleErr(err)

		if printJSON(cmd, details) {
			return
		}

		for _, page := range details.Pages {
			cmd.Println(page)
		}
	},
}
