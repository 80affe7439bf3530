package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/papersrc/papersrc/icon"
	"github.com/papersrc/papersrc/style"
	"github.com/papersrc/papersrc/util"
)

// updateChecker is implemented by sources that can tell which titles got new chapters.
type updateChecker interface {
	UpdatedSince(ctx context.Context, mangaIDs []string, since time.Time) ([]string, error)
}

func init() {
	rootCmd.AddCommand(updatesCmd)
	updatesCmd.SetOut(os.Stdout)

	updatesCmd.Flags().String("since", "", "Check from this date (YYYY-MM-DD)")
	updatesCmd.Flags().IntP("days", "d", 7, "Check the last n days when --since is not set")
}

var updatesCmd = &cobra.Command{
	Use:               "updates <source> <manga id...>",
	Short:             "List titles with chapters published since a date",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		src := loadSource(args[0])
		checker, ok := src.(updateChecker)
		if !ok {
			handleErr(fmt.Errorf("%s cannot check for updates", src.Name()))
		}

		since := time.Now().AddDate(0, 0, -lo.Must(cmd.Flags().GetInt("days")))
		if raw := lo.Must(cmd.Flags().GetString("since")); raw != "" {
			parsed, err := time.Parse(time.DateOnly, raw)
			handleErr(err)
			since = parsed
		}

		ids := lo.Uniq(args[1:])
		updated, err := checker.UpdatedSince(cmd.Context(), ids, since)
		handleErr(err)

		for _, id := range ids {
			if lo.Contains(updated, id) {
				cmd.Printf("%s %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), id)
			} else {
				cmd.Printf("%s %s\n", style.Faint("-"), style.Faint(id))
			}
		}
		cmd.Println(style.Faint(util.Quantify(len(updated), "title", "titles") + " updated"))
	},
}
