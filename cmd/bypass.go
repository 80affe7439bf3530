package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/papersrc/papersrc/icon"
	"github.com/papersrc/papersrc/key"
	"github.com/papersrc/papersrc/network"
	"github.com/papersrc/papersrc/open"
	"github.com/papersrc/papersrc/provider"
	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/style"
)

func init() {
	rootCmd.AddCommand(bypassCmd)
	bypassCmd.SetOut(os.Stdout)
	bypassCmd.Flags().Bool("print", false, "Only print the request without sending it")
	bypassCmd.Flags().BoolP("open", "o", false, "Open the challenge page in the browser when it is not cleared")
}

var bypassCmd = &cobra.Command{
	Use:               "bypass <source>",
	Short:             "Check whether a source's anti-bot challenge is cleared",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		src := loadSource(args[0])
		challenged, ok := src.(source.Challenged)
		if !ok {
			cmd.Printf("%s %s has no challenge\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), src.Name())
			return
		}

		request := challenged.BypassRequest()
		cmd.Printf("%s %s\n", request.Method, request.URL)
		for name, value := range request.Headers {
			cmd.Printf("%s %s\n", style.Faint(name+":"), value)
		}

		if cmd.Flags().Changed("print") {
			return
		}

		// the request carries its own headers
		executor := provider.Executor(network.Chain{})
		resp, err := executor.Schedule(cmd.Context(), request, 0)
		handleErr(err)

		if resp.Status < http.StatusBadRequest && !network.LooksLikeChallenge(resp) {
			cmd.Printf("%s %s answered %d\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), src.Name(), resp.Status)
			return
		}

		cmd.Printf("%s %s is still behind a challenge (%d)\n", style.Fg(style.WarningColor)(icon.Get(icon.Challenge)), src.Name(), resp.Status)
		if lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(request.URL))
			return
		}
		fmt.Println(style.Faint(fmt.Sprintf("try again with %s=true or clear it in a browser with --open", key.NetworkTLSFingerprint)))
	},
}
