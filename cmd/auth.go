package cmd

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/papersrc/papersrc/auth"
	"github.com/papersrc/papersrc/icon"
	"github.com/papersrc/papersrc/source"
	"github.com/papersrc/papersrc/style"
)

// authenticated is implemented by sources with an account.
type authenticated interface {
	Auth() *auth.Manager
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authLogoutCmd, authRefreshCmd, authSessionCmd)

	authLoginCmd.Flags().StringP("username", "u", "", "Account username")
	authLoginCmd.Flags().StringP("password", "p", "", "Account password, prompted for when omitted")

	authSessionCmd.SetOut(os.Stdout)
	authSessionCmd.Flags().Bool("tokens", false, "Also print the raw tokens")
}

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the account session of a source",
}

func authManager(name string) (source.Source, *auth.Manager) {
	src := loadSource(name)
	a, ok := src.(authenticated)
	if !ok {
		handleErr(fmt.Errorf("%s has no accounts", src.Name()))
	}
	return src, a.Auth()
}

var authLoginCmd = &cobra.Command{
	Use:               "login <source>",
	Short:             "Log in and store the session in the keyring",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		src, manager := authManager(args[0])

		username := lo.Must(cmd.Flags().GetString("username"))
		password := lo.Must(cmd.Flags().GetString("password"))

		if username == "" {
			handleErr(survey.AskOne(&survey.Input{Message: "Username"}, &username))
		}
		if password == "" {
			handleErr(survey.AskOne(&survey.Password{Message: "Password"}, &password))
		}

		session, err := manager.Login(cmd.Context(), username, password)
		handleErr(err)

		fmt.Printf("%s logged in to %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Unlock)), src.Name())
		if claims := session.Introspect(); len(claims) > 0 {
			printClaims(cmd, claims)
		}
	},
}

var authLogoutCmd = &cobra.Command{
	Use:               "logout <source>",
	Short:             "End the session and clear the stored tokens",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		src, manager := authManager(args[0])
		handleErr(manager.Logout(cmd.Context()))
		fmt.Printf("%s logged out of %s\n", style.Fg(style.SuccessColor)(icon.Get(icon.Lock)), src.Name())
	},
}

var authRefreshCmd = &cobra.Command{
	Use:               "refresh <source>",
	Short:             "Trade the refresh token for a new session",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		src, manager := authManager(args[0])
		_, err := manager.Refresh(cmd.Context())
		handleErr(err)
		fmt.Printf("%s refreshed %s session\n", style.Fg(style.SuccessColor)(icon.Get(icon.Success)), src.Name())
	},
}

var authSessionCmd = &cobra.Command{
	Use:               "session <source>",
	Short:             "Print the claims of the stored session",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionSources,
	Run: func(cmd *cobra.Command, args []string) {
		src, manager := authManager(args[0])

		current, err := manager.Session()
		handleErr(err)

		session, ok := current.Get()
		if !ok {
			cmd.Printf("%s not logged in to %s\n", style.Faint(icon.Get(icon.Lock)), src.Name())
			return
		}

		printClaims(cmd, session.Introspect())
		if lo.Must(cmd.Flags().GetBool("tokens")) {
			cmd.Printf("%s %s\n", style.Fg(style.SecondaryColor)("access:"), session.AccessToken)
			cmd.Printf("%s %s\n", style.Fg(style.SecondaryColor)("refresh:"), session.RefreshToken.OrEmpty())
		}
	},
}

func printClaims(cmd *cobra.Command, claims []auth.Claim) {
	for _, claim := range claims {
		cmd.Printf("%s %s\n", style.Fg(style.SecondaryColor)(claim.Key+":"), claim.Value)
	}
}
