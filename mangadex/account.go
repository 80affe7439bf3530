package mangadex

import (
	"context"

	"github.com/samber/lo"

	"github.com/papersrc/papersrc/auth"
	"github.com/papersrc/papersrc/settings"
)

// AccountSettings is the login form when signed out and the session info form otherwise.
func AccountSettings(manager *auth.Manager) (settings.Row, error) {
	current, err := manager.Session()
	if err != nil {
		return settings.Row{}, err
	}

	if current.IsAbsent() {
		return settings.Navigation(loginForm(manager)), nil
	}

	return settings.Navigation(sessionForm(manager)), nil
}

func loginForm(manager *auth.Manager) *settings.Form {
	return &settings.Form{
		ID:    "login_button",
		Label: "Login",
		Sections: settings.Static(
			settings.Section{
				ID:     "username_section",
				Header: "Username",
				Footer: "Enter your MangaDex account username",
				Rows:   []settings.Row{settings.Input("username", "Username", "", false)},
			},
			settings.Section{
				ID:     "password_section",
				Header: "Password",
				Footer: "Enter the password associated with your MangaDex account Username",
				Rows:   []settings.Row{settings.Input("password", "Password", "", true)},
			},
		),
		Submit: func(ctx context.Context, values settings.Values) error {
			_, err := manager.Login(ctx, values.String("username"), values.String("password"))
			return err
		},
	}
}

func sessionForm(manager *auth.Manager) *settings.Form {
	return &settings.Form{
		ID:    "account_settings",
		Label: "Session Info",
		Sections: func() ([]settings.Section, error) {
			current, err := manager.Session()
			if err != nil {
				return nil, err
			}

			session, ok := current.Get()
			if !ok {
				return []settings.Section{{
					ID:   "not_logged_in_section",
					Rows: []settings.Row{settings.Label("not_logged_in", "Not Logged In", "")},
				}}, nil
			}

			claims := lo.Map(session.Introspect(), func(c auth.Claim, _ int) settings.Row {
				return settings.MultilineLabel(c.Key, c.Key, c.Value)
			})

			return []settings.Section{
				{ID: "introspect", Rows: claims},
				{
					ID: "refresh_button_section",
					Rows: []settings.Row{
						settings.Button("refresh_token_button", "Refresh Token", func(ctx context.Context) error {
							_, err := manager.Refresh(ctx)
							return err
						}),
						settings.Button("logout_button", "Logout", manager.Logout),
					},
				},
			}, nil
		},
		Submit: func(context.Context, settings.Values) error { return nil },
	}
}
