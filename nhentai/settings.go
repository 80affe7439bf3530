package nhentai

import (
	"context"
	"fmt"
	"strings"

	"github.com/papersrc/papersrc/settings"
	"github.com/papersrc/papersrc/store"
)

// Plaintext store keys.
const (
	KeyLanguages = "languages"
	KeySortOrder = "sort_order"
	KeyExtraArgs = "extra_args"
)

func GetLanguage(s store.Store) (string, error) {
	return store.GetOr(s, KeyLanguages, "")
}

func GetSortOrder(s store.Store) (string, error) {
	order, err := store.GetOr(s, KeySortOrder, DefaultSortOrder)
	if err != nil || order == "" {
		return DefaultSortOrder, err
	}
	return order, nil
}

func GetExtraArgs(s store.Store) (string, error) {
	return store.GetOr(s, KeyExtraArgs, "")
}

// Settings is the form for the search defaults.
func Settings(s store.Store) *settings.Form {
	return &settings.Form{
		ID:    "settings",
		Label: "Settings",
		Sections: func() ([]settings.Section, error) {
			language, err := GetLanguage(s)
			if err != nil {
				return nil, err
			}
			order, err := GetSortOrder(s)
			if err != nil {
				return nil, err
			}
			extra, err := GetExtraArgs(s)
			if err != nil {
				return nil, err
			}

			return []settings.Section{{
				ID: "content",
				Footer: "Extra arguments are appended to every search, e.g. -tag:\"netorare\". " +
					"A search containing s:<order> or sort:<order> overrides the sort order.",
				Rows: []settings.Row{
					settings.Select(KeyLanguages, "Language", Languages.Codes(), Languages.Name, []string{language}, false, 1),
					settings.Select(KeySortOrder, "Default Sort Order", SortOrders.Codes(), SortOrders.Name, []string{order}, false, 1),
					settings.Input(KeyExtraArgs, "Additional arguments", extra, false),
				},
			}}, nil
		},
		Submit: func(_ context.Context, values settings.Values) error {
			return settings.StoreAll(s,
				settings.Write{Key: KeyLanguages, Value: values.First(KeyLanguages)},
				settings.Write{Key: KeySortOrder, Value: values.First(KeySortOrder)},
				settings.Write{Key: KeyExtraArgs, Value: strings.TrimSpace(values.String(KeyExtraArgs))},
			)
		},
	}
}

// ResetSettings clears the search defaults.
func ResetSettings(s store.Store) settings.Row {
	return settings.Button("reset", "Reset to Default", func(context.Context) error {
		if err := settings.Clear(s, KeyLanguages, KeySortOrder, KeyExtraArgs); err != nil {
			return fmt.Errorf("reset settings: %w", err)
		}
		return nil
	})
}

// languageFilter is the search term restricting the language, or an empty phrase.
func languageFilter(language string) string {
	if language == "" {
		return `""`
	}
	return "language:" + language
}

// ComposeQuery joins the free text, language filter and extra arguments into one search string.
func ComposeQuery(title, language, extra string) string {
	return title + " " + languageFilter(language) + " " + extra
}
