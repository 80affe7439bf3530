package mangadex

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/papersrc/papersrc/settings"
	"github.com/papersrc/papersrc/store"
	"github.com/papersrc/papersrc/util"
)

// Plaintext store keys.
const (
	KeyLanguages               = "languages"
	KeyRatings                 = "ratings"
	KeyDataSaver               = "data_saver"
	KeySkipSameChapter         = "skip_same_chapter"
	KeyDaysToLookBack          = "days_to_look_back"
	KeyHomepageThumbnail       = "homepage_thumbnail"
	KeySearchThumbnail         = "search_thumbnail"
	KeyMangaThumbnail          = "manga_thumbnail"
	KeyEnabledHomepageSections = "enabled_homepage_sections"
	KeyEnabledRecommendations  = "enabled_recommendations"
	KeyAmountRecommendations   = "amount_of_recommendations"
	KeyRecommendedIDs          = "recommendedIds"
)

// Bounds of amount_of_recommendations.
const (
	MinRecommendations     = 1
	MaxRecommendations     = 15
	DefaultRecommendations = 5
)

// EffectiveSettings is every setting resolved against its default.
type EffectiveSettings struct {
	Languages              []string
	Ratings                []string
	DataSaver              bool
	SkipSameChapter        bool
	DaysToLookBack         float64
	HomepageThumbnail      string
	SearchThumbnail        string
	MangaThumbnail         string
	EnabledHomeSections    []string
	RecommendationsEnabled bool
	RecommendationCount    int
}

func nonEmpty(s store.Store, key string, fallback []string) ([]string, error) {
	values, err := store.GetOr(s, key, fallback)
	if err != nil {
		return fallback, err
	}
	if len(values) == 0 {
		return fallback, nil
	}
	return values, nil
}

func GetLanguages(s store.Store) ([]string, error) {
	return nonEmpty(s, KeyLanguages, DefaultLanguages)
}

func GetRatings(s store.Store) ([]string, error) {
	return nonEmpty(s, KeyRatings, DefaultRatings)
}

func GetDataSaver(s store.Store) (bool, error) {
	return store.GetOr(s, KeyDataSaver, false)
}

func GetSkipSameChapter(s store.Store) (bool, error) {
	return store.GetOr(s, KeySkipSameChapter, false)
}

// GetDaysToLookBack parses the stored input field, flooring at zero.
// The field is typed text, so both strings and numbers are accepted.
func GetDaysToLookBack(s store.Store) (float64, error) {
	raw, err := store.Get[any](s, KeyDaysToLookBack)
	if err != nil {
		return 0, err
	}

	var days float64
	switch value := raw.OrEmpty().(type) {
	case string:
		days = settings.ParseNumber(value)
	case float64:
		days = value
	}
	return util.Max(days, 0), nil
}

func GetHomepageThumbnail(s store.Store) (string, error) {
	return store.GetOr(s, KeyHomepageThumbnail, DefaultImageQuality("homepage"))
}

func GetSearchThumbnail(s store.Store) (string, error) {
	return store.GetOr(s, KeySearchThumbnail, DefaultImageQuality("search"))
}

func GetMangaThumbnail(s store.Store) (string, error) {
	return store.GetOr(s, KeyMangaThumbnail, DefaultImageQuality("manga"))
}

// GetEnabledHomePageSections falls back to the default when nothing is selected.
func GetEnabledHomePageSections(s store.Store) ([]string, error) {
	return nonEmpty(s, KeyEnabledHomepageSections, DefaultHomepageSections)
}

func GetEnabledRecommendations(s store.Store) (bool, error) {
	return store.GetOr(s, KeyEnabledRecommendations, false)
}

func GetAmountRecommendations(s store.Store) (int, error) {
	amount, err := store.GetOr(s, KeyAmountRecommendations, DefaultRecommendations)
	if err != nil {
		return DefaultRecommendations, err
	}
	return util.Clamp(amount, MinRecommendations, MaxRecommendations), nil
}

// Resolve reads every setting. The first store error aborts.
func Resolve(s store.Store) (*EffectiveSettings, error) {
	var (
		e   EffectiveSettings
		err error
	)

	steps := []func() error{
		func() error { e.Languages, err = GetLanguages(s); return err },
		func() error { e.Ratings, err = GetRatings(s); return err },
		func() error { e.DataSaver, err = GetDataSaver(s); return err },
		func() error { e.SkipSameChapter, err = GetSkipSameChapter(s); return err },
		func() error { e.DaysToLookBack, err = GetDaysToLookBack(s); return err },
		func() error { e.HomepageThumbnail, err = GetHomepageThumbnail(s); return err },
		func() error { e.SearchThumbnail, err = GetSearchThumbnail(s); return err },
		func() error { e.MangaThumbnail, err = GetMangaThumbnail(s); return err },
		func() error { e.EnabledHomeSections, err = GetEnabledHomePageSections(s); return err },
		func() error { e.RecommendationsEnabled, err = GetEnabledRecommendations(s); return err },
		func() error { e.RecommendationCount, err = GetAmountRecommendations(s); return err },
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

// ContentSettings is the form for languages, ratings and chapter filtering.
func ContentSettings(s store.Store) *settings.Form {
	return &settings.Form{
		ID:    "content_settings",
		Label: "Content Settings",
		Sections: func() ([]settings.Section, error) {
			e, err := Resolve(s)
			if err != nil {
				return nil, err
			}

			return []settings.Section{{
				ID:     "content",
				Footer: "When enabled, same chapters from different scanlation group will not be shown.",
				Rows: []settings.Row{
					settings.Select(KeyLanguages, "Languages", Languages.Codes(), Languages.Name, e.Languages, true, 1),
					settings.Select(KeyRatings, "Content Rating", Ratings.Codes(), Ratings.Name, e.Ratings, true, 1),
					settings.Input(KeyDaysToLookBack, "Days to look back during update", strconv.FormatFloat(e.DaysToLookBack, 'f', -1, 64), false),
					settings.Switch(KeyDataSaver, "Data Saver", e.DataSaver),
					settings.Switch(KeySkipSameChapter, "Skip Same Chapter", e.SkipSameChapter),
				},
			}}, nil
		},
		Submit: func(_ context.Context, values settings.Values) error {
			return settings.StoreAll(s,
				settings.Write{Key: KeyLanguages, Value: values.Strings(KeyLanguages)},
				settings.Write{Key: KeyRatings, Value: values.Strings(KeyRatings)},
				settings.Write{Key: KeyDataSaver, Value: values.Bool(KeyDataSaver)},
				settings.Write{Key: KeySkipSameChapter, Value: values.Bool(KeySkipSameChapter)},
				settings.Write{Key: KeyDaysToLookBack, Value: values.String(KeyDaysToLookBack)},
			)
		},
	}
}

// ThumbnailSettings is the form for cover sizes per context.
func ThumbnailSettings(s store.Store) *settings.Form {
	return &settings.Form{
		ID:    "thumbnail_settings",
		Label: "Thumbnail Quality",
		Sections: func() ([]settings.Section, error) {
			e, err := Resolve(s)
			if err != nil {
				return nil, err
			}

			quality := func(id, label, value string) settings.Row {
				return settings.Select(id, label, ImageQualities.Codes(), ImageQualities.Name, []string{value}, false, 1)
			}

			return []settings.Section{{
				ID: "thumbnail",
				Rows: []settings.Row{
					quality(KeyHomepageThumbnail, "Homepage Thumbnail", e.HomepageThumbnail),
					quality(KeySearchThumbnail, "Search Thumbnail", e.SearchThumbnail),
					quality(KeyMangaThumbnail, "Manga Thumbnail", e.MangaThumbnail),
				},
			}}, nil
		},
		Submit: func(_ context.Context, values settings.Values) error {
			return settings.StoreAll(s,
				settings.Write{Key: KeyHomepageThumbnail, Value: values.First(KeyHomepageThumbnail)},
				settings.Write{Key: KeySearchThumbnail, Value: values.First(KeySearchThumbnail)},
				settings.Write{Key: KeyMangaThumbnail, Value: values.First(KeyMangaThumbnail)},
			)
		},
	}
}

// HomepageSettings is the form for home sections and recommendations.
// Submitting truncates the recommended ids to the new amount.
func HomepageSettings(s store.Store) *settings.Form {
	return &settings.Form{
		ID:    "homepage_settings",
		Label: "Homepage Settings",
		Sections: func() ([]settings.Section, error) {
			e, err := Resolve(s)
			if err != nil {
				return nil, err
			}

			return []settings.Section{
				{
					ID: "homepage_sections_section",
					Rows: []settings.Row{
						settings.Select(KeyEnabledHomepageSections, "Homepage sections", HomepageSections.Codes(), HomepageSections.Name, e.EnabledHomeSections, true, 0),
					},
				},
				{
					ID:     "recommendations_settings_section",
					Header: "Titles recommendations",
					Footer: "Recommendation are based on recently read chapters and shown on the homepage",
					Rows: []settings.Row{
						settings.Switch(KeyEnabledRecommendations, "Enable recommendations", e.RecommendationsEnabled),
						settings.Stepper(KeyAmountRecommendations, "Amount of recommendation", float64(e.RecommendationCount), MinRecommendations, MaxRecommendations, 1),
						settings.Button("reset_recommended_ids", "Reset recommended titles", func(context.Context) error {
							return s.Store(KeyRecommendedIDs, nil)
						}),
					},
				},
			}, nil
		},
		Submit: func(_ context.Context, values settings.Values) error {
			amount := util.Clamp(values.Int(KeyAmountRecommendations), MinRecommendations, MaxRecommendations)
			err := settings.StoreAll(s,
				settings.Write{Key: KeyEnabledHomepageSections, Value: values.Strings(KeyEnabledHomepageSections)},
				settings.Write{Key: KeyEnabledRecommendations, Value: values.Bool(KeyEnabledRecommendations)},
				settings.Write{Key: KeyAmountRecommendations, Value: amount},
			)
			return errors.Join(err, SliceRecommendedIDs(s, amount))
		},
	}
}

// ResetKeys are cleared by the reset button.
var ResetKeys = []string{
	KeyLanguages,
	KeyRatings,
	KeyDataSaver,
	KeySkipSameChapter,
	KeyDaysToLookBack,
	KeyHomepageThumbnail,
	KeySearchThumbnail,
	KeyMangaThumbnail,
	KeyRecommendedIDs,
	KeyEnabledHomepageSections,
	KeyEnabledRecommendations,
	KeyAmountRecommendations,
}

// ResetSettings restores every setting to its default.
func ResetSettings(s store.Store) settings.Row {
	return settings.Button("reset", "Reset to Default", func(context.Context) error {
		if err := settings.Clear(s, ResetKeys...); err != nil {
			return fmt.Errorf("reset settings: %w", err)
		}
		return nil
	})
}
