package mangadex

import (
	"context"
	"errors"
	"testing"

	"github.com/papersrc/papersrc/settings"
	"github.com/papersrc/papersrc/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaults(t *testing.T) {
	Convey("Given an empty store", t, func() {
		s := store.NewMemory()

		Convey("Resolve should return every default", func() {
			e, err := Resolve(s)
			So(err, ShouldBeNil)
			So(e.Languages, ShouldResemble, []string{"en"})
			So(e.Ratings, ShouldResemble, []string{"safe", "suggestive"})
			So(e.DataSaver, ShouldBeFalse)
			So(e.SkipSameChapter, ShouldBeFalse)
			So(e.DaysToLookBack, ShouldEqual, 0)
			So(e.HomepageThumbnail, ShouldEqual, "256")
			So(e.SearchThumbnail, ShouldEqual, "512")
			So(e.MangaThumbnail, ShouldEqual, "source")
			So(e.EnabledHomeSections, ShouldResemble, DefaultHomepageSections)
			So(e.RecommendationsEnabled, ShouldBeFalse)
			So(e.RecommendationCount, ShouldEqual, 5)
		})

		Convey("Empty lists should resolve to their defaults", func() {
			So(s.Store(KeyLanguages, []string{}), ShouldBeNil)
			So(s.Store(KeyEnabledHomepageSections, []string{}), ShouldBeNil)

			languages, err := GetLanguages(s)
			So(err, ShouldBeNil)
			So(languages, ShouldResemble, DefaultLanguages)

			sections, err := GetEnabledHomePageSections(s)
			So(err, ShouldBeNil)
			So(sections, ShouldResemble, DefaultHomepageSections)
		})

		Convey("A value of the wrong shape should be an error", func() {
			So(s.Store(KeyDataSaver, "yes"), ShouldBeNil)
			_, err := Resolve(s)
			So(errors.Is(err, store.ErrDecode), ShouldBeTrue)
		})
	})
}

func TestDaysToLookBack(t *testing.T) {
	Convey("days_to_look_back", t, func() {
		s := store.NewMemory()

		for input, expected := range map[string]float64{
			"-5":  0,
			"3.7": 3.7,
			"abc": 0,
			"":    0,
			"10":  10,
		} {
			So(s.Store(KeyDaysToLookBack, input), ShouldBeNil)
			days, err := GetDaysToLookBack(s)
			So(err, ShouldBeNil)
			So(days, ShouldEqual, expected)
		}

		Convey("A stored number should be accepted too", func() {
			So(s.Store(KeyDaysToLookBack, 2), ShouldBeNil)
			days, err := GetDaysToLookBack(s)
			So(err, ShouldBeNil)
			So(days, ShouldEqual, 2)
		})
	})
}

func TestAmountRecommendations(t *testing.T) {
	Convey("amount_of_recommendations should be clamped", t, func() {
		s := store.NewMemory()

		So(s.Store(KeyAmountRecommendations, 40), ShouldBeNil)
		amount, err := GetAmountRecommendations(s)
		So(err, ShouldBeNil)
		So(amount, ShouldEqual, MaxRecommendations)

		So(s.Store(KeyAmountRecommendations, 0), ShouldBeNil)
		amount, err = GetAmountRecommendations(s)
		So(err, ShouldBeNil)
		So(amount, ShouldEqual, MinRecommendations)
	})
}

func TestForms(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		s := store.NewMemory()

		Convey("Submitting the content form should round-trip through Resolve", func() {
			err := ContentSettings(s).Apply(ctx, settings.Values{
				KeyLanguages:       []string{"fr", "de"},
				KeyRatings:         []string{"safe"},
				KeyDaysToLookBack:  "3.7",
				KeyDataSaver:       true,
				KeySkipSameChapter: true,
			})
			So(err, ShouldBeNil)

			e, err := Resolve(s)
			So(err, ShouldBeNil)
			So(e.Languages, ShouldResemble, []string{"fr", "de"})
			So(e.Ratings, ShouldResemble, []string{"safe"})
			So(e.DaysToLookBack, ShouldEqual, 3.7)
			So(e.DataSaver, ShouldBeTrue)
			So(e.SkipSameChapter, ShouldBeTrue)

			Convey("And the form should show the stored values", func() {
				sections, err := ContentSettings(s).Sections()
				So(err, ShouldBeNil)
				So(sections[0].Rows[0].Value, ShouldResemble, []string{"fr", "de"})
				So(sections[0].Rows[2].Value, ShouldEqual, "3.7")
			})
		})

		Convey("The content form should reject an empty language selection", func() {
			err := ContentSettings(s).Apply(ctx, settings.Values{KeyLanguages: []string{}})
			So(err, ShouldNotBeNil)
		})

		Convey("Submitting the thumbnail form should store single selections", func() {
			err := ThumbnailSettings(s).Apply(ctx, settings.Values{
				KeyHomepageThumbnail: []string{"source"},
				KeySearchThumbnail:   []string{"256"},
				KeyMangaThumbnail:    []string{"512"},
			})
			So(err, ShouldBeNil)

			e, err := Resolve(s)
			So(err, ShouldBeNil)
			So(e.HomepageThumbnail, ShouldEqual, "source")
			So(e.SearchThumbnail, ShouldEqual, "256")
			So(e.MangaThumbnail, ShouldEqual, "512")
		})

		Convey("Lowering the amount of recommendations should truncate the recommended ids", func() {
			ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
			So(s.Store(KeyRecommendedIDs, ids), ShouldBeNil)
			So(s.Store(KeyAmountRecommendations, 10), ShouldBeNil)

			err := HomepageSettings(s).Apply(ctx, settings.Values{
				KeyEnabledHomepageSections: []string{SectionPopular},
				KeyEnabledRecommendations:  true,
				KeyAmountRecommendations:   3.0,
			})
			So(err, ShouldBeNil)

			stored, err := GetRecommendedIDs(s)
			So(err, ShouldBeNil)
			So(stored, ShouldResemble, []string{"a", "b", "c"})

			amount, err := GetAmountRecommendations(s)
			So(err, ShouldBeNil)
			So(amount, ShouldEqual, 3)
		})

		Convey("Submitting a single field should leave the other fields alone", func() {
			So(s.Store(KeyAmountRecommendations, 10), ShouldBeNil)
			So(s.Store(KeyRecommendedIDs, []string{"a", "b", "c", "d"}), ShouldBeNil)
			So(s.Store(KeyLanguages, []string{"fr"}), ShouldBeNil)

			So(ThumbnailSettings(s).Apply(ctx, settings.Values{KeySearchThumbnail: []string{"256"}}), ShouldBeNil)
			So(HomepageSettings(s).Apply(ctx, settings.Values{KeyEnabledRecommendations: true}), ShouldBeNil)
			So(ContentSettings(s).Apply(ctx, settings.Values{KeyDataSaver: true}), ShouldBeNil)

			e, err := Resolve(s)
			So(err, ShouldBeNil)
			So(e.HomepageThumbnail, ShouldEqual, "256")
			So(e.SearchThumbnail, ShouldEqual, "256")
			So(e.MangaThumbnail, ShouldEqual, "source")
			So(e.RecommendationsEnabled, ShouldBeTrue)
			So(e.RecommendationCount, ShouldEqual, 10)
			So(e.Languages, ShouldResemble, []string{"fr"})
			So(e.DataSaver, ShouldBeTrue)

			ids, err := GetRecommendedIDs(s)
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []string{"a", "b", "c", "d"})
		})

		Convey("The homepage form should reject an out of range amount", func() {
			err := HomepageSettings(s).Apply(ctx, settings.Values{KeyAmountRecommendations: 16.0})
			So(err, ShouldNotBeNil)
		})

		Convey("Reset should restore every default", func() {
			So(s.Store(KeyLanguages, []string{"fr"}), ShouldBeNil)
			So(s.Store(KeyDataSaver, true), ShouldBeNil)
			So(s.Store(KeyRecommendedIDs, []string{"a"}), ShouldBeNil)

			reset := ResetSettings(s)
			So(reset.Tap(ctx), ShouldBeNil)

			e, err := Resolve(s)
			So(err, ShouldBeNil)
			So(e.Languages, ShouldResemble, DefaultLanguages)
			So(e.DataSaver, ShouldBeFalse)

			ids, err := GetRecommendedIDs(s)
			So(err, ShouldBeNil)
			So(ids, ShouldBeEmpty)
			So(s.Keys(), ShouldBeEmpty)
		})
	})
}

func TestRecommendedIDs(t *testing.T) {
	Convey("Given recommendations enabled with an amount of 3", t, func() {
		s := store.NewMemory()
		So(s.Store(KeyEnabledRecommendations, true), ShouldBeNil)
		So(s.Store(KeyAmountRecommendations, 3), ShouldBeNil)

		Convey("AddRecommendedID should keep the newest ids first without duplicates", func() {
			for _, id := range []string{"a", "b", "c", "a", "d"} {
				So(AddRecommendedID(s, id), ShouldBeNil)
			}

			ids, err := GetRecommendedIDs(s)
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []string{"d", "a", "c"})
		})

		Convey("Nothing should be recorded once recommendations are disabled", func() {
			So(s.Store(KeyEnabledRecommendations, false), ShouldBeNil)
			So(AddRecommendedID(s, "a"), ShouldBeNil)

			ids, err := GetRecommendedIDs(s)
			So(err, ShouldBeNil)
			So(ids, ShouldBeEmpty)
		})

		Convey("SliceRecommendedIDs should leave shorter lists alone", func() {
			So(s.Store(KeyRecommendedIDs, []string{"a"}), ShouldBeNil)
			So(SliceRecommendedIDs(s, 3), ShouldBeNil)

			ids, err := GetRecommendedIDs(s)
			So(err, ShouldBeNil)
			So(ids, ShouldResemble, []string{"a"})
		})
	})
}
