package query

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/papersrc/papersrc/filesystem"
	"github.com/papersrc/papersrc/key"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		So(Forget("mangadex"), ShouldBeNil)
		So(Forget("nhentai"), ShouldBeNil)

		Convey("When remembering queries", func() {
			So(Remember("mangadex", "Naruto", 1), ShouldBeNil)
			So(Remember("mangadex", "naruto shippuden", 10), ShouldBeNil)
			So(Remember("nhentai", "naruto", 1), ShouldBeNil)

			Convey("Then suggestions should be sorted by rank", func() {
				So(SuggestMany("mangadex", "nar"), ShouldResemble, []string{"naruto shippuden", "naruto"})
				So(Suggest("mangadex", "nar").MustGet(), ShouldEqual, "naruto shippuden")
			})

			Convey("Then repeating a query should raise its rank", func() {
				So(Remember("mangadex", " NARUTO ", 20), ShouldBeNil)
				So(Suggest("mangadex", "nar").MustGet(), ShouldEqual, "naruto")
			})

			Convey("Then other sources should keep their own history", func() {
				So(SuggestMany("nhentai", "nar"), ShouldResemble, []string{"naruto"})
			})

			Convey("Then forgetting should clear one source only", func() {
				So(Forget("mangadex"), ShouldBeNil)
				So(SuggestMany("mangadex", "nar"), ShouldBeEmpty)
				So(SuggestMany("nhentai", "nar"), ShouldHaveLength, 1)
			})
		})

		Convey("When suggestions are disabled", func() {
			So(Remember("mangadex", "bleach", 1), ShouldBeNil)
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)

			So(Suggest("mangadex", "ble").IsAbsent(), ShouldBeTrue)
		})
	})
}
