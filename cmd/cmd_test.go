package cmd

import (
	"context"
	"testing"

	"github.com/spf13/viper"

	"github.com/papersrc/papersrc/config"
	"github.com/papersrc/papersrc/filesystem"
	"github.com/papersrc/papersrc/key"
	"github.com/papersrc/papersrc/nhentai"
	"github.com/papersrc/papersrc/settings"
	"github.com/papersrc/papersrc/store"
	"github.com/papersrc/papersrc/where"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
	if err := config.Setup(); err != nil {
		panic(err)
	}
	viper.Set(key.CliColored, false)
}

func TestParseConfigValue(t *testing.T) {
	Convey("Given registered config fields", t, func() {
		Convey("Ints should be parsed", func() {
			v, err := parseConfigValue(config.Default[key.NetworkTimeout], []string{"30"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 30)

			_, err = parseConfigValue(config.Default[key.NetworkTimeout], []string{"soon"})
			So(err, ShouldNotBeNil)
		})

		Convey("Bools should be parsed", func() {
			v, err := parseConfigValue(config.Default[key.NetworkTLSFingerprint], []string{"true"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, true)
		})

		Convey("Lists should keep every argument", func() {
			v, err := parseConfigValue(config.Default[key.DefaultSources], []string{"mangadex", "nhentai"})
			So(err, ShouldBeNil)
			So(v, ShouldResemble, []string{"mangadex", "nhentai"})
		})

		Convey("A missing value should be rejected", func() {
			_, err := parseConfigValue(config.Default[key.LogsLevel], nil)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestErrUnknownKey(t *testing.T) {
	Convey("An unknown key should suggest the closest one", t, func() {
		err := errUnknownKey("network.timeut")
		So(err.Error(), ShouldContainSubstring, key.NetworkTimeout)
	})
}

func TestParseAssignments(t *testing.T) {
	Convey("Given the rows of a form", t, func() {
		rows := []settings.Row{
			settings.Select("languages", "Languages", []string{"en", "ja"}, nil, []string{"en"}, true, 1),
			settings.Switch("data_saver", "Data saver", false),
			settings.Stepper("amount", "Amount", 5, 1, 15, 1),
			settings.Input("extra", "Extra", "", false),
			settings.Label("info", "Info", "x"),
		}

		Convey("Assignments should be converted by row kind", func() {
			values, err := parseAssignments(rows, []string{"languages=en, ja", "data_saver=true", "amount=7", "extra=-tag:x"})
			So(err, ShouldBeNil)
			So(values.Strings("languages"), ShouldResemble, []string{"en", "ja"})
			So(values.Bool("data_saver"), ShouldBeTrue)
			So(values.Int("amount"), ShouldEqual, 7)
			So(values.String("extra"), ShouldEqual, "-tag:x")
		})

		Convey("An empty select assignment should clear the selection", func() {
			values, err := parseAssignments(rows, []string{"languages="})
			So(err, ShouldBeNil)
			So(values.Strings("languages"), ShouldBeEmpty)
		})

		Convey("Malformed, unknown and read-only rows should be rejected", func() {
			_, err := parseAssignments(rows, []string{"languages"})
			So(err, ShouldNotBeNil)

			_, err = parseAssignments(rows, []string{"missing=1"})
			So(err, ShouldNotBeNil)

			_, err = parseAssignments(rows, []string{"info=y"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestEditForm(t *testing.T) {
	Convey("Given stored nhentai settings", t, func() {
		s := store.NewMemory()
		So(s.Store(nhentai.KeyLanguages, "english"), ShouldBeNil)
		So(s.Store(nhentai.KeySortOrder, nhentai.SortPopularWeek), ShouldBeNil)

		Convey("Setting one row should keep the others", func() {
			So(editForm(context.Background(), nhentai.Settings(s), []string{"extra_args= -tag:yaoi "}), ShouldBeNil)

			language, err := nhentai.GetLanguage(s)
			So(err, ShouldBeNil)
			So(language, ShouldEqual, "english")

			order, err := nhentai.GetSortOrder(s)
			So(err, ShouldBeNil)
			So(order, ShouldEqual, nhentai.SortPopularWeek)

			extra, err := nhentai.GetExtraArgs(s)
			So(err, ShouldBeNil)
			So(extra, ShouldEqual, "-tag:yaoi")
		})
	})
}

func TestRowValue(t *testing.T) {
	Convey("Row values should be printable", t, func() {
		display := func(o string) string { return map[string]string{"en": "English", "ja": "Japanese"}[o] }
		So(rowValue(settings.Select("languages", "Languages", []string{"en", "ja"}, display, []string{"en", "ja"}, true, 1)), ShouldEqual, "English, Japanese")
		So(rowValue(settings.Input("password", "Password", "hunter2", true)), ShouldEqual, "********")
		So(rowValue(settings.Input("password", "Password", "", true)), ShouldEqual, "")
		So(rowValue(settings.Switch("data_saver", "Data saver", true)), ShouldEqual, "true")
		So(rowValue(settings.Button("reset", "Reset", nil)), ShouldEqual, "")
	})
}

func TestSourceInfos(t *testing.T) {
	Convey("Given the default sources setting", t, func() {
		viper.Set(key.DefaultSources, []string{"nhentai"})
		defer viper.Set(key.DefaultSources, config.Default[key.DefaultSources].Value)

		infos := sourceInfos()
		So(infos, ShouldHaveLength, 2)

		So(infos[0].ID, ShouldEqual, "mangadex")
		So(infos[0].Default, ShouldBeFalse)
		So(infos[0].Adult, ShouldBeFalse)

		So(infos[1].ID, ShouldEqual, "nhentai")
		So(infos[1].Default, ShouldBeTrue)
		So(infos[1].Adult, ShouldBeTrue)
		So(infos[1].Challenged, ShouldBeTrue)
	})
}

func TestEnvNames(t *testing.T) {
	Convey("Every config key should map to a prefixed variable", t, func() {
		names := envNames()
		So(names, ShouldHaveLength, len(config.Default)+1)
		So(names, ShouldContain, "PAPERSRC_NETWORK_TIMEOUT")
		So(names, ShouldContain, where.EnvConfigPath)
	})
}
