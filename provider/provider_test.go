package provider

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"

	"github.com/papersrc/papersrc/config"
	"github.com/papersrc/papersrc/filesystem"
	"github.com/papersrc/papersrc/key"
	"github.com/papersrc/papersrc/mangadex"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
	keyring.MockInit()
	must(config.Setup())
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func TestGet(t *testing.T) {
	Convey("When trying to get an invalid provider", t, func() {
		_, ok := Get("kek")
		Convey("Then ok should be false", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("When getting a built-in provider by id or name", t, func() {
		byID, ok := Get("mangadex")
		So(ok, ShouldBeTrue)
		byName, ok := Get("MangaDex")
		So(ok, ShouldBeTrue)
		So(byID.ID, ShouldEqual, byName.ID)
		So(byName.Name, ShouldEqual, "MangaDex")
	})
}

func TestDefaults(t *testing.T) {
	Convey("Given sources.default with an unknown entry", t, func() {
		viper.Set(key.DefaultSources, []string{"nhentai", "nope", "mangadex"})
		defer viper.Set(key.DefaultSources, []string{"mangadex"})

		Convey("Defaults should keep the known providers in order", func() {
			defaults := Defaults()
			So(defaults, ShouldHaveLength, 2)
			So(defaults[0].ID, ShouldEqual, "nhentai")
			So(defaults[1].ID, ShouldEqual, "mangadex")
		})
	})
}

func TestCreateSource(t *testing.T) {
	Convey("Every built-in provider should create its source", t, func() {
		for _, p := range Builtins() {
			src, err := p.CreateSource()
			So(err, ShouldBeNil)
			So(src.ID(), ShouldEqual, p.ID)
		}
	})

	Convey("Settings should persist between sources of the same provider", t, func() {
		So(Settings(mangadex.ID).Store(mangadex.KeyDataSaver, true), ShouldBeNil)

		saver, err := mangadex.GetDataSaver(Settings(mangadex.ID))
		So(err, ShouldBeNil)
		So(saver, ShouldBeTrue)
	})

	Convey("Secrets should be namespaced per provider", t, func() {
		So(Secrets("mangadex").Store("access_token", "a"), ShouldBeNil)

		other, err := Secrets("nhentai").Retrieve("access_token")
		So(err, ShouldBeNil)
		So(other.IsAbsent(), ShouldBeTrue)
	})
}
