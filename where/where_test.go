package where

import (
	"path/filepath"
	"testing"

	"github.com/papersrc/papersrc/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			So(lo.Must(filesystem.API().IsDir(Cache())), ShouldBeTrue)
		})

		Convey("Logs()", func() {
			So(lo.Must(filesystem.API().IsDir(Logs())), ShouldBeTrue)
		})

		Convey("State() should be a json file inside the state directory", func() {
			path := State("nhentai")
			So(filepath.Base(path), ShouldEqual, "nhentai.json")
			So(lo.Must(filesystem.API().IsDir(filepath.Dir(path))), ShouldBeTrue)
		})
	})
}
