package log

import (
	"testing"

	"github.com/papersrc/papersrc/filesystem"
	"github.com/papersrc/papersrc/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup should succeed and entries should go nowhere", func() {
			So(Setup(), ShouldBeNil)
			So(enabled, ShouldBeFalse)
			So(func() { WithFields(Fields{"source": "test"}).Info("hidden") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		Convey("Setup should create the log file", func() {
			So(Setup(), ShouldBeNil)
			So(enabled, ShouldBeTrue)
			Info("written")
		})
	})
}
