package config

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
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.NetworkRequestsPerSecond), ShouldEqual, 3)
			So(viper.GetStringSlice(key.DefaultSources), ShouldResemble, []string{"mangadex"})
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("network.requests_per_second"), ShouldEqual, "network_requests_per_second")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.NetworkTimeout]

		Convey("Env should be prefixed with the application name", func() {
			So(field.Env(), ShouldEqual, "PAPERSRC_NETWORK_TIMEOUT")
		})

		Convey("Type should reflect the default value", func() {
			So(field.Type(), ShouldEqual, "int")
		})

		Convey("Pretty should show the key, env and default", func() {
			viper.Set(key.CliColored, false)
			pretty := field.Pretty()
			So(pretty, ShouldContainSubstring, key.NetworkTimeout)
			So(pretty, ShouldContainSubstring, "PAPERSRC_NETWORK_TIMEOUT")
			So(pretty, ShouldContainSubstring, "Default: 15")
		})
	})
}
