package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInit(t *testing.T) {
	Convey("Given a log file path", t, func() {
		path := filepath.Join(t.TempDir(), "herewego.log")

		Convey("When initializing at info level", func() {
			So(Init("info", path), ShouldBeNil)
			log.Info("scrape finished", "posts", 3)
			Close()

			Convey("It should write lines to the file", func() {
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "scrape finished")
				So(string(data), ShouldContainSubstring, "posts=3")
			})
		})

		Convey("When the level is not recognized", func() {
			So(Init("chatty", ""), ShouldBeNil)

			Convey("It should fall back to info", func() {
				So(log.GetLevel(), ShouldEqual, log.InfoLevel)
			})
		})
	})

	Convey("Given a path in a missing directory", t, func() {
		err := Init("info", filepath.Join(t.TempDir(), "missing", "x.log"))

		Convey("It should return an error", func() {
			So(err, ShouldNotBeNil)
		})
	})
}
