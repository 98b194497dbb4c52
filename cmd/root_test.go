package cmd

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"
	"github.com/theapemachine/herewego/pkg/logging"
)

func TestExecuteClosesLogOnFailure(t *testing.T) {
	Convey("Given a command that logs to a file and fails", t, func() {
		t.Setenv("HOME", t.TempDir())
		path := filepath.Join(t.TempDir(), "herewego.log")

		command := &cobra.Command{
			Use:           "failing",
			SilenceUsage:  true,
			SilenceErrors: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := logging.Init("info", path); err != nil {
					return err
				}

				return stderrors.New("index unavailable")
			},
		}
		command.SetArgs([]string{})

		err := execute(context.Background(), command)
		log.Info("after execute")

		Convey("It should log the failure and close the file", func() {
			So(err, ShouldNotBeNil)

			data, readErr := os.ReadFile(path)
			So(readErr, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "herewego failed")
			So(string(data), ShouldNotContainSubstring, "after execute")
		})
	})
}
