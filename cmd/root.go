/*
Package cmd implements the herewego command line: the entity digest on the
root command, the feed scraper, and the HTTP and MCP servers.
*/
package cmd

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/herewego/pkg/logging"
)

/*
Embed a mini filesystem into the binary to hold the default config file.
This will be written to the home directory of the user running the service,
which allows a developer to easily override the config file.
*/
//go:embed cfg/*
var embedded embed.FS

var (
	projectName = "herewego"
	version     = "0.1.0"
	cfgFile     string
	notifyFlag  bool

	rootCmd = &cobra.Command{
		Use:           "herewego [entity...]",
		Short:         "Summarize the latest transfer news about a football figure",
		Long:          longRoot,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var notifier Notifier

			if notifyFlag {
				notifier = newNotifier()
			}

			return runDigest(cmd.Context(), args, cmd.OutOrStdout(), newPipeline, notifier)
		},
	}
)

/*
Execute runs the root command until it finishes or the process is
interrupted.
*/
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, rootCmd)
}

// execute closes the log file on every exit path, including a failed RunE.
func execute(ctx context.Context, command *cobra.Command) error {
	defer logging.Close()

	err := command.ExecuteContext(ctx)

	if err != nil && !errors.Is(err, errNoEntity) {
		log.Error("herewego failed", "error", err)
	}

	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yml",
		"config file (default is $HOME/."+projectName+"/config.yml)",
	)

	rootCmd.Flags().BoolVar(&notifyFlag, "notify", false, "Also post the digest to the configured Slack channel")
}

/*
initConfig loads .env, writes the default config file to the user's home
directory if it doesn't exist, reads it, and sets up logging.
*/
func initConfig() {
	var err error

	if err = godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("could not load .env", "error", err)
	}

	if err = writeConfig(); err != nil {
		log.Fatal("failed to write config", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(configDir())

	if err = viper.ReadInConfig(); err != nil {
		log.Fatal("failed to read config", "error", err)
	}

	if err = logging.Init(viper.GetString("log.level"), viper.GetString("log.file")); err != nil {
		log.Fatal("failed to initialize logging", "error", err)
	}
}

func configDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "."+projectName)
}

/*
writeConfig writes the default config file to the user's home directory.
*/
func writeConfig() (err error) {
	var (
		fh  fs.File
		buf bytes.Buffer
		dir = configDir()
	)

	if !CheckFileExists(dir) {
		if err = os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	fullPath := filepath.Join(dir, cfgFile)

	if CheckFileExists(fullPath) {
		return nil
	}

	if fh, err = embedded.Open("cfg/config.yml"); err != nil {
		return fmt.Errorf("failed to open embedded config file: %w", err)
	}

	defer fh.Close()

	if _, err = io.Copy(&buf, fh); err != nil {
		return fmt.Errorf("failed to read embedded config file: %w", err)
	}

	if err = os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Info("wrote config file", "path", fullPath)
	return nil
}

func CheckFileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !errors.Is(err, os.ErrNotExist)
}

var longRoot = `
herewego looks up the latest posts about a football player, manager or club
in a semantic index of scraped transfer news, then asks a language model for
a short bullet summary and a dated timeline. The answer is printed as JSON.

Examples:
  # Digest everything known about a player.
  herewego Kylian Mbappe

  # Same, and post the digest to Slack.
  herewego --notify Erik ten Hag
`
