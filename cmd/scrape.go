package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/herewego/pkg/feed"
)

var (
	stopDateFlag     string
	stopTextFlag     string
	noCheckpointFlag bool

	scrapeCmd = &cobra.Command{
		Use:   "scrape",
		Short: "Collect new posts from the feed",
		Long:  longScrape,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()

			scraper := feed.NewScraper(
				feed.LaunchRod(v.GetBool("feed.headless")),
				feed.ConfirmFromReader(os.Stdin, os.Stderr),
				feed.WithOptions(scrapeOptions()),
			)

			var publisher postPublisher

			if brokers := v.GetStringSlice("kafka.brokers"); len(brokers) > 0 {
				kafkaPublisher := feed.NewPublisher(brokers, v.GetString("kafka.topic"))
				defer kafkaPublisher.Close()
				publisher = kafkaPublisher
			}

			checkpoint := ""

			if !noCheckpointFlag {
				checkpoint = checkpointPath(v.GetString("feed.checkpoint"))
			}

			return runScrape(cmd.Context(), scraper, publisher, checkpoint, cmd.OutOrStdout())
		},
	}
)

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&stopDateFlag, "stop-date", "", "Date (MM/DD/YYYY) of the last post already collected")
	scrapeCmd.Flags().StringVar(&stopTextFlag, "stop-text", "", "Text of the last post already collected")
	scrapeCmd.Flags().BoolVar(&noCheckpointFlag, "no-checkpoint", false, "Neither read nor update the checkpoint file")
}

func scrapeOptions() feed.Options {
	v := viper.GetViper()

	return feed.Options{
		LoginURL:   v.GetString("feed.loginURL"),
		FeedURL:    v.GetString("feed.feedURL"),
		Settle:     v.GetDuration("feed.settle"),
		Pause:      v.GetDuration("feed.pause"),
		Step:       v.GetInt("feed.step"),
		MaxScrolls: v.GetInt("feed.maxScrolls"),
	}
}

func checkpointPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(configDir(), path)
}

type postScraper interface {
	Scrape(ctx context.Context, marker *feed.StopMarker) ([]feed.Post, error)
}

type postPublisher interface {
	Publish(ctx context.Context, posts []feed.Post) error
}

/*
runScrape picks the stop marker (flags first, then the checkpoint), scrapes,
prints the posts as a JSON array and hands them on. The marker post was
published by the previous run, so it is left out of the publish batch. An
empty checkpoint path disables the checkpoint.
*/
func runScrape(ctx context.Context, scraper postScraper, publisher postPublisher, checkpoint string, out io.Writer) error {
	marker := feed.NewStopMarker(stopDateFlag, stopTextFlag)

	if marker == nil && checkpoint != "" {
		stored, err := feed.LoadCheckpoint(checkpoint)

		if err != nil {
			return err
		}

		marker = stored.StopMarker()
	}

	if marker != nil {
		log.Info("scraping until marker", "date", marker.Date, "text", marker.Text)
	}

	posts, err := scraper.Scrape(ctx, marker)

	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err = enc.Encode(posts); err != nil {
		return err
	}

	if publisher != nil {
		if err = publisher.Publish(ctx, unseen(posts, marker)); err != nil {
			return err
		}
	}

	if checkpoint == "" {
		return nil
	}

	return feed.SaveCheckpoint(checkpoint, posts)
}

func unseen(posts []feed.Post, marker *feed.StopMarker) []feed.Post {
	fresh := make([]feed.Post, 0, len(posts))

	for _, post := range posts {
		if !marker.Matches(post) {
			fresh = append(fresh, post)
		}
	}

	return fresh
}

var longScrape = `
Open a browser on the login page, wait for you to sign in, then scroll the
configured feed and collect every new post until the stop marker is seen.

The newest post of each run is stored in the checkpoint file and becomes the
stop marker of the next run. Collected posts are printed as JSON and, when
kafka.brokers is set, published for the indexer.

Examples:
  # Continue from the last checkpoint.
  herewego scrape

  # Stop at a known post.
  herewego scrape --stop-date 05/31/2025 --stop-text "Here we go!"
`
