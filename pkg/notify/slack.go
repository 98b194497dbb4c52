package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
	"github.com/theapemachine/herewego/pkg/digest"
)

type poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

/*
SlackNotifier posts finished digests to a Slack channel.
*/
type SlackNotifier struct {
	client  poster
	channel string
}

type SlackNotifierOption func(*SlackNotifier)

func NewSlackNotifier(token, channel string, options ...SlackNotifierOption) *SlackNotifier {
	notifier := &SlackNotifier{
		client:  slack.New(token),
		channel: channel,
	}

	for _, option := range options {
		option(notifier)
	}

	return notifier
}

// WithAPIURL points the client at another Slack API root. The URL must end in a slash.
func WithAPIURL(token, url string) SlackNotifierOption {
	return func(notifier *SlackNotifier) {
		notifier.client = slack.New(token, slack.OptionAPIURL(url))
	}
}

func (notifier *SlackNotifier) Notify(ctx context.Context, entity string, result digest.Result) error {
	channel, ts, err := notifier.client.PostMessageContext(
		ctx,
		notifier.channel,
		slack.MsgOptionText(Render(entity, result), false),
	)

	if err != nil {
		log.Error("failed posting digest to Slack", "channel", notifier.channel, "error", err)
		return fmt.Errorf("post digest for %s: %w", entity, err)
	}

	log.Info("digest posted", "entity", entity, "channel", channel, "ts", ts)
	return nil
}

// Render formats a digest as Slack mrkdwn.
func Render(entity string, result digest.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s*\n%s\n", entity, strings.TrimSpace(result.Summary))

	if len(result.Timeline) > 0 {
		b.WriteString("\n*Timeline*\n")
	}

	for _, entry := range result.Timeline {
		fmt.Fprintf(&b, "• `%s` %s\n", entry.Date, entry.Summary)
	}

	return b.String()
}
