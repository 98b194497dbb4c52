package feed

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

/*
Publisher hands accepted posts to the indexer over kafka. Message keys are
derived from the post text, so a re-published post lands on the same
partition under the same key.
*/
type Publisher struct {
	writer messageWriter
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

// PostKey is the stable identifier of a post's text.
func PostKey(post Post) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(post.Text)).String()
}

func (publisher *Publisher) Publish(ctx context.Context, posts []Post) error {
	if len(posts) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(posts))

	for _, post := range posts {
		value, err := json.Marshal(post)

		if err != nil {
			return err
		}

		msgs = append(msgs, kafka.Message{
			Key:   []byte(PostKey(post)),
			Value: value,
		})
	}

	if err := publisher.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error("failed to publish posts", "error", err, "posts", len(posts))
		return err
	}

	log.Info("published posts", "posts", len(posts))
	return nil
}

func (publisher *Publisher) Close() error {
	return publisher.writer.Close()
}
