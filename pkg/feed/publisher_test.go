package feed

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (writer *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	writer.msgs = append(writer.msgs, msgs...)
	return writer.err
}

func (writer *fakeWriter) Close() error { return nil }

func TestPublisherPublish(t *testing.T) {
	writer := &fakeWriter{}
	publisher := &Publisher{writer: writer}
	posts := []Post{{Text: "one", Date: "01/01/2025"}, {Text: "two", Date: "01/02/2025"}}

	require.NoError(t, publisher.Publish(context.Background(), posts))
	require.Len(t, writer.msgs, 2)

	var decoded Post
	require.NoError(t, json.Unmarshal(writer.msgs[1].Value, &decoded))
	assert.Equal(t, posts[1], decoded)
	assert.Equal(t, PostKey(posts[0]), string(writer.msgs[0].Key))
}

func TestPublisherEmpty(t *testing.T) {
	writer := &fakeWriter{err: stderrors.New("unreachable")}
	publisher := &Publisher{writer: writer}

	assert.NoError(t, publisher.Publish(context.Background(), nil))
	assert.Empty(t, writer.msgs)
}

func TestPublisherError(t *testing.T) {
	publisher := &Publisher{writer: &fakeWriter{err: stderrors.New("broker down")}}
	assert.Error(t, publisher.Publish(context.Background(), []Post{{Text: "x", Date: "01/01/2025"}}))
}

func TestPostKeyIsStable(t *testing.T) {
	a := PostKey(Post{Text: "same", Date: "01/01/2025"})
	b := PostKey(Post{Text: "same", Date: "02/02/2025"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, PostKey(Post{Text: "other"}))
}
