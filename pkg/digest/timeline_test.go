package digest

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/theapemachine/herewego/pkg/errors"
	"github.com/theapemachine/herewego/pkg/retrieval"
)

func TestParseTimeline(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     []TimelineEntry
	}{
		{
			name:     "drops noise and keeps order",
			response: "- 05/31/2025 Player X signed.\nnoise line\n- 05/30/2025 Manager Z retired.",
			want: []TimelineEntry{
				{Date: "05/31/2025", Summary: "Player X signed."},
				{Date: "05/30/2025", Summary: "Manager Z retired."},
			},
		},
		{
			name:     "no space after dash",
			response: "-05/31/2025   Deal agreed.  ",
			want:     []TimelineEntry{{Date: "05/31/2025", Summary: "Deal agreed."}},
		},
		{
			name:     "windows line endings",
			response: "- 05/31/2025 One.\r\n- 06/01/2025 Two.\r\n",
			want: []TimelineEntry{
				{Date: "05/31/2025", Summary: "One."},
				{Date: "06/01/2025", Summary: "Two."},
			},
		},
		{
			name:     "wrong date shape",
			response: "- 5/31/2025 Short month.\n- 2025-05-31 ISO date.\n* 05/31/2025 Star bullet.",
			want:     []TimelineEntry{},
		},
		{
			name:     "indented bullet",
			response: "  - 05/31/2025 Leading space is trimmed with the response.",
			want:     []TimelineEntry{{Date: "05/31/2025", Summary: "Leading space is trimmed with the response."}},
		},
		{
			name:     "empty response",
			response: "",
			want:     []TimelineEntry{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTimeline(tt.response))
		})
	}
}

func TestWindow(t *testing.T) {
	hits := numberedHits(12)

	assert.Equal(t, hits[2:], Window(hits, 10))
	assert.Equal(t, hits[:3], Window(hits[:3], 10))
	assert.Equal(t, hits, Window(hits, 0))
}

func TestRenderTimelineInput(t *testing.T) {
	got := RenderTimelineInput([]retrieval.Hit{
		{Text: "first", Date: "05/30/2025"},
		{Text: "second", Date: "Unknown"},
	})

	assert.Equal(t, "Tweet 1 [05/30/2025]: first\n\nTweet 2 [Unknown]: second\n\n", got)
}

func TestTimelineExtractor(t *testing.T) {
	Convey("Given a timeline extractor", t, func() {
		completer := &fakeCompleter{replies: map[string]string{
			"Summaries:": "Here is your timeline:\n- 05/31/2025 Player X signed.\n- 05/30/2025 Manager Z retired.",
		}}
		extractor := NewTimelineExtractor(completer)

		Convey("When there are no hits", func() {
			entries, err := extractor.Extract(context.Background(), nil)

			Convey("It should return an empty timeline without calling the service", func() {
				So(err, ShouldBeNil)
				So(entries, ShouldNotBeNil)
				So(entries, ShouldBeEmpty)
				So(completer.Calls(), ShouldEqual, 0)
			})
		})

		Convey("When there are more hits than the window", func() {
			entries, err := extractor.Extract(context.Background(), numberedHits(12))

			Convey("It should prompt with the last ten only", func() {
				So(err, ShouldBeNil)
				So(completer.Calls(), ShouldEqual, 1)

				prompt := completer.prompts[0]
				So(prompt, ShouldNotContainSubstring, "post A")
				So(prompt, ShouldNotContainSubstring, "post B")
				So(prompt, ShouldContainSubstring, "Tweet 1 [05/01/2025]: post C")
				So(prompt, ShouldContainSubstring, "Tweet 10 [05/01/2025]: post L")
				So(prompt, ShouldContainSubstring, "- 05/31/2025 Player X signed for Club Y.")
			})

			Convey("It should parse the response", func() {
				So(entries, ShouldResemble, []TimelineEntry{
					{Date: "05/31/2025", Summary: "Player X signed."},
					{Date: "05/30/2025", Summary: "Manager Z retired."},
				})
			})
		})

		Convey("When the window is configured", func() {
			extractor := NewTimelineExtractor(completer, WithWindow(2))
			_, err := extractor.Extract(context.Background(), numberedHits(5))

			Convey("It should honour it", func() {
				So(err, ShouldBeNil)
				So(strings.Count(completer.prompts[0], "Tweet "), ShouldEqual, 2)
				So(completer.prompts[0], ShouldContainSubstring, "post E")
			})
		})
	})

	Convey("Given a failing completion service", t, func() {
		extractor := NewTimelineExtractor(&fakeCompleter{err: stderrors.New("503")})
		_, err := extractor.Extract(context.Background(), numberedHits(1))

		Convey("It should fail with a completion error", func() {
			So(stderrors.Is(err, errors.ErrCompletionService), ShouldBeTrue)
		})
	})
}
