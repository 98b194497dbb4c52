package digest

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/herewego/pkg/provider"
	"github.com/theapemachine/herewego/pkg/retrieval"
)

// DefaultWindow is how many trailing hits are sent to the timeline prompt.
const DefaultWindow = 10

const timelinePrompt = "Write the summaries as bullet points starting with a dash and a space,\n" +
	"then the date in MM/DD/YYYY format, followed by a space and the summary.\n" +
	"Example:\n" +
	"- 05/31/2025 Player X signed for Club Y.\n" +
	"- 05/30/2025 Manager Z announced retirement.\n" +
	"Tweets:\n{{.tweets}}\n\nSummaries:"

/*
timelineLine is the response grammar: a dash, optional whitespace, an
MM/DD/YYYY date, whitespace, then the summary.
*/
var timelineLine = regexp.MustCompile(`^-\s*(\d{2}/\d{2}/\d{4})\s+(.*)`)

type TimelineEntry struct {
	Date    string `json:"date"`
	Summary string `json:"summary"`
}

type TimelineExtractor struct {
	chain  *Chain
	window int
}

type TimelineOption func(*TimelineExtractor)

func NewTimelineExtractor(completer provider.Completer, options ...TimelineOption) *TimelineExtractor {
	extractor := &TimelineExtractor{
		chain:  NewChain("timeline", timelinePrompt, completer),
		window: DefaultWindow,
	}

	for _, option := range options {
		option(extractor)
	}

	return extractor
}

func WithWindow(window int) TimelineOption {
	return func(extractor *TimelineExtractor) {
		if window > 0 {
			extractor.window = window
		}
	}
}

/*
Extract prompts with the last window hits, by position, and parses the
response. No hits means no call and an empty, non-nil timeline.
*/
func (extractor *TimelineExtractor) Extract(ctx context.Context, hits []retrieval.Hit) ([]TimelineEntry, error) {
	if len(hits) == 0 {
		return []TimelineEntry{}, nil
	}

	response, err := extractor.chain.Run(ctx, map[string]string{
		"tweets": RenderTimelineInput(Window(hits, extractor.window)),
	})

	if err != nil {
		return nil, err
	}

	entries := ParseTimeline(response)
	log.Debug("timeline parsed", "hits", len(hits), "entries", len(entries))

	return entries, nil
}

// Window returns the trailing n hits.
func Window(hits []retrieval.Hit, n int) []retrieval.Hit {
	if n <= 0 || len(hits) <= n {
		return hits
	}

	return hits[len(hits)-n:]
}

func RenderTimelineInput(hits []retrieval.Hit) string {
	var b strings.Builder

	for i, hit := range hits {
		fmt.Fprintf(&b, "Tweet %d [%s]: %s\n\n", i+1, hit.Date, hit.Text)
	}

	return b.String()
}

/*
ParseTimeline keeps the lines that match the grammar, in response order.
Anything else is dropped without error.
*/
func ParseTimeline(response string) []TimelineEntry {
	entries := []TimelineEntry{}

	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		match := timelineLine.FindStringSubmatch(strings.TrimRight(line, "\r"))

		if match == nil {
			continue
		}

		entries = append(entries, TimelineEntry{
			Date:    strings.TrimSpace(match[1]),
			Summary: strings.TrimSpace(match[2]),
		})
	}

	return entries
}
