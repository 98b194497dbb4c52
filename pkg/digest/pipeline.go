package digest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/herewego/pkg/retrieval"
	"golang.org/x/sync/errgroup"
)

/*
Result is the answer to one entity query. Timeline is nil when nothing was
retrieved, which switches the JSON shape to the "tweets" form.
*/
type Result struct {
	Summary  string
	Timeline []TimelineEntry
}

func (result Result) Empty() bool {
	return result.Timeline == nil
}

func (result Result) MarshalJSON() ([]byte, error) {
	if result.Empty() {
		return marshal(struct {
			Summary string   `json:"summary"`
			Tweets  []string `json:"tweets"`
		}{result.Summary, []string{}})
	}

	return marshal(struct {
		Summary  string          `json:"summary"`
		Timeline []TimelineEntry `json:"timeline"`
	}{result.Summary, result.Timeline})
}

// marshal keeps <, > and & literal, which json.Marshal would escape.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Encode writes result as one line of JSON.
func Encode(w io.Writer, result Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	return enc.Encode(result)
}

type Retriever interface {
	Retrieve(ctx context.Context, entity string, k int) ([]retrieval.Hit, error)
}

/*
Pipeline answers an entity query: retrieve, format, then summarize and
extract the timeline concurrently.
*/
type Pipeline struct {
	retriever  Retriever
	summarizer *Summarizer
	timeline   *TimelineExtractor
	k          int
}

type PipelineOption func(*Pipeline)

func NewPipeline(retriever Retriever, summarizer *Summarizer, timeline *TimelineExtractor, options ...PipelineOption) *Pipeline {
	pipeline := &Pipeline{
		retriever:  retriever,
		summarizer: summarizer,
		timeline:   timeline,
		k:          retrieval.DefaultK,
	}

	for _, option := range options {
		option(pipeline)
	}

	return pipeline
}

func WithK(k int) PipelineOption {
	return func(pipeline *Pipeline) {
		if k > 0 {
			pipeline.k = k
		}
	}
}

func (pipeline *Pipeline) Run(ctx context.Context, entity string) (Result, error) {
	hits, err := pipeline.retriever.Retrieve(ctx, entity, pipeline.k)

	if err != nil {
		return Result{}, err
	}

	block := retrieval.Format(hits)

	if block == retrieval.NoTweetsFound {
		log.Info("no tweets found", "entity", entity)
		return Result{Summary: retrieval.NoTweetsFound}, nil
	}

	var result Result

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		result.Summary, err = pipeline.summarizer.Summarize(gctx, entity, block)
		return err
	})

	group.Go(func() (err error) {
		result.Timeline, err = pipeline.timeline.Extract(gctx, hits)
		return err
	})

	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	log.Info("digest ready", "entity", entity, "hits", len(hits), "timeline", len(result.Timeline))
	return result, nil
}
