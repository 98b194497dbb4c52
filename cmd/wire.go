package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/theapemachine/herewego/pkg/digest"
	"github.com/theapemachine/herewego/pkg/index"
	"github.com/theapemachine/herewego/pkg/notify"
	"github.com/theapemachine/herewego/pkg/provider"
	"github.com/theapemachine/herewego/pkg/retrieval"
	"github.com/theapemachine/herewego/pkg/service"
	"github.com/theapemachine/herewego/pkg/stores/s3"
)

func newPipeline(ctx context.Context) (service.Digester, error) {
	v := viper.GetViper()

	searcher, err := newSearcher(ctx)

	if err != nil {
		return nil, err
	}

	summary, err := newCompleter("summary")

	if err != nil {
		return nil, err
	}

	timeline, err := newCompleter("timeline")

	if err != nil {
		return nil, err
	}

	return digest.NewPipeline(
		retrieval.NewRetriever(searcher),
		digest.NewSummarizer(summary),
		digest.NewTimelineExtractor(timeline, digest.WithWindow(v.GetInt("chains.timeline.window"))),
		digest.WithK(v.GetInt("index.k")),
	), nil
}

func newSearcher(ctx context.Context) (index.Searcher, error) {
	v := viper.GetViper()

	embedder, err := provider.NewEmbedder(provider.Config{
		Name:    v.GetString("embedder.provider"),
		Model:   v.GetString("embedder.model"),
		BaseURL: v.GetString("embedder.baseURL"),
	})

	if err != nil {
		return nil, err
	}

	switch backend := v.GetString("index.backend"); backend {
	case "qdrant":
		return index.NewQdrantIndex(
			v.GetString("index.qdrant.endpoint"),
			v.GetString("index.qdrant.collection"),
			embedder,
		), nil
	case "flat", "":
		var (
			path  = v.GetString("index.path")
			store s3.Store
		)

		if path == "" {
			if store, err = s3.NewStore(ctx, s3.Config{
				Driver:   v.GetString("storage.driver"),
				Endpoint: v.GetString("storage.endpoint"),
				Region:   v.GetString("storage.region"),
				UseSSL:   v.GetBool("storage.useSSL"),
			}); err != nil {
				return nil, err
			}
		}

		loader := index.NewLoader(
			store,
			embedder,
			index.WithBucket(v.GetString("index.bucket")),
			index.WithArtifactNames(v.GetString("index.vectors"), v.GetString("index.metadata")),
		)

		return loader.Load(ctx, path)
	default:
		return nil, fmt.Errorf("unknown index backend %q", backend)
	}
}

func newCompleter(chain string) (provider.Completer, error) {
	v := viper.GetViper()
	prefix := "chains." + chain + "."

	return provider.NewCompleter(provider.Config{
		Name:      v.GetString(prefix + "provider"),
		Model:     v.GetString(prefix + "model"),
		BaseURL:   v.GetString(prefix + "baseURL"),
		MaxTokens: v.GetInt64(prefix + "maxTokens"),
	})
}

func newNotifier() Notifier {
	return notify.NewSlackNotifier(os.Getenv("SLACK_BOT_TOKEN"), viper.GetString("slack.channel"))
}
