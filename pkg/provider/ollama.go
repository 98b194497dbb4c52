package provider

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

/*
OllamaProvider is a provider for a local Ollama server.
*/
type OllamaProvider struct {
	client *api.Client
	model  string
	err    error
}

type OllamaProviderOption func(*OllamaProvider)

func NewOllamaProvider(options ...OllamaProviderOption) (*OllamaProvider, error) {
	prvdr := &OllamaProvider{model: "llama3.2"}

	for _, option := range options {
		option(prvdr)
	}

	return prvdr, prvdr.err
}

func (prvdr *OllamaProvider) Complete(ctx context.Context, prompt string) (string, error) {
	stream := false

	req := &api.GenerateRequest{
		Model:  prvdr.model,
		Prompt: prompt,
		Stream: &stream,
	}

	var out strings.Builder

	respFunc := func(resp api.GenerateResponse) error {
		out.WriteString(resp.Response)
		return nil
	}

	if err := prvdr.client.Generate(ctx, req, respFunc); err != nil {
		return "", err
	}

	return out.String(), nil
}

type OllamaEmbedder struct {
	api   *api.Client
	Model string
	err   error
}

type OllamaEmbedderOption func(*OllamaEmbedder)

func NewOllamaEmbedder(options ...OllamaEmbedderOption) (*OllamaEmbedder, error) {
	embedder := &OllamaEmbedder{Model: "nomic-embed-text"}

	for _, option := range options {
		option(embedder)
	}

	return embedder, embedder.err
}

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.api.Embed(ctx, &api.EmbedRequest{
		Model: e.Model,
		Input: text,
	})

	if err != nil {
		return nil, err
	}

	if len(resp.Embeddings) == 0 {
		return nil, errors.New("ollama embedding returned no data")
	}

	return resp.Embeddings[0], nil
}

// newOllamaClient uses OLLAMA_HOST unless baseURL is set.
func newOllamaClient(baseURL string) (*api.Client, error) {
	if baseURL == "" {
		return api.ClientFromEnvironment()
	}

	base, err := url.Parse(baseURL)

	if err != nil {
		return nil, err
	}

	return api.NewClient(base, http.DefaultClient), nil
}

func WithOllamaClient(baseURL string) OllamaProviderOption {
	return func(prvdr *OllamaProvider) {
		prvdr.client, prvdr.err = newOllamaClient(baseURL)
	}
}

func WithOllamaModel(model string) OllamaProviderOption {
	return func(prvdr *OllamaProvider) {
		if model != "" {
			prvdr.model = model
		}
	}
}

func WithOllamaEmbedderClient(baseURL string) OllamaEmbedderOption {
	return func(e *OllamaEmbedder) {
		e.api, e.err = newOllamaClient(baseURL)
	}
}

func WithOllamaEmbedderModel(model string) OllamaEmbedderOption {
	return func(e *OllamaEmbedder) {
		if model != "" {
			e.Model = model
		}
	}
}
