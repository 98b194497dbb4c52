package provider

import (
	"context"
	"errors"
	"os"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/theapemachine/herewego/pkg/utils"
)

/*
OpenAIProvider is a provider for the OpenAI API.
*/
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

type OpenAIProviderOption func(*OpenAIProvider)

func NewOpenAIProvider(options ...OpenAIProviderOption) *OpenAIProvider {
	prvdr := &OpenAIProvider{model: "gpt-4o-mini"}

	for _, option := range options {
		option(prvdr)
	}

	return prvdr
}

func (prvdr *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	completion, err := prvdr.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(prvdr.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})

	if err != nil {
		return "", err
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("openai completion returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}

type OpenAIEmbedder struct {
	api   *openai.Client
	Model string
}

type OpenAIEmbedderOption func(*OpenAIEmbedder)

func NewOpenAIEmbedder(options ...OpenAIEmbedderOption) *OpenAIEmbedder {
	embedder := &OpenAIEmbedder{Model: "text-embedding-3-large"}

	for _, option := range options {
		option(embedder)
	}

	return embedder
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.Model),
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: []string{text}},
	})

	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("openai embedding returned no data")
	}

	return utils.ConvertToFloat32(resp.Data[0].Embedding), nil
}

func newOpenAIClient(baseURL string, extra ...option.RequestOption) *openai.Client {
	opts := []option.RequestOption{option.WithAPIKey(os.Getenv("OPENAI_API_KEY"))}

	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(append(opts, extra...)...)
	return &client
}

func WithOpenAIClient(baseURL string, extra ...option.RequestOption) OpenAIProviderOption {
	return func(prvdr *OpenAIProvider) {
		prvdr.client = newOpenAIClient(baseURL, extra...)
	}
}

func WithOpenAIModel(model string) OpenAIProviderOption {
	return func(prvdr *OpenAIProvider) {
		if model != "" {
			prvdr.model = model
		}
	}
}

func WithOpenAIEmbedderClient(baseURL string, extra ...option.RequestOption) OpenAIEmbedderOption {
	return func(e *OpenAIEmbedder) {
		e.api = newOpenAIClient(baseURL, extra...)
	}
}

func WithOpenAIEmbedderModel(model string) OpenAIEmbedderOption {
	return func(e *OpenAIEmbedder) {
		if model != "" {
			e.Model = model
		}
	}
}
