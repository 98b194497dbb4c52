package provider

import (
	"context"
	"fmt"
)

/*
Completer sends one rendered prompt to a text-completion service and
returns the completion text untouched.
*/
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

/*
Embedder maps text onto the vector space of a semantic index.
*/
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

/*
Config names a provider and the model to use with it. BaseURL overrides the
service endpoint where the SDK allows it.
*/
type Config struct {
	Name      string
	Model     string
	BaseURL   string
	MaxTokens int64
}

func NewCompleter(cfg Config) (Completer, error) {
	switch cfg.Name {
	case "openai", "":
		return NewOpenAIProvider(WithOpenAIClient(cfg.BaseURL), WithOpenAIModel(cfg.Model)), nil
	case "anthropic":
		return NewAnthropicProvider(WithAnthropicClient(), WithAnthropicModel(cfg.Model, cfg.MaxTokens)), nil
	case "ollama":
		return NewOllamaProvider(WithOllamaClient(cfg.BaseURL), WithOllamaModel(cfg.Model))
	case "google":
		return NewGoogleProvider(WithGoogleClient(), WithGoogleModel(cfg.Model))
	case "deepseek":
		return NewDeepseekProvider(WithDeepseekClient(cfg.BaseURL), WithDeepseekModel(cfg.Model)), nil
	case "cohere":
		return NewCohereProvider(WithCohereClient(), WithCohereModel(cfg.Model)), nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Name)
	}
}

func NewEmbedder(cfg Config) (Embedder, error) {
	switch cfg.Name {
	case "openai", "":
		return NewOpenAIEmbedder(WithOpenAIEmbedderClient(cfg.BaseURL), WithOpenAIEmbedderModel(cfg.Model)), nil
	case "ollama":
		return NewOllamaEmbedder(WithOllamaEmbedderClient(cfg.BaseURL), WithOllamaEmbedderModel(cfg.Model))
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Name)
	}
}
