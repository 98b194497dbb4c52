package provider

import (
	"context"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

/*
AnthropicProvider is a provider for the Anthropic API.
*/
type AnthropicProvider struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

type AnthropicProviderOption func(*AnthropicProvider)

func NewAnthropicProvider(options ...AnthropicProviderOption) *AnthropicProvider {
	prvdr := &AnthropicProvider{
		model:     "claude-3-5-haiku-latest",
		maxTokens: 1024,
	}

	for _, option := range options {
		option(prvdr)
	}

	return prvdr
}

func (prvdr *AnthropicProvider) Complete(ctx context.Context, prompt string) (string, error) {
	llmResponse, err := prvdr.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(prvdr.model),
		MaxTokens: prvdr.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})

	if err != nil {
		return "", err
	}

	var out strings.Builder

	for _, block := range llmResponse.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			out.WriteString(text.Text)
		}
	}

	return out.String(), nil
}

func WithAnthropicClient() AnthropicProviderOption {
	return func(prvdr *AnthropicProvider) {
		client := anthropic.NewClient(
			option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
		)

		prvdr.client = &client
	}
}

func WithAnthropicModel(model string, maxTokens int64) AnthropicProviderOption {
	return func(prvdr *AnthropicProvider) {
		if model != "" {
			prvdr.model = model
		}

		if maxTokens > 0 {
			prvdr.maxTokens = maxTokens
		}
	}
}
