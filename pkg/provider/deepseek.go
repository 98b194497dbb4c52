package provider

import (
	"context"
	"errors"
	"os"

	deepseek "github.com/cohesion-org/deepseek-go"
)

/*
DeepseekProvider is a provider for the DeepSeek API.
*/
type DeepseekProvider struct {
	client *deepseek.Client
	model  string
}

type DeepseekProviderOption func(*DeepseekProvider)

func NewDeepseekProvider(options ...DeepseekProviderOption) *DeepseekProvider {
	prvdr := &DeepseekProvider{model: deepseek.DeepSeekChat}

	for _, option := range options {
		option(prvdr)
	}

	return prvdr
}

func (prvdr *DeepseekProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := prvdr.client.CreateChatCompletion(ctx, &deepseek.ChatCompletionRequest{
		Model: prvdr.model,
		Messages: []deepseek.ChatCompletionMessage{{
			Role:    deepseek.ChatMessageRoleUser,
			Content: prompt,
		}},
	})

	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("deepseek completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func WithDeepseekClient(baseURL string) DeepseekProviderOption {
	return func(prvdr *DeepseekProvider) {
		if baseURL != "" {
			prvdr.client = deepseek.NewClient(os.Getenv("DEEPSEEK_API_KEY"), baseURL)
			return
		}

		prvdr.client = deepseek.NewClient(os.Getenv("DEEPSEEK_API_KEY"))
	}
}

func WithDeepseekModel(model string) DeepseekProviderOption {
	return func(prvdr *DeepseekProvider) {
		if model != "" {
			prvdr.model = model
		}
	}
}
