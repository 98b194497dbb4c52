package provider

import (
	"context"
	"os"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

/*
CohereProvider is a provider for the Cohere chat API.
*/
type CohereProvider struct {
	client *cohereclient.Client
	model  string
}

type CohereProviderOption func(*CohereProvider)

func NewCohereProvider(options ...CohereProviderOption) *CohereProvider {
	prvdr := &CohereProvider{model: "command-r"}

	for _, option := range options {
		option(prvdr)
	}

	return prvdr
}

func (prvdr *CohereProvider) Complete(ctx context.Context, prompt string) (string, error) {
	model := prvdr.model

	response, err := prvdr.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &model,
	})

	if err != nil {
		return "", err
	}

	return response.GetText(), nil
}

func WithCohereClient() CohereProviderOption {
	return func(prvdr *CohereProvider) {
		prvdr.client = cohereclient.NewClient(
			cohereclient.WithToken(os.Getenv("COHERE_API_KEY")),
		)
	}
}

func WithCohereModel(model string) CohereProviderOption {
	return func(prvdr *CohereProvider) {
		if model != "" {
			prvdr.model = model
		}
	}
}
