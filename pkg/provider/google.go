package provider

import (
	"context"
	"os"

	"google.golang.org/genai"
)

/*
GoogleProvider is a provider for the Gemini API.
*/
type GoogleProvider struct {
	client *genai.Client
	model  string
	err    error
}

type GoogleProviderOption func(*GoogleProvider)

func NewGoogleProvider(options ...GoogleProviderOption) (*GoogleProvider, error) {
	prvdr := &GoogleProvider{model: "gemini-2.0-flash"}

	for _, option := range options {
		option(prvdr)
	}

	return prvdr, prvdr.err
}

func (prvdr *GoogleProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := prvdr.client.Models.GenerateContent(ctx, prvdr.model, genai.Text(prompt), nil)

	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

func WithGoogleClient() GoogleProviderOption {
	return func(prvdr *GoogleProvider) {
		prvdr.client, prvdr.err = genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  os.Getenv("GOOGLE_API_KEY"),
			Backend: genai.BackendGeminiAPI,
		})
	}
}

func WithGoogleModel(model string) GoogleProviderOption {
	return func(prvdr *GoogleProvider) {
		if model != "" {
			prvdr.model = model
		}
	}
}
