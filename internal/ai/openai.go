package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultOpenAIModel is the chat model used when none is configured
	DefaultOpenAIModel = openai.GPT4oMini
	// openAITemperature keeps the extraction close to deterministic
	openAITemperature = 0.2
)

// OpenAIProvider completes prompts with the OpenAI chat completions API in JSON mode
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a provider for the hosted API. An empty baseURL uses the public endpoint.
func NewOpenAIProvider(apiKey, model, baseURL string, httpClient *http.Client) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)

	if baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	}

	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Name implements Provider
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Complete implements Provider
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: openAITemperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}
