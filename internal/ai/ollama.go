package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/theopenlane/httpsling"
)

// DefaultOllamaModel is the local model used when none is configured
const DefaultOllamaModel = "llama3.1"

// OllamaProvider completes prompts with a local Ollama server
type OllamaProvider struct {
	host       string
	model      string
	httpClient *http.Client
}

// generateRequest is the body of POST /api/generate
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Format  string          `json:"format,omitempty"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature"`
}

// generateResponse is the non-streaming answer of POST /api/generate
type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// NewOllamaProvider creates a provider for the Ollama server at host
func NewOllamaProvider(host, model string, httpClient *http.Client) *OllamaProvider {
	if model == "" {
		model = DefaultOllamaModel
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}

	return &OllamaProvider{
		host:       strings.TrimSuffix(host, "/"),
		model:      model,
		httpClient: httpClient,
	}
}

// Name implements Provider
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Complete implements Provider
func (p *OllamaProvider) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body := generateRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: false,
		Format: "json",
		Options: generateOptions{
			NumPredict:  maxTokens,
			Temperature: openAITemperature,
		},
	}

	requester := httpsling.MustNew(
		httpsling.URL(p.host+"/api/generate"),
		httpsling.Post(),
		httpsling.JSONBody(body),
		httpsling.WithHTTPClient(p.httpClient),
	)

	var out generateResponse

	resp, err := requester.ReceiveWithContext(ctx, &out)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if strings.TrimSpace(out.Response) == "" {
		return "", ErrEmptyCompletion
	}

	return out.Response, nil
}
