package ai

import (
	"context"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/amish-gaur/DataPriv/internal/types"
)

const (
	// defaultRequestTimeout bounds a single model call at the transport level
	defaultRequestTimeout = 20 * time.Second
	// defaultMaxInputChars is the policy text budget sent to the model
	defaultMaxInputChars = 120000
	// defaultMaxTokens caps the length of the model's answer
	defaultMaxTokens = 1024
)

// summaryPrompt asks for the summary keys and risk score the parser understands; the policy text is appended
const summaryPrompt = "Summarize the privacy policy below as strict JSON with exactly these keys: " +
	"data_collected (string[]), purposes (string[]), sharing (string), retention (string), user_rights (string), " +
	"risk_score (number from 0 to 99, higher means more privacy risk to the user). " +
	"Use only facts stated in the policy text. Use an empty array or \"unspecified\" when the policy is silent.\n\n" +
	"Policy text:\n"

// Provider completes a prompt with a language model
type Provider interface {
	// Name identifies the provider in logs and metrics
	Name() string
	// Complete returns the raw model output for the prompt
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Result is the outcome of a best-effort summarization. Err is set whenever no
// usable summary was produced; callers fall back to the heuristic summary.
// RiskScore is independent of Err: the model may score a policy it failed to summarize.
type Result struct {
	// Summary is the parsed model summary, nil on failure
	Summary *types.PolicySummary
	// RiskScore is the model's own 0-99 risk assessment, nil when absent
	RiskScore *float64
	// Provider is the name of the provider that produced the result
	Provider string
	// Err describes why no summary is available
	Err error
}

// OK reports whether the result carries a usable summary
func (r Result) OK() bool {
	return r.Err == nil && r.Summary != nil
}

// Config selects and configures the model provider
type Config struct {
	// OpenAIAPIKey enables the hosted provider when set
	OpenAIAPIKey string
	// OpenAIModel is the hosted chat model
	OpenAIModel string
	// OpenAIBaseURL overrides the hosted API endpoint for compatible gateways
	OpenAIBaseURL string
	// OllamaHost enables the local provider when set and no API key is configured
	OllamaHost string
	// OllamaModel is the local model name
	OllamaModel string
}

// Client requests structured policy summaries from the configured provider
type Client struct {
	provider      Provider
	httpClient    *http.Client
	maxInputChars int
	maxTokens     int
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client used by the provider
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMaxInputChars sets how many characters of policy text are sent to the model
func WithMaxInputChars(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxInputChars = n
		}
	}
}

// WithMaxTokens caps the length of the model answer
func WithMaxTokens(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithProvider replaces the provider selected from config
func WithProvider(p Provider) Option {
	return func(c *Client) {
		if p != nil {
			c.provider = p
		}
	}
}

// New creates a summarization client. The hosted provider is used when an API
// key is configured, otherwise the local provider when a host is configured.
// ErrNotConfigured is returned when neither is available.
func New(cfg Config, opts ...Option) (*Client, error) {
	client := &Client{
		httpClient:    &http.Client{Timeout: defaultRequestTimeout},
		maxInputChars: defaultMaxInputChars,
		maxTokens:     defaultMaxTokens,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.provider == nil {
		switch {
		case cfg.OpenAIAPIKey != "":
			client.provider = NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, client.httpClient)
		case cfg.OllamaHost != "":
			client.provider = NewOllamaProvider(cfg.OllamaHost, cfg.OllamaModel, client.httpClient)
		default:
			return nil, ErrNotConfigured
		}
	}

	return client, nil
}

// ProviderName returns the name of the selected provider
func (c *Client) ProviderName() string {
	if c == nil || c.provider == nil {
		return ""
	}

	return c.provider.Name()
}

// Summarize asks the model for a structured summary of the policy text. It
// never panics or blocks past ctx; every failure is reported through Result.Err.
func (c *Client) Summarize(ctx context.Context, text string) Result {
	if c == nil || c.provider == nil {
		return Result{Err: ErrNotConfigured}
	}

	result := Result{Provider: c.provider.Name()}

	content := truncate(strings.TrimSpace(text), c.maxInputChars)
	if content == "" {
		result.Err = ErrEmptyText
		return result
	}

	raw, err := c.provider.Complete(ctx, summaryPrompt+content, c.maxTokens)
	if err != nil {
		result.Err = err
		return result
	}

	if score, err := ParseRiskScore(raw); err == nil {
		result.RiskScore = &score
	}

	summary, err := ParseSummary(raw)
	if err != nil {
		result.Err = err
		return result
	}

	result.Summary = summary

	return result
}

// truncate limits text to at most limit characters without splitting a rune
func truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}

	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}

	return text
}
