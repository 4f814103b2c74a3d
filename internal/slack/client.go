package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/theopenlane/httpsling"

	"github.com/amish-gaur/DataPriv/internal/types"
)

const (
	// defaultRequestTimeout is the default timeout for Slack webhook requests
	defaultRequestTimeout = 10 * time.Second
	// DefaultRiskThreshold is the lowest risk score that triggers an alert
	DefaultRiskThreshold = 70.0
)

// Client posts high-risk analysis alerts to a Slack incoming webhook
type Client struct {
	webhookURL    string
	httpClient    *http.Client
	riskThreshold float64
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for the Slack client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRiskThreshold sets the lowest risk score that triggers an alert
func WithRiskThreshold(threshold float64) Option {
	return func(c *Client) {
		if threshold > 0 {
			c.riskThreshold = threshold
		}
	}
}

// New creates a new Slack webhook client
func New(webhookURL string, opts ...Option) (*Client, error) {
	if webhookURL == "" {
		return nil, ErrMissingWebhookURL
	}

	client := &Client{
		webhookURL:    webhookURL,
		httpClient:    &http.Client{Timeout: defaultRequestTimeout},
		riskThreshold: DefaultRiskThreshold,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// ShouldAlert reports whether a result warrants an alert: it must be freshly
// computed from a policy and meet the risk threshold
func (c *Client) ShouldAlert(result *types.AnalysisResult) bool {
	if result == nil {
		return false
	}

	switch result.Insights.DataSource {
	case types.DataSourceCached, types.DataSourceNoPolicyFound:
		return false
	}

	return result.RiskScore >= c.riskThreshold
}

// NotifyHighRisk posts an alert for the result when ShouldAlert allows it and
// reports whether a message was sent
func (c *Client) NotifyHighRisk(ctx context.Context, result *types.AnalysisResult) (bool, error) {
	if !c.ShouldAlert(result) {
		return false, nil
	}

	if err := c.Send(ctx, NewRiskAlert(result)); err != nil {
		return false, err
	}

	return true, nil
}

// Send posts a message to the configured Slack webhook
func (c *Client) Send(ctx context.Context, msg Message) error {
	requester := httpsling.MustNew(
		httpsling.URL(c.webhookURL),
		httpsling.Post(),
		httpsling.JSONBody(msg),
		httpsling.WithHTTPClient(c.httpClient),
	)

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}
