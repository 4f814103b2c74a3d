package reputation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theopenlane/httpsling"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the PrivacySpy API root
	DefaultBaseURL = "https://privacyspy.org/api/v2"
	// defaultTimeout bounds a single lookup
	defaultTimeout = 10 * time.Second
	// defaultRequestsPerSecond is the outbound request rate towards the API
	defaultRequestsPerSecond = 5
	// defaultBurst is the number of requests allowed above the steady rate
	defaultBurst = 10
)

// Product is a reputation record for a service
type Product struct {
	// Name is the product name as listed by the source
	Name string `json:"name,omitempty"`
	// Slug is the product identifier in the source
	Slug string `json:"slug,omitempty"`
	// Score is the privacy score on a 0-10 scale where 10 is best
	Score *float64 `json:"score"`
	// Rubric holds the graded answers for the product's policy
	Rubric []RubricItem `json:"rubric,omitempty"`
}

// RubricItem is one graded rubric question
type RubricItem struct {
	Question RubricQuestion `json:"question"`
	Option   RubricOption   `json:"option"`
}

// RubricQuestion identifies a rubric question
type RubricQuestion struct {
	Category string `json:"category"`
	Slug     string `json:"slug"`
}

// RubricOption is the graded answer to a rubric question
type RubricOption struct {
	// Percent is the grade of the answer from 0 to 100
	Percent float64 `json:"percent"`
}

// Source looks up reputation records by domain
type Source interface {
	Product(ctx context.Context, domain string) (*Product, error)
}

// Client is a PrivacySpy API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for API requests
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the API root, primarily for testing
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithRateLimit sets the outbound request rate and burst
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// New creates a PrivacySpy client
func New(opts ...Option) (*Client, error) {
	client := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(defaultRequestsPerSecond), defaultBurst),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Product fetches the reputation record for domain. ErrProductNotFound is
// returned when the source has no record.
func (c *Client) Product(ctx context.Context, domain string) (*Product, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	requester := httpsling.MustNew(
		httpsling.URL(c.baseURL+"/products/"+url.PathEscape(domain)),
		httpsling.Method(http.MethodGet),
		httpsling.WithHTTPClient(c.httpClient),
	)

	resp, err := requester.SendWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrProductNotFound
	default:
		return nil, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	return &product, nil
}
