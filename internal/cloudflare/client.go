package cloudflare

import (
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.cloudflare.com/client/v4"
	// DefaultNavigationTimeout bounds how long the headless browser waits for a policy page to settle
	DefaultNavigationTimeout = 30 * time.Second
	// requestHeadroom is added on top of the navigation timeout for the API round trip
	requestHeadroom = 10 * time.Second
)

// Client renders JavaScript-heavy policy pages through the Cloudflare Browser Rendering API
type Client struct {
	accountID         string
	apiToken          string
	baseURL           string
	navigationTimeout time.Duration
	httpClient        *http.Client
}

// Option configures the Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client; its timeout should exceed the navigation timeout
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL points the client at a different API root, such as a local test server
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

// WithNavigationTimeout sets how long the browser waits for network idle before returning the DOM
func WithNavigationTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.navigationTimeout = d
		}
	}
}

// New returns a rendering client for the account; both credentials are required
func New(accountID, apiToken string, opts ...Option) (*Client, error) {
	switch {
	case accountID == "":
		return nil, ErrMissingAccountID
	case apiToken == "":
		return nil, ErrMissingAPIToken
	}

	c := &Client{
		accountID:         accountID,
		apiToken:          apiToken,
		baseURL:           defaultBaseURL,
		navigationTimeout: DefaultNavigationTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.navigationTimeout + requestHeadroom}
	}

	return c, nil
}

// apiURL returns the account scoped endpoint for path
func (c *Client) apiURL(path string) string {
	return c.baseURL + "/accounts/" + c.accountID + "/" + strings.TrimPrefix(path, "/")
}
