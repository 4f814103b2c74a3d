package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/projectdiscovery/httpx/common/httpx"
	"github.com/rs/zerolog/log"
)

const (
	// defaultTimeout bounds a single page request
	defaultTimeout = 15 * time.Second
	// defaultMaxRedirects is the maximum redirect hops followed
	defaultMaxRedirects = 5
	// defaultMaxBodySize is the maximum response body read (2MB)
	defaultMaxBodySize = 2 * 1024 * 1024
	// defaultUserAgent identifies the fetcher to policy hosts
	defaultUserAgent = "Mozilla/5.0 (compatible; PrivacyRadar/1.0)"
)

// Page is a fetched document
type Page struct {
	// URL is the final URL after redirects
	URL string
	// HTML is the raw response body
	HTML string
	// Text is the readable text extracted from the body
	Text string
	// Title is the document title
	Title string
}

// Fetcher retrieves a page and its readable text
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}

// Renderer renders a page in a headless browser and returns the resulting HTML
type Renderer interface {
	RenderContent(ctx context.Context, url string) (string, error)
}

// Options configures the HTTPXFetcher
type Options struct {
	timeout      time.Duration
	maxRedirects int
	maxBodySize  int64
	userAgent    string
	renderer     Renderer
}

// Option configures the fetcher Options
type Option func(*Options)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithMaxRedirects sets the maximum redirect hops
func WithMaxRedirects(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.maxRedirects = n
		}
	}
}

// WithMaxBodySize sets the maximum number of body bytes read
func WithMaxBodySize(n int64) Option {
	return func(o *Options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(o *Options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithRenderer enables the headless render fallback for pages without static text
func WithRenderer(r Renderer) Option {
	return func(o *Options) {
		if r != nil {
			o.renderer = r
		}
	}
}

// HTTPXFetcher implements Fetcher using projectdiscovery/httpx
type HTTPXFetcher struct {
	options Options
	client  *httpx.HTTPX
}

// NewHTTPXFetcher creates a fetcher with the given options
func NewHTTPXFetcher(opts ...Option) (*HTTPXFetcher, error) {
	options := Options{
		timeout:      defaultTimeout,
		maxRedirects: defaultMaxRedirects,
		maxBodySize:  defaultMaxBodySize,
		userAgent:    defaultUserAgent,
	}

	for _, opt := range opts {
		opt(&options)
	}

	client, err := httpx.New(newHTTPXOptions(options))
	if err != nil {
		return nil, fmt.Errorf("initializing httpx client: %w", err)
	}

	return &HTTPXFetcher{options: options, client: client}, nil
}

// newHTTPXOptions maps fetcher options to httpx client options
func newHTTPXOptions(o Options) *httpx.Options {
	return &httpx.Options{
		Timeout:                   o.timeout,
		FollowRedirects:           true,
		MaxRedirects:              o.maxRedirects,
		MaxResponseBodySizeToRead: o.maxBodySize,
		DefaultUserAgent:          o.userAgent,
	}
}

// Fetch retrieves url and extracts its readable text. When the static page has
// no text and a renderer is configured, the rendered DOM is used instead.
// ErrEmptyContent is returned together with the page when no text was found.
func (f *HTTPXFetcher) Fetch(ctx context.Context, url string) (Page, error) {
	page := Page{URL: url}

	req, err := f.client.NewRequestWithContext(ctx, http.MethodGet, url)
	if err != nil {
		return page, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	resp, err := f.client.Do(req, httpx.UnsafeOptions{})
	if err != nil {
		return page, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return page, fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if resp.HasChain() {
		if last := resp.GetChainLastURL(); last != "" {
			page.URL = last
		}
	}

	page.HTML = string(resp.Data)

	return f.complete(ctx, page)
}

// complete fills the readable text of a fetched page, rendering it when needed
func (f *HTTPXFetcher) complete(ctx context.Context, page Page) (Page, error) {
	page.Text, page.Title = ReadableText(page.HTML)

	if page.Text == "" && f.options.renderer != nil {
		rendered, err := f.options.renderer.RenderContent(ctx, page.URL)
		if err != nil {
			log.Warn().Err(err).Str("url", page.URL).Msg("render fallback failed")
		} else {
			log.Debug().Str("url", page.URL).Msg("using rendered page content")

			page.HTML = rendered
			page.Text, page.Title = ReadableText(rendered)
		}
	}

	if strings.TrimSpace(page.Text) == "" {
		return page, ErrEmptyContent
	}

	return page, nil
}
