package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	html  string
	err   error
	calls int
}

func (f *fakeRenderer) RenderContent(context.Context, string) (string, error) {
	f.calls++
	return f.html, f.err
}

func TestOptions(t *testing.T) {
	options := Options{
		timeout:      defaultTimeout,
		maxRedirects: defaultMaxRedirects,
		maxBodySize:  defaultMaxBodySize,
		userAgent:    defaultUserAgent,
	}

	renderer := &fakeRenderer{}

	for _, opt := range []Option{
		WithTimeout(5 * time.Second),
		WithMaxRedirects(2),
		WithMaxBodySize(1024),
		WithUserAgent("radar-test"),
		WithRenderer(renderer),
		WithTimeout(0),
		WithUserAgent(""),
		WithRenderer(nil),
	} {
		opt(&options)
	}

	assert.Equal(t, 5*time.Second, options.timeout)
	assert.Equal(t, 2, options.maxRedirects)
	assert.Equal(t, int64(1024), options.maxBodySize)
	assert.Equal(t, "radar-test", options.userAgent)
	assert.Same(t, renderer, options.renderer)

	httpxOptions := newHTTPXOptions(options)
	assert.True(t, httpxOptions.FollowRedirects)
	assert.Equal(t, 2, httpxOptions.MaxRedirects)
	assert.Equal(t, int64(1024), httpxOptions.MaxResponseBodySizeToRead)
	assert.Equal(t, "radar-test", httpxOptions.DefaultUserAgent)
}

func TestComplete_StaticText(t *testing.T) {
	renderer := &fakeRenderer{}
	f := &HTTPXFetcher{options: Options{renderer: renderer}}

	page, err := f.complete(context.Background(), Page{URL: "https://example.com/privacy", HTML: "<p>We collect email</p>"})
	require.NoError(t, err)

	assert.Equal(t, "We collect email", page.Text)
	assert.Zero(t, renderer.calls)
}

func TestComplete_RenderFallback(t *testing.T) {
	renderer := &fakeRenderer{html: "<title>Privacy</title><main><p>Rendered policy</p></main>"}
	f := &HTTPXFetcher{options: Options{renderer: renderer}}

	page, err := f.complete(context.Background(), Page{URL: "https://example.com/privacy", HTML: `<div id="root"></div>`})
	require.NoError(t, err)

	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, "Rendered policy", page.Text)
	assert.Equal(t, "Privacy", page.Title)
	assert.Equal(t, renderer.html, page.HTML)
}

func TestComplete_RenderFailure(t *testing.T) {
	renderer := &fakeRenderer{err: errors.New("rendering failed")}
	f := &HTTPXFetcher{options: Options{renderer: renderer}}

	page, err := f.complete(context.Background(), Page{URL: "https://example.com/privacy", HTML: `<div></div>`})

	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, "https://example.com/privacy", page.URL)
	assert.Equal(t, 1, renderer.calls)
}

func TestComplete_NoRenderer(t *testing.T) {
	f := &HTTPXFetcher{}

	_, err := f.complete(context.Background(), Page{HTML: "<script>app()</script>"})
	assert.ErrorIs(t, err, ErrEmptyContent)
}
