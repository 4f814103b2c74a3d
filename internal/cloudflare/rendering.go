package cloudflare

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/theopenlane/httpsling"
)

// contentPath is the Browser Rendering endpoint returning the rendered DOM
const contentPath = "browser-rendering/content"

// skippedResourceTypes are not loaded while rendering since they never carry text
var skippedResourceTypes = []string{"image", "media", "font"}

// contentRequest is the request body for the content endpoint
type contentRequest struct {
	URL                 string       `json:"url"`
	GotoOptions         *gotoOptions `json:"gotoOptions,omitempty"`
	RejectResourceTypes []string     `json:"rejectResourceTypes,omitempty"`
}

// gotoOptions controls page navigation behavior in the headless browser
type gotoOptions struct {
	WaitUntil string `json:"waitUntil,omitempty"`
	Timeout   int    `json:"timeout,omitempty"`
}

// contentResponse is the Cloudflare API response wrapper for the content endpoint
type contentResponse struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
}

// RenderContent loads pageURL in a headless browser and returns the rendered HTML
func (c *Client) RenderContent(ctx context.Context, pageURL string) (string, error) {
	body := contentRequest{
		URL:                 pageURL,
		GotoOptions:         &gotoOptions{WaitUntil: "networkidle2", Timeout: int(c.navigationTimeout.Milliseconds())},
		RejectResourceTypes: skippedResourceTypes,
	}

	requester := httpsling.MustNew(
		httpsling.URL(c.apiURL(contentPath)),
		httpsling.Post(),
		httpsling.BearerAuth(c.apiToken),
		httpsling.JSONBody(body),
		httpsling.WithHTTPClient(c.httpClient),
	)

	var cfResp contentResponse

	resp, err := requester.ReceiveWithContext(ctx, &cfResp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close error is non-critical

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if !cfResp.Success {
		return "", ErrRenderingFailed
	}

	if strings.TrimSpace(cfResp.Result) == "" {
		return "", ErrEmptyContent
	}

	return cfResp.Result, nil
}
