package cloudflare

import "errors"

var (
	// ErrMissingAccountID is returned by New without an account id
	ErrMissingAccountID = errors.New("cloudflare: account id not configured")
	// ErrMissingAPIToken is returned by New without an api token
	ErrMissingAPIToken = errors.New("cloudflare: api token not configured")
	// ErrRequestFailed wraps transport failures talking to the rendering api
	ErrRequestFailed = errors.New("cloudflare: rendering request failed")
	// ErrUnexpectedStatus is returned when the rendering api answers with a non-200 status
	ErrUnexpectedStatus = errors.New("cloudflare: unexpected rendering api status")
	// ErrRenderingFailed is returned when the api reports success=false
	ErrRenderingFailed = errors.New("cloudflare: page rendering failed")
	// ErrEmptyContent is returned when rendering produced a blank document
	ErrEmptyContent = errors.New("cloudflare: rendered page was empty")
)
