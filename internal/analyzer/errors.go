package analyzer

import "errors"

var (
	// ErrInvalidDomain is returned when the requested domain is empty or malformed
	ErrInvalidDomain = errors.New("invalid domain")
	// ErrSummaryTimeout is reported when the AI summary misses its deadline
	ErrSummaryTimeout = errors.New("ai summary timed out")
	// ErrNotCached is returned when no fresh cached analysis exists for a domain
	ErrNotCached = errors.New("no fresh cached analysis")
	// ErrMissingFetcher is returned when the service is created without a page fetcher
	ErrMissingFetcher = errors.New("page fetcher is required")
	// ErrMissingBlender is returned when the service is created without a risk blender
	ErrMissingBlender = errors.New("risk blender is required")
)
