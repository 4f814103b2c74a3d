package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
	// ErrDomainRequired is returned when the request does not name a usable domain
	ErrDomainRequired = errors.New("a valid domain is required")
	// ErrAnalysisFailed is returned when the analysis could not be produced
	ErrAnalysisFailed = errors.New("analysis failed")
	// ErrAnalysisTimeout is returned when the analysis did not finish before the request deadline
	ErrAnalysisTimeout = errors.New("analysis timed out")
	// ErrNotCached is returned when a site has no fresh cached analysis
	ErrNotCached = errors.New("no cached analysis for site")
)
