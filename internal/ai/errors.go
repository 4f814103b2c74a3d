package ai

import "errors"

var (
	// ErrNotConfigured is returned when no model provider is configured
	ErrNotConfigured = errors.New("no ai provider configured")
	// ErrEmptyText is returned when there is no policy text to summarize
	ErrEmptyText = errors.New("policy text is empty")
	// ErrRequestFailed is returned when the request to the model provider fails
	ErrRequestFailed = errors.New("ai request failed")
	// ErrUnexpectedStatus is returned when the model provider responds with a non-200 status
	ErrUnexpectedStatus = errors.New("unexpected status from ai provider")
	// ErrEmptyCompletion is returned when the model returns no content
	ErrEmptyCompletion = errors.New("ai provider returned an empty completion")
	// ErrNoJSONObject is returned when the model output contains no JSON object
	ErrNoJSONObject = errors.New("no json object in model output")
	// ErrInvalidSummary is returned when the model output is not a usable summary
	ErrInvalidSummary = errors.New("model output is not a valid summary")
	// ErrNoRiskScore is returned when the model output carries no usable risk_score
	ErrNoRiskScore = errors.New("no risk score in model output")
)
