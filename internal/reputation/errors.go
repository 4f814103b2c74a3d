package reputation

import "errors"

var (
	// ErrRequestFailed is returned when the request to the reputation source fails
	ErrRequestFailed = errors.New("reputation request failed")
	// ErrUnexpectedStatus is returned when the reputation source responds with an unexpected status
	ErrUnexpectedStatus = errors.New("unexpected status from reputation source")
	// ErrProductNotFound is returned when the reputation source has no record for the domain
	ErrProductNotFound = errors.New("no reputation record for domain")
	// ErrInvalidResponse is returned when the reputation record cannot be decoded
	ErrInvalidResponse = errors.New("invalid reputation response")
)
