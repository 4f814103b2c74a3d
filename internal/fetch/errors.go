package fetch

import "errors"

var (
	// ErrRequestFailed is returned when the page request cannot be completed
	ErrRequestFailed = errors.New("page request failed")
	// ErrUnexpectedStatus is returned when the page responds with a non-200 status
	ErrUnexpectedStatus = errors.New("unexpected page status")
	// ErrEmptyContent is returned when the page has no readable text
	ErrEmptyContent = errors.New("page has no readable text")
)
