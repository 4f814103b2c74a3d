package store

import "errors"

var (
	// ErrNotFound is returned when no cache entry exists for a domain
	ErrNotFound = errors.New("cache entry not found")
	// ErrUnsupportedDriver is returned when the configured cache driver is unknown
	ErrUnsupportedDriver = errors.New("unsupported cache driver")
	// ErrConnect is returned when the cache backend cannot be reached after all attempts
	ErrConnect = errors.New("unable to connect to cache backend")
	// ErrInvalidEntry is returned when a stored entry cannot be decoded
	ErrInvalidEntry = errors.New("invalid cache entry")
)
