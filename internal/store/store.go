package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DriverSQLite stores entries in a local SQLite database
	DriverSQLite = "sqlite"
	// DriverRedis stores entries in Redis
	DriverRedis = "redis"
	// DriverNone disables the cache
	DriverNone = "none"

	defaultConnectAttempts = 20
	defaultConnectDelay    = 1500 * time.Millisecond
)

// Entry is the cached analysis of one domain
type Entry struct {
	Domain       string
	SourceURL    string
	SummaryJSON  string
	InsightsJSON string
	RiskScore    float64
	UpdatedAt    time.Time
}

// Backend persists cache entries keyed by domain
type Backend interface {
	// Get returns the entry for domain or ErrNotFound
	Get(ctx context.Context, domain string) (Entry, error)
	// Upsert inserts or replaces the entry for its domain
	Upsert(ctx context.Context, entry Entry) error
	// Ping checks connectivity
	Ping(ctx context.Context) error
	// Close releases the backend's resources
	Close() error
}

// Config selects and locates the cache backend
type Config struct {
	// Driver is one of sqlite, redis or none
	Driver string
	// DSN is the SQLite file path or the Redis URL
	DSN string
	// ConnectAttempts bounds the startup connection attempts
	ConnectAttempts int
	// ConnectDelay is the pause between attempts
	ConnectDelay time.Duration
}

// Open connects to the configured backend, retrying with a fixed delay. A nil
// backend and nil error are returned when the cache is disabled.
func Open(ctx context.Context, cfg Config) (Backend, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == DriverNone {
		return nil, nil
	}

	if driver != DriverSQLite && driver != DriverRedis {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDriver, cfg.Driver)
	}

	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = defaultConnectAttempts
	}

	delay := cfg.ConnectDelay
	if delay <= 0 {
		delay = defaultConnectDelay
	}

	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		backend, err := connect(ctx, driver, cfg.DSN)
		if err == nil {
			return backend, nil
		}

		lastErr = err

		log.Warn().Err(err).Str("driver", driver).Int("attempt", attempt).Int("max_attempts", attempts).Msg("cache backend not ready")

		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrConnect, errors.Join(lastErr, ctx.Err()))
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrConnect, lastErr)
}

func connect(ctx context.Context, driver, dsn string) (Backend, error) {
	switch driver {
	case DriverRedis:
		return OpenRedis(ctx, dsn)
	default:
		return OpenSQLite(ctx, dsn)
	}
}
