package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces cache keys in a shared Redis
const redisKeyPrefix = "radar:site:"

// Redis is a Backend over a Redis server. Entries never expire in Redis;
// freshness is decided by the Manager.
type Redis struct {
	client *redis.Client
}

// redisRecord is the JSON value stored per domain
type redisRecord struct {
	Domain       string  `json:"domain"`
	SourceURL    string  `json:"sourceUrl"`
	SummaryJSON  string  `json:"summaryJson"`
	InsightsJSON string  `json:"insightsJson"`
	RiskScore    float64 `json:"riskScore"`
	UpdatedAt    int64   `json:"updatedAt"`
}

// OpenRedis connects to the Redis server at url and verifies it responds
func OpenRedis(ctx context.Context, url string) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Redis{client: client}, nil
}

func redisKey(domain string) string {
	return redisKeyPrefix + domain
}

// Get implements Backend
func (r *Redis) Get(ctx context.Context, domain string) (Entry, error) {
	data, err := r.client.Get(ctx, redisKey(domain)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, ErrNotFound
	}

	if err != nil {
		return Entry{}, fmt.Errorf("reading entry %s: %w", domain, err)
	}

	var rec redisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	return Entry{
		Domain:       rec.Domain,
		SourceURL:    rec.SourceURL,
		SummaryJSON:  rec.SummaryJSON,
		InsightsJSON: rec.InsightsJSON,
		RiskScore:    rec.RiskScore,
		UpdatedAt:    time.UnixMilli(rec.UpdatedAt).UTC(),
	}, nil
}

// Upsert implements Backend
func (r *Redis) Upsert(ctx context.Context, entry Entry) error {
	data, err := json.Marshal(redisRecord{
		Domain:       entry.Domain,
		SourceURL:    entry.SourceURL,
		SummaryJSON:  entry.SummaryJSON,
		InsightsJSON: entry.InsightsJSON,
		RiskScore:    entry.RiskScore,
		UpdatedAt:    entry.UpdatedAt.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("encoding entry %s: %w", entry.Domain, err)
	}

	if err := r.client.Set(ctx, redisKey(entry.Domain), data, 0).Err(); err != nil {
		return fmt.Errorf("upserting entry %s: %w", entry.Domain, err)
	}

	return nil
}

// Ping implements Backend
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close implements Backend
func (r *Redis) Close() error {
	return r.client.Close()
}
