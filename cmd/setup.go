package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/amish-gaur/DataPriv/config"
	"github.com/amish-gaur/DataPriv/internal/ai"
	"github.com/amish-gaur/DataPriv/internal/analyzer"
	"github.com/amish-gaur/DataPriv/internal/cloudflare"
	"github.com/amish-gaur/DataPriv/internal/fetch"
	"github.com/amish-gaur/DataPriv/internal/reputation"
	"github.com/amish-gaur/DataPriv/internal/store"
)

// setupAnalyzer wires the analysis pipeline from config. The returned cleanup
// closes the cache backend.
func setupAnalyzer(ctx context.Context, cfg *config.Config) (*analyzer.Service, func(), error) {
	fetcher, err := setupFetcher(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("setting up fetcher: %w", err)
	}

	cache, err := setupCache(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("setting up cache: %w", err)
	}

	cleanup := func() {
		if err := cache.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close cache")
		}
	}

	opts := []analyzer.Option{
		analyzer.WithAITimeout(cfg.Analyzer.AITimeout),
		analyzer.WithRunTimeout(cfg.Analyzer.Timeout),
		analyzer.WithMinTextLength(cfg.Analyzer.MinTextLength),
	}

	if cache.Enabled() {
		opts = append(opts, analyzer.WithCache(cache))
	}

	if summarizer := setupAI(cfg); summarizer != nil {
		opts = append(opts, analyzer.WithSummarizer(summarizer))
	}

	svc, err := analyzer.New(fetcher, setupBlender(cfg), opts...)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("setting up analyzer: %w", err)
	}

	return svc, cleanup, nil
}

// setupFetcher initializes the httpx page fetcher with the optional render fallback
func setupFetcher(cfg *config.Config) (*fetch.HTTPXFetcher, error) {
	opts := []fetch.Option{
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithMaxRedirects(cfg.Fetch.MaxRedirects),
		fetch.WithMaxBodySize(cfg.Fetch.MaxBodySize),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
	}

	if renderer := setupCloudflare(cfg); renderer != nil {
		opts = append(opts, fetch.WithRenderer(renderer))
	}

	return fetch.NewHTTPXFetcher(opts...)
}

// setupCloudflare initializes the Cloudflare client from config, returning nil when unconfigured
func setupCloudflare(cfg *config.Config) *cloudflare.Client {
	if cfg.Cloudflare.AccountID == "" || cfg.Cloudflare.APIToken == "" {
		log.Info().Msg("cloudflare rendering not configured, skipping")
		return nil
	}

	client, err := cloudflare.New(
		cfg.Cloudflare.AccountID,
		cfg.Cloudflare.APIToken,
		cloudflare.WithNavigationTimeout(cfg.Cloudflare.NavigationTimeout),
		cloudflare.WithHTTPClient(&http.Client{Timeout: cfg.Cloudflare.RequestTimeout}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize cloudflare client")
		return nil
	}

	log.Info().Msg("cloudflare rendering configured")

	return client
}

// setupAI initializes the model summarizer from config, returning nil when unconfigured
func setupAI(cfg *config.Config) *ai.Client {
	client, err := ai.New(
		ai.Config{
			OpenAIAPIKey:  cfg.AI.OpenAIAPIKey,
			OpenAIModel:   cfg.AI.OpenAIModel,
			OpenAIBaseURL: cfg.AI.OpenAIBaseURL,
			OllamaHost:    cfg.AI.OllamaHost,
			OllamaModel:   cfg.AI.OllamaModel,
		},
		ai.WithHTTPClient(&http.Client{Timeout: cfg.AI.RequestTimeout}),
		ai.WithMaxInputChars(cfg.AI.MaxInputChars),
		ai.WithMaxTokens(cfg.AI.MaxTokens),
	)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			log.Info().Msg("ai summaries not configured, skipping")
		} else {
			log.Warn().Err(err).Msg("failed to initialize ai client")
		}

		return nil
	}

	log.Info().Str("provider", client.ProviderName()).Msg("ai summaries configured")

	return client
}

// setupBlender initializes the reputation blender; without a reputation source it scores heuristically
func setupBlender(cfg *config.Config) *reputation.Blender {
	opts := []reputation.BlenderOption{
		reputation.WithMemo(reputation.NewMemo(cfg.Reputation.MemoTTL)),
		reputation.WithWeight(cfg.Reputation.Weight),
	}

	if !cfg.Reputation.Enabled {
		log.Info().Msg("reputation lookups disabled, skipping")
		return reputation.NewBlender(nil, opts...)
	}

	client, err := reputation.New(
		reputation.WithBaseURL(cfg.Reputation.BaseURL),
		reputation.WithHTTPClient(&http.Client{Timeout: cfg.Reputation.RequestTimeout}),
		reputation.WithRateLimit(cfg.Reputation.RequestsPerSecond, cfg.Reputation.Burst),
	)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize reputation client")
		return reputation.NewBlender(nil, opts...)
	}

	log.Info().Str("base_url", cfg.Reputation.BaseURL).Msg("reputation lookups configured")

	return reputation.NewBlender(client, opts...)
}

// setupCache opens the configured cache backend and wraps it in a manager
func setupCache(ctx context.Context, cfg *config.Config) (*store.Manager, error) {
	backend, err := store.Open(ctx, store.Config{
		Driver:          cfg.Cache.Driver,
		DSN:             cfg.Cache.DSN,
		ConnectAttempts: cfg.Cache.ConnectAttempts,
		ConnectDelay:    cfg.Cache.ConnectDelay,
	})
	if err != nil {
		return nil, err
	}

	if backend == nil {
		log.Info().Msg("analysis cache disabled, skipping")
	} else {
		log.Info().Str("driver", cfg.Cache.Driver).Dur("ttl", cfg.Cache.TTL).Msg("analysis cache configured")
	}

	return store.NewManager(backend, store.WithTTL(cfg.Cache.TTL)), nil
}
