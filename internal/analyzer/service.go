package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"

	"github.com/amish-gaur/DataPriv/internal/ai"
	"github.com/amish-gaur/DataPriv/internal/discovery"
	"github.com/amish-gaur/DataPriv/internal/domain"
	"github.com/amish-gaur/DataPriv/internal/extract"
	"github.com/amish-gaur/DataPriv/internal/fetch"
	"github.com/amish-gaur/DataPriv/internal/scoring"
	"github.com/amish-gaur/DataPriv/internal/store"
	"github.com/amish-gaur/DataPriv/internal/types"
)

const (
	// DefaultAITimeout is how long the pipeline waits for the AI summary after launching it
	DefaultAITimeout = 8 * time.Second
	// DefaultMinTextLength is the shortest trimmed page text accepted as a policy
	DefaultMinTextLength = 100
	// DefaultRunTimeout bounds one shared analysis run independently of its callers
	DefaultRunTimeout = time.Minute
	// DefaultPersistTimeout bounds the cache write of a computed result
	DefaultPersistTimeout = 5 * time.Second
)

// PageFetcher retrieves policy pages
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (fetch.Page, error)
}

// Summarizer produces best-effort AI summaries
type Summarizer interface {
	Summarize(ctx context.Context, text string) ai.Result
}

// RiskBlender scores policy text for a domain
type RiskBlender interface {
	Blend(ctx context.Context, text, domain string) (float64, types.EnhancedInsights)
}

// Cache stores analyses between requests
type Cache interface {
	LookupFresh(ctx context.Context, domain string) (store.Entry, bool)
	Persist(ctx context.Context, entry store.Entry)
}

// Service runs the analysis pipeline: cache check, URL selection, fetch,
// extraction with optional AI augmentation, scoring, blending and persistence.
type Service struct {
	fetcher        PageFetcher
	blender        RiskBlender
	summarizer     Summarizer
	cache          Cache
	aiTimeout      time.Duration
	runTimeout     time.Duration
	persistTimeout time.Duration
	minTextLength  int
	now            func() time.Time
	group          singleflight.Group
}

// Option configures the Service
type Option func(*Service)

// WithSummarizer enables AI summaries
func WithSummarizer(s Summarizer) Option {
	return func(svc *Service) {
		if s != nil {
			svc.summarizer = s
		}
	}
}

// WithCache enables result caching
func WithCache(c Cache) Option {
	return func(svc *Service) {
		if c != nil {
			svc.cache = c
		}
	}
}

// WithAITimeout sets the AI join deadline measured from launch
func WithAITimeout(d time.Duration) Option {
	return func(svc *Service) {
		if d > 0 {
			svc.aiTimeout = d
		}
	}
}

// WithRunTimeout bounds a shared analysis run
func WithRunTimeout(d time.Duration) Option {
	return func(svc *Service) {
		if d > 0 {
			svc.runTimeout = d
		}
	}
}

// WithPersistTimeout bounds the cache write of a computed result
func WithPersistTimeout(d time.Duration) Option {
	return func(svc *Service) {
		if d > 0 {
			svc.persistTimeout = d
		}
	}
}

// WithMinTextLength sets the shortest page text accepted as a policy
func WithMinTextLength(n int) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.minTextLength = n
		}
	}
}

// New creates the analysis service
func New(fetcher PageFetcher, blender RiskBlender, opts ...Option) (*Service, error) {
	if fetcher == nil {
		return nil, ErrMissingFetcher
	}

	if blender == nil {
		return nil, ErrMissingBlender
	}

	svc := &Service{
		fetcher:        fetcher,
		blender:        blender,
		aiTimeout:      DefaultAITimeout,
		runTimeout:     DefaultRunTimeout,
		persistTimeout: DefaultPersistTimeout,
		minTextLength:  DefaultMinTextLength,
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Analyze produces the privacy analysis for the requested domain. An invalid
// domain is reported as ErrInvalidDomain and an expired or cancelled ctx as its
// context error; every other failure degrades to a fallback result.
// Concurrent requests for the same domain share one run, which is detached from
// any single caller so that one caller leaving does not fail the others.
func (s *Service) Analyze(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisResult, error) {
	host, err := domain.Normalize(req.Domain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomain, err)
	}

	pending := s.group.DoChan(host, func() (any, error) {
		start := time.Now()

		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.runTimeout)
		defer cancel()

		result, err := s.analyze(runCtx, host, req.CandidateURLs)
		if err != nil {
			return nil, err
		}

		analysesTotal.WithLabelValues(string(result.Insights.DataSource)).Inc()
		analysisDuration.Observe(time.Since(start).Seconds())

		return result, nil
	})

	select {
	case res := <-pending:
		if res.Err != nil {
			return nil, res.Err
		}

		result := *res.Val.(*types.AnalysisResult)

		return &result, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("analyzing %s: %w", host, ctx.Err())
	}
}

// Cached returns the fresh cached analysis for a domain without computing one
func (s *Service) Cached(ctx context.Context, rawDomain string) (*types.AnalysisResult, error) {
	host, err := domain.Normalize(rawDomain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDomain, err)
	}

	result, ok := s.cached(ctx, host)
	if !ok {
		return nil, ErrNotCached
	}

	return result, nil
}

func (s *Service) analyze(ctx context.Context, host string, candidates []string) (*types.AnalysisResult, error) {
	if result, ok := s.cached(ctx, host); ok {
		cacheLookups.WithLabelValues(cacheHit).Inc()
		log.Debug().Str("domain", host).Msg("serving cached analysis")

		return result, nil
	}

	cacheLookups.WithLabelValues(cacheMiss).Inc()

	selected, err := discovery.SelectURL(host, candidates)
	if err != nil {
		log.Info().Err(err).Str("domain", host).Msg("no candidate policy url")
		return NoPolicyResult(host, s.now().UTC()), nil
	}

	page, sourceURL, ok := s.fetchPolicy(ctx, host, selected)
	if !ok {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetching policy for %s: %w", host, err)
		}

		log.Info().Str("domain", host).Msg("no readable privacy policy found")

		return NoPolicyResult(host, s.now().UTC()), nil
	}

	launched := time.Now()

	aiCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	pending := s.launchSummary(aiCtx, page.Text)

	summary := extract.Extract(page.Text)
	risk, insights := s.blender.Blend(ctx, page.Text, host)

	if res, ok := s.awaitSummary(ctx, host, pending, launched); ok {
		if res.OK() {
			summary = *res.Summary
		}

		insights.AIRiskScore = res.RiskScore
	}

	result := &types.AnalysisResult{
		Domain:     host,
		SourceURL:  sourceURL,
		SourceType: discovery.ClassifyDocument(sourceURL, page.Title, page.Text),
		Summary:    summary,
		RiskScore:  scoring.Clamp(risk),
		Insights:   insights,
		AnalyzedAt: s.now().UTC(),
	}

	s.persist(ctx, result)

	log.Debug().Str("domain", host).Str("source_url", sourceURL).Float64("risk_score", result.RiskScore).
		Str("data_source", string(insights.DataSource)).Msg("analysis complete")

	return result, nil
}

// cached returns the fresh cached result for host when one can be decoded
func (s *Service) cached(ctx context.Context, host string) (*types.AnalysisResult, bool) {
	if s.cache == nil {
		return nil, false
	}

	entry, ok := s.cache.LookupFresh(ctx, host)
	if !ok {
		return nil, false
	}

	result, err := entry.Result()
	if err != nil {
		log.Warn().Err(err).Str("domain", host).Msg("discarding unreadable cache entry")
		return nil, false
	}

	result.SourceType = discovery.ClassifyDocument(result.SourceURL, "", "")

	return result, true
}

// fetchPolicy fetches the selected URL and then the alternates until one yields
// enough text. The URL that produced the text is returned with the page.
func (s *Service) fetchPolicy(ctx context.Context, host, selected string) (fetch.Page, string, bool) {
	urls := lo.Uniq(append([]string{selected}, discovery.AlternateURLs(host)...))

	for _, u := range urls {
		page, err := s.fetcher.Fetch(ctx, u)
		if err != nil {
			log.Debug().Err(err).Str("url", u).Msg("policy fetch failed")
		}

		if utf8.RuneCountInString(strings.TrimSpace(page.Text)) >= s.minTextLength {
			return page, u, true
		}

		if ctx.Err() != nil {
			break
		}
	}

	return fetch.Page{}, "", false
}

// launchSummary starts the AI summary in the background. A nil channel is
// returned when AI is disabled.
func (s *Service) launchSummary(ctx context.Context, text string) <-chan ai.Result {
	if s.summarizer == nil {
		return nil
	}

	return lo.Async(func() ai.Result {
		return s.summarizer.Summarize(ctx, text)
	})
}

// awaitSummary joins the AI result, waiting no longer than the AI timeout
// measured from launch. A result that is already complete is always taken,
// even when the deadline has passed. ok is false when no result arrived.
func (s *Service) awaitSummary(ctx context.Context, host string, pending <-chan ai.Result, launched time.Time) (ai.Result, bool) {
	if pending == nil {
		summariesTotal.WithLabelValues(summaryDisabled).Inc()
		return ai.Result{}, false
	}

	select {
	case res := <-pending:
		return s.recordSummary(host, res), true
	default:
	}

	timer := time.NewTimer(time.Until(launched.Add(s.aiTimeout)))
	defer timer.Stop()

	select {
	case res := <-pending:
		return s.recordSummary(host, res), true
	case <-timer.C:
	case <-ctx.Done():
	}

	select {
	case res := <-pending:
		return s.recordSummary(host, res), true
	default:
	}

	summariesTotal.WithLabelValues(summaryTimeout).Inc()
	log.Warn().Err(ErrSummaryTimeout).Str("domain", host).Dur("timeout", s.aiTimeout).Msg("using heuristic summary")

	return ai.Result{}, false
}

// recordSummary counts the AI outcome and logs failures
func (s *Service) recordSummary(host string, res ai.Result) ai.Result {
	if errors.Is(res.Err, context.DeadlineExceeded) {
		summariesTotal.WithLabelValues(summaryTimeout).Inc()
		log.Warn().Err(ErrSummaryTimeout).Str("domain", host).Dur("timeout", s.aiTimeout).Msg("using heuristic summary")

		return res
	}

	if !res.OK() {
		summariesTotal.WithLabelValues(summaryFailed).Inc()
		log.Warn().Err(res.Err).Str("domain", host).Str("provider", res.Provider).Msg("ai summary failed, using heuristic summary")

		return res
	}

	summariesTotal.WithLabelValues(summaryOK).Inc()

	return res
}

// persist stores a computed result; the write outlives request cancellation but not persistTimeout
func (s *Service) persist(ctx context.Context, result *types.AnalysisResult) {
	if s.cache == nil {
		return
	}

	entry, err := store.EntryFromResult(result)
	if err != nil {
		log.Error().Err(err).Str("domain", result.Domain).Msg("encoding cache entry")
		return
	}

	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.persistTimeout)
	defer cancel()

	s.cache.Persist(persistCtx, entry)
}
