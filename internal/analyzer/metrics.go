package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	cacheHit  = "hit"
	cacheMiss = "miss"

	summaryOK       = "ok"
	summaryFailed   = "failed"
	summaryTimeout  = "timeout"
	summaryDisabled = "disabled"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "radar_analyses_total",
		Help: "Completed analyses by the data source of the risk score.",
	}, []string{"data_source"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "radar_cache_lookups_total",
		Help: "Cache lookups by result.",
	}, []string{"result"})

	summariesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "radar_summaries_total",
		Help: "AI summary attempts by outcome.",
	}, []string{"outcome"})

	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "radar_analysis_duration_seconds",
		Help:    "Time spent producing an analysis, including cache hits.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 20, 30},
	})
)
