package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var writeFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "radar_cache_write_failures_total",
	Help: "Cache writes that failed and were skipped.",
})
