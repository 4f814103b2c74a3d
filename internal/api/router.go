package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	// generated OpenAPI document served under /swagger
	_ "github.com/amish-gaur/DataPriv/docs"
)

const (
	// defaultNotifyTimeout bounds a background high-risk notification
	defaultNotifyTimeout = 10 * time.Second
	// defaultCORSOrigin allows any browser origin
	defaultCORSOrigin = "*"
)

// RouterConfig holds the dependencies and settings for the HTTP router
type RouterConfig struct {
	// Analyzer runs and looks up privacy analyses
	Analyzer Analyzer
	// Notifier posts high-risk alerts, nil disables them
	Notifier Notifier
	// MaxBodySize limits request bodies in bytes, zero disables the limit
	MaxBodySize int64
	// AnalyzeTimeout bounds a single analysis request, zero disables the bound
	AnalyzeTimeout time.Duration
	// CORSOrigin is the allowed browser origin
	CORSOrigin string
	// MetricsHandler serves /metrics, defaults to the Prometheus default registry
	MetricsHandler http.Handler
}

// NewRouter creates a new chi router with all endpoints and middleware
func NewRouter(cfg RouterConfig) http.Handler {
	h := &Handler{
		analyzer:       cfg.Analyzer,
		notifier:       cfg.Notifier,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		maxBodySize:    cfg.MaxBodySize,
		analyzeTimeout: cfg.AnalyzeTimeout,
		notifyTimeout:  defaultNotifyTimeout,
	}

	origin := cfg.CORSOrigin
	if origin == "" {
		origin = defaultCORSOrigin
	}

	metrics := cfg.MetricsHandler
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Heartbeat("/ping"))

	// CORS for the browser extension
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-CSRF-Token")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)
		r.Post("/summarize", h.handleSummarize)
		r.Get("/sites/{domain}", h.handleSite)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Handle("/metrics", metrics)
	r.Get("/", h.handleRoot)

	return r
}
