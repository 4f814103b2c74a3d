// Package api exposes the privacy analysis pipeline over HTTP.
//
//	@title			Privacy Radar API
//	@version		1.0
//	@description	Privacy policy analysis and risk scoring service
//
//	@contact.name	Privacy Radar
//	@contact.url	https://github.com/amish-gaur/DataPriv
//
//	@license.name	MIT
//
//	@host		localhost:8080
//	@BasePath	/api
//
//	@schemes	http https
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/amish-gaur/DataPriv/internal/types"
)

const serviceName = "radar"

// Analyzer produces and looks up privacy analyses
type Analyzer interface {
	// Analyze runs the pipeline for the requested domain
	Analyze(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisResult, error)
	// Cached returns the fresh cached analysis for a domain
	Cached(ctx context.Context, domain string) (*types.AnalysisResult, error)
}

// Notifier alerts on high-risk analyses
type Notifier interface {
	// NotifyHighRisk posts an alert when the result warrants one and reports whether it did
	NotifyHighRisk(ctx context.Context, result *types.AnalysisResult) (bool, error)
}

// Handler manages API endpoints
type Handler struct {
	analyzer       Analyzer
	notifier       Notifier
	validate       *validator.Validate
	maxBodySize    int64
	analyzeTimeout time.Duration
	notifyTimeout  time.Duration
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// InfoResponse describes the service at the root path
type InfoResponse struct {
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
}

// handleHealth returns service health status
//
//	@Summary		Health check
//	@Description	Returns the health status of the radar service
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Router			/health [get]
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleRoot lists the available endpoints
func (h *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, InfoResponse{
		Service: serviceName,
		Endpoints: []string{
			"POST /api/summarize",
			"GET /api/sites/{domain}",
			"GET /api/health",
			"GET /metrics",
			"GET /swagger/",
		},
	})
}
