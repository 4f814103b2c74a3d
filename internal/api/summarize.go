package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/amish-gaur/DataPriv/internal/analyzer"
	"github.com/amish-gaur/DataPriv/internal/domain"
	"github.com/amish-gaur/DataPriv/internal/types"
)

// handleSummarize analyzes the privacy policy of the requested domain
//
//	@Summary		Analyze domain
//	@Description	Locates the privacy policy of a domain, summarizes it and scores the privacy risk
//	@Tags			analysis
//	@Accept			json
//	@Produce		json
//	@Param			request	body		types.AnalysisRequest	true	"Domain to analyze and optional candidate policy urls"
//	@Success		200		{object}	AnalysisResponse
//	@Failure		400		{object}	AnalysisResponse
//	@Failure		500		{object}	AnalysisResponse
//	@Failure		504		{object}	AnalysisResponse
//	@Router			/summarize [post]
func (h *Handler) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req types.AnalysisRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondAnalysisError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondAnalysisError(w, http.StatusBadRequest, errCodeValidation, err.Error())
		return
	}

	if _, err := domain.Normalize(req.Domain); err != nil {
		respondAnalysisError(w, http.StatusBadRequest, errCodeValidation, ErrDomainRequired.Error())
		return
	}

	ctx := r.Context()

	if h.analyzeTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, h.analyzeTimeout)
		defer cancel()
	}

	result, err := h.analyzer.Analyze(ctx, req)
	if err != nil {
		if errors.Is(err, analyzer.ErrInvalidDomain) {
			respondAnalysisError(w, http.StatusBadRequest, errCodeValidation, ErrDomainRequired.Error())
			return
		}

		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			log.Warn().Err(err).Str("domain", req.Domain).Msg("analysis timed out")
			respondAnalysisError(w, http.StatusGatewayTimeout, errCodeTimeout, ErrAnalysisTimeout.Error())

			return
		}

		log.Error().Err(err).Str("domain", req.Domain).Msg("analysis failed")
		respondAnalysisError(w, http.StatusInternalServerError, errCodeInternal, ErrAnalysisFailed.Error())

		return
	}

	h.notify(r.Context(), result)

	writeJSON(w, http.StatusOK, AnalysisResponse{
		Success: true,
		Data:    result,
	})
}

// handleSite returns the fresh cached analysis of a site without computing one
//
//	@Summary		Cached site analysis
//	@Description	Returns the fresh cached analysis of a site without fetching its policy
//	@Tags			analysis
//	@Produce		json
//	@Param			domain	path		string	true	"Site domain or url"
//	@Success		200		{object}	AnalysisResponse
//	@Failure		400		{object}	AnalysisResponse
//	@Failure		404		{object}	AnalysisResponse
//	@Failure		500		{object}	AnalysisResponse
//	@Router			/sites/{domain} [get]
func (h *Handler) handleSite(w http.ResponseWriter, r *http.Request) {
	site := chi.URLParam(r, "domain")

	result, err := h.analyzer.Cached(r.Context(), site)
	if err != nil {
		switch {
		case errors.Is(err, analyzer.ErrInvalidDomain):
			respondAnalysisError(w, http.StatusBadRequest, errCodeValidation, ErrDomainRequired.Error())
		case errors.Is(err, analyzer.ErrNotCached):
			respondAnalysisError(w, http.StatusNotFound, errCodeNotFound, ErrNotCached.Error())
		default:
			log.Error().Err(err).Str("domain", site).Msg("cached lookup failed")
			respondAnalysisError(w, http.StatusInternalServerError, errCodeInternal, ErrAnalysisFailed.Error())
		}

		return
	}

	writeJSON(w, http.StatusOK, AnalysisResponse{
		Success: true,
		Data:    result,
	})
}

// notify posts a high-risk alert in the background so the response is not delayed
func (h *Handler) notify(ctx context.Context, result *types.AnalysisResult) {
	if h.notifier == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.notifyTimeout)

	go func() {
		defer cancel()

		sent, err := h.notifier.NotifyHighRisk(ctx, result)
		if err != nil {
			log.Warn().Err(err).Str("domain", result.Domain).Msg("slack notification failed")
			return
		}

		if sent {
			log.Info().Str("domain", result.Domain).Float64("risk_score", result.RiskScore).Msg("high risk alert sent")
		}
	}()
}
