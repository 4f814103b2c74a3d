package store

import (
	"encoding/json"
	"fmt"

	"github.com/amish-gaur/DataPriv/internal/types"
)

// EntryFromResult encodes an analysis result as a cache entry
func EntryFromResult(result *types.AnalysisResult) (Entry, error) {
	summary, err := json.Marshal(result.Summary)
	if err != nil {
		return Entry{}, fmt.Errorf("encoding summary: %w", err)
	}

	insights, err := json.Marshal(result.Insights)
	if err != nil {
		return Entry{}, fmt.Errorf("encoding insights: %w", err)
	}

	return Entry{
		Domain:       result.Domain,
		SourceURL:    result.SourceURL,
		SummaryJSON:  string(summary),
		InsightsJSON: string(insights),
		RiskScore:    result.RiskScore,
		UpdatedAt:    result.AnalyzedAt,
	}, nil
}

// Result decodes the entry into a cached analysis result. The data source is
// always reported as cached; entries written without insights get defaults.
func (e Entry) Result() (*types.AnalysisResult, error) {
	var summary types.PolicySummary
	if err := json.Unmarshal([]byte(e.SummaryJSON), &summary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	insights := types.NewHeuristicInsights()
	if e.InsightsJSON != "" {
		if err := json.Unmarshal([]byte(e.InsightsJSON), &insights); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
		}
	}

	insights.DataSource = types.DataSourceCached

	if summary.DataCollected == nil {
		summary.DataCollected = []string{}
	}

	if summary.Purposes == nil {
		summary.Purposes = []string{}
	}

	if insights.KeyConcerns == nil {
		insights.KeyConcerns = []string{}
	}

	if insights.PrivacyStrengths == nil {
		insights.PrivacyStrengths = []string{}
	}

	return &types.AnalysisResult{
		Domain:     e.Domain,
		SourceURL:  e.SourceURL,
		Summary:    summary,
		RiskScore:  e.RiskScore,
		Insights:   insights,
		AnalyzedAt: e.UpdatedAt,
	}, nil
}
