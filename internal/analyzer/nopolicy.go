package analyzer

import (
	"time"

	"github.com/amish-gaur/DataPriv/internal/types"
)

const (
	// NoPolicyRiskScore is the risk assigned when no policy could be found
	NoPolicyRiskScore = 75.0
	// NoPolicySourceURL is reported as the source when no policy could be found
	NoPolicySourceURL = "No privacy policy found"
	// noPolicyText fills the summary fields of the no-policy result
	noPolicyText = "Not specified - no privacy policy found"
)

// NoPolicyResult is the fixed result for a domain without a readable policy
func NoPolicyResult(domain string, now time.Time) *types.AnalysisResult {
	return &types.AnalysisResult{
		Domain:    domain,
		SourceURL: NoPolicySourceURL,
		Summary: types.PolicySummary{
			DataCollected: []string{},
			Purposes:      []string{},
			Sharing:       noPolicyText,
			Retention:     noPolicyText,
			UserRights:    noPolicyText,
		},
		RiskScore: NoPolicyRiskScore,
		Insights: types.EnhancedInsights{
			DataSource:       types.DataSourceNoPolicyFound,
			DataSensitivity:  types.RatingUnknown,
			UserControl:      types.RatingUnknown,
			Transparency:     types.RatingLow,
			Compliance:       types.RatingUnknown,
			KeyConcerns:      []string{"No privacy policy found", "Lack of transparency"},
			PrivacyStrengths: []string{},
			Attribution:      types.DefaultAttribution,
		},
		AnalyzedAt: now,
	}
}
