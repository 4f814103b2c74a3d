package types

import "time"

// DataSource identifies which scoring path produced an analysis result
type DataSource string

const (
	// DataSourceHeuristic marks results scored purely from keyword weights
	DataSourceHeuristic DataSource = "heuristic"
	// DataSourcePrivacyReputation marks results scored only from the reputation record
	DataSourcePrivacyReputation DataSource = "privacyReputation"
	// DataSourceBlended marks results that blend the reputation and heuristic scores
	DataSourceBlended DataSource = "blended"
	// DataSourceCached marks results served from the cache without recomputation
	DataSourceCached DataSource = "cached"
	// DataSourceNoPolicyFound marks the fixed result returned when no policy text was found
	DataSourceNoPolicyFound DataSource = "noPolicyFound"
)

// Rating is a qualitative low/medium/high assessment
type Rating string

const (
	// RatingLow is the lowest qualitative rating
	RatingLow Rating = "low"
	// RatingMedium is the default qualitative rating
	RatingMedium Rating = "medium"
	// RatingHigh is the highest qualitative rating
	RatingHigh Rating = "high"
	// RatingUnknown is used when there is nothing to assess
	RatingUnknown Rating = "unknown"
)

// DefaultAttribution credits the built-in analysis when no third-party data was used
const DefaultAttribution = "Privacy Radar analysis"

// AnalysisRequest is a request to analyze the privacy policy of a domain
type AnalysisRequest struct {
	Domain        string   `json:"domain" validate:"required,max=253"`
	CandidateURLs []string `json:"candidateUrls,omitempty" validate:"omitempty,max=50,dive,max=2048"`
}

// PolicySummary holds the privacy-relevant facts extracted from a policy
type PolicySummary struct {
	DataCollected []string `json:"dataCollected"`
	Purposes      []string `json:"purposes"`
	Sharing       string   `json:"sharing"`
	Retention     string   `json:"retention"`
	UserRights    string   `json:"userRights,omitempty"`
}

// EnhancedInsights describes where a risk score came from along with qualitative ratings
type EnhancedInsights struct {
	DataSource          DataSource `json:"dataSource"`
	ReputationAvailable bool       `json:"reputationAvailable"`
	ReputationScore     *float64   `json:"reputationScore,omitempty"`
	DataSensitivity     Rating     `json:"dataSensitivity"`
	UserControl         Rating     `json:"userControl"`
	Transparency        Rating     `json:"transparency"`
	Compliance          Rating     `json:"compliance"`
	KeyConcerns         []string   `json:"keyConcerns"`
	PrivacyStrengths    []string   `json:"privacyStrengths"`
	Attribution         string     `json:"attribution"`
	HeuristicScore      *float64   `json:"heuristicScore,omitempty"`
	AIRiskScore         *float64   `json:"aiRiskScore,omitempty"`
}

// AnalysisResult is the response for a single domain analysis
type AnalysisResult struct {
	Domain     string           `json:"domain"`
	SourceURL  string           `json:"sourceUrl"`
	SourceType string           `json:"sourceType,omitempty"`
	Summary    PolicySummary    `json:"summary"`
	RiskScore  float64          `json:"riskScore"`
	Insights   EnhancedInsights `json:"insights"`
	AnalyzedAt time.Time        `json:"analyzedAt"`
}

// NewHeuristicInsights returns insights with default ratings for the keyword-only scoring path
func NewHeuristicInsights() EnhancedInsights {
	return EnhancedInsights{
		DataSource:       DataSourceHeuristic,
		DataSensitivity:  RatingMedium,
		UserControl:      RatingMedium,
		Transparency:     RatingMedium,
		Compliance:       RatingMedium,
		KeyConcerns:      []string{},
		PrivacyStrengths: []string{},
		Attribution:      DefaultAttribution,
	}
}
