package scoring

import "strings"

const (
	// MinScore is the lowest risk score
	MinScore = 0.0
	// MaxScore is the highest risk score
	MaxScore = 99.0
)

// Weight is a keyword and the amount each occurrence adds to the risk score
type Weight struct {
	Keyword string
	Value   float64
}

// RiskWeights raise the score for every occurrence of the keyword
var RiskWeights = []Weight{
	{Keyword: "sell", Value: 20},
	{Keyword: "social security", Value: 20},
	{Keyword: "biometric", Value: 18},
	{Keyword: "data broker", Value: 15},
	{Keyword: "third party", Value: 12},
	{Keyword: "advertis", Value: 10},
	{Keyword: "retain indefinitely", Value: 10},
	{Keyword: "location", Value: 10},
	{Keyword: "share", Value: 8},
	{Keyword: "tracking", Value: 8},
	{Keyword: "health", Value: 6},
	{Keyword: "cookie", Value: 6},
}

// SafeWeights lower the score for every occurrence of the keyword
var SafeWeights = []Weight{
	{Keyword: "do not sell", Value: -15},
	{Keyword: "no sale", Value: -15},
	{Keyword: "delete your data", Value: -10},
	{Keyword: "data minimization", Value: -8},
	{Keyword: "opt-out", Value: -8},
	{Keyword: "opt out", Value: -8},
	{Keyword: "encrypt", Value: -6},
	{Keyword: "gdpr", Value: -5},
	{Keyword: "ccpa", Value: -5},
}

// Score computes the heuristic risk score of policy text. Every non-overlapping
// occurrence of a keyword contributes its weight; the sum is clamped to [0, 99].
func Score(text string) float64 {
	lower := strings.ToLower(text)

	total := weigh(lower, RiskWeights) + weigh(lower, SafeWeights)

	return Clamp(total)
}

// Clamp bounds a score to the [MinScore, MaxScore] range
func Clamp(score float64) float64 {
	return max(MinScore, min(MaxScore, score))
}

// weigh sums occurrence counts multiplied by weights for one table
func weigh(lower string, weights []Weight) float64 {
	var total float64

	for _, w := range weights {
		total += float64(strings.Count(lower, w.Keyword)) * w.Value
	}

	return total
}
