package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/amish-gaur/DataPriv/internal/scoring"
	"github.com/amish-gaur/DataPriv/internal/types"
)

const unspecified = "unspecified"

// summaryKeys are the keys the model is asked to produce
var summaryKeys = []string{"data_collected", "purposes", "sharing", "retention", "user_rights"}

// modelSummary is the summary as returned by the model
type modelSummary struct {
	DataCollected flexibleList `json:"data_collected"`
	Purposes      flexibleList `json:"purposes"`
	Sharing       flexibleText `json:"sharing"`
	Retention     flexibleText `json:"retention"`
	UserRights    flexibleText `json:"user_rights"`
}

// flexibleList accepts a JSON array of strings or a single string
type flexibleList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *flexibleList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}

	if strings.TrimSpace(single) != "" {
		*l = []string{single}
	}

	return nil
}

// flexibleText accepts a JSON string or an array of strings, which is joined
type flexibleText string

// UnmarshalJSON implements json.Unmarshaler
func (t *flexibleText) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = flexibleText(single)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}

	*t = flexibleText(strings.Join(cleanList(list), ", "))

	return nil
}

// ParseSummary extracts a policy summary from raw model output. The JSON object
// is taken from the first '{' to the last '}' so prose around it is ignored.
func ParseSummary(raw string) (*types.PolicySummary, error) {
	body, err := jsonObject(raw)
	if err != nil {
		return nil, err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSummary, err)
	}

	if !lo.SomeBy(summaryKeys, func(k string) bool { _, ok := keys[k]; return ok }) {
		return nil, fmt.Errorf("%w: none of the summary keys present", ErrInvalidSummary)
	}

	var parsed modelSummary
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSummary, err)
	}

	dataCollected := lo.Map(cleanList(parsed.DataCollected), func(s string, _ int) string {
		return strings.ToLower(s)
	})
	dataCollected = lo.Uniq(dataCollected)
	slices.Sort(dataCollected)

	return &types.PolicySummary{
		DataCollected: dataCollected,
		Purposes:      lo.Uniq(cleanList(parsed.Purposes)),
		Sharing:       orUnspecified(string(parsed.Sharing)),
		Retention:     orUnspecified(string(parsed.Retention)),
		UserRights:    strings.TrimSpace(string(parsed.UserRights)),
	}, nil
}

// ParseRiskScore extracts the model's risk_score from raw output, clamped to
// the risk range. The value may be a JSON number or a numeric string.
func ParseRiskScore(raw string) (float64, error) {
	body, err := jsonObject(raw)
	if err != nil {
		return 0, err
	}

	var parsed struct {
		RiskScore json.RawMessage `json:"risk_score"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.RiskScore) == 0 || string(parsed.RiskScore) == "null" {
		return 0, ErrNoRiskScore
	}

	text := strings.Trim(strings.TrimSpace(string(parsed.RiskScore)), `"`)

	score, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, fmt.Errorf("%w: %s", ErrNoRiskScore, parsed.RiskScore)
	}

	return scoring.Clamp(score), nil
}

// jsonObject slices raw from the first '{' to the last '}'
func jsonObject(raw string) ([]byte, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")

	if start == -1 || end <= start {
		return nil, ErrNoJSONObject
	}

	return []byte(raw[start : end+1]), nil
}

// cleanList trims entries and drops empty ones, never returning nil
func cleanList(items []string) []string {
	out := lo.FilterMap(items, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})

	if out == nil {
		return []string{}
	}

	return out
}

func orUnspecified(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return unspecified
	}

	return s
}
