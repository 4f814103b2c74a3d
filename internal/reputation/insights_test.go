package reputation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amish-gaur/DataPriv/internal/types"
)

func rubricItem(category, slug string, percent float64) RubricItem {
	return RubricItem{
		Question: RubricQuestion{Category: category, Slug: slug},
		Option:   RubricOption{Percent: percent},
	}
}

func TestApplyRubric(t *testing.T) {
	product := &Product{Rubric: []RubricItem{
		rubricItem("collection", "data-collection-reasoning", 25),
		rubricItem("collection", "noncritical-purposes", 0),
		rubricItem("handling", "behavioral-marketing", 10),
		rubricItem("handling", "third-party-access", 49.9),
		rubricItem("handling", "data-deletion", 80),
		rubricItem("transparency", "security", 100),
		rubricItem("transparency", "history", 79),
		rubricItem("transparency", "data-breaches", 90),
		rubricItem("sharing", "unknown-question", 0),
	}}

	insights := types.NewHeuristicInsights()
	ApplyRubric(&insights, product)

	assert.Equal(t, types.RatingLow, insights.Transparency)
	assert.Equal(t, types.RatingLow, insights.UserControl)
	assert.Equal(t, types.RatingMedium, insights.DataSensitivity)
	assert.Equal(t, types.RatingMedium, insights.Compliance)
	assert.Equal(t, []string{"Behavioral marketing allowed", "Extensive third-party data sharing"}, insights.KeyConcerns)
	assert.Equal(t, []string{"Strong data deletion rights", "Strong security practices", "Data breach notification"}, insights.PrivacyStrengths)
}

func TestApplyRubric_Thresholds(t *testing.T) {
	product := &Product{Rubric: []RubricItem{
		rubricItem("collection", "list-collected", 50),
		rubricItem("handling", "behavioral-marketing", 50),
		rubricItem("handling", "data-deletion", 79.99),
	}}

	insights := types.NewHeuristicInsights()
	ApplyRubric(&insights, product)

	assert.Equal(t, types.RatingMedium, insights.Transparency)
	assert.Empty(t, insights.KeyConcerns)
	assert.Empty(t, insights.PrivacyStrengths)
}

func TestApplyRubric_NilProduct(t *testing.T) {
	insights := types.NewHeuristicInsights()
	ApplyRubric(&insights, nil)

	assert.Equal(t, types.NewHeuristicInsights(), insights)
}
