package reputation

import "github.com/amish-gaur/DataPriv/internal/types"

// rubricRule maps a graded rubric question to an insight
type rubricRule struct {
	category string
	slug     string
	// below selects "percent < threshold" when true and "percent >= threshold" otherwise
	below     bool
	threshold float64
	apply     func(*types.EnhancedInsights)
}

func (r rubricRule) matches(item RubricItem) bool {
	if item.Question.Category != r.category || item.Question.Slug != r.slug {
		return false
	}

	if r.below {
		return item.Option.Percent < r.threshold
	}

	return item.Option.Percent >= r.threshold
}

func lowTransparency(in *types.EnhancedInsights) { in.Transparency = types.RatingLow }

func lowUserControl(in *types.EnhancedInsights) { in.UserControl = types.RatingLow }

func concern(text string) func(*types.EnhancedInsights) {
	return func(in *types.EnhancedInsights) { in.KeyConcerns = append(in.KeyConcerns, text) }
}

func strength(text string) func(*types.EnhancedInsights) {
	return func(in *types.EnhancedInsights) { in.PrivacyStrengths = append(in.PrivacyStrengths, text) }
}

var rubricRules = []rubricRule{
	{category: "collection", slug: "data-collection-reasoning", below: true, threshold: 50, apply: lowTransparency},
	{category: "collection", slug: "list-collected", below: true, threshold: 50, apply: lowTransparency},
	{category: "collection", slug: "noncritical-purposes", below: true, threshold: 50, apply: lowUserControl},
	{category: "handling", slug: "behavioral-marketing", below: true, threshold: 50, apply: concern("Behavioral marketing allowed")},
	{category: "handling", slug: "third-party-access", below: true, threshold: 50, apply: concern("Extensive third-party data sharing")},
	{category: "handling", slug: "data-deletion", threshold: 80, apply: strength("Strong data deletion rights")},
	{category: "transparency", slug: "security", threshold: 80, apply: strength("Strong security practices")},
	{category: "transparency", slug: "history", threshold: 80, apply: strength("Policy change transparency")},
	{category: "transparency", slug: "data-breaches", threshold: 80, apply: strength("Data breach notification")},
}

// ApplyRubric updates insights from the product's rubric. Items are visited in
// rubric order; unknown questions are ignored.
func ApplyRubric(insights *types.EnhancedInsights, product *Product) {
	if product == nil {
		return
	}

	for _, item := range product.Rubric {
		for _, rule := range rubricRules {
			if rule.matches(item) {
				rule.apply(insights)
				break
			}
		}
	}
}
