package reputation

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/amish-gaur/DataPriv/internal/domain"
	"github.com/amish-gaur/DataPriv/internal/scoring"
	"github.com/amish-gaur/DataPriv/internal/types"
)

const (
	// Attribution credits PrivacySpy whenever its data contributed to a score
	Attribution = "Data provided by PrivacySpy (https://privacyspy.org) under Creative Commons BY license"
	// DefaultWeight is the share of the reputation score in the blended score
	DefaultWeight = 0.7
	// missingScoreRisk is the risk assigned to a record without a score
	missingScoreRisk = 50.0
)

// Blender combines the heuristic score with a reputation record when one exists
type Blender struct {
	source Source
	memo   *Memo
	weight float64
}

// BlenderOption configures the Blender
type BlenderOption func(*Blender)

// WithMemo sets the memo cache shared across lookups
func WithMemo(memo *Memo) BlenderOption {
	return func(b *Blender) {
		if memo != nil {
			b.memo = memo
		}
	}
}

// WithWeight sets the reputation share of the blended score; values outside (0, 1] are ignored
func WithWeight(weight float64) BlenderOption {
	return func(b *Blender) {
		if weight > 0 && weight <= 1 {
			b.weight = weight
		}
	}
}

// NewBlender creates a blender over source. A nil source disables reputation lookups.
func NewBlender(source Source, opts ...BlenderOption) *Blender {
	b := &Blender{
		source: source,
		weight: DefaultWeight,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.memo == nil {
		b.memo = NewMemo(DefaultMemoTTL)
	}

	return b
}

// ConvertScore maps a 0-10 reputation score, where 10 is best, to a 0-80 risk value
func ConvertScore(score *float64) float64 {
	if score == nil {
		return missingScoreRisk
	}

	switch s := *score; {
	case s >= 8:
		return 0
	case s >= 6:
		return 20
	case s >= 4:
		return 40
	case s >= 2:
		return 60
	default:
		return 80
	}
}

// Blend scores text for domain. Without a reputation record the heuristic
// score is returned with default insights; otherwise the converted reputation
// score is blended with the heuristic score and rubric insights are applied.
func (b *Blender) Blend(ctx context.Context, text, rawDomain string) (float64, types.EnhancedInsights) {
	heuristic := scoring.Score(text)
	insights := types.NewHeuristicInsights()

	product := b.lookup(ctx, rawDomain)
	if product == nil {
		return heuristic, insights
	}

	reputationRisk := ConvertScore(product.Score)

	insights.ReputationAvailable = true
	insights.ReputationScore = product.Score
	insights.Attribution = Attribution
	ApplyRubric(&insights, product)

	if b.weight == 1 {
		insights.DataSource = types.DataSourcePrivacyReputation
		return scoring.Clamp(reputationRisk), insights
	}

	insights.DataSource = types.DataSourceBlended
	insights.HeuristicScore = &heuristic

	return scoring.Clamp(b.weight*reputationRisk + (1-b.weight)*heuristic), insights
}

// lookup returns the reputation record for the domain, trying the registrable
// domain when the host itself has no record. Failures are treated as not found.
func (b *Blender) lookup(ctx context.Context, rawDomain string) *Product {
	if b.source == nil {
		return nil
	}

	host, err := domain.Normalize(rawDomain)
	if err != nil {
		return nil
	}

	for _, key := range lookupKeys(host) {
		if product, ok := b.memo.Get(key); ok {
			return product
		}

		product, err := b.source.Product(ctx, key)

		switch {
		case err == nil && product != nil:
			b.memo.Set(key, product)
			return product
		case errors.Is(err, ErrProductNotFound):
			log.Debug().Str("domain", key).Msg("no reputation record")
		case err != nil:
			log.Warn().Err(err).Str("domain", key).Msg("reputation lookup failed")
		}
	}

	return nil
}

// lookupKeys returns the host followed by its registrable domain when they differ
func lookupKeys(host string) []string {
	keys := []string{host}

	info, err := domain.Parse(host)
	if err != nil {
		return keys
	}

	if registrable := info.Registrable(); registrable != "" && registrable != host {
		keys = append(keys, registrable)
	}

	return keys
}
