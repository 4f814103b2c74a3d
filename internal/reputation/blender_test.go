package reputation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amish-gaur/DataPriv/internal/types"
)

type fakeSource struct {
	mu       sync.Mutex
	products map[string]*Product
	err      error
	calls    []string
}

func (f *fakeSource) Product(_ context.Context, domain string) (*Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, domain)

	if f.err != nil {
		return nil, f.err
	}

	if p, ok := f.products[domain]; ok {
		return p, nil
	}

	return nil, ErrProductNotFound
}

func score(v float64) *float64 { return &v }

// heuristic score 40: "sell" 20 twice
const sellTwice = "we sell and sell"

func TestConvertScore(t *testing.T) {
	tests := []struct {
		score    *float64
		expected float64
	}{
		{nil, 50},
		{score(10), 0},
		{score(8), 0},
		{score(7.9), 20},
		{score(6), 20},
		{score(4), 40},
		{score(2), 60},
		{score(1.99), 80},
		{score(0), 80},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, ConvertScore(tc.score))
	}
}

func TestBlend_NoRecord(t *testing.T) {
	blender := NewBlender(&fakeSource{})

	risk, insights := blender.Blend(context.Background(), sellTwice, "example.com")

	assert.InDelta(t, 40, risk, 1e-9)
	assert.Equal(t, types.DataSourceHeuristic, insights.DataSource)
	assert.False(t, insights.ReputationAvailable)
	assert.Nil(t, insights.HeuristicScore)
	assert.Equal(t, types.DefaultAttribution, insights.Attribution)
	assert.Equal(t, types.RatingMedium, insights.Transparency)
}

func TestBlend_NilSource(t *testing.T) {
	risk, insights := NewBlender(nil).Blend(context.Background(), sellTwice, "example.com")

	assert.InDelta(t, 40, risk, 1e-9)
	assert.Equal(t, types.DataSourceHeuristic, insights.DataSource)
}

func TestBlend_WithRecord(t *testing.T) {
	source := &fakeSource{products: map[string]*Product{
		"example.com": {Score: score(9)},
	}}

	risk, insights := NewBlender(source).Blend(context.Background(), sellTwice, "https://www.Example.com/privacy")

	assert.InDelta(t, 12.0, risk, 1e-9)
	assert.Equal(t, types.DataSourceBlended, insights.DataSource)
	assert.True(t, insights.ReputationAvailable)
	require.NotNil(t, insights.ReputationScore)
	assert.InDelta(t, 9.0, *insights.ReputationScore, 1e-9)
	require.NotNil(t, insights.HeuristicScore)
	assert.InDelta(t, 40, *insights.HeuristicScore, 1e-9)
	assert.Equal(t, Attribution, insights.Attribution)
}

func TestBlend_MissingScore(t *testing.T) {
	source := &fakeSource{products: map[string]*Product{"example.com": {}}}

	risk, insights := NewBlender(source).Blend(context.Background(), "", "example.com")

	// 0.7 * 50 + 0.3 * 0
	assert.InDelta(t, 35.0, risk, 1e-9)
	assert.Nil(t, insights.ReputationScore)
	assert.True(t, insights.ReputationAvailable)
}

func TestBlend_ReputationOnlyWeight(t *testing.T) {
	source := &fakeSource{products: map[string]*Product{"example.com": {Score: score(3)}}}

	risk, insights := NewBlender(source, WithWeight(1)).Blend(context.Background(), sellTwice, "example.com")

	assert.InDelta(t, 60.0, risk, 1e-9)
	assert.Equal(t, types.DataSourcePrivacyReputation, insights.DataSource)
	assert.Nil(t, insights.HeuristicScore)
}

func TestBlend_RegistrableFallback(t *testing.T) {
	source := &fakeSource{products: map[string]*Product{"example.co.uk": {Score: score(8)}}}

	_, insights := NewBlender(source).Blend(context.Background(), "", "shop.example.co.uk")

	assert.True(t, insights.ReputationAvailable)
	assert.Equal(t, []string{"shop.example.co.uk", "example.co.uk"}, source.calls)
}

func TestBlend_SourceFailureFallsBack(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}

	risk, insights := NewBlender(source).Blend(context.Background(), sellTwice, "example.com")

	assert.InDelta(t, 40, risk, 1e-9)
	assert.Equal(t, types.DataSourceHeuristic, insights.DataSource)
}

func TestBlend_MemoReused(t *testing.T) {
	source := &fakeSource{products: map[string]*Product{"example.com": {Score: score(5)}}}
	blender := NewBlender(source, WithMemo(NewMemo(0)))

	for range 3 {
		blender.Blend(context.Background(), "", "example.com")
	}

	assert.Equal(t, []string{"example.com"}, source.calls)
}

func TestBlend_NotFoundIsNotMemoized(t *testing.T) {
	source := &fakeSource{}
	blender := NewBlender(source)

	blender.Blend(context.Background(), "", "example.com")
	blender.Blend(context.Background(), "", "example.com")

	assert.Equal(t, []string{"example.com", "example.com"}, source.calls)
}
