package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
	}{
		{"empty", "", 0},
		{"single risk keyword", "we sell data", 20},
		{"occurrences are counted", "sell sell sell", 60},
		{"adjacent occurrences", "sellsell", 40},
		{"case insensitive", "We SELL data", 20},
		{"prefix keyword", "shared with third party", 20},
		{"disclaimer offsets sell", "we do not sell", 5},
		{"two categories", "biometric location", 28},
		{"negative total clamps to zero", "gdpr and ccpa", 0},
		{"large total clamps to 99", strings.Repeat("sell ", 6), 99},
		{"no keywords", "hello world", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Score(tc.text), 1e-9)
		})
	}
}

func TestScore_Deterministic(t *testing.T) {
	text := "We share location and cookie data with third party advertisers. You may opt out."

	first := Score(text)
	for range 10 {
		assert.Equal(t, first, Score(text))
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	samples := []string{
		strings.Repeat("biometric social security data broker ", 50),
		strings.Repeat("do not sell gdpr ccpa encrypt ", 50),
		strings.Repeat("cookie tracking ", 3) + strings.Repeat("opt-out ", 7),
		"retain indefinitely",
	}

	for _, s := range samples {
		got := Score(s)
		assert.GreaterOrEqual(t, got, MinScore)
		assert.LessOrEqual(t, got, MaxScore)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-12))
	assert.Equal(t, 42.5, Clamp(42.5))
	assert.Equal(t, 99.0, Clamp(150))
}
