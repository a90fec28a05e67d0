package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScorer_Score(t *testing.T) {
	scorer := NewScorer()

	tests := []struct {
		name    string
		query   string
		content string
		want    float64
	}{
		{
			name:    "all tokens match",
			query:   "mitochondria powerhouse",
			content: "mitochondria is the powerhouse of the cell",
			want:    1.0,
		},
		{
			name:    "half tokens match",
			query:   "mitochondria quantum",
			content: "mitochondria is the powerhouse of the cell",
			want:    0.5,
		},
		{
			name:    "no tokens match",
			query:   "quantum entanglement",
			content: "mitochondria is the powerhouse of the cell",
			want:    0,
		},
		{
			name:    "only stop-short tokens",
			query:   "is a of to",
			content: "mitochondria is the powerhouse",
			want:    0,
		},
		{
			name:    "empty query",
			query:   "",
			content: "some content",
			want:    0,
		},
		{
			name:    "case insensitive",
			query:   "MITOCHONDRIA",
			content: "mitochondria is the powerhouse",
			want:    1.0,
		},
		{
			name:    "query token contained in chunk token",
			query:   "synth",
			content: "photosynthesis occurs in chloroplasts",
			want:    1.0,
		},
		{
			name:    "chunk token contained in query token",
			query:   "photosynthesis",
			content: "photo reactions in plants",
			want:    1.0,
		},
		{
			name:    "punctuation tolerated by containment",
			query:   "powerhouse",
			content: "the powerhouse, as it is known",
			want:    1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scorer.Score(tt.query, tt.content), 0.0001)
		})
	}
}

func TestScorer_SelfScoreIsOne(t *testing.T) {
	scorer := NewScorer()
	text := "mitochondria powerhouse cell energy"

	assert.Equal(t, 1.0, scorer.Score(text, text))
}

func TestScorer_Deterministic(t *testing.T) {
	scorer := NewScorer()

	first := scorer.Score("cell energy production", "the cell produces energy via respiration")
	second := scorer.Score("cell energy production", "the cell produces energy via respiration")

	assert.Equal(t, first, second)
}
