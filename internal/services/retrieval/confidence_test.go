package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vedam-app/vedam/internal/models"
)

func scoredChunks(scores ...float64) []models.ScoredChunk {
	chunks := make([]models.ScoredChunk, len(scores))
	for i, s := range scores {
		chunks[i] = models.ScoredChunk{Score: s}
	}
	return chunks
}

func TestConfidenceEstimator_Estimate(t *testing.T) {
	estimator := NewConfidenceEstimator(0.5, 0.3)

	tests := []struct {
		name   string
		scores []float64
		want   models.Confidence
	}{
		{"empty result", nil, models.ConfidenceLow},
		{"all perfect", []float64{1.0, 1.0, 1.0}, models.ConfidenceHigh},
		{"all medium", []float64{0.4, 0.4, 0.4}, models.ConfidenceMedium},
		{"all low", []float64{0.2, 0.2, 0.2}, models.ConfidenceLow},
		{"mean exactly at high threshold", []float64{0.5, 0.5}, models.ConfidenceMedium},
		{"mean exactly at medium threshold", []float64{0.3, 0.3}, models.ConfidenceLow},
		{"mean just above high", []float64{0.6, 0.5}, models.ConfidenceHigh},
		{"mixed pulls mean down", []float64{1.0, 0.0, 0.0, 0.0}, models.ConfidenceLow},
		{"single high score", []float64{0.9}, models.ConfidenceHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, estimator.Estimate(scoredChunks(tt.scores...)))
		})
	}
}
