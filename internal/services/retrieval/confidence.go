package retrieval

import (
	"github.com/vedam-app/vedam/internal/models"
)

// ConfidenceEstimator maps the mean retrieval score of a result set to a
// coarse confidence label shown alongside answers.
type ConfidenceEstimator struct {
	high   float64
	medium float64
}

// NewConfidenceEstimator creates an estimator with the given mean-score
// thresholds. High wins when the mean strictly exceeds high; Medium when it
// strictly exceeds medium; Low otherwise.
func NewConfidenceEstimator(high, medium float64) *ConfidenceEstimator {
	return &ConfidenceEstimator{high: high, medium: medium}
}

// Estimate returns the confidence label for a set of scored chunks. An empty
// set is always Low.
func (e *ConfidenceEstimator) Estimate(chunks []models.ScoredChunk) models.Confidence {
	if len(chunks) == 0 {
		return models.ConfidenceLow
	}

	var sum float64
	for _, chunk := range chunks {
		sum += chunk.Score
	}
	mean := sum / float64(len(chunks))

	switch {
	case mean > e.high:
		return models.ConfidenceHigh
	case mean > e.medium:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
