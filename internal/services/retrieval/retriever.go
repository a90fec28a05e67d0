package retrieval

import (
	"context"
	"fmt"
	"sort"

	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/interfaces"
	"github.com/vedam-app/vedam/internal/models"
)

// Retriever scores and ranks a subject's chunks against a query. Every query
// is scoped to (subjectID, userID): chunks from other subjects or other users
// are never candidates.
type Retriever struct {
	chunks interfaces.ChunkStorage
	scorer *Scorer
	topK   int
	logger arbor.ILogger
}

// NewRetriever creates a retriever returning at most topK chunks per query.
func NewRetriever(chunks interfaces.ChunkStorage, topK int, logger arbor.ILogger) *Retriever {
	return &Retriever{
		chunks: chunks,
		scorer: NewScorer(),
		topK:   topK,
		logger: logger,
	}
}

// Retrieve returns the subject's chunks ranked by lexical score, highest
// first, truncated to the configured top K. Equal scores keep storage order
// (ascending Filename, then ChunkIndex), which makes ranking deterministic.
// Zero-score chunks are still returned; the caller applies grounding gates.
func (r *Retriever) Retrieve(ctx context.Context, subjectID, userID, query string) ([]models.ScoredChunk, error) {
	chunks, err := r.chunks.GetChunks(ctx, subjectID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chunks for subject %s: %w", subjectID, err)
	}

	scored := make([]models.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		scored = append(scored, models.ScoredChunk{
			Chunk: *chunk,
			Score: r.scorer.Score(query, chunk.Content),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > r.topK {
		scored = scored[:r.topK]
	}

	r.logger.Debug().
		Str("subject_id", subjectID).
		Int("candidates", len(chunks)).
		Int("returned", len(scored)).
		Msg("Retrieval complete")

	return scored, nil
}
