package answers

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/interfaces"
	"github.com/vedam-app/vedam/internal/models"
	"github.com/vedam-app/vedam/internal/services/retrieval"
)

// evidenceLimit caps how many excerpts accompany an answer.
const evidenceLimit = 3

// evidenceExcerptLen is the excerpt length in characters before truncation.
const evidenceExcerptLen = 200

// Composer implements interfaces.AnswerService. It grounds every answer in
// retrieved chunks: weak lexical evidence short-circuits to a fixed not-found
// message before any generation call is made, and generation failures degrade
// to a displayable error package instead of propagating.
type Composer struct {
	retriever  *retrieval.Retriever
	confidence *retrieval.ConfidenceEstimator
	generator  interfaces.TextGenerator
	grounding  float64
	logger     arbor.ILogger
}

// NewComposer creates the answer composer. grounding is the top-score gate
// below which the subject's notes are considered to not contain the answer.
func NewComposer(retriever *retrieval.Retriever, confidence *retrieval.ConfidenceEstimator, generator interfaces.TextGenerator, grounding float64, logger arbor.ILogger) *Composer {
	return &Composer{
		retriever:  retriever,
		confidence: confidence,
		generator:  generator,
		grounding:  grounding,
		logger:     logger,
	}
}

// AnswerQuestion produces a grounded answer package for the most recent user
// turn of the conversation. It never returns an error: every failure mode
// maps to a displayable package with Low confidence and empty citations.
func (c *Composer) AnswerQuestion(ctx context.Context, subjectID, userID string, conversation []models.Message, subjectName string) *models.AnswerPackage {
	query := lastUserTurn(conversation)

	chunks, err := c.retriever.Retrieve(ctx, subjectID, userID, query)
	if err != nil {
		c.logger.Error().Err(err).Str("subject_id", subjectID).Msg("Retrieval failed")
		return errorPackage(err)
	}

	if len(chunks) == 0 || chunks[0].Score < c.grounding {
		c.logger.Debug().
			Str("subject_id", subjectID).
			Int("chunks", len(chunks)).
			Msg("Grounding gate rejected query")
		return notFoundPackage(subjectName)
	}

	confidence := c.confidence.Estimate(chunks)
	prompt := buildAnswerPrompt(conversation, buildContext(chunks), subjectName)

	raw, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		c.logger.Error().Err(err).Str("subject_id", subjectID).Msg("Answer generation failed")
		return errorPackage(err)
	}

	return &models.AnswerPackage{
		Answer:     sanitizeAnswer(raw),
		Confidence: confidence,
		Citations:  buildCitations(chunks),
		Evidence:   buildEvidence(chunks),
	}
}

// lastUserTurn scans the conversation backward for the most recent user turn.
// Conversations without one yield an empty query, which scores 0 everywhere
// and falls to the grounding gate.
func lastUserTurn(conversation []models.Message) string {
	for i := len(conversation) - 1; i >= 0; i-- {
		if conversation[i].Role == "user" {
			return conversation[i].Text
		}
	}
	return ""
}

func buildCitations(chunks []models.ScoredChunk) []models.Citation {
	citations := make([]models.Citation, 0, len(chunks))
	for _, chunk := range chunks {
		citations = append(citations, models.Citation{
			Filename:   chunk.OriginalName,
			ChunkIndex: chunk.ChunkIndex + 1,
			Score:      fmt.Sprintf("%.3f", chunk.Score),
		})
	}
	return citations
}

func buildEvidence(chunks []models.ScoredChunk) []models.Evidence {
	if len(chunks) > evidenceLimit {
		chunks = chunks[:evidenceLimit]
	}

	evidence := make([]models.Evidence, 0, len(chunks))
	for _, chunk := range chunks {
		text := chunk.Content
		if runes := []rune(text); len(runes) > evidenceExcerptLen {
			text = string(runes[:evidenceExcerptLen]) + "..."
		}
		evidence = append(evidence, models.Evidence{
			Text:   text,
			Source: chunk.OriginalName,
			Chunk:  chunk.ChunkIndex + 1,
		})
	}
	return evidence
}

func notFoundPackage(subjectName string) *models.AnswerPackage {
	return &models.AnswerPackage{
		Answer:     fmt.Sprintf("Not found in your notes for %s", subjectName),
		Confidence: models.ConfidenceLow,
		Citations:  []models.Citation{},
		Evidence:   []models.Evidence{},
	}
}

func errorPackage(err error) *models.AnswerPackage {
	return &models.AnswerPackage{
		Answer:     fmt.Sprintf("Error: %s", err.Error()),
		Confidence: models.ConfidenceLow,
		Citations:  []models.Citation{},
		Evidence:   []models.Evidence{},
	}
}
