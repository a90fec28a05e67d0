package questions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/interfaces"
	"github.com/vedam-app/vedam/internal/models"
)

// ErrNoDocuments is returned when a subject has no ingested chunks to
// generate questions from. Handlers map it to a client error.
var ErrNoDocuments = errors.New("no documents found for this subject")

const (
	mcqCount         = 5
	shortAnswerCount = 3
)

// Generator implements interfaces.QuestionService. Question sets are
// synthesized from a fixed sample of the subject's chunks; the strict-JSON
// contract with the generation service is enforced after the fact by tolerant
// extraction plus hard validation.
type Generator struct {
	chunks        interfaces.ChunkStorage
	generator     interfaces.TextGenerator
	contextChunks int
	logger        arbor.ILogger
}

// NewGenerator creates the question-set generator. contextChunks caps how
// many chunks, in storage order, seed each prompt.
func NewGenerator(chunks interfaces.ChunkStorage, generator interfaces.TextGenerator, contextChunks int, logger arbor.ILogger) *Generator {
	return &Generator{
		chunks:        chunks,
		generator:     generator,
		contextChunks: contextChunks,
		logger:        logger,
	}
}

// GenerateMCQs returns exactly five multiple-choice questions drawn from the
// subject's notes. Fewer or more questions in the generation output is a
// hard error, never a partial result.
func (g *Generator) GenerateMCQs(ctx context.Context, subjectID, userID, subjectName string) (*models.MCQSet, error) {
	sources, err := g.buildContext(ctx, subjectID, userID)
	if err != nil {
		return nil, err
	}

	prompt := buildMCQPrompt(sources)

	raw, err := g.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("MCQ generation failed: %w", err)
	}

	var set models.MCQSet
	if err := g.parseQuestionJSON(raw, &set); err != nil {
		return nil, err
	}

	if len(set.Questions) != mcqCount {
		return nil, fmt.Errorf("expected %d MCQ questions, got %d", mcqCount, len(set.Questions))
	}

	g.logger.Info().
		Str("subject_id", subjectID).
		Int("questions", len(set.Questions)).
		Msg("MCQ set generated")

	return &set, nil
}

// GenerateShortAnswer returns exactly three short-answer questions with
// model answers.
func (g *Generator) GenerateShortAnswer(ctx context.Context, subjectID, userID, subjectName string) (*models.ShortAnswerSet, error) {
	sources, err := g.buildContext(ctx, subjectID, userID)
	if err != nil {
		return nil, err
	}

	prompt := buildShortAnswerPrompt(sources)

	raw, err := g.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("short-answer generation failed: %w", err)
	}

	var set models.ShortAnswerSet
	if err := g.parseQuestionJSON(raw, &set); err != nil {
		return nil, err
	}

	if len(set.Questions) != shortAnswerCount {
		return nil, fmt.Errorf("expected %d short-answer questions, got %d", shortAnswerCount, len(set.Questions))
	}

	g.logger.Info().
		Str("subject_id", subjectID).
		Int("questions", len(set.Questions)).
		Msg("Short-answer set generated")

	return &set, nil
}

// buildContext loads the subject's chunks and renders the first contextChunks
// of them, in storage order, as labeled source blocks. No generation call is
// made for an empty subject.
func (g *Generator) buildContext(ctx context.Context, subjectID, userID string) (string, error) {
	chunks, err := g.chunks.GetChunks(ctx, subjectID, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load chunks for subject %s: %w", subjectID, err)
	}

	if len(chunks) == 0 {
		return "", ErrNoDocuments
	}

	if len(chunks) > g.contextChunks {
		chunks = chunks[:g.contextChunks]
	}

	blocks := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		blocks = append(blocks, fmt.Sprintf("Source %d from %s:\n%s", i+1, chunk.OriginalName, chunk.Content))
	}

	return strings.Join(blocks, "\n\n"), nil
}

// parseQuestionJSON extracts and unmarshals a JSON object from raw generation
// output. Malformed output is a hard error.
func (g *Generator) parseQuestionJSON(raw string, target any) error {
	cleaned, err := extractJSONObject(raw)
	if err != nil {
		return fmt.Errorf("malformed generation output: %w", err)
	}

	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return fmt.Errorf("failed to parse question JSON: %w", err)
	}

	return nil
}

func buildMCQPrompt(context string) string {
	return fmt.Sprintf(`You are creating practice questions from study notes.

Context:
%s

Generate exactly 5 multiple-choice questions based on the notes above.

Return ONLY a JSON object in this format (no markdown, no extra text):
{
  "questions": [
    {
      "question": "question text here",
      "options": ["A) first option", "B) second option", "C) third option", "D) fourth option"],
      "correct": "A",
      "explanation": "brief explanation here",
      "citation": "filename.pdf"
    }
  ]
}

Rules:
1. Base questions strictly on the provided notes
2. Include exactly 4 options (A, B, C, D)
3. Mark correct answer as A, B, C, or D
4. Keep explanations brief
5. Cite the source filename`, context)
}

func buildShortAnswerPrompt(context string) string {
	return fmt.Sprintf(`You are creating practice questions from study notes.

Context:
%s

Generate exactly 3 short-answer questions with detailed model answers based on the notes above.

Return ONLY a JSON object in this format (no markdown, no extra text):
{
  "questions": [
    {
      "question": "question text here",
      "answer": "detailed model answer in 3-5 sentences",
      "citation": "filename.pdf"
    }
  ]
}

Rules:
1. Base questions strictly on the provided notes
2. Provide detailed answers (3-5 sentences)
3. Cite the source filename`, context)
}
