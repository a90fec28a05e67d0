package interfaces

import (
	"context"

	"github.com/vedam-app/vedam/internal/models"
)

// AnswerService answers natural-language questions strictly from a subject's
// uploaded notes.
type AnswerService interface {
	// AnswerQuestion grounds an answer in the subject's chunks. The caller
	// supplies the full conversation; the most recent user turn is the
	// retrieval query. Failures degrade to a displayable AnswerPackage
	// rather than an error.
	AnswerQuestion(ctx context.Context, subjectID, userID string, conversation []models.Message, subjectName string) *models.AnswerPackage
}

// QuestionService synthesizes structured practice questions from a subject's
// notes via the generation service.
type QuestionService interface {
	// GenerateMCQs returns exactly five multiple-choice questions.
	GenerateMCQs(ctx context.Context, subjectID, userID, subjectName string) (*models.MCQSet, error)

	// GenerateShortAnswer returns exactly three short-answer questions.
	GenerateShortAnswer(ctx context.Context, subjectID, userID, subjectName string) (*models.ShortAnswerSet, error)
}

// IngestService turns uploaded documents into stored chunks.
type IngestService interface {
	// IngestFile extracts text from an uploaded document, chunks it, and
	// stores the chunks under (subjectID, userID). Returns the number of
	// chunks stored.
	IngestFile(ctx context.Context, subjectID, userID, filename, originalName string, data []byte) (int, error)

	// DeleteFile removes a document's chunks.
	DeleteFile(ctx context.Context, subjectID, userID, filename string) error
}
