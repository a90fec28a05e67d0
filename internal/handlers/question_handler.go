package handlers

import (
	"errors"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/interfaces"
	"github.com/vedam-app/vedam/internal/services/questions"
)

// QuestionHandler handles practice-question generation requests
type QuestionHandler struct {
	questions interfaces.QuestionService
	subjects  interfaces.SubjectStorage
	logger    arbor.ILogger
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService interfaces.QuestionService, subjects interfaces.SubjectStorage, logger arbor.ILogger) *QuestionHandler {
	return &QuestionHandler{
		questions: questionService,
		subjects:  subjects,
		logger:    logger,
	}
}

// MCQHandler handles POST /api/subjects/{id}/questions/mcq requests
func (h *QuestionHandler) MCQHandler(w http.ResponseWriter, r *http.Request, subjectID string) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	subject, err := h.subjects.GetSubject(r.Context(), subjectID, userID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Subject not found")
		return
	}

	set, err := h.questions.GenerateMCQs(r.Context(), subject.ID, userID, subject.Name)
	if err != nil {
		h.writeGenerationError(w, err, subject.ID, "MCQ")
		return
	}

	WriteJSON(w, http.StatusOK, set)
}

// ShortAnswerHandler handles POST /api/subjects/{id}/questions/short requests
func (h *QuestionHandler) ShortAnswerHandler(w http.ResponseWriter, r *http.Request, subjectID string) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	subject, err := h.subjects.GetSubject(r.Context(), subjectID, userID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Subject not found")
		return
	}

	set, err := h.questions.GenerateShortAnswer(r.Context(), subject.ID, userID, subject.Name)
	if err != nil {
		h.writeGenerationError(w, err, subject.ID, "short-answer")
		return
	}

	WriteJSON(w, http.StatusOK, set)
}

// writeGenerationError maps generation failures to HTTP statuses: a subject
// without documents is a client error, everything else is upstream failure.
func (h *QuestionHandler) writeGenerationError(w http.ResponseWriter, err error, subjectID, kind string) {
	if errors.Is(err, questions.ErrNoDocuments) {
		WriteError(w, http.StatusUnprocessableEntity, "No documents found for this subject")
		return
	}

	h.logger.Error().Err(err).Str("subject_id", subjectID).Str("kind", kind).Msg("Question generation failed")
	WriteError(w, http.StatusBadGateway, err.Error())
}
