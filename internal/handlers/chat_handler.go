package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/interfaces"
	"github.com/vedam-app/vedam/internal/models"
)

// ChatHandler handles grounded question-answering requests
type ChatHandler struct {
	answers  interfaces.AnswerService
	subjects interfaces.SubjectStorage
	chunks   interfaces.ChunkStorage
	logger   arbor.ILogger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(
	answers interfaces.AnswerService,
	subjects interfaces.SubjectStorage,
	chunks interfaces.ChunkStorage,
	logger arbor.ILogger,
) *ChatHandler {
	return &ChatHandler{
		answers:  answers,
		subjects: subjects,
		chunks:   chunks,
		logger:   logger,
	}
}

// chatRequest is the POST /api/chat/message body.
type chatRequest struct {
	SubjectID    string           `json:"subjectId"`
	Conversation []models.Message `json:"conversation"`
}

// MessageHandler handles POST /api/chat/message requests. Every outcome,
// including validation failures, is shaped as an AnswerPackage so the chat
// frontend renders one response type.
func (h *ChatHandler) MessageHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode chat request")
		writeAnswer(w, http.StatusBadRequest, &models.AnswerPackage{
			Answer:     "Invalid request body",
			Confidence: models.ConfidenceLow,
			Citations:  []models.Citation{},
			Evidence:   []models.Evidence{},
		})
		return
	}

	if len(req.Conversation) == 0 {
		writeAnswer(w, http.StatusBadRequest, &models.AnswerPackage{
			Answer:     "Conversation array is required",
			Confidence: models.ConfidenceLow,
			Citations:  []models.Citation{},
			Evidence:   []models.Evidence{},
		})
		return
	}

	subject, err := h.subjects.GetSubject(r.Context(), req.SubjectID, userID)
	if err != nil {
		writeAnswer(w, http.StatusNotFound, &models.AnswerPackage{
			Answer:     "Subject not found",
			Confidence: models.ConfidenceLow,
			Citations:  []models.Citation{},
			Evidence:   []models.Evidence{},
		})
		return
	}

	count, err := h.chunks.CountChunks(r.Context(), subject.ID, userID)
	if err != nil {
		h.logger.Error().Err(err).Str("subject_id", subject.ID).Msg("Failed to count chunks")
		writeAnswer(w, http.StatusInternalServerError, &models.AnswerPackage{
			Answer:     "Error: " + err.Error(),
			Confidence: models.ConfidenceLow,
			Citations:  []models.Citation{},
			Evidence:   []models.Evidence{},
		})
		return
	}

	if count == 0 {
		writeAnswer(w, http.StatusOK, &models.AnswerPackage{
			Answer:     "Please upload notes before asking questions. No documents found for this subject.",
			Confidence: models.ConfidenceLow,
			Citations:  []models.Citation{},
			Evidence:   []models.Evidence{},
		})
		return
	}

	h.logger.Info().
		Str("subject_id", subject.ID).
		Int("turns", len(req.Conversation)).
		Msg("Processing chat request")

	result := h.answers.AnswerQuestion(r.Context(), subject.ID, userID, req.Conversation, subject.Name)
	writeAnswer(w, http.StatusOK, result)
}

func writeAnswer(w http.ResponseWriter, statusCode int, pkg *models.AnswerPackage) {
	WriteJSON(w, statusCode, pkg)
}
