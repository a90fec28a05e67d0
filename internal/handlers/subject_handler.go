package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/vedam-app/vedam/internal/common"
	"github.com/vedam-app/vedam/internal/interfaces"
	"github.com/vedam-app/vedam/internal/models"
)

// SubjectHandler handles subject CRUD requests
type SubjectHandler struct {
	subjects interfaces.SubjectStorage
	logger   arbor.ILogger
}

// NewSubjectHandler creates a new subject handler
func NewSubjectHandler(subjects interfaces.SubjectStorage, logger arbor.ILogger) *SubjectHandler {
	return &SubjectHandler{
		subjects: subjects,
		logger:   logger,
	}
}

type createSubjectRequest struct {
	Name string `json:"name"`
}

// CreateHandler handles POST /api/subjects requests
func (h *SubjectHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	var req createSubjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		WriteError(w, http.StatusBadRequest, "Subject name is required")
		return
	}

	subject := &models.Subject{
		ID:     common.NewSubjectID(),
		UserID: userID,
		Name:   req.Name,
		Notes:  []models.NoteFile{},
	}

	if err := h.subjects.SaveSubject(r.Context(), subject); err != nil {
		h.logger.Error().Err(err).Msg("Failed to create subject")
		WriteError(w, http.StatusInternalServerError, "Failed to create subject")
		return
	}

	h.logger.Info().Str("subject_id", subject.ID).Str("name", subject.Name).Msg("Subject created")
	WriteJSON(w, http.StatusCreated, subject)
}

// ListHandler handles GET /api/subjects requests
func (h *SubjectHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	subjects, err := h.subjects.ListSubjects(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list subjects")
		WriteError(w, http.StatusInternalServerError, "Failed to list subjects")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"subjects": subjects,
	})
}

// GetHandler handles GET /api/subjects/{id} requests
func (h *SubjectHandler) GetHandler(w http.ResponseWriter, r *http.Request, subjectID string) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	subject, err := h.subjects.GetSubject(r.Context(), subjectID, userID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Subject not found")
		return
	}

	WriteJSON(w, http.StatusOK, subject)
}

// DeleteHandler handles DELETE /api/subjects/{id} requests. Deletion cascades
// to the subject's chunks in storage.
func (h *SubjectHandler) DeleteHandler(w http.ResponseWriter, r *http.Request, subjectID string) {
	userID, ok := RequireUserID(w, r)
	if !ok {
		return
	}

	if err := h.subjects.DeleteSubject(r.Context(), subjectID, userID); err != nil {
		WriteError(w, http.StatusNotFound, "Subject not found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "deleted",
		"id":     subjectID,
	})
}
